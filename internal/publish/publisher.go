package publish

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/specialistvlad/signalgrid/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	DefaultEvent    = "backtest:result"
	DefaultAckEvent = "backtest:ack"
	DefaultTimeout  = 10 * time.Second
)

var ErrInvalidURL = errors.New("publish url must be an http, https, ws or wss url")

// Config describes the socket.io endpoint.
type Config struct {
	URL                string
	Namespace          string
	Event              string
	AckEvent           string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// session is the part of a socket.io client the publisher uses.
type session interface {
	OnceEvent(name string, fn func(args ...any))
	EmitEvent(name string, data any)
	ID() string
	Close()
}

type dialFunc func(ctx context.Context, cfg Config, u *url.URL) (session, error)

// Publisher emits one event per Publish call on a fresh connection.
type Publisher struct {
	cfg  Config
	url  *url.URL
	dial dialFunc
}

// NewPublisher validates cfg and fills in defaults.
func NewPublisher(cfg Config) (*Publisher, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, cfg.URL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, cfg.URL)
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	if cfg.Event == "" {
		cfg.Event = DefaultEvent
	}
	if cfg.AckEvent == "" {
		cfg.AckEvent = DefaultAckEvent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Publisher{cfg: cfg, url: u, dial: dialSocket}, nil
}

// Publish connects, emits the payload and waits for the acknowledgement
// event or the timeout, whichever comes first.
func (p *Publisher) Publish(ctx context.Context, payload Payload) error {
	logger := ctxlog.FromContext(ctx).With("url", p.cfg.URL, "event", p.cfg.Event, "run_id", payload.RunID)

	opCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	io, err := p.dial(opCtx, p.cfg, p.url)
	if err != nil {
		return err
	}
	defer io.Close()

	data, err := payload.toMap()
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	done := make(chan struct{}, 1)
	io.OnceEvent(p.cfg.AckEvent, func(...any) {
		logger.Debug("EVENT HANDLER: acknowledgement received", "ack_event", p.cfg.AckEvent)
		done <- struct{}{}
	})

	if logger.Enabled(ctx, slog.LevelDebug) {
		encoded, _ := json.Marshal(data)
		logger.Debug("Emitting event", "sid", io.ID(), "data", string(encoded))
	}
	io.EmitEvent(p.cfg.Event, data)

	select {
	case <-done:
		logger.Info("Result published.", "sid", io.ID())
		return nil
	case <-opCtx.Done():
		if ctx.Err() != nil {
			return fmt.Errorf("context cancelled while waiting for '%s'", p.cfg.AckEvent)
		}
		return fmt.Errorf("timed out after %v waiting for event '%s'", p.cfg.Timeout, p.cfg.AckEvent)
	}
}

type socketSession struct {
	io *socket.Socket
}

func (s socketSession) OnceEvent(name string, fn func(args ...any)) {
	s.io.Once(types.EventName(name), fn)
}

func (s socketSession) EmitEvent(name string, data any) {
	s.io.Emit(name, data)
}

func (s socketSession) ID() string {
	return string(s.io.Id())
}

func (s socketSession) Close() {
	s.io.Disconnect()
}

// dialSocket opens a websocket-only socket.io connection and waits for the
// connect or connect_error event.
func dialSocket(ctx context.Context, cfg Config, u *url.URL) (session, error) {
	logger := ctxlog.FromContext(ctx).With("url", cfg.URL, "namespace", cfg.Namespace)

	opts := socket.DefaultOptions()
	if u.Path != "" {
		opts.SetPath(u.Path)
	}
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", u.Scheme, u.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected", "sid", io.Id())
		notify(connectChan, nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", errs[0])
			}
		}
		notify(connectChan, err)
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return socketSession{io: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out waiting for socket.io connection: %w", ctx.Err())
	}
}

// notify delivers the first connection outcome; later ones are dropped so a
// late callback never blocks.
func notify(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}
