package publish

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/specialistvlad/signalgrid/internal/executor"
	"github.com/specialistvlad/signalgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	mu       sync.Mutex
	ack      bool
	handlers map[string]func(...any)
	emitted  map[string]any
	closed   bool
}

func (f *fakeSession) OnceEvent(name string, fn func(args ...any)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.handlers == nil {
		f.handlers = map[string]func(...any){}
	}
	f.handlers[name] = fn
}

func (f *fakeSession) EmitEvent(name string, data any) {
	f.mu.Lock()
	if f.emitted == nil {
		f.emitted = map[string]any{}
	}
	f.emitted[name] = data
	h := f.handlers[DefaultAckEvent]
	f.mu.Unlock()

	if f.ack && h != nil {
		go h("ok")
	}
}

func (f *fakeSession) ID() string { return "sid-1" }

func (f *fakeSession) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func newTestPublisher(t *testing.T, s *fakeSession, dialErr error) *Publisher {
	t.Helper()
	p, err := NewPublisher(Config{URL: "http://localhost:3000/socket.io/", Timeout: 100 * time.Millisecond})
	require.NoError(t, err)
	p.dial = func(context.Context, Config, *url.URL) (session, error) {
		if dialErr != nil {
			return nil, dialErr
		}
		return s, nil
	}
	return p
}

func TestPublish_EmitsPayloadAndWaitsForAck(t *testing.T) {
	ctx, _ := testutil.Context(t)
	s := &fakeSession{ack: true}
	p := newTestPublisher(t, s, nil)

	summary := executor.Summary{Trades: 3, PnL: decimal.RequireFromString("12.5")}
	require.NoError(t, p.Publish(ctx, NewPayload("run-1", "BTCUSDT", summary)))

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.True(t, s.closed)
	data, ok := s.emitted[DefaultEvent].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "run-1", data["runId"])
	assert.Equal(t, "BTCUSDT", data["symbol"])
	assert.Equal(t, "12.5", data["summary"].(map[string]any)["pnl"])
	assert.EqualValues(t, 3, data["summary"].(map[string]any)["trades"])
}

func TestPublish_TimesOutWithoutAck(t *testing.T) {
	ctx, _ := testutil.Context(t)
	s := &fakeSession{}
	p := newTestPublisher(t, s, nil)

	err := p.Publish(ctx, NewPayload("run-1", "BTC", executor.Summary{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "waiting for event 'backtest:ack'")
	assert.True(t, s.closed)
}

func TestPublish_DialError(t *testing.T) {
	ctx, _ := testutil.Context(t)
	p := newTestPublisher(t, nil, errors.New("connection refused"))

	err := p.Publish(ctx, NewPayload("run-1", "BTC", executor.Summary{}))
	assert.EqualError(t, err, "connection refused")
}

func TestNewPublisher(t *testing.T) {
	testCases := []struct {
		url     string
		wantErr bool
	}{
		{url: "http://localhost:3000", wantErr: false},
		{url: "wss://editor.example.com/socket.io/", wantErr: false},
		{url: "ftp://localhost", wantErr: true},
		{url: "localhost:3000", wantErr: true},
		{url: "http://", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			p, err := NewPublisher(Config{URL: tc.url})
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "/", p.cfg.Namespace)
			assert.Equal(t, DefaultEvent, p.cfg.Event)
			assert.Equal(t, DefaultTimeout, p.cfg.Timeout)
		})
	}
}

func TestNotify_KeepsFirstOutcome(t *testing.T) {
	ch := make(chan error, 1)
	refused := errors.New("refused")

	done := make(chan struct{})
	go func() {
		notify(ch, nil)
		notify(ch, refused)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second notification blocked")
	}
	assert.NoError(t, <-ch)
	assert.Empty(t, ch)
}
