package testutil

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/specialistvlad/signalgrid/internal/ctxlog"
)

// logsEnv enables dumping captured logs after each test.
const logsEnv = "SIGNALGRID_TEST_LOGS"

// Context returns a background context carrying a debug logger that writes
// into the returned buffer. Set SIGNALGRID_TEST_LOGS=true to print the
// captured output when the test finishes.
func Context(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Cleanup(func() {
		if os.Getenv(logsEnv) == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})

	return ctxlog.WithLogger(context.Background(), logger), buf
}
