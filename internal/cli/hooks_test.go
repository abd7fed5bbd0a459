package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fanchart/pkg/observability"
)

func TestTraceHooks(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	registerTraceHooks(newLogger(&buf, log.DebugLevel))

	ctx := context.Background()
	observability.Pipeline().OnBuildComplete(ctx, "@I1@", 15, 3*time.Millisecond, nil)
	observability.Pipeline().OnLayoutComplete(ctx, "time", time.Millisecond, errors.New("bad weights"))
	observability.Cache().OnCacheHit(ctx, "chart")

	out := buf.String()
	for _, want := range []string{"build done", "nodes=15", "layout failed", "bad weights", "cache hit", "type=chart"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestTraceHooksQuietAtInfo(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	registerTraceHooks(newLogger(&buf, log.InfoLevel))
	observability.Cache().OnCacheMiss(context.Background(), "chart")

	if buf.Len() != 0 {
		t.Errorf("info logger printed debug events: %q", buf.String())
	}
}
