package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fanchart/pkg/observability"
)

// traceHooks logs pipeline and cache events at debug level, so --verbose
// shows per-stage timings and cache behavior.
type traceHooks struct {
	logger *log.Logger
}

func registerTraceHooks(l *log.Logger) {
	h := traceHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

func (h traceHooks) OnDecodeStart(_ context.Context, size int) {
	h.logger.Debug("decode", "bytes", size)
}

func (h traceHooks) OnDecodeComplete(_ context.Context, records int, d time.Duration, err error) {
	h.done("decode", d, err, "records", records)
}

func (h traceHooks) OnBuildStart(_ context.Context, root string, generations int) {
	h.logger.Debug("build", "root", root, "generations", generations)
}

func (h traceHooks) OnBuildComplete(_ context.Context, _ string, nodes int, d time.Duration, err error) {
	h.done("build", d, err, "nodes", nodes)
}

func (h traceHooks) OnLayoutStart(_ context.Context, policy string, nodes int) {
	h.logger.Debug("layout", "policy", policy, "nodes", nodes)
}

func (h traceHooks) OnLayoutComplete(_ context.Context, policy string, d time.Duration, err error) {
	h.done("layout", d, err, "policy", policy)
}

func (h traceHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h traceHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h traceHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h traceHooks) done(stage string, d time.Duration, err error, kv ...any) {
	kv = append(kv, "duration", d.Round(time.Microsecond))
	if err != nil {
		h.logger.Debug(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(stage+" done", kv...)
}
