package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event as a debug line. A nil Logger uses
// log.Default().
type LogHooks struct {
	Logger *log.Logger
}

func (h LogHooks) logger() *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return log.Default()
}

func (h LogHooks) OnLoadStart(_ context.Context, format string) {
	h.logger().Debug("load start", "format", format)
}

func (h LogHooks) OnLoadComplete(_ context.Context, format string, stitchCount int, d time.Duration, err error) {
	h.logger().Debug("load done", "format", format, "stitches", stitchCount, "duration", d, "err", err)
}

func (h LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger().Debug("render start", "formats", formats)
}

func (h LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger().Debug("render done", "formats", formats, "duration", d, "err", err)
}

func (h LogHooks) OnVerifyStart(_ context.Context, codec string, iterations int) {
	h.logger().Debug("verify start", "codec", codec, "iterations", iterations)
}

func (h LogHooks) OnVerifyIteration(_ context.Context, iteration, divergences int) {
	h.logger().Debug("verify iteration", "iteration", iteration, "divergences", divergences)
}

func (h LogHooks) OnVerifyComplete(_ context.Context, codec string, iterations int, d time.Duration, err error) {
	h.logger().Debug("verify done", "codec", codec, "iterations", iterations, "duration", d, "err", err)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger().Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger().Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger().Debug("cache set", "type", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger().Debug("http request", "method", method, "path", path)
}

func (h LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger().Debug("http response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = LogHooks{}
	_ CacheHooks    = LogHooks{}
	_ HTTPHooks     = LogHooks{}
)
