package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type recordingHooks struct {
	NoopPipelineHooks
	NoopCacheHooks
	events []string
}

func (r *recordingHooks) OnVerifyIteration(_ context.Context, iteration, divergences int) {
	r.events = append(r.events, "iteration")
}

func (r *recordingHooks) OnCacheMiss(_ context.Context, keyType string) {
	r.events = append(r.events, "miss:"+keyType)
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}
}

func TestSetAll(t *testing.T) {
	t.Cleanup(Reset)
	rec := &recordingHooks{}
	SetAll(rec)

	if Pipeline() != rec || Cache() != rec {
		t.Fatal("SetAll did not register pipeline and cache hooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want untouched NoopHTTPHooks", HTTP())
	}

	ctx := context.Background()
	Pipeline().OnVerifyIteration(ctx, 1, 0)
	Cache().OnCacheMiss(ctx, "render")
	if got := strings.Join(rec.events, ","); got != "iteration,miss:render" {
		t.Errorf("events = %q, want iteration,miss:render", got)
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	t.Cleanup(Reset)
	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)
	SetCacheHooks(nil)
	SetHTTPHooks(nil)

	if Pipeline() != rec {
		t.Error("SetPipelineHooks(nil) replaced the registered hooks")
	}
	if Cache() == nil || HTTP() == nil {
		t.Error("nil registration cleared a default")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := LogHooks{Logger: log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})}
	ctx := context.Background()

	h.OnLoadComplete(ctx, "dst", 120, time.Millisecond, nil)
	h.OnVerifyComplete(ctx, "dst", 2, time.Millisecond, errors.New("boom"))
	h.OnCacheSet(ctx, "pattern", 512)
	h.OnResponse(ctx, "POST", "/verify", 422, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"load done", "stitches=120", "verify done", "err=boom", "cache set", "bytes=512", "status=422"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := LogHooks{Logger: log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})}
	h.OnCacheHit(context.Background(), "render")
	if buf.Len() != 0 {
		t.Errorf("LogHooks wrote at info level: %q", buf.String())
	}
}
