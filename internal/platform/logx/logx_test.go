// internal/platform/logx/logx_test.go
package logx

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(LevelInfo, &buf)

	l.Debug("hidden")
	l.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line leaked below level: %q", out)
	}
	if !strings.Contains(out, "INF shown") {
		t.Errorf("info line missing: %q", out)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(LevelInfo, &buf)

	l.SetLevel(LevelDebug)
	l.Debug("now visible")

	if !strings.Contains(buf.String(), "DBG now visible") {
		t.Errorf("debug line missing after SetLevel: %q", buf.String())
	}
}

func TestKeyValueFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(LevelDebug, &buf)

	l.Info("tool finished", "tool", "amass", "lines", 42)

	out := buf.String()
	if !strings.Contains(out, "tool=amass") {
		t.Errorf("missing key=value pair: %q", out)
	}
	if !strings.Contains(out, "lines=42") {
		t.Errorf("missing numeric pair: %q", out)
	}
}

func TestWithScope(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter(LevelDebug, &buf)

	scoped := base.With("component", "probe")
	scoped.Info("start")

	if !strings.Contains(buf.String(), "component=probe") {
		t.Errorf("scoped field missing: %q", buf.String())
	}

	// El logger base no hereda el scope del hijo
	buf.Reset()
	base.Info("plain")
	if strings.Contains(buf.String(), "component=probe") {
		t.Errorf("scope leaked into parent: %q", buf.String())
	}
}

func TestWithConcurrent(t *testing.T) {
	var buf safeBuffer
	base := NewWithWriter(LevelDebug, &buf)

	// Padre y clones loguean en paralelo; cada clone vive con su
	// propio lock y el sink compartido serializa las líneas
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			scoped := base.With("worker", n)
			for j := 0; j < 20; j++ {
				scoped.Info("tick")
				base.SetLevel(LevelDebug)
			}
		}(i)
	}
	wg.Wait()

	if !strings.Contains(buf.String(), "worker=0") {
		t.Errorf("scoped output missing: %q", buf.String()[:min(len(buf.String()), 200)])
	}
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestErr(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(LevelDebug, &buf)

	l.Err(errors.New("boom"), "stage", "probe")
	out := buf.String()
	if !strings.Contains(out, "ERR") || !strings.Contains(out, "error=boom") {
		t.Errorf("error line malformed: %q", out)
	}

	buf.Reset()
	l.Err(nil)
	if buf.Len() != 0 {
		t.Errorf("nil error should log nothing: %q", buf.String())
	}
}
