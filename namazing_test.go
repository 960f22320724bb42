package namazing

import (
	"context"
	"testing"
	"time"
)

func TestEngineRunsEndToEndInStubMode(t *testing.T) {
	cfg := &Config{Model: "openai/gpt-oss-20b", Concurrency: 2, LogLevel: "error"}
	engine := NewEngine(cfg, false)

	run := engine.StartRun(context.Background(), "expecting a boy, surname: Alvarez", ModeSerial, true)

	deadline := time.Now().Add(5 * time.Second)
	for run.Status() != StatusCompleted && run.Status() != StatusFailed {
		if time.Now().After(deadline) {
			t.Fatal("expected the run to finish within 5s in stub mode")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if run.Status() != StatusCompleted {
		_, err := run.Result()
		t.Fatalf("expected the run to complete, got status %s (err: %v)", run.Status(), err)
	}

	result, _ := run.Result()
	if result == nil || result.Report.Summary == "" {
		t.Errorf("expected a populated result, got %+v", result)
	}

	if _, ok := engine.GetRun(run.ID); !ok {
		t.Error("expected GetRun to find the started run")
	}
}
