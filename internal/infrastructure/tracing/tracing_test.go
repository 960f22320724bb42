package tracing

import (
	"context"
	"errors"
	"testing"
)

func TestStartStageAndEndDoNotPanicWithoutErr(t *testing.T) {
	ctx, span := StartStage(context.Background(), "run-1", "generator")
	if ctx == nil {
		t.Fatal("expected a non-nil context")
	}
	End(span, nil)
}

func TestStartStageAndEndRecordsError(t *testing.T) {
	_, span := StartStage(context.Background(), "run-1", "researcher")
	End(span, errors.New("boom"))
}
