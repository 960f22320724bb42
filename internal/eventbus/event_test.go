package eventbus

import "testing"

func TestLogOmitsNameWhenEmpty(t *testing.T) {
	e := Log("run-1", "generator", "", "a message")
	if e.Name != nil {
		t.Errorf("expected nil Name for empty name, got %q", *e.Name)
	}
}

func TestLogIncludesNameWhenSet(t *testing.T) {
	e := Log("run-1", "researcher", "Emma", "a message")
	if e.Name == nil || *e.Name != "Emma" {
		t.Errorf("expected Name to be set to Emma, got %+v", e.Name)
	}
}

func TestIsCriticalClassification(t *testing.T) {
	for _, typ := range []Type{TypeResult, TypeError, TypeDone, TypeStart, TypeActivity} {
		if !isCritical(typ) {
			t.Errorf("expected %s to be critical", typ)
		}
	}
	for _, typ := range []Type{TypeLog, TypePartial} {
		if isCritical(typ) {
			t.Errorf("expected %s to be rotatable, not critical", typ)
		}
	}
}
