package domain

import (
	"testing"

	domainerrors "github.com/smilemakc/namazing/internal/domain/errors"
)

func TestSessionProfileValidateRequiresRawBrief(t *testing.T) {
	if err := (SessionProfile{RawBrief: "  "}).Validate(); !domainerrors.Is(err, domainerrors.SchemaInvalid) {
		t.Errorf("expected SchemaInvalid for blank raw_brief, got %v", err)
	}
	if err := (SessionProfile{RawBrief: "We're expecting a girl"}).Validate(); err != nil {
		t.Errorf("unexpected error for valid profile: %v", err)
	}
}

func TestCandidateValidateRequiresName(t *testing.T) {
	if err := (Candidate{}).Validate(); !domainerrors.Is(err, domainerrors.SchemaInvalid) {
		t.Errorf("expected SchemaInvalid for blank name, got %v", err)
	}
}

func TestNameCardValidateRequiresFields(t *testing.T) {
	cases := []NameCard{
		{Name: "", IPA: "ˈɛmə", Syllables: 2},
		{Name: "Emma", IPA: "", Syllables: 2},
		{Name: "Emma", IPA: "ˈɛmə", Syllables: 0},
	}
	for i, c := range cases {
		if err := c.Validate(); !domainerrors.Is(err, domainerrors.SchemaInvalid) {
			t.Errorf("case %d: expected SchemaInvalid, got %v", i, err)
		}
	}

	valid := NameCard{Name: "Emma", IPA: "ˈɛmə", Syllables: 2}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error for valid card: %v", err)
	}
}

func TestExpertSelectionValidateChecksBothLists(t *testing.T) {
	sel := ExpertSelection{
		Finalists:  []Finalist{{Name: "Emma"}, {Name: ""}},
		NearMisses: []NearMiss{{Name: "Iris"}},
	}
	if err := sel.Validate(); !domainerrors.Is(err, domainerrors.SchemaInvalid) {
		t.Errorf("expected SchemaInvalid for blank finalist name, got %v", err)
	}
}

func TestSanityCheckResultValidateChecksSeverity(t *testing.T) {
	result := SanityCheckResult{
		FlaggedNames: []FlaggedName{{Name: "Karen", Severity: "catastrophic"}},
	}
	if err := result.Validate(); !domainerrors.Is(err, domainerrors.SchemaInvalid) {
		t.Errorf("expected SchemaInvalid for unrecognized severity, got %v", err)
	}

	valid := SanityCheckResult{
		FlaggedNames: []FlaggedName{{Name: "Karen", Severity: SeverityHigh}},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error for valid result: %v", err)
	}
}
