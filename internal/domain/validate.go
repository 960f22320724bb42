package domain

import (
	"fmt"
	"strings"

	domainerrors "github.com/smilemakc/namazing/internal/domain/errors"
)

// Validate checks the required fields spec.md §3 names for a parsed
// SessionProfile, returning a SchemaInvalid RunError naming the
// offending field path when one is missing.
func (p SessionProfile) Validate() error {
	if strings.TrimSpace(p.RawBrief) == "" {
		return domainerrors.New(domainerrors.SchemaInvalid, `field "raw_brief": must not be empty`)
	}
	return nil
}

// Validate checks a single Candidate's required field.
func (c Candidate) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return domainerrors.New(domainerrors.SchemaInvalid, `field "name": must not be empty`)
	}
	return nil
}

// Validate checks the required fields spec.md §3 names for a NameCard:
// name, ipa, and a positive syllable count.
func (n NameCard) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return domainerrors.New(domainerrors.SchemaInvalid, `field "name": required`)
	}
	if strings.TrimSpace(n.IPA) == "" {
		return domainerrors.New(domainerrors.SchemaInvalid, `field "ipa": required`)
	}
	if n.Syllables <= 0 {
		return domainerrors.New(domainerrors.SchemaInvalid, `field "syllables": must be a positive integer`)
	}
	return nil
}

// Validate checks every Finalist and NearMiss carries a name.
func (s ExpertSelection) Validate() error {
	for i, f := range s.Finalists {
		if strings.TrimSpace(f.Name) == "" {
			return domainerrors.New(domainerrors.SchemaInvalid, fmt.Sprintf(`field "finalists[%d].name": required`, i))
		}
	}
	for i, m := range s.NearMisses {
		if strings.TrimSpace(m.Name) == "" {
			return domainerrors.New(domainerrors.SchemaInvalid, fmt.Sprintf(`field "near_misses[%d].name": required`, i))
		}
	}
	return nil
}

// Validate checks every FlaggedName carries a name and a recognized
// severity.
func (r SanityCheckResult) Validate() error {
	for i, f := range r.FlaggedNames {
		if strings.TrimSpace(f.Name) == "" {
			return domainerrors.New(domainerrors.SchemaInvalid, fmt.Sprintf(`field "flagged_names[%d].name": required`, i))
		}
		switch f.Severity {
		case SeverityHigh, SeverityMedium, SeverityLow:
		default:
			return domainerrors.New(domainerrors.SchemaInvalid, fmt.Sprintf(`field "flagged_names[%d].severity": invalid value %q`, i, f.Severity))
		}
	}
	return nil
}
