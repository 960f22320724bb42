package validators

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/smilemakc/namazing/internal/domain"
)

var prefixBriefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`avoid\s+["']?(\w+)-`),
	regexp.MustCompile(`avoid.*starting\s+with\s+["']?(\w+)`),
	regexp.MustCompile(`no\s+(\w+)-\s*names`),
	regexp.MustCompile(`anything\s+starting\s+with\s+["']?(\w+)`),
}

// NameFilter reports whether a (not yet normalized) name is allowed.
type NameFilter func(name string) bool

// VetoFilter rejects names whose normalized form is in
// profile.Vetoes.Hard.
func VetoFilter(profile *domain.SessionProfile) NameFilter {
	hard := map[string]struct{}{}
	if profile != nil && profile.Vetoes != nil {
		for _, v := range profile.Vetoes.Hard {
			hard[Normalize(v)] = struct{}{}
		}
	}
	return func(name string) bool {
		_, vetoed := hard[Normalize(name)]
		return !vetoed
	}
}

// PrefixFilter rejects names starting with a forbidden prefix derived
// from hard-veto entries shaped "<prefix>-" and from phrases in the
// raw brief (spec.md §4.4).
func PrefixFilter(profile *domain.SessionProfile) NameFilter {
	forbidden := map[string]struct{}{}

	if profile != nil && profile.Vetoes != nil {
		for _, veto := range profile.Vetoes.Hard {
			v := strings.ToLower(strings.TrimSpace(veto))
			if strings.HasSuffix(v, "-") {
				trimmed := strings.TrimRight(v, "-")
				fields := strings.Fields(trimmed)
				if len(fields) > 0 {
					forbidden[fields[len(fields)-1]] = struct{}{}
				}
			}
		}
	}

	if profile != nil && profile.RawBrief != "" {
		briefLower := strings.ToLower(profile.RawBrief)
		for _, pattern := range prefixBriefPatterns {
			for _, match := range pattern.FindAllStringSubmatch(briefLower, -1) {
				if len(match) > 1 {
					forbidden[strings.ToLower(match[1])] = struct{}{}
				}
			}
		}
	}

	return func(name string) bool {
		lower := Normalize(name)
		for prefix := range forbidden {
			if strings.HasPrefix(lower, prefix) {
				return false
			}
		}
		return true
	}
}

// SiblingFilter rejects names too similar to any existing sibling.
func SiblingFilter(profile *domain.SessionProfile, threshold int) NameFilter {
	var siblings []string
	if profile != nil && profile.Family != nil {
		siblings = profile.Family.Siblings
	}
	return func(name string) bool {
		for _, sibling := range siblings {
			if NamesTooSimilar(name, sibling, threshold) {
				return false
			}
		}
		return true
	}
}

// DeityFilter rejects deity/religious names when the profile's hard
// vetoes or raw brief indicate religious names should be avoided.
func DeityFilter(profile *domain.SessionProfile) NameFilter {
	avoidReligious := false

	if profile != nil && profile.Vetoes != nil {
		for _, veto := range profile.Vetoes.Hard {
			v := strings.ToLower(veto)
			if strings.Contains(v, "religious") || strings.Contains(v, "deity") || strings.Contains(v, "god") {
				avoidReligious = true
				break
			}
		}
	}

	if profile != nil && profile.RawBrief != "" {
		briefLower := strings.ToLower(profile.RawBrief)
		for _, phrase := range deityActivationPhrases {
			if strings.Contains(briefLower, phrase) {
				avoidReligious = true
				break
			}
		}
	}

	return func(name string) bool {
		if !avoidReligious {
			return true
		}
		_, isDeity := DeityNames[Normalize(name)]
		return !isDeity
	}
}

// LogFunc receives one rejection message per filtered name.
type LogFunc func(message string)

// sharedConstraintEvaluator backs PhoneticConstraintFilter across every
// call site in this package; its compiled-program cache is keyed by
// constraint text, so reusing one instance lets repeated constraints
// (the common case, since a profile's phonetic_constraints are fixed
// for the run) skip recompilation across candidates.
var sharedConstraintEvaluator = NewConstraintEvaluator()

// PhoneticConstraintFilter rejects names that fail any expression in
// profile.Preferences.PhoneticConstraints, spec.md §4.4's deterministic
// constraint enforcement. lane looks up the lane of the name being
// tested; pass a func returning "" when lane is unknown (e.g. filtering
// finalists or near-misses, which carry no lane field).
func PhoneticConstraintFilter(profile *domain.SessionProfile, lane func(name string) string) NameFilter {
	var constraints []string
	if profile != nil && profile.Preferences != nil {
		constraints = profile.Preferences.PhoneticConstraints
	}
	if len(constraints) == 0 {
		return func(string) bool { return true }
	}
	return func(name string) bool {
		return sharedConstraintEvaluator.SatisfiesAll(constraints, name, lane(name))
	}
}

// filterNames applies veto, prefix, sibling, deity, and phonetic
// constraint filters in order to a flat list of names, logging one
// message per rejection when logCB is non-nil. lane looks up each
// name's style lane for the phonetic constraint filter; pass nil when
// lane information isn't available.
func filterNames(names []string, profile *domain.SessionProfile, lane func(name string) string, logCB LogFunc) []bool {
	if lane == nil {
		lane = func(string) string { return "" }
	}

	veto := VetoFilter(profile)
	prefix := PrefixFilter(profile)
	sibling := SiblingFilter(profile, 2)
	deity := DeityFilter(profile)
	phonetic := PhoneticConstraintFilter(profile, lane)

	keep := make([]bool, len(names))
	for i, name := range names {
		switch {
		case !veto(name):
			logRejection(logCB, name, "matches hard veto")
		case !prefix(name):
			logRejection(logCB, name, "starts with forbidden prefix")
		case !sibling(name):
			logRejection(logCB, name, "too similar to sibling")
		case !deity(name):
			logRejection(logCB, name, "deity/religious name when religious names vetoed")
		case !phonetic(name):
			logRejection(logCB, name, "fails a phonetic constraint")
		default:
			keep[i] = true
		}
	}
	return keep
}

func logRejection(logCB LogFunc, name, reason string) {
	if logCB != nil {
		logCB(fmt.Sprintf("Filtered '%s': %s", name, reason))
	}
}

// FilterCandidates removes candidates that fail any of the
// deterministic constraint filters, per spec.md §4.4.
func FilterCandidates(candidates []domain.Candidate, profile *domain.SessionProfile, logCB LogFunc) []domain.Candidate {
	names := make([]string, len(candidates))
	lanes := make(map[string]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
		lanes[Normalize(c.Name)] = c.Lane
	}
	lane := func(name string) string { return lanes[Normalize(name)] }
	keep := filterNames(names, profile, lane, logCB)

	out := make([]domain.Candidate, 0, len(candidates))
	for i, c := range candidates {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}

// FilterFinalists removes finalists that fail any of the deterministic
// constraint filters.
func FilterFinalists(finalists []domain.Finalist, profile *domain.SessionProfile, logCB LogFunc) []domain.Finalist {
	names := make([]string, len(finalists))
	for i, f := range finalists {
		names[i] = f.Name
	}
	keep := filterNames(names, profile, nil, logCB)

	out := make([]domain.Finalist, 0, len(finalists))
	for i, f := range finalists {
		if keep[i] {
			out = append(out, f)
		}
	}
	return out
}

// FilterNearMisses removes near-misses that fail any of the
// deterministic constraint filters. Per the Python original, no
// per-name log is emitted here to reduce noise; callers should log an
// aggregate count instead.
func FilterNearMisses(misses []domain.NearMiss, profile *domain.SessionProfile) []domain.NearMiss {
	names := make([]string, len(misses))
	for i, m := range misses {
		names[i] = m.Name
	}
	keep := filterNames(names, profile, nil, nil)

	out := make([]domain.NearMiss, 0, len(misses))
	for i, m := range misses {
		if keep[i] {
			out = append(out, m)
		}
	}
	return out
}
