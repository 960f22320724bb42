// Package phonetics provides the two heuristic helpers spec.md §4.6
// allows stub generation to rely on: a rough IPA-flavored spelling hint
// and a syllable count. Both are deliberately crude string heuristics,
// not a real pronunciation engine — spec.md places that kind of
// linguistic subsystem out of scope as an external collaborator, and
// this package exists only to keep stub-mode NameCards schema-valid.
package phonetics

import "strings"

var vowels = map[rune]struct{}{
	'a': {}, 'e': {}, 'i': {}, 'o': {}, 'u': {}, 'y': {},
}

func isVowel(r rune) bool {
	_, ok := vowels[r]
	return ok
}

// RoughIPA produces a slash-delimited pronunciation hint from common
// suffix patterns. It is not linguistically accurate.
func RoughIPA(name string) string {
	lower := strings.ToLower(name)
	runes := []rune(name)

	switch {
	case strings.HasSuffix(lower, "ia"):
		return "/" + string(runes[:len(runes)-2]) + "-ee-a/"
	case strings.HasSuffix(lower, "ie"):
		return "/" + string(runes[:len(runes)-2]) + "-ee/"
	case strings.HasSuffix(lower, "ee"):
		return "/" + string(runes[:len(runes)-2]) + "-ee/"
	case strings.HasSuffix(lower, "y"):
		return "/" + string(runes[:len(runes)-1]) + "-ee/"
	default:
		return "/" + name + "/"
	}
}

// CountSyllables counts contiguous vowel groups and adjusts for common
// silent-letter endings ("e", "es", "ed").
func CountSyllables(name string) int {
	lower := strings.ToLower(name)
	syllables := 0
	prevVowel := false
	for _, r := range lower {
		v := isVowel(r)
		if v && !prevVowel {
			syllables++
		}
		prevVowel = v
	}

	if strings.HasSuffix(lower, "e") && len(lower) > 2 && !strings.HasSuffix(lower, "ie") {
		syllables = max1(syllables - 1)
	}
	if strings.HasSuffix(lower, "es") && len(lower) > 3 {
		syllables = max1(syllables - 1)
	}
	if strings.HasSuffix(lower, "ed") && len(lower) > 3 {
		syllables = max1(syllables - 1)
	}

	return max1(syllables)
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
