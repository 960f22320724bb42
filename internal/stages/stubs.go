package stages

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/smilemakc/namazing/internal/domain"
	"github.com/smilemakc/namazing/internal/phonetics"
	"github.com/smilemakc/namazing/internal/utils"
)

// sampleLanesGirl and sampleLanesBoy are the fixed stub name lanes,
// grounded on the Python original's stubs.py sample tables.
var sampleLanesGirl = []laneNames{
	{"traditional feminine", []string{"Eleanor", "Margot", "Vivienne", "Helena", "Clara"}},
	{"literary", []string{"Isolde", "Beatrice", "Ophelia", "Rowena", "Celeste"}},
	{"nature", []string{"Iris", "Willow", "Juniper", "Wren", "Marigold"}},
	{"modern-classic", []string{"Avery", "Emery", "Sloane", "Quinn", "Maren"}},
	{"heritage", []string{"Liora", "Mireille", "Annelise", "Sabine", "Selene"}},
}

var sampleLanesBoy = []laneNames{
	{"classic masculine", []string{"James", "William", "Thomas", "Henry", "Arthur"}},
	{"literary", []string{"Atticus", "Holden", "Sawyer", "Finn", "Sebastian"}},
	{"nature", []string{"River", "Rowan", "Jasper", "August", "Silas"}},
	{"modern-classic", []string{"Hudson", "Asher", "Milo", "Ezra", "Julian"}},
	{"heritage", []string{"Killian", "Otto", "Maddox", "Merrick", "Malcolm"}},
}

type laneNames struct {
	lane  string
	names []string
}

func laneKeys(lanes []laneNames) []string {
	out := make([]string, len(lanes))
	for i, l := range lanes {
		out[i] = l.lane
	}
	return out
}

var (
	surnameRE   = regexp.MustCompile(`(?i)surname\s*:?\s*([A-Za-z'-]+)`)
	siblingsRE  = regexp.MustCompile(`(?i)siblings?\s*:?\s*([A-Za-z ,]+)`)
	honorRE     = regexp.MustCompile(`(?i)honou?r\s*names?\s*:?\s*([A-Za-z ,]+)`)
	initialsRE  = regexp.MustCompile(`(?i)initials?\s*:?\s*([A-Z ,]+)`)
	boyWordsRE  = regexp.MustCompile(`(?i)\b(boy|son|brother|male)\b`)
	girlWordsRE = regexp.MustCompile(`(?i)\b(girl|daughter|sister|female)\b`)
)

// stubProfile builds a SessionProfile from regex probes over the raw
// brief, spec.md §4.6's brief-parser stub.
func stubProfile(brief string) domain.SessionProfile {
	isGirl := girlWordsRE.MatchString(brief)
	isBoy := boyWordsRE.MatchString(brief) && !isGirl

	family := &domain.Family{}
	anyFamily := false
	if m := surnameRE.FindStringSubmatch(brief); m != nil {
		family.Surname = strings.TrimSpace(m[1])
		anyFamily = true
	}
	if m := siblingsRE.FindStringSubmatch(brief); m != nil {
		family.Siblings = splitTrim(m[1], ",")
		anyFamily = true
	}
	if m := honorRE.FindStringSubmatch(brief); m != nil {
		family.HonorNames = splitTrim(m[1], ",")
		anyFamily = true
	}
	if m := initialsRE.FindStringSubmatch(brief); m != nil {
		family.SpecialInitialsInclude = splitFields(m[1])
		anyFamily = true
	}
	if !anyFamily {
		family = nil
	}

	lanes := sampleLanesGirl
	genderWord := "girl"
	if isBoy {
		lanes = sampleLanesBoy
		genderWord = "boy"
	}

	return domain.SessionProfile{
		RawBrief: brief,
		Family:   family,
		Preferences: &domain.Preferences{
			StyleLanes:        laneKeys(lanes),
			LengthPref:        domain.LengthPreferenceShortToMedium,
			NicknameTolerance: domain.NicknameToleranceMedium,
		},
		Region:   []string{defaultRegion},
		Comments: fmt.Sprintf("Stubbed profile derived heuristically. Detected gender: %s.", genderWord),
	}
}

func splitTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func splitFields(s string) []string {
	var out []string
	for _, part := range regexp.MustCompile(`[,\s]+`).Split(s, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// stubCandidates returns the deterministic candidate slate for a
// profile's detected gender lane set, spec.md §4.6.
func stubCandidates(profile domain.SessionProfile) []domain.Candidate {
	isGirl := false
	if profile.Preferences != nil {
		for _, lane := range profile.Preferences.StyleLanes {
			if lane == "traditional feminine" {
				isGirl = true
				break
			}
		}
	}

	lanes := sampleLanesBoy
	if isGirl {
		lanes = sampleLanesGirl
	}

	var out []domain.Candidate
	for _, l := range lanes {
		for _, name := range l.names {
			out = append(out, domain.Candidate{
				Name:       name,
				Lane:       l.lane,
				Rationale:  fmt.Sprintf("%s carries a %s energy that suits the brief.", name, l.lane),
				ThemeLinks: []string{},
			})
		}
	}
	return out
}

// honorCombos builds combo suggestions honoring family names, or a
// generic pair when none are known.
func honorCombos(name string, honorNames []string) []domain.Combo {
	if len(honorNames) == 0 {
		return []domain.Combo{
			{First: name, Middle: "Elise", Why: "Balances cadence with a nod to classic elegance."},
			{First: name, Middle: "Ren", Why: "Honors Irene-like sounds while keeping things light."},
		}
	}

	limit := len(honorNames)
	if limit > 3 {
		limit = 3
	}
	combos := make([]domain.Combo, 0, limit)
	for _, source := range honorNames[:limit] {
		combos = append(combos, domain.Combo{
			First: name,
			Middle: source,
			Why:   fmt.Sprintf("Directly honors %s while keeping rhythm gentle.", source),
		})
	}
	return combos
}

// stubCard builds a deterministic NameCard from a candidate name using
// only the phonetics heuristics, spec.md §4.6.
func stubCard(name, lane string, profile domain.SessionProfile) domain.NameCard {
	syllables := phonetics.CountSyllables(name)
	ipa := phonetics.RoughIPA(name)

	var honorNames []string
	var surname string
	var siblings []string
	if profile.Family != nil {
		honorNames = profile.Family.HonorNames
		surname = profile.Family.Surname
		siblings = profile.Family.Siblings
	}
	surname = utils.DefaultValue(surname, "family surname")

	sibsetNotes := "No siblings listed; assuming flexible fit."
	if len(siblings) > 0 {
		sibsetNotes = fmt.Sprintf("%s complements %s without repeating initials.", name, strings.Join(siblings, ", "))
	}

	nickIntended := name
	if len(name) > 3 {
		nickIntended = name[:3]
	}
	nickLikely := name
	if len(name) > 4 {
		nickLikely = name[:4]
	}

	honorMapping := make([]string, 0, len(honorNames))
	for _, h := range honorNames {
		honorMapping = append(honorMapping, fmt.Sprintf("%s -> %s", h, name))
	}

	return domain.NameCard{
		Name:      name,
		IPA:       ipa,
		Syllables: syllables,
		Meaning:   fmt.Sprintf("%s inspired meaning placeholder for %s.", lane, name),
		Origins:   []string{"Stub"},
		Variants:  []string{name + "a", name + "e"},
		Nicknames: &domain.Nicknames{
			Intended: []string{nickIntended},
			Likely:   []string{nickLikely},
			Avoid:    []string{},
		},
		PopularityInfo: &domain.Popularity{
			TrendNotes: "classic and steady (assumed)",
		},
		NotableBearers: &domain.NotableBearers{
			Positive: []string{
				fmt.Sprintf("%s Example, pioneering artist", name),
				fmt.Sprintf("%s Fictional, beloved literary heroine", name),
			},
			Fictional: []string{fmt.Sprintf("%s from a sample novel", name)},
		},
		CulturalNotes: []string{
			"Cultural context requires verification; replace with live cultural research.",
		},
		SurnameFitInfo: &domain.SurnameFit{
			Surname: surname,
			Notes:   fmt.Sprintf("%s shares a %d-syllable cadence with the surname, offering smooth flow.", name, syllables),
		},
		SibsetFitInfo: &domain.SibsetFit{
			Siblings: siblings,
			Notes:    sibsetNotes,
		},
		HonorMapping:     honorMapping,
		ComboSuggestions: honorCombos(name, honorNames),
		Eliminations:     []string{},
		ResearchLog: []string{
			"Stubbed: generated via static data.",
			"Replace with live research once agents are enabled.",
		},
	}
}

// stubSelection builds a deterministic ExpertSelection from researched
// cards: the first eight become finalists, the next four near-misses.
func stubSelection(cards []domain.NameCard) domain.ExpertSelection {
	finalistCount := min(len(cards), 8)
	finalists := make([]domain.Finalist, 0, finalistCount)
	for _, card := range cards[:finalistCount] {
		meaning := card.Meaning
		if meaning == "" {
			meaning = "thoughtful"
		}
		var combo *domain.Combo
		if len(card.ComboSuggestions) > 0 {
			c := card.ComboSuggestions[0]
			combo = &c
		}
		finalists = append(finalists, domain.Finalist{
			Name:  card.Name,
			Why:   fmt.Sprintf("%s balances the brief with its %s tone and easy cadence with the surname.", card.Name, meaning),
			Combo: combo,
		})
	}

	nearMissEnd := min(len(cards), 12)
	var nearMisses []domain.NearMiss
	for _, card := range cards[finalistCount:nearMissEnd] {
		nearMisses = append(nearMisses, domain.NearMiss{
			Name:   card.Name,
			Reason: fmt.Sprintf("%s is compelling but overlaps with another finalist in style or initial.", card.Name),
		})
	}

	return domain.ExpertSelection{Finalists: finalists, NearMisses: nearMisses}
}

// stubReport builds a deterministic Report from a selection, spec.md
// §4.6.
func stubReport(selection domain.ExpertSelection) domain.Report {
	var combos []domain.Combo
	for _, f := range selection.Finalists {
		if f.Combo != nil {
			combos = append(combos, *f.Combo)
		}
	}

	return domain.Report{
		Summary:    "Stub report summarising this run. Swap in live report-composer output once the backend is enabled.",
		LovedNames: []string{},
		Finalists:  selection.Finalists,
		Combos:     combos,
		Tradeoffs: []string{
			"Nicknames are inferred; validate with the family for preference.",
			"Popularity trends are qualitative placeholders until a live data source lands.",
		},
		TieBreakTips: []string{
			"Say each finalist aloud with the sibling set and surname.",
			"Consider monogram balance with honour initials.",
		},
	}
}
