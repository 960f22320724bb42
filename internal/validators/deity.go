package validators

// DeityNames is the fixed set of deity/religious-figure names the
// deity filter rejects when active, spanning the Hindu, Christian,
// Greek, Norse, and Egyptian pantheons (spec.md §4.4).
var DeityNames = map[string]struct{}{
	// Hindu
	"krishna": {}, "lakshmi": {}, "shiva": {}, "sivan": {}, "vishnu": {},
	"brahma": {}, "ganesh": {}, "ganesha": {}, "durga": {}, "kali": {},
	"saraswati": {}, "parvati": {}, "hanuman": {}, "rama": {}, "radha": {},
	// Christian
	"jesus": {}, "christ": {}, "mary": {}, "madonna": {},
	// Greek
	"zeus": {}, "athena": {}, "apollo": {}, "artemis": {}, "aphrodite": {},
	"hera": {}, "poseidon": {}, "hades": {}, "hermes": {}, "ares": {},
	"dionysus": {}, "demeter": {}, "persephone": {},
	// Norse
	"odin": {}, "thor": {}, "freya": {}, "loki": {}, "frigg": {},
	// Other
	"isis": {}, "osiris": {}, "ra": {}, "anubis": {},
}

var deityActivationPhrases = []string{
	"avoid religious", "no religious", "avoid deity", "no deity",
	"avoid god", "no god names", "not religious", "avoid strong religious",
}
