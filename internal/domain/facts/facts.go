// Package facts holds the static list of time-perception notes revealed as
// the page scrolls.
package facts

// defaults are the built-in notes, shown in order.
var defaults = []string{
	"To a five-year-old, one year is a fifth of everything they have ever known.",
	"By your 18th birthday you have lived through more than half of your perceived life.",
	"A year at 40 feels roughly half as long as a year at 20.",
	"Routine compresses memory; novelty stretches it. Most novelty happens early.",
	"We remember firsts. The decades of seconds and thirds blur together.",
	"The summers of childhood felt endless because they were, proportionally.",
	"If each year feels like 1/age of your life, the halfway point of felt time arrives before 20.",
	"New places, new people, and new skills are the only known way to slow the clock.",
}

// Defaults returns a copy of the built-in notes.
func Defaults() []string {
	out := make([]string, len(defaults))
	copy(out, defaults)
	return out
}
