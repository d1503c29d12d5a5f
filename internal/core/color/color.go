// Package color picks canvas colors for dataStore and if nodes. Selection is
// a pure function of a used-colors snapshot so callers can assemble the
// snapshot from whatever stores they have and tolerate partial failure: a
// failed lookup simply leaves a color out of the snapshot.
package color

import (
	"regexp"
	"strings"

	"github.com/astrskai/astrsk-sub018/internal/core/flow"
)

// Default is the fallback when every lookup fails.
const Default = "#94A3B8"

// Palette is the rotation of node colors, in preference order.
var Palette = []string{
	"#F59E0B",
	"#10B981",
	"#3B82F6",
	"#8B5CF6",
	"#EC4899",
	"#14B8A6",
	"#F97316",
	"#6366F1",
}

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHex reports whether s is a #RRGGBB color, case-insensitive.
func IsHex(s string) bool { return hexColorRe.MatchString(s) }

// Next returns the first palette color not present in the used snapshot.
// When the whole palette is taken it falls back to the least-used entry,
// earliest palette position winning ties.
func Next(used map[string]int) string {
	best := Palette[0]
	bestCount := -1
	for _, c := range Palette {
		n := used[strings.ToUpper(c)]
		if n == 0 {
			return c
		}
		if bestCount == -1 || n < bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

// UsedColors builds the snapshot for Next from one flow: a count of every
// valid hex color carried by dataStore and if payloads, keyed uppercase.
func UsedColors(f *flow.Flow) map[string]int {
	used := make(map[string]int)
	if f == nil {
		return used
	}
	for _, n := range f.Nodes {
		switch {
		case n.DataStore != nil && IsHex(n.DataStore.Color):
			used[strings.ToUpper(n.DataStore.Color)]++
		case n.If != nil && IsHex(n.If.Color):
			used[strings.ToUpper(n.If.Color)]++
		}
	}
	return used
}

// Merge folds additional snapshots (for example from other flows' node
// stores) into dst and returns it.
func Merge(dst map[string]int, more ...map[string]int) map[string]int {
	if dst == nil {
		dst = make(map[string]int)
	}
	for _, m := range more {
		for c, n := range m {
			dst[strings.ToUpper(c)] += n
		}
	}
	return dst
}
