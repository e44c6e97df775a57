package specs

import (
	"slices"
	"strings"
)

// LegacySectionLabel heads the single section built from free-form maps.
const LegacySectionLabel = "Specifications"

// LegacySections converts a free-form key/value map, which predates the
// section/row scheme, into one section for the editor. Pairs are sorted by key
// and pairs with a blank key or value are skipped. Structured maps are decoded normally.
func LegacySections(m FlatMap) []Section {
	if IsStructuredFormat(m) {
		return Decode(m)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) == "" || strings.TrimSpace(m[k]) == "" {
			continue
		}
		rows = append(rows, Row{ID: slugOrFallback(strings.TrimSpace(k), ""), Label: k, Value: m[k]})
	}
	if len(rows) == 0 {
		return []Section{}
	}
	return []Section{{ID: Slugify(LegacySectionLabel), Label: LegacySectionLabel, Rows: rows}}
}
