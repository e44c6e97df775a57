package specs

type DisplayGroup struct {
	SectionLabel string       `json:"section_label"`
	Rows         []DisplayRow `json:"rows"`
}

type DisplayRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// GroupForDisplay is the read-only projection of m used by public pages.
func GroupForDisplay(m FlatMap) []DisplayGroup {
	return GroupSections(Decode(m))
}

// GroupSections projects already decoded sections.
func GroupSections(sections []Section) []DisplayGroup {
	out := make([]DisplayGroup, 0, len(sections))
	for _, sec := range sections {
		g := DisplayGroup{SectionLabel: sec.Label, Rows: make([]DisplayRow, 0, len(sec.Rows))}
		for _, r := range sec.Rows {
			g.Rows = append(g.Rows, DisplayRow{Label: r.Label, Value: r.Value})
		}
		out = append(out, g)
	}
	return out
}
