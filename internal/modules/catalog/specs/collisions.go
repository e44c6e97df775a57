package specs

import (
	"slices"
	"strings"
)

// Collision names distinct labels that Encode would store under one slug.
// Section is empty for section collisions.
type Collision struct {
	Section string   `json:"section,omitempty"`
	Slug    string   `json:"slug"`
	Labels  []string `json:"labels"`
}

// FindCollisions reports labels that merge on Encode. It does not change
// how Encode behaves.
func FindCollisions(sections []Section) []Collision {
	var out []Collision

	sectionLabels := map[string][]string{}
	var sectionOrder []string
	rowLabels := map[string]map[string][]string{}
	var rowOrder [][2]string

	for _, sec := range sections {
		if strings.TrimSpace(sec.Label) == "" {
			continue
		}
		sSlug := Slugify(sec.Label)
		if sSlug == "" {
			continue
		}
		if _, ok := sectionLabels[sSlug]; !ok {
			sectionOrder = append(sectionOrder, sSlug)
			rowLabels[sSlug] = map[string][]string{}
		}
		if !slices.Contains(sectionLabels[sSlug], sec.Label) {
			sectionLabels[sSlug] = append(sectionLabels[sSlug], sec.Label)
		}
		for _, row := range sec.Rows {
			if row.blank() {
				continue
			}
			rSlug := Slugify(row.Label)
			if rSlug == "" {
				continue
			}
			if _, ok := rowLabels[sSlug][rSlug]; !ok {
				rowOrder = append(rowOrder, [2]string{sSlug, rSlug})
			}
			if !slices.Contains(rowLabels[sSlug][rSlug], row.Label) {
				rowLabels[sSlug][rSlug] = append(rowLabels[sSlug][rSlug], row.Label)
			}
		}
	}

	for _, s := range sectionOrder {
		if labels := sectionLabels[s]; len(labels) > 1 {
			out = append(out, Collision{Slug: s, Labels: labels})
		}
	}
	for _, pair := range rowOrder {
		if labels := rowLabels[pair[0]][pair[1]]; len(labels) > 1 {
			section := sectionLabels[pair[0]]
			out = append(out, Collision{Section: section[len(section)-1], Slug: pair[1], Labels: labels})
		}
	}
	return out
}
