// Package specs converts product specification tables between the editor's
// section/row structure and the flat string map stored on a product record.
//
// Stored keys look like:
//
//	spec_section_label__{section}        -> section label
//	spec_label__{section}__{row}         -> row label
//	spec__{section}__{row}               -> row value
//	spec_section_order__{section}        -> section position (optional)
//	spec_row_order__{section}__{row}     -> row position (optional)
//
// Decoding never fails: unknown or malformed keys are skipped and incomplete
// sections are dropped.
package specs

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// FlatMap is the persisted form. A nil FlatMap means no specifications.
type FlatMap map[string]string

type Section struct {
	ID    string `json:"id" yaml:"id,omitempty"`
	Label string `json:"label" yaml:"label"`
	Rows  []Row  `json:"rows" yaml:"rows"`
}

type Row struct {
	ID    string `json:"id" yaml:"id,omitempty"`
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

func (r Row) blank() bool {
	return strings.TrimSpace(r.Label) == "" && strings.TrimSpace(r.Value) == ""
}

// IsStructuredFormat reports whether m uses the section/row key scheme rather
// than the older free-form key/value layout.
func IsStructuredFormat(m FlatMap) bool {
	for key := range m {
		if strings.HasPrefix(key, rowValuePrefix) {
			return true
		}
	}
	return false
}

// Decode rebuilds sections from a flat map. The result is never nil.
func Decode(m FlatMap) []Section {
	if len(m) == 0 {
		return []Section{}
	}
	b := newBuilder()
	for key, val := range m {
		pk, ok := ParseKey(key)
		if !ok {
			continue
		}
		switch pk.Kind {
		case KindSectionLabel:
			b.section(pk.Section).label = val
		case KindRowLabel:
			b.row(pk.Section, pk.Row).Label = val
		case KindRowValue:
			b.row(pk.Section, pk.Row).Value = val
		case KindSectionOrder:
			if pos, ok := parsePosition(val); ok {
				b.sectionPos[pk.Section] = pos
			}
		case KindRowOrder:
			if pos, ok := parsePosition(val); ok {
				b.rowPos[pk.Section+slugSep+pk.Row] = pos
			}
		}
	}
	return b.build()
}

// Encode flattens sections into the stored key scheme. Sections without a
// label are skipped along with their rows, and rows with neither label nor
// value are skipped. Labels that slugify to the same key overwrite each other.
func Encode(sections []Section) FlatMap {
	return encode(sections, false)
}

// EncodeOrdered is Encode plus position keys, so a later Decode returns
// sections and rows in the order given here.
func EncodeOrdered(sections []Section) FlatMap {
	return encode(sections, true)
}

func encode(sections []Section, withOrder bool) FlatMap {
	out := FlatMap{}
	nextSection := 0
	nextRow := map[string]int{}
	for _, sec := range sections {
		if strings.TrimSpace(sec.Label) == "" {
			continue
		}
		sectionSlug := slugOrFallback(sec.Label, sec.ID)
		out[SectionLabelKey(sectionSlug)] = sec.Label
		if withOrder {
			if _, seen := out[SectionOrderKey(sectionSlug)]; !seen {
				out[SectionOrderKey(sectionSlug)] = strconv.Itoa(nextSection)
				nextSection++
			}
		}
		for _, row := range sec.Rows {
			if row.blank() {
				continue
			}
			rowSlug := slugOrFallback(row.Label, row.ID)
			out[RowLabelKey(sectionSlug, rowSlug)] = row.Label
			out[RowValueKey(sectionSlug, rowSlug)] = row.Value
			if withOrder {
				if _, seen := out[RowOrderKey(sectionSlug, rowSlug)]; !seen {
					out[RowOrderKey(sectionSlug, rowSlug)] = strconv.Itoa(nextRow[sectionSlug])
					nextRow[sectionSlug]++
				}
			}
		}
	}
	return out
}

// AssignIDs fills empty section and row ids the way Encode would derive their
// storage slugs. Existing ids are left alone.
func AssignIDs(sections []Section) []Section {
	out := make([]Section, len(sections))
	for i, sec := range sections {
		if sec.ID == "" {
			sec.ID = slugOrFallback(sec.Label, "")
		}
		rows := make([]Row, len(sec.Rows))
		for j, row := range sec.Rows {
			if row.ID == "" {
				row.ID = slugOrFallback(row.Label, "")
			}
			rows[j] = row
		}
		sec.Rows = rows
		out[i] = sec
	}
	return out
}

type sectionAcc struct {
	slug  string
	label string
	rows  map[string]*Row
}

type builder struct {
	sections   map[string]*sectionAcc
	sectionPos map[string]int
	rowPos     map[string]int
}

func newBuilder() *builder {
	return &builder{
		sections:   map[string]*sectionAcc{},
		sectionPos: map[string]int{},
		rowPos:     map[string]int{},
	}
}

func (b *builder) section(slug string) *sectionAcc {
	acc, ok := b.sections[slug]
	if !ok {
		acc = &sectionAcc{slug: slug, rows: map[string]*Row{}}
		b.sections[slug] = acc
	}
	return acc
}

func (b *builder) row(sectionSlug, rowSlug string) *Row {
	acc := b.section(sectionSlug)
	r, ok := acc.rows[rowSlug]
	if !ok {
		r = &Row{ID: rowSlug}
		acc.rows[rowSlug] = r
	}
	return r
}

func (b *builder) build() []Section {
	out := make([]Section, 0, len(b.sections))
	for _, acc := range b.sections {
		rows := make([]Row, 0, len(acc.rows))
		for _, r := range acc.rows {
			if r.blank() {
				continue
			}
			rows = append(rows, *r)
		}
		if len(rows) == 0 {
			continue
		}
		slices.SortFunc(rows, func(x, y Row) int {
			return comparePositioned(
				positioned{x.ID, b.rowPos[acc.slug+slugSep+x.ID], b.hasRowPos(acc.slug, x.ID)},
				positioned{y.ID, b.rowPos[acc.slug+slugSep+y.ID], b.hasRowPos(acc.slug, y.ID)},
			)
		})
		out = append(out, Section{ID: acc.slug, Label: acc.label, Rows: rows})
	}
	slices.SortFunc(out, func(x, y Section) int {
		return comparePositioned(
			positioned{x.ID, b.sectionPos[x.ID], b.hasSectionPos(x.ID)},
			positioned{y.ID, b.sectionPos[y.ID], b.hasSectionPos(y.ID)},
		)
	})
	return out
}

func (b *builder) hasSectionPos(slug string) bool {
	_, ok := b.sectionPos[slug]
	return ok
}

func (b *builder) hasRowPos(sectionSlug, rowSlug string) bool {
	_, ok := b.rowPos[sectionSlug+slugSep+rowSlug]
	return ok
}

type positioned struct {
	slug string
	pos  int
	has  bool
}

// comparePositioned orders entries with a position first, then by slug.
func comparePositioned(a, b positioned) int {
	switch {
	case a.has && !b.has:
		return -1
	case !a.has && b.has:
		return 1
	case a.has && b.has && a.pos != b.pos:
		return cmp.Compare(a.pos, b.pos)
	}
	return cmp.Compare(a.slug, b.slug)
}

func parsePosition(raw string) (int, bool) {
	pos, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || pos < 0 {
		return 0, false
	}
	return pos, true
}
