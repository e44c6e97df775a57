package specs

import "strings"

const (
	sectionLabelPrefix = "spec_section_label__"
	rowLabelPrefix     = "spec_label__"
	rowValuePrefix     = "spec__"
	sectionOrderPrefix = "spec_section_order__"
	rowOrderPrefix     = "spec_row_order__"

	slugSep = "__"
)

// KeyKind classifies a key of the flat specification map.
type KeyKind int

const (
	KindUnknown KeyKind = iota
	KindSectionLabel
	KindRowLabel
	KindRowValue
	KindSectionOrder
	KindRowOrder
)

func (k KeyKind) String() string {
	switch k {
	case KindSectionLabel:
		return "section_label"
	case KindRowLabel:
		return "row_label"
	case KindRowValue:
		return "row_value"
	case KindSectionOrder:
		return "section_order"
	case KindRowOrder:
		return "row_order"
	default:
		return "unknown"
	}
}

// ParsedKey is a recognized flat key. Row is empty for section-level kinds.
type ParsedKey struct {
	Kind    KeyKind
	Section string
	Row     string
}

// ParseKey classifies key. It reports false for keys outside the
// specification families and for malformed row keys.
func ParseKey(key string) (ParsedKey, bool) {
	switch {
	case strings.HasPrefix(key, sectionLabelPrefix):
		return sectionKey(KindSectionLabel, key[len(sectionLabelPrefix):])
	case strings.HasPrefix(key, sectionOrderPrefix):
		return sectionKey(KindSectionOrder, key[len(sectionOrderPrefix):])
	case strings.HasPrefix(key, rowLabelPrefix):
		return rowKey(KindRowLabel, key[len(rowLabelPrefix):])
	case strings.HasPrefix(key, rowOrderPrefix):
		return rowKey(KindRowOrder, key[len(rowOrderPrefix):])
	case strings.HasPrefix(key, rowValuePrefix):
		return rowKey(KindRowValue, key[len(rowValuePrefix):])
	}
	return ParsedKey{}, false
}

func sectionKey(kind KeyKind, rest string) (ParsedKey, bool) {
	if rest == "" {
		return ParsedKey{}, false
	}
	return ParsedKey{Kind: kind, Section: rest}, true
}

func rowKey(kind KeyKind, rest string) (ParsedKey, bool) {
	parts := strings.Split(rest, slugSep)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ParsedKey{}, false
	}
	return ParsedKey{Kind: kind, Section: parts[0], Row: parts[1]}, true
}

func SectionLabelKey(section string) string { return sectionLabelPrefix + section }
func SectionOrderKey(section string) string { return sectionOrderPrefix + section }

func RowLabelKey(section, row string) string { return rowLabelPrefix + section + slugSep + row }
func RowValueKey(section, row string) string { return rowValuePrefix + section + slugSep + row }
func RowOrderKey(section, row string) string { return rowOrderPrefix + section + slugSep + row }
