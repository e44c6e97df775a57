package specs

// KeySpecRef points at one row by its section and row labels.
type KeySpecRef struct {
	Section string `json:"section" yaml:"section"`
	Label   string `json:"label" yaml:"label"`
}

// KeySpec is a resolved KeySpecRef.
type KeySpec struct {
	Section string `json:"section"`
	Label   string `json:"label"`
	Value   string `json:"value"`
}

// ResolveKeySpecs looks up refs in sections by exact label match, keeping the
// order of refs. Refs that match nothing are dropped.
func ResolveKeySpecs(sections []Section, refs []KeySpecRef) []KeySpec {
	out := make([]KeySpec, 0, len(refs))
	for _, ref := range refs {
		if row, ok := findRow(sections, ref); ok {
			out = append(out, KeySpec{Section: ref.Section, Label: ref.Label, Value: row.Value})
		}
	}
	return out
}

// PruneKeySpecRefs drops refs that no longer resolve against sections and
// duplicate refs, preserving order.
func PruneKeySpecRefs(sections []Section, refs []KeySpecRef) []KeySpecRef {
	out := make([]KeySpecRef, 0, len(refs))
	seen := make(map[KeySpecRef]struct{}, len(refs))
	for _, ref := range refs {
		if _, dup := seen[ref]; dup {
			continue
		}
		if _, ok := findRow(sections, ref); !ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}

func findRow(sections []Section, ref KeySpecRef) (Row, bool) {
	for _, sec := range sections {
		if sec.Label != ref.Section {
			continue
		}
		for _, r := range sec.Rows {
			if r.Label == ref.Label {
				return r, true
			}
		}
	}
	return Row{}, false
}
