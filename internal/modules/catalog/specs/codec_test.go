package specs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var ignoreIDs = cmp.Options{
	cmpopts.IgnoreFields(Section{}, "ID"),
	cmpopts.IgnoreFields(Row{}, "ID"),
}

var contentEqual = cmp.Options{
	ignoreIDs,
	cmpopts.SortSlices(func(a, b Section) bool { return a.Label < b.Label }),
	cmpopts.SortSlices(func(a, b Row) bool { return a.Label < b.Label }),
	cmpopts.EquateEmpty(),
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	in := []Section{
		{Label: "Electroacoustic specs", Rows: []Row{
			{Label: "Maximum SPL", Value: "136 dB"},
			{Label: "Frequency response", Value: "45 Hz – 20 kHz\n±3 dB"},
		}},
		{Label: "Physical", Rows: []Row{
			{Label: "Weight", Value: "21 kg"},
			{Label: "Rigging", Value: ""},
			{Label: "", Value: "<b>IP55</b>"},
		}},
	}

	for _, tc := range []struct {
		name string
		enc  func([]Section) FlatMap
	}{
		{"Encode", Encode},
		{"EncodeOrdered", EncodeOrdered},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Decode(tc.enc(in))
			if diff := cmp.Diff(in, got, contentEqual); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeOrderedPreservesOrder(t *testing.T) {
	t.Parallel()

	in := []Section{
		{Label: "Zeta", Rows: []Row{{Label: "Yankee", Value: "1"}, {Label: "Alpha", Value: "2"}}},
		{Label: "Alpha", Rows: []Row{{Label: "Zulu", Value: "3"}, {Label: "Bravo", Value: "4"}}},
	}
	got := Decode(EncodeOrdered(in))
	if diff := cmp.Diff(in, got, ignoreIDs); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeWithoutOrderKeysSortsBySlug(t *testing.T) {
	t.Parallel()

	m := Encode([]Section{
		{Label: "Zeta", Rows: []Row{{Label: "B", Value: "1"}, {Label: "A", Value: "2"}}},
		{Label: "Alpha", Rows: []Row{{Label: "C", Value: "3"}}},
	})
	want := []Section{
		{ID: "alpha", Label: "Alpha", Rows: []Row{{ID: "c", Label: "C", Value: "3"}}},
		{ID: "zeta", Label: "Zeta", Rows: []Row{{ID: "a", Label: "A", Value: "2"}, {ID: "b", Label: "B", Value: "1"}}},
	}
	for i := 0; i < 20; i++ {
		if diff := cmp.Diff(want, Decode(m)); diff != "" {
			t.Fatalf("decode not deterministic (-want +got):\n%s", diff)
		}
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	t.Parallel()

	for name, m := range map[string]FlatMap{"nil": nil, "empty": {}} {
		got := Decode(m)
		if got == nil || len(got) != 0 {
			t.Fatalf("%s: expected empty non-nil slice, got %#v", name, got)
		}
	}
}

func TestIsStructuredFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   FlatMap
		want bool
	}{
		{"row value key", FlatMap{"spec__a__b": "x"}, true},
		{"legacy", FlatMap{"foo": "bar"}, false},
		{"nil", nil, false},
		{"section label only", FlatMap{"spec_section_label__a": "A"}, false},
	}
	for _, tc := range cases {
		if got := IsStructuredFormat(tc.in); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestDecodeIgnoresArrivalOrder(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"spec__sec1__row1", "V"},
		{"spec_label__sec1__row1", "L"},
		{"spec_section_label__sec1", "Sec"},
	}
	want := []Section{{ID: "sec1", Label: "Sec", Rows: []Row{{ID: "row1", Label: "L", Value: "V"}}}}

	perms := [][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, p := range perms {
		m := FlatMap{}
		for _, i := range p {
			m[pairs[i][0]] = pairs[i][1]
		}
		if diff := cmp.Diff(want, Decode(m)); diff != "" {
			t.Fatalf("perm %v (-want +got):\n%s", p, diff)
		}
	}
}

func TestEncodeDropsBlankRows(t *testing.T) {
	t.Parallel()

	got := Encode([]Section{{Label: "Sec", Rows: []Row{{Label: "", Value: "  "}}}})
	want := FlatMap{"spec_section_label__sec": "Sec"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("encode mismatch (-want +got):\n%s", diff)
	}
	if back := Decode(got); len(back) != 0 {
		t.Fatalf("expected section without rows to be dropped, got %#v", back)
	}
}

func TestEncodeSkipsUnlabelledSections(t *testing.T) {
	t.Parallel()

	got := Encode([]Section{{Label: "   ", Rows: []Row{{Label: "Weight", Value: "2 kg"}}}})
	if len(got) != 0 {
		t.Fatalf("expected no keys, got %v", got)
	}
}

func TestSlugCollisionMerges(t *testing.T) {
	t.Parallel()

	m := Encode([]Section{
		{Label: "Usable Bandwidth", Rows: []Row{{Label: "Low", Value: "40 Hz"}}},
		{Label: "usable-bandwidth!", Rows: []Row{{Label: "High", Value: "18 kHz"}}},
	})
	if got := m["spec_section_label__usable_bandwidth"]; got != "usable-bandwidth!" {
		t.Fatalf("expected last label to win, got %q", got)
	}
	got := Decode(m)
	want := []Section{{Label: "usable-bandwidth!", Rows: []Row{
		{Label: "High", Value: "18 kHz"},
		{Label: "Low", Value: "40 Hz"},
	}}}
	if diff := cmp.Diff(want, got, contentEqual); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMultilineValuePreserved(t *testing.T) {
	t.Parallel()

	val := "45 Hz – 20 kHz\n±3 dB"
	got := Decode(Encode([]Section{{Label: "Audio", Rows: []Row{{Label: "Range", Value: val}}}}))
	if len(got) != 1 || len(got[0].Rows) != 1 || got[0].Rows[0].Value != val {
		t.Fatalf("value not preserved: %#v", got)
	}
}

func TestDecodeToleratesMalformedKeys(t *testing.T) {
	t.Parallel()

	m := FlatMap{
		"spec__a__b__c":          "too many parts",
		"spec__onlyone":          "too few parts",
		"spec_label____b":        "empty section",
		"spec_section_label__":   "empty slug",
		"spec_row_order__a__b":   "not a number",
		"price":                  "1200",
		"spec__ok__row":          "kept",
		"spec_section_label__ok": "OK",
	}
	want := []Section{{ID: "ok", Label: "OK", Rows: []Row{{ID: "row", Value: "kept"}}}}
	if diff := cmp.Diff(want, Decode(m)); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeDropsWhitespaceRows(t *testing.T) {
	t.Parallel()

	m := FlatMap{
		"spec_section_label__s": "S",
		"spec_label__s__r":      " ",
		"spec__s__r":            "\n\t",
	}
	if got := Decode(m); len(got) != 0 {
		t.Fatalf("expected no sections, got %#v", got)
	}
}

func TestDecodeSectionWithoutLabelKey(t *testing.T) {
	t.Parallel()

	got := Decode(FlatMap{"spec__s__r": "v"})
	if len(got) != 1 || got[0].Label != "" || got[0].Rows[0].Value != "v" {
		t.Fatalf("unexpected decode: %#v", got)
	}
}

func TestEncodeDegenerateLabels(t *testing.T) {
	t.Parallel()

	m := Encode([]Section{{Label: "!!!", Rows: []Row{{Label: "???", Value: "x"}}}})
	var sectionKeys, valueKeys int
	for k := range m {
		if strings.HasPrefix(k, sectionLabelPrefix) {
			sectionKeys++
		}
		if strings.HasPrefix(k, rowValuePrefix) {
			valueKeys++
			if _, ok := ParseKey(k); !ok {
				t.Fatalf("random fallback produced unparseable key %q", k)
			}
		}
	}
	if sectionKeys != 1 || valueKeys != 1 {
		t.Fatalf("unexpected keys: %v", m)
	}
}

func TestEncodeReusesKeySafeIDForDegenerateLabel(t *testing.T) {
	t.Parallel()

	m := Encode([]Section{{ID: "abc123", Label: "!!!", Rows: []Row{{ID: "r1", Label: "", Value: "x"}}}})
	if _, ok := m["spec__abc123__r1"]; !ok {
		t.Fatalf("expected ids reused as slugs, got %v", m)
	}
}

func TestAssignIDs(t *testing.T) {
	t.Parallel()

	in := []Section{{Label: "Power Amp", Rows: []Row{{ID: "keep", Label: "Gain"}, {Label: "Output Power"}}}}
	got := AssignIDs(in)
	if got[0].ID != "power_amp" || got[0].Rows[0].ID != "keep" || got[0].Rows[1].ID != "output_power" {
		t.Fatalf("unexpected ids: %#v", got)
	}
	if in[0].ID != "" || in[0].Rows[1].ID != "" {
		t.Fatalf("input mutated: %#v", in)
	}
}
