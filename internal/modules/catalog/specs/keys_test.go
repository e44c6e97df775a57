package specs

import "testing"

func TestParseKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		key  string
		want ParsedKey
		ok   bool
	}{
		{"spec_section_label__audio", ParsedKey{Kind: KindSectionLabel, Section: "audio"}, true},
		{"spec_label__audio__spl", ParsedKey{Kind: KindRowLabel, Section: "audio", Row: "spl"}, true},
		{"spec__audio__spl", ParsedKey{Kind: KindRowValue, Section: "audio", Row: "spl"}, true},
		{"spec_section_order__audio", ParsedKey{Kind: KindSectionOrder, Section: "audio"}, true},
		{"spec_row_order__audio__spl", ParsedKey{Kind: KindRowOrder, Section: "audio", Row: "spl"}, true},
		{"spec__audio", ParsedKey{}, false},
		{"spec__a__b__c", ParsedKey{}, false},
		{"spec_label__a__", ParsedKey{}, false},
		{"weight", ParsedKey{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseKey(tc.key)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseKey(%q) = %+v, %v; want %+v, %v", tc.key, got, ok, tc.want, tc.ok)
		}
	}
}

func TestKeyBuildersParseBack(t *testing.T) {
	t.Parallel()

	for _, key := range []string{
		SectionLabelKey("s"),
		SectionOrderKey("s"),
		RowLabelKey("s", "r"),
		RowValueKey("s", "r"),
		RowOrderKey("s", "r"),
	} {
		pk, ok := ParseKey(key)
		if !ok || pk.Section != "s" {
			t.Fatalf("key %q did not parse back: %+v %v", key, pk, ok)
		}
		if pk.Kind != KindSectionLabel && pk.Kind != KindSectionOrder && pk.Row != "r" {
			t.Fatalf("key %q lost row slug: %+v", key, pk)
		}
	}
}

func TestKeyKindString(t *testing.T) {
	t.Parallel()

	if KindRowValue.String() != "row_value" || KeyKind(99).String() != "unknown" {
		t.Fatal("unexpected KeyKind names")
	}
}
