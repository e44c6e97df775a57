package specs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleMap() FlatMap {
	return EncodeOrdered([]Section{
		{Label: "Audio", Rows: []Row{
			{Label: "Maximum SPL", Value: "136 dB"},
			{Label: "Range", Value: "45 Hz – 20 kHz"},
		}},
		{Label: "Physical", Rows: []Row{{Label: "Weight", Value: "21 kg"}}},
	})
}

func TestGroupForDisplay(t *testing.T) {
	t.Parallel()

	want := []DisplayGroup{
		{SectionLabel: "Audio", Rows: []DisplayRow{{"Maximum SPL", "136 dB"}, {"Range", "45 Hz – 20 kHz"}}},
		{SectionLabel: "Physical", Rows: []DisplayRow{{"Weight", "21 kg"}}},
	}
	if diff := cmp.Diff(want, GroupForDisplay(sampleMap())); diff != "" {
		t.Fatalf("display mismatch (-want +got):\n%s", diff)
	}
	if got := GroupForDisplay(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty projection, got %#v", got)
	}
}

func TestResolveKeySpecs(t *testing.T) {
	t.Parallel()

	sections := Decode(sampleMap())
	refs := []KeySpecRef{
		{Section: "Physical", Label: "Weight"},
		{Section: "Audio", Label: "Maximum SPL"},
		{Section: "audio", Label: "Range"},
		{Section: "Audio", Label: "Missing"},
	}
	want := []KeySpec{
		{Section: "Physical", Label: "Weight", Value: "21 kg"},
		{Section: "Audio", Label: "Maximum SPL", Value: "136 dB"},
	}
	if diff := cmp.Diff(want, ResolveKeySpecs(sections, refs)); diff != "" {
		t.Fatalf("key specs mismatch (-want +got):\n%s", diff)
	}
}

func TestPruneKeySpecRefs(t *testing.T) {
	t.Parallel()

	sections := Decode(sampleMap())
	refs := []KeySpecRef{
		{Section: "Audio", Label: "Range"},
		{Section: "Audio", Label: "Range"},
		{Section: "Audio", Label: "Gone"},
		{Section: "Physical", Label: "Weight"},
	}
	want := []KeySpecRef{{Section: "Audio", Label: "Range"}, {Section: "Physical", Label: "Weight"}}
	if diff := cmp.Diff(want, PruneKeySpecRefs(sections, refs)); diff != "" {
		t.Fatalf("prune mismatch (-want +got):\n%s", diff)
	}
}

func TestLegacySections(t *testing.T) {
	t.Parallel()

	got := LegacySections(FlatMap{"weight": "21 kg", "power": "1200 W", "empty": " ", "  ": "orphan", "notes": "\n\t"})
	want := []Section{{ID: "specifications", Label: LegacySectionLabel, Rows: []Row{
		{ID: "power", Label: "power", Value: "1200 W"},
		{ID: "weight", Label: "weight", Value: "21 kg"},
	}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("legacy mismatch (-want +got):\n%s", diff)
	}
	if got := LegacySections(nil); len(got) != 0 {
		t.Fatalf("expected no sections, got %#v", got)
	}
	if got := LegacySections(sampleMap()); len(got) != 2 {
		t.Fatalf("structured map should decode normally, got %#v", got)
	}
}

func TestFlatMapFromJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want FlatMap
	}{
		{"object", `{"spec__a__b":"x","n":12.5,"ok":true,"nested":{"a":1},"list":[1]}`, FlatMap{"spec__a__b": "x", "n": "12.5", "ok": "true"}},
		{"null", `null`, nil},
		{"array", `[1,2]`, nil},
		{"scalar", `"str"`, nil},
		{"invalid", `{`, nil},
		{"empty", ``, nil},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, FlatMapFromJSON([]byte(tc.raw))); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", tc.name, diff)
		}
	}
	if got := DecodeJSON([]byte(`[]`)); got == nil || len(got) != 0 {
		t.Fatalf("expected empty decode, got %#v", got)
	}
}

func TestMarshalFlatMap(t *testing.T) {
	t.Parallel()

	raw, err := MarshalFlatMap(nil)
	if err != nil || string(raw) != "{}" {
		t.Fatalf("got %s, %v", raw, err)
	}
}
