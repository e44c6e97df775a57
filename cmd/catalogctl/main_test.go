package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stagehire/catalog-backend/internal/modules/catalog/specs"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSpecsEncode(t *testing.T) {
	in := `
- label: Physical
  rows:
    - label: Weight
      value: 26 kg
    - label: ""
      value: ""
`
	out, _, err := runCLI(t, in, "specs", "encode", "--ordered=false")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var got specs.FlatMap
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	want := specs.FlatMap{
		"spec_section_label__physical": "Physical",
		"spec_label__physical__weight": "Weight",
		"spec__physical__weight":       "26 kg",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("encode mismatch (-want +got):\n%s", diff)
	}

	out, _, err = runCLI(t, in, "specs", "encode")
	if err != nil {
		t.Fatalf("encode ordered: %v", err)
	}
	var ordered specs.FlatMap
	if err := json.Unmarshal([]byte(out), &ordered); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	want["spec_section_order__physical"] = "0"
	want["spec_row_order__physical__weight"] = "0"
	if diff := cmp.Diff(want, ordered); diff != "" {
		t.Fatalf("ordered encode mismatch (-want +got):\n%s", diff)
	}
}

func TestSpecsEncodeWarnsOnCollision(t *testing.T) {
	in := `[{"label":"Usable Bandwidth","rows":[{"label":"Low","value":"40 Hz"}]},{"label":"usable-bandwidth!","rows":[{"label":"High","value":"18 kHz"}]}]`
	_, stderr, err := runCLI(t, in, "specs", "encode")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(stderr, "usable_bandwidth") {
		t.Fatalf("expected collision warning, got %q", stderr)
	}
}

func TestSpecsDecode(t *testing.T) {
	in := `{"spec_section_label__audio":"Audio","spec_label__audio__spl":"Max SPL","spec__audio__spl":"142 dB"}`

	out, _, err := runCLI(t, in, "specs", "decode")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, want := range []string{"Audio", "Max SPL", "142 dB"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}

	out, _, err = runCLI(t, in, "specs", "decode", "--json")
	if err != nil {
		t.Fatalf("decode --json: %v", err)
	}
	var sections []specs.Section
	if err := json.Unmarshal([]byte(out), &sections); err != nil {
		t.Fatalf("parse json output: %v", err)
	}
	want := []specs.Section{{ID: "audio", Label: "Audio", Rows: []specs.Row{{ID: "spl", Label: "Max SPL", Value: "142 dB"}}}}
	if diff := cmp.Diff(want, sections); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestSpecsDecodeLegacy(t *testing.T) {
	_, stderr, err := runCLI(t, `{"weight":"12 kg"}`, "specs", "decode", "--json")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(stderr, "legacy") {
		t.Fatalf("expected legacy note, got %q", stderr)
	}
}

func TestSeedAndShow(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "catalog.db")
	seedPath := filepath.Join(dir, "catalog.yaml")
	seed := `
products:
  - name: KARA II
    brand: L-Acoustics
    status: published
    specifications:
      - label: Physical
        rows:
          - {label: Weight, value: 26 kg}
          - {label: Height, value: 252 mm}
      - label: Acoustics
        rows:
          - {label: Max SPL, value: 142 dB}
    key_specs:
      - {section: Physical, label: Weight}
`
	if err := os.WriteFile(seedPath, []byte(seed), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	dbArgs := []string{"--quiet", "--db-driver", "sqlite", "--sqlite-path", dbPath}

	out, _, err := runCLI(t, "", append(dbArgs, "seed", "--file", seedPath)...)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "kara-ii") {
		t.Fatalf("seed output missing slug:\n%s", out)
	}

	// Seeding twice updates in place.
	if _, _, err := runCLI(t, "", append(dbArgs, "seed", "--file", seedPath)...); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	out, _, err = runCLI(t, "", append(dbArgs, "specs", "show", "kara-ii", "--json")...)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var groups []specs.DisplayGroup
	if err := json.Unmarshal([]byte(out), &groups); err != nil {
		t.Fatalf("parse show output %q: %v", out, err)
	}
	labels := []string{}
	for _, g := range groups {
		labels = append(labels, g.SectionLabel)
	}
	if diff := cmp.Diff([]string{"Physical", "Acoustics"}, labels); diff != "" {
		t.Fatalf("section order (-want +got):\n%s", diff)
	}
}

func TestSeedRejectsUnknownFields(t *testing.T) {
	_, err := parseSeedFile(strings.NewReader("products:\n  - name: X\n    colour: red\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}
