package specs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindCollisions(t *testing.T) {
	t.Parallel()

	got := FindCollisions([]Section{
		{Label: "Usable Bandwidth", Rows: []Row{{Label: "Low", Value: "40 Hz"}, {Label: "low!", Value: "41 Hz"}}},
		{Label: "usable-bandwidth!", Rows: []Row{{Label: "High", Value: "18 kHz"}}},
		{Label: "Physical", Rows: []Row{{Label: "Weight", Value: "21 kg"}, {Label: "Weight", Value: "22 kg"}}},
	})
	want := []Collision{
		{Slug: "usable_bandwidth", Labels: []string{"Usable Bandwidth", "usable-bandwidth!"}},
		{Section: "usable-bandwidth!", Slug: "low", Labels: []string{"Low", "low!"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("collisions mismatch (-want +got):\n%s", diff)
	}
	if got := FindCollisions(nil); len(got) != 0 {
		t.Fatalf("expected none, got %v", got)
	}
}
