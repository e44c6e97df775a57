package envutil

import (
	"testing"
	"time"
)

func TestReaders(t *testing.T) {
	t.Setenv("ENVUTIL_STR", " value ")
	t.Setenv("ENVUTIL_INT", "12")
	t.Setenv("ENVUTIL_BAD_INT", "x")
	t.Setenv("ENVUTIL_BOOL", "on")
	t.Setenv("ENVUTIL_DUR", "90s")
	t.Setenv("ENVUTIL_DUR_SECS", "30")
	t.Setenv("ENVUTIL_LIST", "a, ,b")
	t.Setenv("ENVUTIL_FLOAT", "0.25")

	if got := String("ENVUTIL_STR", "d"); got != "value" {
		t.Fatalf("String: %q", got)
	}
	if got := String("ENVUTIL_MISSING", "d"); got != "d" {
		t.Fatalf("String default: %q", got)
	}
	if got := Int("ENVUTIL_INT", 1); got != 12 {
		t.Fatalf("Int: %d", got)
	}
	if got := Int("ENVUTIL_BAD_INT", 1); got != 1 {
		t.Fatalf("Int fallback: %d", got)
	}
	if !Bool("ENVUTIL_BOOL", false) || Bool("ENVUTIL_MISSING", false) {
		t.Fatal("Bool")
	}
	if got := Duration("ENVUTIL_DUR", time.Second); got != 90*time.Second {
		t.Fatalf("Duration: %v", got)
	}
	if got := Duration("ENVUTIL_DUR_SECS", time.Second); got != 30*time.Second {
		t.Fatalf("Duration seconds: %v", got)
	}
	if got := List("ENVUTIL_LIST", nil); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List: %v", got)
	}
	if got := Float("ENVUTIL_FLOAT", 1); got != 0.25 {
		t.Fatalf("Float: %v", got)
	}
}
