package observability

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stagehire/catalog-backend/internal/platform/logger"
)

func TestParseHeaders(t *testing.T) {
	cases := []struct {
		in   string
		want map[string]string
	}{
		{"", nil},
		{"a=1", map[string]string{"a": "1"}},
		{" a = 1 , b=2,bad,=x,c=", map[string]string{"a": "1", "b": "2"}},
		{"auth=Bearer x=y", map[string]string{"auth": "Bearer x=y"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, ParseHeaders(tc.in)); diff != "" {
			t.Fatalf("ParseHeaders(%q) (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestClampRatio(t *testing.T) {
	for in, want := range map[float64]float64{-1: 0, 0.25: 0.25, 3: 1} {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v) = %v", in, got)
		}
	}
}

func TestInitOTelDisabled(t *testing.T) {
	shutdown, err := InitOTel(context.Background(), logger.NewNop(), OtelConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
