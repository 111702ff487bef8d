package cmd

import (
	"testing"

	"github.com/wfriedl/PE200"
)

func TestParseMix(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    pe200.Proportions
		wantErr bool
	}{
		{"25,25,25,25", pe200.Proportions{25, 25, 25, 25}, false},
		{"0, 0, 0, 100", pe200.Proportions{0, 0, 0, 100}, false},
		{"80,20", pe200.Proportions{}, true},
		{"a,b,c,d", pe200.Proportions{}, true},
		{"", pe200.Proportions{}, true},
	} {
		got, err := parseMix(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
