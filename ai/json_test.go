package ai

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestMarshalUnmarshal(t *testing.T) {
	cases := []struct {
		in  Weights
		out string
	}{
		{Weights{}, "{}"},
		{Weights{Triple: 100}, `{"Triple":100}`},
		{Weights{Triple: 100, Center: 150}, `{"Center":150,"Triple":100}`},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			out, e := json.Marshal(&tc.in)
			if e != nil {
				t.Fatalf("Marshal(): %v", e)
			}
			if string(out) != tc.out {
				t.Fatalf("Marshal() = %q != %q", out, tc.out)
			}

			var back Weights
			e = json.Unmarshal(out, &back)
			if e != nil {
				t.Fatalf("Unmarshal(%q): %v", out, e)
			}
			for i, v := range back {
				if tc.in[i] != v {
					t.Errorf("roundtrip[%d] = %v != %v", i, v, tc.in[i])
				}
			}
		})
	}
}

func TestUnmarshalUnknown(t *testing.T) {
	var w Weights
	e := json.Unmarshal([]byte(`{"Capstone":3}`), &w)
	if e == nil || e.Error() != `unknown feature "Capstone"` {
		t.Fatalf("Unmarshal(Capstone) = %v", e)
	}
}

func TestParseFeature(t *testing.T) {
	for f := Feature(0); f < MaxFeature; f++ {
		got, e := ParseFeature(f.String())
		if e != nil || got != f {
			t.Errorf("ParseFeature(%q) = %v, %v", f.String(), got, e)
		}
	}
	if _, e := ParseFeature("center"); e == nil {
		t.Error("feature names are case sensitive")
	}
}

func TestParseWeights(t *testing.T) {
	w, e := ParseWeights("")
	if e != nil || w != DefaultWeights {
		t.Fatalf("ParseWeights(\"\") = %v, %v", w, e)
	}
	w, e = ParseWeights(`{"Center":0,"Triple":75}`)
	if e != nil {
		t.Fatal(e)
	}
	want := DefaultWeights
	want[Center] = 0
	want[Triple] = 75
	if w != want {
		t.Fatalf("ParseWeights = %v want %v", w, want)
	}
	if _, e := ParseWeights("{"); e == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
