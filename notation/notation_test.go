package notation

import (
	"errors"
	"testing"

	"github.com/nelhage/connect4/c4"
)

func TestParseMove(t *testing.T) {
	cases := []struct {
		in  string
		out c4.Move
		err bool
	}{
		{"0", 0, false},
		{" 6\n", 6, false},
		{"7", 0, true},
		{"-1", 0, true},
		{"a", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		m, e := ParseMove(tc.in)
		if tc.err {
			if e == nil {
				t.Errorf("ParseMove(%q): no error", tc.in)
			}
			continue
		}
		if e != nil {
			t.Errorf("ParseMove(%q): %v", tc.in, e)
			continue
		}
		if m != tc.out {
			t.Errorf("ParseMove(%q)=%d want %d", tc.in, m, tc.out)
		}
	}
	if _, e := ParseMove("9"); !errors.Is(e, c4.ErrBadColumn) {
		t.Errorf("ParseMove(9) err=%v", e)
	}
}

func TestMovesRoundTrip(t *testing.T) {
	record := "3 3 4 2 6 0"
	ms, e := ParseMoves(record)
	if e != nil {
		t.Fatal(e)
	}
	if len(ms) != 6 {
		t.Fatalf("len=%d", len(ms))
	}
	if out := FormatMoves(ms); out != record {
		t.Errorf("FormatMoves=%q", out)
	}
}

func TestReplay(t *testing.T) {
	p, e := Replay("3 3 4")
	if e != nil {
		t.Fatal(e)
	}
	if p.At(0, 3) != c4.One || p.At(1, 3) != c4.Two || p.At(0, 4) != c4.One {
		t.Errorf("bad board:\n%s", p)
	}
	if _, e := Replay("0 0 0 0 0 0 0"); !errors.Is(e, c4.ErrColumnFull) {
		t.Errorf("overfull column: %v", e)
	}
	if _, e := Replay("0 1 0 1 0 1 0 1"); !errors.Is(e, c4.ErrGameOver) {
		t.Errorf("move after win: %v", e)
	}
}

func TestParsePosition(t *testing.T) {
	in := "......./......./......./......./...o.../..xxo.."
	p, e := ParsePosition(in)
	if e != nil {
		t.Fatal(e)
	}
	if p.ToMove() != c4.One {
		t.Errorf("to move=%s", p.ToMove())
	}
	if p.At(0, 2) != c4.One || p.At(1, 3) != c4.Two {
		t.Errorf("bad board:\n%s", p)
	}
	if out := FormatPosition(p); out != in {
		t.Errorf("FormatPosition=%q", out)
	}
	want, _ := Replay("2 4 3 3")
	if want.Key() != p.Key() {
		t.Errorf("parsed position differs from replayed one")
	}
}

func TestParsePositionErrors(t *testing.T) {
	cases := []string{
		"",
		"......./......./......./......./.......",
		"......./......./......./......./......./......",
		"......./......./......./......./......./...z...",
		"......./......./......./......./...x.../.......",
		"......./......./......./......./......./oo.....",
	}
	for _, in := range cases {
		if _, e := ParsePosition(in); e == nil {
			t.Errorf("ParsePosition(%q): no error", in)
		}
	}
}

func TestFromMatrix(t *testing.T) {
	p, e := FromMatrix([][]int{
		{1, -1, 0, 0, 0, 0, 0},
		{1, -1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
	})
	if e != nil {
		t.Fatal(e)
	}
	if FormatPosition(p) != "......./......./......./......./xo...../xo....." {
		t.Errorf("FormatPosition=%q", FormatPosition(p))
	}
	if _, e := FromMatrix([][]int{{2}}); e == nil {
		t.Errorf("bad value accepted")
	}
}

func TestParse(t *testing.T) {
	a, e := Parse("3 4")
	if e != nil {
		t.Fatal(e)
	}
	b, e := Parse(FormatPosition(a))
	if e != nil {
		t.Fatal(e)
	}
	if a.Key() != b.Key() {
		t.Errorf("Parse disagrees between record and position")
	}
}
