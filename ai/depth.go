package ai

import (
	"fmt"
	"strconv"
	"strings"
)

// Depth bounds a search. The zero value is Unbounded, which searches
// until every line reaches a finished game.
type Depth struct {
	n       int
	bounded bool
}

var Unbounded = Depth{}

// Bounded returns a depth limit of n plies. It panics if n is negative.
func Bounded(n int) Depth {
	if n < 0 {
		panic(fmt.Sprintf("ai: negative search depth %d", n))
	}
	return Depth{n: n, bounded: true}
}

func ParseDepth(s string) (Depth, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "inf", "unbounded":
		return Unbounded, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Depth{}, fmt.Errorf("bad depth %q", s)
	}
	if n < 0 {
		return Depth{}, fmt.Errorf("bad depth %q: negative", s)
	}
	return Bounded(n), nil
}

func (d Depth) Limit() (n int, bounded bool) {
	return d.n, d.bounded
}

// Exhausted reports whether the search must stop and estimate.
func (d Depth) Exhausted() bool {
	return d.bounded && d.n == 0
}

func (d Depth) Next() Depth {
	if !d.bounded {
		return d
	}
	if d.n == 0 {
		panic("ai: Next on exhausted depth")
	}
	return Depth{n: d.n - 1, bounded: true}
}

func (d Depth) String() string {
	if !d.bounded {
		return "full"
	}
	return strconv.Itoa(d.n)
}

func (d Depth) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Depth) UnmarshalText(b []byte) error {
	v, err := ParseDepth(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
