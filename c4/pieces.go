package c4

import "fmt"

// Color identifies a player, or the absence of a piece. The numeric
// values double as terminal utilities: One wins is +1, Two wins is -1.
type Color int8

const (
	One     Color = 1
	Two     Color = -1
	NoColor Color = 0
)

func (c Color) String() string {
	switch c {
	case One:
		return "one"
	case Two:
		return "two"
	case NoColor:
		return "no color"
	default:
		panic(fmt.Sprintf("bad color: %d", int(c)))
	}
}

func (c Color) Flip() Color {
	switch c {
	case One:
		return Two
	case Two:
		return One
	case NoColor:
		return NoColor
	default:
		panic(fmt.Sprintf("bad color: %d", int(c)))
	}
}
