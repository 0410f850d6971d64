// Package c4test holds helpers for building positions in tests.
package c4test

import (
	"github.com/nelhage/connect4/c4"
	"github.com/nelhage/connect4/notation"
)

func Move(s string) c4.Move {
	m, e := notation.ParseMove(s)
	if e != nil {
		panic(e)
	}
	return m
}

func Moves(s string) []c4.Move {
	ms, e := notation.ParseMoves(s)
	if e != nil {
		panic(e)
	}
	return ms
}

// Position replays a move record from the empty board.
func Position(record string) *c4.Position {
	p, e := notation.Replay(record)
	if e != nil {
		panic(e)
	}
	return p
}

// Board parses a position written top row first.
func Board(s string) *c4.Position {
	p, e := notation.ParsePosition(s)
	if e != nil {
		panic(e)
	}
	return p
}

func Matrix(m [][]int) *c4.Position {
	p, e := notation.FromMatrix(m)
	if e != nil {
		panic(e)
	}
	return p
}
