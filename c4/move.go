package c4

import (
	"errors"
	"strconv"
)

// Move drops a piece into a column, numbered from 0 on the left.
type Move int8

var (
	ErrBadColumn  = errors.New("column out of range")
	ErrColumnFull = errors.New("column is full")
	ErrGameOver   = errors.New("game is over")
)

func (m Move) Column() int {
	return int(m)
}

func (m Move) Valid() bool {
	return m >= 0 && int(m) < Cols
}

func (m Move) String() string {
	return strconv.Itoa(int(m))
}
