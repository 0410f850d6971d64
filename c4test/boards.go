package c4test

// Reference boards, written right side up (top row first) and flipped
// on load since positions store the bottom row first.
var (
	Board1 = flipped([][]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{1, -1, 0, 0, 0, 0, 0},
		{1, -1, 0, 0, 0, 0, 0},
		{1, -1, 0, 0, 0, 0, 0},
	})

	Board2 = flipped([][]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, -1, -1, -1, 0, 0},
		{0, 0, 1, 1, 1, 0, 0},
	})

	Board3 = flipped([][]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 1, -1, 1, 0, 0},
	})

	Board4 = flipped([][]int{
		{0, 0, 0, 0, 0, 0, 0},
		{-1, -1, 1, 1, 0, -1, -1},
		{-1, 1, 1, -1, 1, 1, -1},
		{1, -1, 1, 1, -1, -1, -1},
		{-1, 1, -1, 1, 1, -1, 1},
		{1, 1, -1, 1, -1, -1, 1},
	})

	Board5 = flipped([][]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, -1},
		{-1, 0, 1, 0, 1, 0, -1},
		{1, -1, 1, 1, -1, -1, -1},
		{-1, 1, -1, 1, 1, -1, 1},
		{1, 1, -1, 1, -1, -1, 1},
	})
)

func flipped(rows [][]int) [][]int {
	out := make([][]int, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	return out
}
