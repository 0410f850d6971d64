package ai

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/nelhage/connect4/c4"
)

type Feature int

const (
	Single Feature = iota
	Double
	Triple
	Center
	Tempo

	MaxFeature
)

var featureStrings = [MaxFeature]string{
	Single: "Single",
	Double: "Double",
	Triple: "Triple",
	Center: "Center",
	Tempo:  "Tempo",
}

func (f Feature) String() string {
	if f < 0 || f >= MaxFeature {
		return fmt.Sprintf("Feature(%d)", int(f))
	}
	return featureStrings[f]
}

type Weights [MaxFeature]int64

var DefaultWeights = Weights{
	Single: 1,
	Double: 10,
	Triple: 50,
	Center: 6,
	Tempo:  4,
}

// EvalScale controls how quickly raw scores approach ±1.
const EvalScale = 200

type EvaluationFunc func(p *c4.Position) float64

func MakeEvaluator(w *Weights) EvaluationFunc {
	if w == nil {
		w = &DefaultWeights
	}
	ws := *w
	return func(p *c4.Position) float64 {
		return evaluate(&ws, p)
	}
}

var DefaultEvaluate = MakeEvaluator(&DefaultWeights)

// features counts, per color, the open windows holding one, two and
// three pieces, and the pieces in the center column. A window is open
// for a color if the other color has no piece in it.
func features(p *c4.Position) (one, two [MaxFeature]int64) {
	for _, w := range c4.Windows {
		var ones, twos int
		for _, i := range w {
			switch p.Cell(i) {
			case c4.One:
				ones++
			case c4.Two:
				twos++
			}
		}
		switch {
		case twos == 0 && ones > 0 && ones < c4.Connect:
			one[Single+Feature(ones-1)]++
		case ones == 0 && twos > 0 && twos < c4.Connect:
			two[Single+Feature(twos-1)]++
		}
	}
	for r := 0; r < c4.Rows; r++ {
		switch p.At(r, c4.Cols/2) {
		case c4.One:
			one[Center]++
		case c4.Two:
			two[Center]++
		}
	}
	if p.ToMove() == c4.One {
		one[Tempo] = 1
	} else {
		two[Tempo] = 1
	}
	return one, two
}

func rawScore(w *Weights, p *c4.Position) int64 {
	one, two := features(p)
	var score int64
	for f := Feature(0); f < MaxFeature; f++ {
		score += w[f] * (one[f] - two[f])
	}
	return score
}

func squash(raw int64) float64 {
	x := float64(raw)
	return x / (math.Abs(x) + EvalScale)
}

func evaluate(w *Weights, p *c4.Position) float64 {
	if over, winner := p.GameOver(); over {
		return float64(winner)
	}
	return squash(rawScore(w, p))
}

func ExplainScore(w *Weights, out io.Writer, p *c4.Position) {
	if w == nil {
		w = &DefaultWeights
	}
	one, two := features(p)
	tw := tabwriter.NewWriter(out, 4, 8, 1, '\t', 0)
	fmt.Fprintf(tw, "\tweight\tone\ttwo\n")
	for f := Feature(0); f < MaxFeature; f++ {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", f, w[f], one[f], two[f])
	}
	raw := rawScore(w, p)
	fmt.Fprintf(tw, "raw\t\t%d\n", raw)
	fmt.Fprintf(tw, "value\t\t%.4f\n", evaluate(w, p))
	tw.Flush()
}
