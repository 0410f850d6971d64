package ai

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
)

// ParseFeature looks a feature up by the name String gives it.
func ParseFeature(name string) (Feature, error) {
	i := lo.IndexOf(featureStrings[:], name)
	if i < 0 {
		return 0, fmt.Errorf("unknown feature %q", name)
	}
	return Feature(i), nil
}

// MarshalJSON writes an object from feature name to weight, leaving
// out zero weights.
func (ws *Weights) MarshalJSON() ([]byte, error) {
	named := make(map[string]int64, len(ws))
	for f, v := range ws {
		if v != 0 {
			named[Feature(f).String()] = v
		}
	}
	return json.Marshal(named)
}

func (ws *Weights) UnmarshalJSON(bs []byte) error {
	var named map[string]int64
	if err := json.Unmarshal(bs, &named); err != nil {
		return err
	}
	for name, v := range named {
		f, err := ParseFeature(name)
		if err != nil {
			return err
		}
		ws[f] = v
	}
	return nil
}

// ParseWeights overlays JSON-encoded weights on DefaultWeights. An empty
// string yields the defaults.
func ParseWeights(s string) (Weights, error) {
	w := DefaultWeights
	if s == "" {
		return w, nil
	}
	if err := json.Unmarshal([]byte(s), &w); err != nil {
		return Weights{}, fmt.Errorf("parse weights: %w", err)
	}
	return w, nil
}
