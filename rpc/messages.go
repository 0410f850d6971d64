package rpc

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/nelhage/connect4/ai"
)

type Request struct {
	Position string
	Depth    ai.Depth
	Prune    bool
	// ListPruned asks for the pruned positions themselves, not just
	// their count.
	ListPruned bool
}

type Child struct {
	Move  int
	Value float64
}

type Response struct {
	Move     int
	Value    float64
	Exact    bool
	Children []Child
	Stats    ai.Stats
	Pruned   []string
}

func (r *Request) Encode() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"position":    r.Position,
		"depth":       r.Depth.String(),
		"prune":       r.Prune,
		"list_pruned": r.ListPruned,
	})
}

// DecodeRequest unpacks a request. Depth and prune fall back to def's
// when the request omits them.
func DecodeRequest(s *structpb.Struct, def Request) (*Request, error) {
	f := s.GetFields()
	pos, ok := f["position"]
	if !ok {
		return nil, fmt.Errorf("request: missing position")
	}
	r := &Request{
		Position:   pos.GetStringValue(),
		Depth:      def.Depth,
		Prune:      def.Prune,
		ListPruned: f["list_pruned"].GetBoolValue(),
	}
	if v, ok := f["prune"]; ok {
		r.Prune = v.GetBoolValue()
	}
	if d, ok := f["depth"]; ok {
		if err := r.Depth.UnmarshalText([]byte(d.GetStringValue())); err != nil {
			return nil, fmt.Errorf("request: %w", err)
		}
	}
	return r, nil
}

func (r *Response) Encode() (*structpb.Struct, error) {
	children := make([]interface{}, 0, len(r.Children))
	for _, c := range r.Children {
		children = append(children, map[string]interface{}{
			"move":  c.Move,
			"value": c.Value,
		})
	}
	pruned := make([]interface{}, 0, len(r.Pruned))
	for _, p := range r.Pruned {
		pruned = append(pruned, p)
	}
	return structpb.NewStruct(map[string]interface{}{
		"move":     r.Move,
		"value":    r.Value,
		"exact":    r.Exact,
		"children": children,
		"stats": map[string]interface{}{
			"visited":   r.Stats.Visited,
			"evaluated": r.Stats.Evaluated,
			"terminal":  r.Stats.Terminal,
			"cutoffs":   r.Stats.Cutoffs,
			"pruned":    r.Stats.Pruned,
		},
		"pruned": pruned,
	})
}

func DecodeResponse(s *structpb.Struct) *Response {
	f := s.GetFields()
	r := &Response{
		Move:  int(f["move"].GetNumberValue()),
		Value: f["value"].GetNumberValue(),
		Exact: f["exact"].GetBoolValue(),
	}
	for _, v := range f["children"].GetListValue().GetValues() {
		c := v.GetStructValue().GetFields()
		r.Children = append(r.Children, Child{
			Move:  int(c["move"].GetNumberValue()),
			Value: c["value"].GetNumberValue(),
		})
	}
	st := f["stats"].GetStructValue().GetFields()
	r.Stats = ai.Stats{
		Visited:   uint64(st["visited"].GetNumberValue()),
		Evaluated: uint64(st["evaluated"].GetNumberValue()),
		Terminal:  uint64(st["terminal"].GetNumberValue()),
		Cutoffs:   uint64(st["cutoffs"].GetNumberValue()),
		Pruned:    uint64(st["pruned"].GetNumberValue()),
	}
	for _, v := range f["pruned"].GetListValue().GetValues() {
		r.Pruned = append(r.Pruned, v.GetStringValue())
	}
	return r
}
