package reit

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates a JSONPath expression over the chain seen as a JSON array
// of blocks, e.g. `$[?(@.index > 0)].payload`.
//
// Blocks have the same keys as in the JSONL encoding.
func (c *Chain) Query(path string) (any, error) {
	raw, err := json.Marshal(c.blocks)
	if err != nil {
		return nil, fmt.Errorf("could not marshal chain: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(raw, &jobj); err != nil {
		return nil, fmt.Errorf("could not read chain as json: %w", err)
	}
	v, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return v, nil
}
