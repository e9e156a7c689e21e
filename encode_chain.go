package reit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeBlock marshals a single block to JSON and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeBlock(w io.Writer, b Block) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal block %d: %w", b.index, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write block %d: %w", b.index, err)
	}
	return nil
}

// EncodeChain persists all blocks to an io.Writer in JSONL format, in chain
// order.
func EncodeChain(w io.Writer, c *Chain) error {
	for b := range c.All() {
		if err := EncodeBlock(w, b); err != nil {
			return err
		}
	}
	return nil
}

// DecodeChain decodes blocks from a stream of JSONL data and returns the
// chain they form. It fails if the blocks do not verify.
func DecodeChain(r io.Reader) (*Chain, error) {
	var blocks []Block
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var b Block
		if err := json.Unmarshal(lineBytes, &b); err != nil {
			return nil, fmt.Errorf("could not decode block in line %q: %w", string(lineBytes), err)
		}
		blocks = append(blocks, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	if err := verifyBlocks(blocks); err != nil {
		return nil, err
	}
	// the clock of a decoded chain is the default one: appending after the last
	// decoded block is still possible.
	c := NewChain()
	c.blocks = blocks
	return c, nil
}
