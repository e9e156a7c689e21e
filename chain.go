package reit

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"
)

// Chain is the append-only sequence of blocks recording every event of the
// market.
//
// In a Chain, block i always has index i and carries the hash of block i-1.
// A Chain is not safe for concurrent use.
type Chain struct {
	blocks []Block
	now    func() time.Time
}

// ChainOption configures a new Chain.
type ChainOption func(*Chain)

// WithClock sets the clock used to timestamp new blocks.
func WithClock(now func() time.Time) ChainOption {
	return func(c *Chain) { c.now = now }
}

// NewChain creates a chain holding only the genesis block.
func NewChain(opts ...ChainOption) *Chain {
	c := &Chain{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.blocks = []Block{newBlock(0, genesisHash, genesisPayload, c.now())}
	return c
}

// Append records payload in a new block linked to the last one, and returns it.
//
// Invalid UTF-8 bytes of payload are recorded as U+FFFD, the way they are
// exported.
func (c *Chain) Append(payload string) Block {
	payload = strings.Map(func(r rune) rune { return r }, payload)
	last := c.Last()
	ts := c.now().UTC()
	// Timestamps never go backwards, even if the clock does.
	if ts.Before(last.timestamp) {
		ts = last.timestamp
	}
	b := newBlock(len(c.blocks), last.hash, payload, ts)
	c.blocks = append(c.blocks, b)
	return b
}

// Len returns the number of blocks, genesis included.
func (c *Chain) Len() int { return len(c.blocks) }

// Last returns the most recent block.
func (c *Chain) Last() Block { return c.blocks[len(c.blocks)-1] }

// At returns the block at index i.
func (c *Chain) At(i int) (Block, bool) {
	if i < 0 || i >= len(c.blocks) {
		return Block{}, false
	}
	return c.blocks[i], true
}

// All returns an iterator over all blocks in chain order.
func (c *Chain) All() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for _, b := range c.blocks {
			if !yield(b) {
				return
			}
		}
	}
}

// Verify checks the integrity of the whole chain: indexes, hash links,
// hashes and timestamp order. It reports the first inconsistency.
func (c *Chain) Verify() error {
	return verifyBlocks(c.blocks)
}

// verifyBlocks is Verify for a raw slice, shared with the decoder.
func verifyBlocks(blocks []Block) error {
	if len(blocks) == 0 {
		return fmt.Errorf("%w: no genesis block", ErrBrokenChain)
	}
	var errs error
	for i, b := range blocks {
		if b.index != i {
			errs = errors.Join(errs, fmt.Errorf("index %d found at position %d", b.index, i))
		}
		if i == 0 {
			if b.prevHash != genesisHash {
				errs = errors.Join(errs, fmt.Errorf("genesis previous hash is %q", b.prevHash))
			}
			if b.payload != genesisPayload {
				errs = errors.Join(errs, fmt.Errorf("genesis payload is %q", b.payload))
			}
		} else {
			prev := blocks[i-1]
			if b.prevHash != prev.hash {
				errs = errors.Join(errs, fmt.Errorf("previous hash does not match block %d", i-1))
			}
			if b.timestamp.Before(prev.timestamp) {
				errs = errors.Join(errs, fmt.Errorf("timestamp is before block %d", i-1))
			}
		}
		if got := b.ComputeHash(); got != b.hash {
			errs = errors.Join(errs, fmt.Errorf("hash %s does not match content %s", short(b.hash), short(got)))
		}
		if errs != nil {
			return fmt.Errorf("%w at block %d: %w", ErrBrokenChain, i, errs)
		}
	}
	return nil
}

// short abbreviates a hash for messages.
func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
