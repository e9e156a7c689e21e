package reit

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// genesisHash is the previous hash of the first block of every chain.
const genesisHash = "0"

// genesisPayload is the payload of the first block of every chain.
const genesisPayload = "Genesis Block - Welcome"

// Block is one immutable, hash-linked record of the chain.
//
// The zero value is not a valid block; blocks are created by a Chain.
type Block struct {
	index     int
	prevHash  string
	payload   string
	timestamp time.Time
	hash      string
}

// newBlock creates a block and computes its hash once.
func newBlock(index int, prevHash, payload string, timestamp time.Time) Block {
	b := Block{
		index:     index,
		prevHash:  prevHash,
		payload:   payload,
		timestamp: timestamp.UTC(),
	}
	b.hash = b.ComputeHash()
	return b
}

func (b Block) Index() int           { return b.index }
func (b Block) PrevHash() string     { return b.prevHash }
func (b Block) Payload() string      { return b.payload }
func (b Block) Timestamp() time.Time { return b.timestamp }
func (b Block) Hash() string         { return b.hash }

// TimestampText is the textual form of the timestamp that enters the hash.
func (b Block) TimestampText() string { return formatTimestamp(b.timestamp) }

// ComputeHash returns the hex SHA-256 of index, previous hash, payload and
// timestamp concatenated as text, in that order.
//
// It is recomputed from the fields and does not read the stored hash.
func (b Block) ComputeHash() string {
	h := sha256.New()
	h.Write([]byte(strconv.Itoa(b.index)))
	h.Write([]byte(b.prevHash))
	h.Write([]byte(b.payload))
	h.Write([]byte(b.TimestampText()))
	return hex.EncodeToString(h.Sum(nil))
}

// Equal reports whether both blocks have the same fields.
func (b Block) Equal(o Block) bool {
	return b.index == o.index &&
		b.prevHash == o.prevHash &&
		b.payload == o.payload &&
		b.timestamp.Equal(o.timestamp) &&
		b.hash == o.hash
}

// MarshalJSON writes fields in the hash order, followed by the hash.
func (b Block) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("index", b.index)
	w.Append("previousHash", b.prevHash)
	w.Append("payload", b.payload)
	w.Append("timestamp", b.TimestampText())
	w.Append("hash", b.hash)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a block as written by MarshalJSON. The hash is kept as
// read: it is the job of the chain to verify it.
func (b *Block) UnmarshalJSON(data []byte) error {
	var temp struct {
		Index     int    `json:"index"`
		PrevHash  string `json:"previousHash"`
		Payload   string `json:"payload"`
		Timestamp string `json:"timestamp"`
		Hash      string `json:"hash"`
	}
	if err := jsonUnmarshal(data, &temp); err != nil {
		return err
	}
	ts, err := parseTimestamp(temp.Timestamp)
	if err != nil {
		return err
	}
	*b = Block{
		index:     temp.Index,
		prevHash:  temp.PrevHash,
		payload:   temp.Payload,
		timestamp: ts,
		hash:      temp.Hash,
	}
	return nil
}

func formatTimestamp(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
