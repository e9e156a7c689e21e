// Package reit provides a market for fractional shares of real estate
// properties, where every event is recorded in an append-only, hash-chained
// ledger.
//
// The core functionalities include:
//   - Chain: an immutable sequence of blocks. Each block stores the SHA-256 of
//     its own content and the hash of the previous block, so that any
//     alteration of the history is detected by Chain.Verify.
//   - Pricing: every property is split in Supply shares priced by a linear
//     bonding curve, from 98% of the value per share when nothing is sold to
//     102% when everything is. A trade of n shares is priced by summing the
//     curve over the n supply levels it crosses, never at a single spot price.
//   - Trading: accounts buy and sell shares. A trade is validated completely
//     before any state changes, then appends exactly one block to the chain.
//   - Market: the registry of accounts and properties, able to replay a JSONL
//     stream of orders.
//
// Amounts are decimal (github.com/shopspring/decimal) so that a buy followed by
// the sell of the same shares returns exactly the initial balance.
//
// This package serves as the foundational logic for the `rcs` command-line
// tool.
package reit
