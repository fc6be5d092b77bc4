// Package interfaces defines the core types and interfaces shared by the
// mysticon setup tool, separating interface definitions from implementations.
//
// # Chain Types
//
//   - SuiAddress: 32-byte account or object address, hex encoded with a 0x prefix
//   - ObjectID: alias of SuiAddress naming an on-chain object
//   - ObjectDigest: 32-byte object digest, base58 encoded on the wire
//   - ObjectRef: (id, version, digest) triple used by owned object inputs
//
// # RPC Types
//
// ObjectInfo, Coin, CoinPage, NormalizedFunction, TransactionEffects and
// TransactionResponse mirror the JSON shapes returned by a Sui full node.
// Numeric fields that the node sends as decimal strings are decoded through
// Uint64String.
//
// # Interfaces
//
//   - Signer: produces serialized transaction signatures for one address
//   - ChainReader: the read-only node queries needed to resolve a transaction
package interfaces
