// Package cryptoutils derives the operator key and produces Sui signatures.
//
// # Key Derivation
//
// Keys come from a BIP-39 phrase. The phrase is turned into a seed with an
// empty passphrase and walked with SLIP-0010 Ed25519 derivation, which only
// allows hardened indices. The default path is the first Sui account:
//
//	m/44'/784'/0'/0'/0'
//
// # Addresses
//
// An address is blake2b-256 over the signature scheme flag followed by the
// public key:
//
//	address = blake2b256(0x00 || pubkey)
//
// # Signatures
//
// Transaction bytes are wrapped in an intent before hashing. The intent for
// transaction data is three zero bytes (scope, version, app id):
//
//	digest    = blake2b256([0, 0, 0] || tx_bytes)
//	signature = ed25519.Sign(key, digest)
//
// The serialized signature sent to a node is base64 of
//
//	[flag (1 byte)][signature (64 bytes)][public key (32 bytes)]
//
// # Transaction Digests
//
// TransactionDigest computes the base58 digest a node reports for a
// transaction, blake2b256("TransactionData::" || tx_bytes).
package cryptoutils
