// Package txblock builds Sui programmable transaction blocks.
//
// A Builder collects inputs and commands without touching the network.
// Build resolves object inputs to references, types pure inputs from the
// signatures of the called functions, prices gas and selects gas coins, then
// returns the BCS encoded TransactionData ready to be signed.
package txblock
