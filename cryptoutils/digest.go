package cryptoutils

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

const transactionDataDigestPrefix = "TransactionData::"

// TransactionDigest returns the base58 digest a node assigns to the
// transaction with the given BCS bytes.
func TransactionDigest(txBytes []byte) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(transactionDataDigestPrefix))
	h.Write(txBytes)
	return base58.Encode(h.Sum(nil))
}
