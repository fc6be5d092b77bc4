package cryptoutils

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/anyproto/go-slip10"
	"github.com/mysticon-legends/setup/interfaces"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/blake2b"
)

// DefaultEd25519DerivationPath is the Sui coin type path for the first account.
const DefaultEd25519DerivationPath = "m/44'/784'/0'/0'/0'"

// Ed25519SignatureFlag prefixes Ed25519 public keys and serialized signatures.
const Ed25519SignatureFlag byte = 0x00

const hardenedOffset uint32 = 0x80000000

var (
	ErrInvalidMnemonic      = errors.New("invalid mnemonic")
	ErrInvalidPath          = errors.New("invalid derivation path")
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrUnsupportedSignature = errors.New("unsupported signature scheme")
)

var hardenedPathRegex = regexp.MustCompile(`^m(/[0-9]+')+$`)

// IntentScope identifies what kind of message is being signed.
type IntentScope byte

const (
	IntentScopeTransactionData IntentScope = 0
	IntentScopePersonalMessage IntentScope = 3
)

// Ed25519Keypair is the operator's signing identity.
type Ed25519Keypair struct {
	privateKey ed25519.PrivateKey
}

// DeriveKeypair derives the operator keypair from a BIP-39 mnemonic using the
// default Sui derivation path.
func DeriveKeypair(mnemonic string) (*Ed25519Keypair, error) {
	return DeriveKeypairWithPath(mnemonic, DefaultEd25519DerivationPath)
}

// DeriveKeypairWithPath derives an Ed25519 keypair with SLIP-0010 from the
// seed of mnemonic. Every path segment must be hardened.
func DeriveKeypairWithPath(mnemonic, path string) (*Ed25519Keypair, error) {
	normalized := NormalizeMnemonic(mnemonic)
	if !bip39.IsMnemonicValid(normalized) {
		return nil, ErrInvalidMnemonic
	}

	seed := bip39.NewSeed(normalized, "")
	key, err := DerivePath(path, seed)
	if err != nil {
		return nil, err
	}

	return NewKeypairFromSeed(key)
}

// NewKeypairFromSeed builds a keypair from a 32-byte Ed25519 seed.
func NewKeypairFromSeed(seed []byte) (*Ed25519Keypair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid ed25519 seed length %d", len(seed))
	}
	return &Ed25519Keypair{privateKey: ed25519.NewKeyFromSeed(seed)}, nil
}

// NormalizeMnemonic lowercases the phrase and collapses whitespace.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}

// DerivePath walks a hardened SLIP-0010 Ed25519 path from seed and returns
// the 32-byte private key seed of the final node.
func DerivePath(path string, seed []byte) ([]byte, error) {
	if !hardenedPathRegex.MatchString(path) {
		return nil, fmt.Errorf("%w: %q, only hardened ed25519 paths are supported", ErrInvalidPath, path)
	}
	for _, segment := range strings.Split(path, "/")[1:] {
		index, err := strconv.ParseUint(strings.TrimSuffix(segment, "'"), 10, 32)
		if err != nil || uint32(index) >= hardenedOffset {
			return nil, fmt.Errorf("%w: segment %q", ErrInvalidPath, segment)
		}
	}

	node, err := slip10.DeriveForPath(path, seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPath, path, err)
	}
	raw := node.RawSeed()
	return append([]byte{}, raw[:]...), nil
}

// PublicKey returns the raw 32-byte public key.
func (k *Ed25519Keypair) PublicKey() ed25519.PublicKey {
	return k.privateKey.Public().(ed25519.PublicKey)
}

// Address returns the Sui address of the keypair.
func (k *Ed25519Keypair) Address() interfaces.SuiAddress {
	return PublicKeyToAddress(k.PublicKey())
}

// SignTransaction signs BCS transaction bytes and returns the serialized
// signature flag || signature || public key, base64 encoded.
func (k *Ed25519Keypair) SignTransaction(txBytes []byte) (string, error) {
	digest := IntentDigest(IntentScopeTransactionData, txBytes)
	sig := ed25519.Sign(k.privateKey, digest[:])

	serialized := make([]byte, 0, 1+ed25519.SignatureSize+ed25519.PublicKeySize)
	serialized = append(serialized, Ed25519SignatureFlag)
	serialized = append(serialized, sig...)
	serialized = append(serialized, k.PublicKey()...)
	return base64.StdEncoding.EncodeToString(serialized), nil
}

// PublicKeyToAddress hashes the flagged public key into an address.
func PublicKeyToAddress(pub ed25519.PublicKey) interfaces.SuiAddress {
	h, _ := blake2b.New256(nil)
	h.Write([]byte{Ed25519SignatureFlag})
	h.Write(pub)

	var addr interfaces.SuiAddress
	copy(addr[:], h.Sum(nil))
	return addr
}

// IntentDigest returns blake2b-256 over the intent prefix and message.
func IntentDigest(scope IntentScope, msg []byte) [32]byte {
	intent := make([]byte, 0, 3+len(msg))
	intent = append(intent, byte(scope), 0x00, 0x00)
	intent = append(intent, msg...)
	return blake2b.Sum256(intent)
}

// VerifyTransactionSignature checks a serialized Ed25519 signature over
// txBytes and returns the signer's address.
func VerifyTransactionSignature(txBytes []byte, serialized string) (interfaces.SuiAddress, error) {
	raw, err := base64.StdEncoding.DecodeString(serialized)
	if err != nil {
		return interfaces.SuiAddress{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if len(raw) != 1+ed25519.SignatureSize+ed25519.PublicKeySize {
		return interfaces.SuiAddress{}, fmt.Errorf("%w: unexpected length %d", ErrInvalidSignature, len(raw))
	}
	if raw[0] != Ed25519SignatureFlag {
		return interfaces.SuiAddress{}, fmt.Errorf("%w: flag %#x", ErrUnsupportedSignature, raw[0])
	}

	sig := raw[1 : 1+ed25519.SignatureSize]
	pub := ed25519.PublicKey(raw[1+ed25519.SignatureSize:])
	digest := IntentDigest(IntentScopeTransactionData, txBytes)
	if !ed25519.Verify(pub, digest[:], sig) {
		return interfaces.SuiAddress{}, ErrInvalidSignature
	}

	return PublicKeyToAddress(pub), nil
}
