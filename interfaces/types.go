package interfaces

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidDigest  = errors.New("invalid object digest")
)

// SuiAddressLength is the byte length of addresses and object ids.
const SuiAddressLength = 32

// SuiAddress represents a Sui account address or object id.
type SuiAddress [SuiAddressLength]byte

// ObjectID names an on-chain object.
type ObjectID = SuiAddress

// NewSuiAddressFromBytes creates an address from a 32-byte slice.
func NewSuiAddressFromBytes(addr []byte) (SuiAddress, error) {
	if len(addr) != SuiAddressLength {
		return SuiAddress{}, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidAddress, SuiAddressLength, len(addr))
	}

	var res SuiAddress
	copy(res[:], addr)
	return res, nil
}

// NewSuiAddressFromHex parses a hex address. The 0x prefix is optional and
// short forms such as "0x2" are left padded with zeroes.
func NewSuiAddressFromHex(addr string) (SuiAddress, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(addr), "0x")
	if clean == "" {
		return SuiAddress{}, fmt.Errorf("%w: empty string", ErrInvalidAddress)
	}
	if len(clean) > 2*SuiAddressLength {
		return SuiAddress{}, fmt.Errorf("%w: hex string longer than %d characters", ErrInvalidAddress, 2*SuiAddressLength)
	}

	clean = strings.Repeat("0", 2*SuiAddressLength-len(clean)) + clean
	addrBytes, err := hex.DecodeString(clean)
	if err != nil {
		return SuiAddress{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	return NewSuiAddressFromBytes(addrBytes)
}

// MustSuiAddress is NewSuiAddressFromHex for constants, panicking on error.
func MustSuiAddress(addr string) SuiAddress {
	res, err := NewSuiAddressFromHex(addr)
	if err != nil {
		panic(err)
	}
	return res
}

// String returns the 0x-prefixed 64-char hex representation.
func (addr SuiAddress) String() string {
	return "0x" + hex.EncodeToString(addr[:])
}

// Bytes returns the raw 32-byte address.
func (addr SuiAddress) Bytes() []byte {
	return addr[:]
}

func (addr SuiAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(addr.String())
}

func (addr *SuiAddress) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewSuiAddressFromHex(s)
	if err != nil {
		return err
	}
	*addr = parsed
	return nil
}

// ObjectDigest is the 32-byte digest of an object version.
type ObjectDigest [32]byte

// NewObjectDigestFromBase58 decodes the node's base58 digest representation.
func NewObjectDigestFromBase58(s string) (ObjectDigest, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return ObjectDigest{}, fmt.Errorf("%w: %v", ErrInvalidDigest, err)
	}
	if len(raw) != 32 {
		return ObjectDigest{}, fmt.Errorf("%w: must be 32 bytes, got %d", ErrInvalidDigest, len(raw))
	}

	var res ObjectDigest
	copy(res[:], raw)
	return res, nil
}

func (d ObjectDigest) String() string {
	return base58.Encode(d[:])
}

func (d ObjectDigest) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *ObjectDigest) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewObjectDigestFromBase58(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ObjectRef identifies one version of an owned or immutable object.
type ObjectRef struct {
	ObjectID ObjectID     `json:"objectId"`
	Version  Uint64String `json:"version"`
	Digest   ObjectDigest `json:"digest"`
}

// Uint64String decodes a uint64 sent either as a JSON number or as a decimal string.
// It is encoded back as a decimal string, matching the node.
type Uint64String uint64

func (u Uint64String) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(u), 10))
}

func (u *Uint64String) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*u = 0
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid u64 value %s: %w", string(data), err)
	}
	*u = Uint64String(v)
	return nil
}
