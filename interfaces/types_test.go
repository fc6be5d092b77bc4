package interfaces

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSuiAddressFromHex(t *testing.T) {
	addr, err := NewSuiAddressFromHex("0x2")
	require.NoError(t, err)
	assert.Equal(t, "0x"+strings.Repeat("0", 63)+"2", addr.String())

	full := "0x" + strings.Repeat("ab", 32)
	addr, err = NewSuiAddressFromHex(full)
	require.NoError(t, err)
	assert.Equal(t, full, addr.String())

	noPrefix, err := NewSuiAddressFromHex(strings.Repeat("ab", 32))
	require.NoError(t, err)
	assert.Equal(t, addr, noPrefix)

	_, err = NewSuiAddressFromHex("")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = NewSuiAddressFromHex("0xzz")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = NewSuiAddressFromHex("0x" + strings.Repeat("ab", 33))
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestObjectDigestBase58(t *testing.T) {
	var d ObjectDigest
	for i := range d {
		d[i] = byte(i)
	}

	parsed, err := NewObjectDigestFromBase58(d.String())
	require.NoError(t, err)
	assert.Equal(t, d, parsed)

	_, err = NewObjectDigestFromBase58("abc")
	assert.ErrorIs(t, err, ErrInvalidDigest)
}

func TestUint64String(t *testing.T) {
	var v struct {
		A Uint64String `json:"a"`
		B Uint64String `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"1000","b":42}`), &v))
	assert.EqualValues(t, 1000, v.A)
	assert.EqualValues(t, 42, v.B)

	out, err := json.Marshal(v.A)
	require.NoError(t, err)
	assert.Equal(t, `"1000"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"a":"-1"}`), &v))
}

func TestObjectOwnerDecoding(t *testing.T) {
	addr := "0x" + strings.Repeat("11", 32)

	cases := []struct {
		input string
		want  ObjectOwner
	}{
		{`"Immutable"`, ObjectOwner{Kind: OwnerImmutable}},
		{`{"AddressOwner":"` + addr + `"}`, ObjectOwner{Kind: OwnerAddress, Address: MustSuiAddress(addr)}},
		{`{"ObjectOwner":"` + addr + `"}`, ObjectOwner{Kind: OwnerObject, Address: MustSuiAddress(addr)}},
		{`{"Shared":{"initial_shared_version":7}}`, ObjectOwner{Kind: OwnerShared, InitialSharedVersion: 7}},
	}

	for _, tc := range cases {
		var owner ObjectOwner
		require.NoError(t, json.Unmarshal([]byte(tc.input), &owner), tc.input)
		assert.Equal(t, tc.want, owner, tc.input)

		encoded, err := json.Marshal(owner)
		require.NoError(t, err)
		var again ObjectOwner
		require.NoError(t, json.Unmarshal(encoded, &again))
		assert.Equal(t, owner, again)
	}
}

func TestNormalizedFunctionCallParameters(t *testing.T) {
	raw := `{
		"visibility": "Public",
		"isEntry": false,
		"typeParameters": [{"abilities": ["Key"]}],
		"parameters": [
			{"Reference": {"Struct": {"address": "0x2", "module": "package", "name": "Publisher", "typeArguments": []}}},
			{"Vector": {"Struct": {"address": "0x1", "module": "string", "name": "String", "typeArguments": []}}},
			"U64",
			{"MutableReference": {"Struct": {"address": "0x2", "module": "tx_context", "name": "TxContext", "typeArguments": []}}}
		],
		"return": []
	}`

	var fn NormalizedFunction
	require.NoError(t, json.Unmarshal([]byte(raw), &fn))
	require.Len(t, fn.Parameters, 4)

	params := fn.CallParameters()
	require.Len(t, params, 3)

	inner, mutable := params[0].Deref()
	assert.False(t, mutable)
	assert.True(t, inner.IsStruct("0x2", "package", "Publisher"))

	require.NotNil(t, params[1].Vector)
	assert.True(t, params[1].Vector.IsStruct("0x1", "string", "String"))
	assert.Equal(t, "U64", params[2].Primitive)
}

func TestTransactionEffectsCreatedIDs(t *testing.T) {
	raw := `{
		"status": {"status": "success"},
		"gasUsed": {"computationCost": "1000", "storageCost": "2000", "storageRebate": "500", "nonRefundableStorageFee": "5"},
		"created": [
			{"owner": {"AddressOwner": "0x1"}, "reference": {"objectId": "0xabc", "version": 3, "digest": "11111111111111111111111111111111"}}
		]
	}`

	var effects TransactionEffects
	require.NoError(t, json.Unmarshal([]byte(raw), &effects))
	assert.True(t, effects.Status.Succeeded())
	assert.EqualValues(t, 2000, effects.GasUsed.StorageCost)
	require.Len(t, effects.CreatedIDs(), 1)
	assert.Equal(t, MustSuiAddress("0xabc"), effects.CreatedIDs()[0])
}
