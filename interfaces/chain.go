package interfaces

import (
	"encoding/json"
	"errors"
	"fmt"
)

// OwnerKind classifies object ownership.
type OwnerKind int

const (
	OwnerUnknown OwnerKind = iota
	OwnerAddress
	OwnerObject
	OwnerShared
	OwnerImmutable
)

// ObjectOwner is the decoded form of the node's owner enum:
// "Immutable", {"AddressOwner": ...}, {"ObjectOwner": ...} or
// {"Shared": {"initial_shared_version": N}}.
type ObjectOwner struct {
	Kind                 OwnerKind
	Address              SuiAddress
	InitialSharedVersion uint64
}

func (o *ObjectOwner) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "Immutable" {
			o.Kind = OwnerImmutable
			return nil
		}
		return fmt.Errorf("unknown owner %q", s)
	}

	var raw struct {
		AddressOwner *SuiAddress `json:"AddressOwner"`
		ObjectOwner  *SuiAddress `json:"ObjectOwner"`
		Shared       *struct {
			InitialSharedVersion Uint64String `json:"initial_shared_version"`
		} `json:"Shared"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.AddressOwner != nil:
		o.Kind = OwnerAddress
		o.Address = *raw.AddressOwner
	case raw.ObjectOwner != nil:
		o.Kind = OwnerObject
		o.Address = *raw.ObjectOwner
	case raw.Shared != nil:
		o.Kind = OwnerShared
		o.InitialSharedVersion = uint64(raw.Shared.InitialSharedVersion)
	default:
		o.Kind = OwnerUnknown
	}
	return nil
}

func (o ObjectOwner) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case OwnerImmutable:
		return json.Marshal("Immutable")
	case OwnerAddress:
		return json.Marshal(map[string]SuiAddress{"AddressOwner": o.Address})
	case OwnerObject:
		return json.Marshal(map[string]SuiAddress{"ObjectOwner": o.Address})
	case OwnerShared:
		return json.Marshal(map[string]any{"Shared": map[string]uint64{"initial_shared_version": o.InitialSharedVersion}})
	default:
		return nil, errors.New("cannot encode unknown owner")
	}
}

// ObjectInfo is the subset of sui_getObject data needed to build inputs.
type ObjectInfo struct {
	ObjectID ObjectID     `json:"objectId"`
	Version  Uint64String `json:"version"`
	Digest   ObjectDigest `json:"digest"`
	Type     string       `json:"type,omitempty"`
	Owner    *ObjectOwner `json:"owner,omitempty"`
}

// Ref returns the object reference of this version.
func (o *ObjectInfo) Ref() ObjectRef {
	return ObjectRef{ObjectID: o.ObjectID, Version: o.Version, Digest: o.Digest}
}

// ObjectResponseError is the error member of a sui_getObject response.
type ObjectResponseError struct {
	Code     string `json:"code"`
	ObjectID string `json:"object_id,omitempty"`
}

func (e *ObjectResponseError) Error() string {
	if e.ObjectID != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.ObjectID)
	}
	return e.Code
}

// ObjectResponse is the raw sui_getObject result.
type ObjectResponse struct {
	Data  *ObjectInfo          `json:"data,omitempty"`
	Error *ObjectResponseError `json:"error,omitempty"`
}

// Coin is one entry of suix_getCoins.
type Coin struct {
	CoinType     string       `json:"coinType"`
	CoinObjectID ObjectID     `json:"coinObjectId"`
	Version      Uint64String `json:"version"`
	Digest       ObjectDigest `json:"digest"`
	Balance      Uint64String `json:"balance"`
}

// Ref returns the coin's object reference.
func (c *Coin) Ref() ObjectRef {
	return ObjectRef{ObjectID: c.CoinObjectID, Version: c.Version, Digest: c.Digest}
}

// CoinPage is one page of suix_getCoins.
type CoinPage struct {
	Data        []Coin  `json:"data"`
	NextCursor  *string `json:"nextCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

// NormalizedStruct is a struct reference inside a normalized Move type.
type NormalizedStruct struct {
	Address       string           `json:"address"`
	Module        string           `json:"module"`
	Name          string           `json:"name"`
	TypeArguments []NormalizedType `json:"typeArguments"`
}

// NormalizedType is a Move type as returned by sui_getNormalizedMoveFunction.
// Exactly one of the fields is set: Primitive for "Bool", "U8".."U256",
// "Address" and "Signer", otherwise one of the composite members.
type NormalizedType struct {
	Primitive        string
	Struct           *NormalizedStruct
	Vector           *NormalizedType
	Reference        *NormalizedType
	MutableReference *NormalizedType
	TypeParameter    *uint16
}

func (t *NormalizedType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Primitive = s
		return nil
	}

	var raw struct {
		Struct           *NormalizedStruct `json:"Struct"`
		Vector           *NormalizedType   `json:"Vector"`
		Reference        *NormalizedType   `json:"Reference"`
		MutableReference *NormalizedType   `json:"MutableReference"`
		TypeParameter    *uint16           `json:"TypeParameter"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Struct = raw.Struct
	t.Vector = raw.Vector
	t.Reference = raw.Reference
	t.MutableReference = raw.MutableReference
	t.TypeParameter = raw.TypeParameter
	return nil
}

func (t NormalizedType) MarshalJSON() ([]byte, error) {
	switch {
	case t.Primitive != "":
		return json.Marshal(t.Primitive)
	case t.Struct != nil:
		return json.Marshal(map[string]any{"Struct": t.Struct})
	case t.Vector != nil:
		return json.Marshal(map[string]any{"Vector": t.Vector})
	case t.Reference != nil:
		return json.Marshal(map[string]any{"Reference": t.Reference})
	case t.MutableReference != nil:
		return json.Marshal(map[string]any{"MutableReference": t.MutableReference})
	case t.TypeParameter != nil:
		return json.Marshal(map[string]any{"TypeParameter": *t.TypeParameter})
	default:
		return nil, errors.New("cannot encode empty normalized type")
	}
}

// Deref strips one level of reference, reporting whether it was mutable.
// By-value parameters are reported as mutable since the call consumes them.
func (t NormalizedType) Deref() (inner NormalizedType, mutable bool) {
	switch {
	case t.Reference != nil:
		return *t.Reference, false
	case t.MutableReference != nil:
		return *t.MutableReference, true
	default:
		return t, true
	}
}

// IsStruct reports whether t is the struct address::module::name (address compared normalized).
func (t NormalizedType) IsStruct(address, module, name string) bool {
	if t.Struct == nil || t.Struct.Module != module || t.Struct.Name != name {
		return false
	}
	want, err := NewSuiAddressFromHex(address)
	if err != nil {
		return false
	}
	got, err := NewSuiAddressFromHex(t.Struct.Address)
	return err == nil && got == want
}

// IsTxContext reports whether t is a (mutable) reference to 0x2::tx_context::TxContext.
func (t NormalizedType) IsTxContext() bool {
	inner, _ := t.Deref()
	return inner.IsStruct("0x2", "tx_context", "TxContext")
}

// NormalizedFunction is the signature of a Move function.
type NormalizedFunction struct {
	Visibility     string           `json:"visibility"`
	IsEntry        bool             `json:"isEntry"`
	TypeParameters []any            `json:"typeParameters"`
	Parameters     []NormalizedType `json:"parameters"`
	Return         []NormalizedType `json:"return"`
}

// CallParameters returns the parameters a caller supplies, without a trailing TxContext.
func (f *NormalizedFunction) CallParameters() []NormalizedType {
	params := f.Parameters
	if n := len(params); n > 0 && params[n-1].IsTxContext() {
		params = params[:n-1]
	}
	return params
}

// GasCostSummary is the gas usage reported in transaction effects.
type GasCostSummary struct {
	ComputationCost         Uint64String `json:"computationCost"`
	StorageCost             Uint64String `json:"storageCost"`
	StorageRebate           Uint64String `json:"storageRebate"`
	NonRefundableStorageFee Uint64String `json:"nonRefundableStorageFee"`
}

// ExecutionStatus is "success" or "failure" with an error message.
type ExecutionStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Succeeded reports whether the execution status is success.
func (s ExecutionStatus) Succeeded() bool {
	return s.Status == "success"
}

// OwnedObjectRef is an object reference together with its new owner.
type OwnedObjectRef struct {
	Owner     ObjectOwner `json:"owner"`
	Reference ObjectRef   `json:"reference"`
}

// TransactionEffects is the subset of effects the tool reports.
type TransactionEffects struct {
	Status            ExecutionStatus  `json:"status"`
	GasUsed           GasCostSummary   `json:"gasUsed"`
	TransactionDigest string           `json:"transactionDigest,omitempty"`
	Created           []OwnedObjectRef `json:"created,omitempty"`
	Mutated           []OwnedObjectRef `json:"mutated,omitempty"`
	Deleted           []ObjectRef      `json:"deleted,omitempty"`
}

// CreatedIDs lists the ids of created objects in effects order.
func (e *TransactionEffects) CreatedIDs() []ObjectID {
	ids := make([]ObjectID, 0, len(e.Created))
	for _, c := range e.Created {
		ids = append(ids, c.Reference.ObjectID)
	}
	return ids
}

// TransactionResponse is the result of executing or dry running a transaction.
type TransactionResponse struct {
	Digest                  string              `json:"digest,omitempty"`
	Effects                 *TransactionEffects `json:"effects,omitempty"`
	ConfirmedLocalExecution *bool               `json:"confirmedLocalExecution,omitempty"`
}

// ResponseOptions selects the optional parts of a transaction response.
type ResponseOptions struct {
	ShowInput          bool `json:"showInput,omitempty"`
	ShowRawInput       bool `json:"showRawInput,omitempty"`
	ShowEffects        bool `json:"showEffects,omitempty"`
	ShowEvents         bool `json:"showEvents,omitempty"`
	ShowObjectChanges  bool `json:"showObjectChanges,omitempty"`
	ShowBalanceChanges bool `json:"showBalanceChanges,omitempty"`
}

// Execution request types accepted by sui_executeTransactionBlock.
const (
	WaitForEffectsCert    = "WaitForEffectsCert"
	WaitForLocalExecution = "WaitForLocalExecution"
)
