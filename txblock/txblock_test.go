package txblock

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mysticon-legends/setup/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testPackage = interfaces.MustSuiAddress("0xabc")
	testSender  = interfaces.MustSuiAddress("0x5e")
	testAdmin   = interfaces.MustSuiAddress("0xad")
)

type fakeChain struct {
	objects   map[interfaces.ObjectID]*interfaces.ObjectInfo
	functions map[string]*interfaces.NormalizedFunction
	coins     []interfaces.Coin
	pageSize  int
	gasPrice  uint64
	dryRun    *interfaces.TransactionResponse
	dryRunErr error

	functionCalls int
	dryRunCalls   int
	coinPages     int
	lastDryRun    []byte
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		objects:   make(map[interfaces.ObjectID]*interfaces.ObjectInfo),
		functions: make(map[string]*interfaces.NormalizedFunction),
		pageSize:  50,
		gasPrice:  1000,
		dryRun: &interfaces.TransactionResponse{Effects: &interfaces.TransactionEffects{
			Status: interfaces.ExecutionStatus{Status: "success"},
			GasUsed: interfaces.GasCostSummary{
				ComputationCost: 1_000_000,
				StorageCost:     2_000_000,
				StorageRebate:   500_000,
			},
		}},
	}
}

func (f *fakeChain) addOwned(id string, version uint64) interfaces.ObjectID {
	oid := interfaces.MustSuiAddress(id)
	f.objects[oid] = &interfaces.ObjectInfo{
		ObjectID: oid,
		Version:  interfaces.Uint64String(version),
		Digest:   interfaces.ObjectDigest{byte(version)},
		Owner:    &interfaces.ObjectOwner{Kind: interfaces.OwnerAddress, Address: testSender},
	}
	return oid
}

func (f *fakeChain) addShared(id string, initial uint64) interfaces.ObjectID {
	oid := interfaces.MustSuiAddress(id)
	f.objects[oid] = &interfaces.ObjectInfo{
		ObjectID: oid,
		Version:  interfaces.Uint64String(initial + 10),
		Owner:    &interfaces.ObjectOwner{Kind: interfaces.OwnerShared, InitialSharedVersion: initial},
	}
	return oid
}

func (f *fakeChain) addFunction(module, name string, params ...interfaces.NormalizedType) {
	txCtx := interfaces.NormalizedType{MutableReference: &interfaces.NormalizedType{Struct: &interfaces.NormalizedStruct{
		Address: "0x2", Module: "tx_context", Name: "TxContext",
	}}}
	f.functions[fmt.Sprintf("%s::%s::%s", testPackage, module, name)] = &interfaces.NormalizedFunction{
		IsEntry:    true,
		Parameters: append(params, txCtx),
	}
}

func (f *fakeChain) addCoins(balances ...uint64) {
	for _, b := range balances {
		n := len(f.coins) + 1
		f.coins = append(f.coins, interfaces.Coin{
			CoinType:     SuiCoinType,
			CoinObjectID: interfaces.MustSuiAddress(fmt.Sprintf("0xc0%02x", n)),
			Version:      interfaces.Uint64String(n),
			Balance:      interfaces.Uint64String(b),
		})
	}
}

func (f *fakeChain) GetObject(_ context.Context, id interfaces.ObjectID) (*interfaces.ObjectInfo, error) {
	info, ok := f.objects[id]
	if !ok {
		return nil, &interfaces.ObjectResponseError{Code: "notExists", ObjectID: id.String()}
	}
	return info, nil
}

func (f *fakeChain) GetNormalizedMoveFunction(_ context.Context, pkg interfaces.ObjectID, module, function string) (*interfaces.NormalizedFunction, error) {
	f.functionCalls++
	fn, ok := f.functions[fmt.Sprintf("%s::%s::%s", pkg, module, function)]
	if !ok {
		return nil, fmt.Errorf("function %s::%s not found", module, function)
	}
	return fn, nil
}

func (f *fakeChain) GetReferenceGasPrice(context.Context) (uint64, error) {
	return f.gasPrice, nil
}

func (f *fakeChain) GetCoins(_ context.Context, _ interfaces.SuiAddress, coinType string, cursor *string) (*interfaces.CoinPage, error) {
	f.coinPages++
	start := 0
	if cursor != nil {
		_, err := fmt.Sscanf(*cursor, "%d", &start)
		if err != nil {
			return nil, err
		}
	}
	end := min(start+f.pageSize, len(f.coins))
	page := &interfaces.CoinPage{Data: f.coins[start:end], HasNextPage: end < len(f.coins)}
	if page.HasNextPage {
		next := fmt.Sprint(end)
		page.NextCursor = &next
	}
	return page, nil
}

func (f *fakeChain) DryRunTransactionBlock(_ context.Context, txBytes []byte) (*interfaces.TransactionResponse, error) {
	f.dryRunCalls++
	f.lastDryRun = txBytes
	return f.dryRun, f.dryRunErr
}

var (
	u64Type     = interfaces.NormalizedType{Primitive: "U64"}
	stringType  = interfaces.NormalizedType{Struct: &interfaces.NormalizedStruct{Address: "0x1", Module: "string", Name: "String"}}
	assetStruct = interfaces.NormalizedType{Struct: &interfaces.NormalizedStruct{Address: testPackage.String(), Module: "mysticons", Name: "Mysticon"}}
)

func mutRef(t interfaces.NormalizedType) interfaces.NormalizedType {
	return interfaces.NormalizedType{MutableReference: &t}
}

func immRef(t interfaces.NormalizedType) interfaces.NormalizedType {
	return interfaces.NormalizedType{Reference: &t}
}

func TestMarshalLayout(t *testing.T) {
	b := NewBuilder()
	b.MoveCall("0x2::m::f", nil, b.PureBytes([]byte{0x05}))
	b.SetSender(testSender)

	data, err := b.transactionData(GasData{Owner: testAdmin, Price: 1, Budget: 2})
	require.NoError(t, err)
	got, err := data.Marshal()
	require.NoError(t, err)

	var want []byte
	want = append(want, 0x00, 0x00)             // V1, programmable
	want = append(want, 0x01, 0x00, 0x01, 0x05) // one pure input
	want = append(want, 0x01, 0x00)             // one move call
	want = append(want, interfaces.MustSuiAddress("0x2").Bytes()...)
	want = append(want, 0x01, 'm', 0x01, 'f', 0x00)
	want = append(want, 0x01, 0x01, 0x00, 0x00) // Input(0)
	want = append(want, testSender.Bytes()...)
	want = append(want, 0x00) // no payment
	want = append(want, testAdmin.Bytes()...)
	want = append(want, 1, 0, 0, 0, 0, 0, 0, 0)
	want = append(want, 2, 0, 0, 0, 0, 0, 0, 0)
	want = append(want, 0x00) // no expiration

	assert.Equal(t, want, got)
}

func TestMarshalObjectsAndTransfer(t *testing.T) {
	owned := interfaces.ObjectRef{ObjectID: interfaces.MustSuiAddress("0xa"), Version: 7}
	owned.Digest[0] = 0xdd
	data := &TransactionData{
		Sender: testSender,
		Inputs: []CallArg{
			{Object: &ObjectArg{ImmOrOwned: &owned}},
			{Object: &ObjectArg{Shared: &SharedObject{ObjectID: interfaces.MustSuiAddress("0xb"), InitialSharedVersion: 3, Mutable: true}}},
		},
		Commands: []Command{
			{TransferObjects: &TransferObjects{Objects: []Argument{NestedResult(0, 1), GasCoin()}, Address: Input(1)}},
		},
		Gas: GasData{Payment: []interfaces.ObjectRef{owned}, Owner: testSender, Price: 1, Budget: 1},
	}

	got, err := data.Marshal()
	require.NoError(t, err)

	ref := append(interfaces.MustSuiAddress("0xa").Bytes(), 7, 0, 0, 0, 0, 0, 0, 0, 32, 0xdd)
	ref = append(ref, make([]byte, 31)...)

	var want []byte
	want = append(want, 0x00, 0x00, 0x02)
	want = append(want, 0x01, 0x00) // Object, ImmOrOwned
	want = append(want, ref...)
	want = append(want, 0x01, 0x01) // Object, Shared
	want = append(want, interfaces.MustSuiAddress("0xb").Bytes()...)
	want = append(want, 3, 0, 0, 0, 0, 0, 0, 0, 0x01)
	want = append(want, 0x01, 0x01, 0x02) // one TransferObjects with two objects
	want = append(want, 0x03, 0x00, 0x00, 0x01, 0x00, 0x00)
	want = append(want, 0x01, 0x01, 0x00)
	want = append(want, testSender.Bytes()...)
	want = append(want, 0x01)
	want = append(want, ref...)
	want = append(want, testSender.Bytes()...)
	want = append(want, 1, 0, 0, 0, 0, 0, 0, 0)
	want = append(want, 1, 0, 0, 0, 0, 0, 0, 0)
	want = append(want, 0x00)

	assert.Equal(t, want, got)

	_, err = (&TransactionData{Inputs: []CallArg{{}}}).Marshal()
	assert.ErrorIs(t, err, ErrUnresolvedInput)
}

func TestObjectInputsAreDeduplicated(t *testing.T) {
	b := NewBuilder()
	first := b.Object("0x1")
	second := b.Object("0x0000000000000000000000000000000000000000000000000000000000000001")
	other := b.Object("0x2")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, b.Inputs(), 2)
}

func TestInvalidObjectIDFailsBuild(t *testing.T) {
	for _, id := range []string{"", "0xzz", "not-an-id"} {
		b := NewBuilder()
		b.MoveCall("0xabc::mysticons::lock_mysticon", nil, b.Object(id))
		b.SetSender(testSender)

		_, err := b.Build(context.Background(), newFakeChain())
		require.ErrorIs(t, err, ErrInvalidObjectID, "id %q", id)
	}
}

func TestInvalidTarget(t *testing.T) {
	b := NewBuilder()
	b.MoveCall("0xabc::mysticons", nil)
	require.ErrorIs(t, b.Err(), ErrInvalidTarget)
}

func TestBuildRequiresSender(t *testing.T) {
	b := NewBuilder()
	b.MoveCall("0xabc::mysticons::lock_mysticon", nil, b.Object("0x1"))
	_, err := b.Build(context.Background(), newFakeChain())
	require.ErrorIs(t, err, ErrMissingSender)
}

func TestBuildResolvesInputsAndGas(t *testing.T) {
	chain := newFakeChain()
	adminCap := chain.addOwned("0xcaf", 7)
	chain.addFunction("mysticons", "new_mysticon", immRef(interfaces.NormalizedType{Struct: &interfaces.NormalizedStruct{
		Address: testPackage.String(), Module: "mysticons", Name: "AdminCap",
	}}), stringType, u64Type)
	chain.addCoins(1_000_000, 5_000_000)

	b := NewBuilder()
	minted := b.MoveCall(testPackage.String()+"::mysticons::new_mysticon", nil,
		b.Object(adminCap.String()), b.Pure("Frostwing"), b.Pure(uint64(10)))
	b.TransferObjects([]Argument{minted}, b.Pure(testAdmin.String()))
	b.SetSender(testSender)

	txBytes, err := b.Build(context.Background(), chain)
	require.NoError(t, err)
	require.NotEmpty(t, txBytes)

	inputs := b.Inputs()
	require.Len(t, inputs, 4)
	require.NotNil(t, inputs[0].Object)
	require.NotNil(t, inputs[0].Object.ImmOrOwned)
	assert.Equal(t, interfaces.Uint64String(7), inputs[0].Object.ImmOrOwned.Version)
	assert.Equal(t, append([]byte{9}, "Frostwing"...), inputs[1].Pure)
	assert.Equal(t, []byte{10, 0, 0, 0, 0, 0, 0, 0}, inputs[2].Pure)
	assert.Equal(t, testAdmin.Bytes(), inputs[3].Pure)

	// computation + 1000*price + storage - rebate
	assert.Equal(t, uint64(1_000_000+1_000_000+2_000_000-500_000), b.GasBudget())
	assert.Equal(t, 1, chain.dryRunCalls)

	// 1_000_000 does not cover 3_500_000, the second coin does
	require.Len(t, b.gasPayment, 2)
	assert.Equal(t, chain.coins[0].CoinObjectID, b.gasPayment[0].ObjectID)
}

func TestBuildCachesSignatures(t *testing.T) {
	chain := newFakeChain()
	asset := chain.addOwned("0xa1", 3)
	chain.addFunction("mysticons", "attach_creature", mutRef(assetStruct), stringType, stringType)
	chain.addFunction("mysticons", "pay_invoice", mutRef(assetStruct), interfaces.NormalizedType{Struct: &interfaces.NormalizedStruct{
		Address: testPackage.String(), Module: "mysticons", Name: "Invoice",
	}})
	chain.addFunction("mysticons", "lock_mysticon", mutRef(assetStruct))
	chain.addCoins(10_000_000_000)

	b := NewBuilder()
	target := testPackage.String() + "::mysticons::"
	invoice := b.MoveCall(target+"attach_creature", nil, b.Object(asset.String()), b.Pure("Frostbite"), b.Pure("fox"))
	b.MoveCall(target+"pay_invoice", nil, b.Object(asset.String()), invoice)
	b.MoveCall(target+"lock_mysticon", nil, b.Object(asset.String()))
	b.MoveCall(target+"lock_mysticon", nil, b.Object(asset.String()))
	b.SetSender(testSender)
	b.SetGasBudget(2_000_000_000)

	_, err := b.Build(context.Background(), chain)
	require.NoError(t, err)
	assert.Equal(t, 3, chain.functionCalls)
	assert.Equal(t, 0, chain.dryRunCalls)
	assert.Len(t, b.Inputs(), 3)
}

func TestSharedObjectMutability(t *testing.T) {
	chain := newFakeChain()
	readOnly := chain.addShared("0x51", 4)
	writable := chain.addShared("0x52", 5)
	chain.addFunction("mysticons", "inspect", immRef(assetStruct))
	chain.addFunction("mysticons", "train_mysticon", mutRef(assetStruct), u64Type)
	chain.addCoins(10_000_000_000)

	b := NewBuilder()
	b.MoveCall(testPackage.String()+"::mysticons::inspect", nil, b.Object(readOnly.String()))
	b.MoveCall(testPackage.String()+"::mysticons::train_mysticon", nil, b.Object(writable.String()), b.Pure(100))
	b.SetSender(testSender)

	_, err := b.Build(context.Background(), chain)
	require.NoError(t, err)

	inputs := b.Inputs()
	require.NotNil(t, inputs[0].Object.Shared)
	assert.False(t, inputs[0].Object.Shared.Mutable)
	assert.Equal(t, uint64(4), inputs[0].Object.Shared.InitialSharedVersion)
	require.NotNil(t, inputs[1].Object.Shared)
	assert.True(t, inputs[1].Object.Shared.Mutable)
}

func TestArgumentCountMismatch(t *testing.T) {
	chain := newFakeChain()
	asset := chain.addOwned("0xa1", 3)
	chain.addFunction("mysticons", "train_mysticon", mutRef(assetStruct), u64Type)

	b := NewBuilder()
	b.MoveCall(testPackage.String()+"::mysticons::train_mysticon", nil, b.Object(asset.String()))
	b.SetSender(testSender)

	_, err := b.Build(context.Background(), chain)
	require.ErrorContains(t, err, "expects 2 arguments, got 1")
}

func TestUnknownObject(t *testing.T) {
	chain := newFakeChain()
	chain.addFunction("mysticons", "lock_mysticon", mutRef(assetStruct))

	b := NewBuilder()
	b.MoveCall(testPackage.String()+"::mysticons::lock_mysticon", nil, b.Object("0xdead"))
	b.SetSender(testSender)

	_, err := b.Build(context.Background(), chain)
	var notFound *interfaces.ObjectResponseError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "notExists", notFound.Code)
}

func TestDryRunFailure(t *testing.T) {
	chain := newFakeChain()
	asset := chain.addOwned("0xa1", 3)
	chain.addFunction("mysticons", "lock_mysticon", mutRef(assetStruct))
	chain.dryRun = &interfaces.TransactionResponse{Effects: &interfaces.TransactionEffects{
		Status: interfaces.ExecutionStatus{Status: "failure", Error: "MoveAbort(1)"},
	}}

	b := NewBuilder()
	b.MoveCall(testPackage.String()+"::mysticons::lock_mysticon", nil, b.Object(asset.String()))
	b.SetSender(testSender)

	_, err := b.Build(context.Background(), chain)
	require.ErrorIs(t, err, ErrDryRunFailed)
	assert.ErrorContains(t, err, "MoveAbort(1)")
}

func TestGasSelectionPagesAndFails(t *testing.T) {
	chain := newFakeChain()
	asset := chain.addOwned("0xa1", 3)
	chain.addFunction("mysticons", "lock_mysticon", mutRef(assetStruct))
	chain.pageSize = 2
	chain.addCoins(100, 100, 100, 100, 100)

	b := NewBuilder()
	b.MoveCall(testPackage.String()+"::mysticons::lock_mysticon", nil, b.Object(asset.String()))
	b.SetSender(testSender)
	b.SetGasPrice(1)
	b.SetGasBudget(350)

	_, err := b.Build(context.Background(), chain)
	require.NoError(t, err)
	assert.Len(t, b.gasPayment, 4)
	assert.Equal(t, 2, chain.coinPages)

	chain.coinPages = 0
	b = NewBuilder()
	b.MoveCall(testPackage.String()+"::mysticons::lock_mysticon", nil, b.Object(asset.String()))
	b.SetSender(testSender)
	b.SetGasPrice(1)
	b.SetGasBudget(10_000)

	_, err = b.Build(context.Background(), chain)
	require.ErrorIs(t, err, ErrInsufficientGas)
	assert.Equal(t, 3, chain.coinPages)
}

func TestGasBudgetFromSummary(t *testing.T) {
	// rebate larger than storage falls back to computation plus overhead
	assert.Equal(t, uint64(1_000+1_000*5), GasBudgetFromSummary(interfaces.GasCostSummary{
		ComputationCost: 1_000, StorageCost: 10, StorageRebate: 1_000_000,
	}, 5))

	assert.Equal(t, uint64(1_000+1_000*5+90), GasBudgetFromSummary(interfaces.GasCostSummary{
		ComputationCost: 1_000, StorageCost: 100, StorageRebate: 10,
	}, 5))
}

func TestGenericPureArgument(t *testing.T) {
	chain := newFakeChain()
	tp := uint16(0)
	chain.addFunction("display", "add", interfaces.NormalizedType{TypeParameter: &tp})
	chain.addCoins(10_000_000_000)

	b := NewBuilder()
	b.MoveCall(testPackage.String()+"::display::add", []string{"u8"}, b.Pure(7))
	b.SetSender(testSender)
	b.SetGasBudget(1_000)

	_, err := b.Build(context.Background(), chain)
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, b.Inputs()[0].Pure)
}
