package suiclient

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/mysticon-legends/setup/cryptoutils"
	"github.com/mysticon-legends/setup/interfaces"
	"go.uber.org/atomic"
)

// ExecutedTransaction is a transaction accepted by a MockNode.
type ExecutedTransaction struct {
	Digest  string
	TxBytes []byte
	Signer  interfaces.SuiAddress
}

// MockNode is an in-memory Sui node for tests. It serves the subset of the
// JSON-RPC API used by Client, checks signatures on execution and records
// executed transactions. It does not run Move code: effects are whatever the
// test configured.
type MockNode struct {
	mu        sync.RWMutex
	objects   map[interfaces.ObjectID]*interfaces.ObjectInfo
	functions map[string]*interfaces.NormalizedFunction
	coins     map[interfaces.SuiAddress][]interfaces.Coin
	gasPrice  uint64
	gasUsed   interfaces.GasCostSummary
	abort     string
	created   []interfaces.ObjectID
	executed  []ExecutedTransaction

	calls   *atomic.Int64
	dryRuns *atomic.Int64

	server *rpc.Server
}

// NewMockNode creates a node with a reference gas price of 1000 and a small
// fixed gas usage for every transaction.
func NewMockNode() *MockNode {
	node := &MockNode{
		objects:   make(map[interfaces.ObjectID]*interfaces.ObjectInfo),
		functions: make(map[string]*interfaces.NormalizedFunction),
		coins:     make(map[interfaces.SuiAddress][]interfaces.Coin),
		gasPrice:  1000,
		gasUsed: interfaces.GasCostSummary{
			ComputationCost: 1_000_000,
			StorageCost:     2_000_000,
			StorageRebate:   1_000_000,
		},
		calls:   atomic.NewInt64(0),
		dryRuns: atomic.NewInt64(0),
		server:  rpc.NewServer(),
	}

	if err := node.server.RegisterName("sui", &suiAPI{node}); err != nil {
		panic(err)
	}
	if err := node.server.RegisterName("suix", &suixAPI{node}); err != nil {
		panic(err)
	}
	return node
}

// Client returns a Client connected to the node in-process.
func (m *MockNode) Client() *Client {
	return NewClient(rpc.DialInProc(m.server))
}

// Handler serves the node's JSON-RPC API over HTTP.
func (m *MockNode) Handler() http.Handler {
	return m.server
}

// Stop closes all connections to the node.
func (m *MockNode) Stop() {
	m.server.Stop()
}

// AddOwnedObject registers an object owned by owner and returns its id.
func (m *MockNode) AddOwnedObject(id string, owner interfaces.SuiAddress, objectType string) interfaces.ObjectID {
	oid := interfaces.MustSuiAddress(id)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[oid] = &interfaces.ObjectInfo{
		ObjectID: oid,
		Version:  1,
		Digest:   interfaces.ObjectDigest(oid),
		Type:     objectType,
		Owner:    &interfaces.ObjectOwner{Kind: interfaces.OwnerAddress, Address: owner},
	}
	return oid
}

// AddSharedObject registers a shared object and returns its id.
func (m *MockNode) AddSharedObject(id string, initialSharedVersion uint64, objectType string) interfaces.ObjectID {
	oid := interfaces.MustSuiAddress(id)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[oid] = &interfaces.ObjectInfo{
		ObjectID: oid,
		Version:  interfaces.Uint64String(initialSharedVersion),
		Digest:   interfaces.ObjectDigest(oid),
		Type:     objectType,
		Owner:    &interfaces.ObjectOwner{Kind: interfaces.OwnerShared, InitialSharedVersion: initialSharedVersion},
	}
	return oid
}

// AddFunction registers the signature of pkg::module::function.
func (m *MockNode) AddFunction(pkg interfaces.ObjectID, module, function string, fn *interfaces.NormalizedFunction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.functions[functionKey(pkg, module, function)] = fn
}

// AddGasCoin gives owner a SUI coin with the given balance.
func (m *MockNode) AddGasCoin(owner interfaces.SuiAddress, balance uint64) interfaces.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.objects) + len(m.coins[owner]) + 1
	id := interfaces.MustSuiAddress(fmt.Sprintf("0xc011%04x", n))
	m.coins[owner] = append(m.coins[owner], interfaces.Coin{
		CoinType:     "0x2::sui::SUI",
		CoinObjectID: id,
		Version:      1,
		Digest:       interfaces.ObjectDigest(id),
		Balance:      interfaces.Uint64String(balance),
	})
	return id
}

// SetGasUsed changes the gas summary reported by dry runs and executions.
func (m *MockNode) SetGasUsed(gas interfaces.GasCostSummary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gasUsed = gas
}

// AbortWith makes subsequent executions and dry runs fail with msg.
// An empty msg restores success.
func (m *MockNode) AbortWith(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.abort = msg
}

// SetCreatedObjects sets the objects reported as created by the next executions.
func (m *MockNode) SetCreatedObjects(ids ...interfaces.ObjectID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = ids
}

// Executed returns the transactions accepted so far.
func (m *MockNode) Executed() []ExecutedTransaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]ExecutedTransaction{}, m.executed...)
}

// Calls returns the number of RPC requests served.
func (m *MockNode) Calls() int64 {
	return m.calls.Load()
}

// DryRuns returns the number of dry runs served.
func (m *MockNode) DryRuns() int64 {
	return m.dryRuns.Load()
}

func (m *MockNode) effects(digest string, owner interfaces.SuiAddress) *interfaces.TransactionEffects {
	m.mu.RLock()
	defer m.mu.RUnlock()

	effects := &interfaces.TransactionEffects{
		Status:            interfaces.ExecutionStatus{Status: "success"},
		GasUsed:           m.gasUsed,
		TransactionDigest: digest,
	}
	if m.abort != "" {
		effects.Status = interfaces.ExecutionStatus{Status: "failure", Error: m.abort}
		return effects
	}
	for _, id := range m.created {
		effects.Created = append(effects.Created, interfaces.OwnedObjectRef{
			Owner:     interfaces.ObjectOwner{Kind: interfaces.OwnerAddress, Address: owner},
			Reference: interfaces.ObjectRef{ObjectID: id, Version: 1, Digest: interfaces.ObjectDigest(id)},
		})
	}
	return effects
}

func functionKey(pkg interfaces.ObjectID, module, function string) string {
	return fmt.Sprintf("%s::%s::%s", pkg, module, function)
}

type suiAPI struct {
	node *MockNode
}

func (api *suiAPI) GetObject(_ context.Context, id interfaces.ObjectID, _ map[string]bool) (*interfaces.ObjectResponse, error) {
	api.node.calls.Inc()
	api.node.mu.RLock()
	defer api.node.mu.RUnlock()

	info, ok := api.node.objects[id]
	if !ok {
		return &interfaces.ObjectResponse{Error: &interfaces.ObjectResponseError{Code: "notExists", ObjectID: id.String()}}, nil
	}
	copied := *info
	return &interfaces.ObjectResponse{Data: &copied}, nil
}

func (api *suiAPI) GetNormalizedMoveFunction(_ context.Context, pkg interfaces.ObjectID, module, function string) (*interfaces.NormalizedFunction, error) {
	api.node.calls.Inc()
	api.node.mu.RLock()
	defer api.node.mu.RUnlock()

	fn, ok := api.node.functions[functionKey(pkg, module, function)]
	if !ok {
		return nil, fmt.Errorf("No function was found with function name %s", function)
	}
	return fn, nil
}

func (api *suiAPI) DryRunTransactionBlock(_ context.Context, txB64 string) (*interfaces.TransactionResponse, error) {
	api.node.calls.Inc()
	api.node.dryRuns.Inc()

	txBytes, err := base64.StdEncoding.DecodeString(txB64)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction bytes: %w", err)
	}
	digest := cryptoutils.TransactionDigest(txBytes)
	return &interfaces.TransactionResponse{Effects: api.node.effects(digest, interfaces.SuiAddress{})}, nil
}

func (api *suiAPI) ExecuteTransactionBlock(_ context.Context, txB64 string, signatures []string, opts *interfaces.ResponseOptions, _ *string) (*interfaces.TransactionResponse, error) {
	api.node.calls.Inc()

	txBytes, err := base64.StdEncoding.DecodeString(txB64)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction bytes: %w", err)
	}
	if len(signatures) != 1 {
		return nil, errors.New("expected exactly one signature")
	}
	signer, err := cryptoutils.VerifyTransactionSignature(txBytes, signatures[0])
	if err != nil {
		return nil, err
	}

	digest := cryptoutils.TransactionDigest(txBytes)
	resp := &interfaces.TransactionResponse{Digest: digest}
	effects := api.node.effects(digest, signer)
	if opts != nil && opts.ShowEffects {
		resp.Effects = effects
	}

	api.node.mu.Lock()
	api.node.executed = append(api.node.executed, ExecutedTransaction{Digest: digest, TxBytes: txBytes, Signer: signer})
	api.node.mu.Unlock()

	return resp, nil
}

type suixAPI struct {
	node *MockNode
}

func (api *suixAPI) GetReferenceGasPrice(context.Context) (interfaces.Uint64String, error) {
	api.node.calls.Inc()
	api.node.mu.RLock()
	defer api.node.mu.RUnlock()
	return interfaces.Uint64String(api.node.gasPrice), nil
}

// GetCoins pages through owner's coins two at a time so clients exercise pagination.
func (api *suixAPI) GetCoins(_ context.Context, owner interfaces.SuiAddress, _ string, cursor *string, _ *uint) (*interfaces.CoinPage, error) {
	api.node.calls.Inc()
	api.node.mu.RLock()
	defer api.node.mu.RUnlock()

	const pageSize = 2
	start := 0
	if cursor != nil {
		n, err := strconv.Atoi(*cursor)
		if err != nil {
			return nil, fmt.Errorf("invalid cursor %q", *cursor)
		}
		start = n
	}

	coins := api.node.coins[owner]
	start = min(start, len(coins))
	end := min(start+pageSize, len(coins))
	page := &interfaces.CoinPage{
		Data:        append([]interfaces.Coin{}, coins[start:end]...),
		HasNextPage: end < len(coins),
	}
	if page.HasNextPage {
		next := strconv.Itoa(end)
		page.NextCursor = &next
	}
	return page, nil
}
