package mysticons

import (
	"context"

	"github.com/mysticon-legends/setup/interfaces"
	"github.com/mysticon-legends/setup/txblock"
	"github.com/stretchr/testify/mock"
)

type MockOperator struct {
	mock.Mock
}

func (m *MockOperator) result(args mock.Arguments) (*Result, error) {
	res, _ := args.Get(0).(*Result)
	return res, args.Error(1)
}

func (m *MockOperator) RegisterDisplay(ctx context.Context, p DisplayParams) (*Result, error) {
	return m.result(m.Called(ctx, p))
}

func (m *MockOperator) Mint(ctx context.Context, p MintParams) (*Result, error) {
	return m.result(m.Called(ctx, p))
}

func (m *MockOperator) UpdatePowerLevel(ctx context.Context, asset string, powerLevel uint64) (*Result, error) {
	return m.result(m.Called(ctx, asset, powerLevel))
}

func (m *MockOperator) AttachCreature(ctx context.Context, asset string, p CreatureParams) (*Result, error) {
	return m.result(m.Called(ctx, asset, p))
}

func (m *MockOperator) Lock(ctx context.Context, asset string) (*Result, error) {
	return m.result(m.Called(ctx, asset))
}

func (m *MockOperator) Burn(ctx context.Context, asset string) (*Result, error) {
	return m.result(m.Called(ctx, asset))
}

type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Execute(ctx context.Context, b *txblock.Builder) (*interfaces.TransactionResponse, error) {
	args := m.Called(ctx, b)
	resp, _ := args.Get(0).(*interfaces.TransactionResponse)
	return resp, args.Error(1)
}
