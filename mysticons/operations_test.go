package mysticons

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseOperation(t *testing.T) {
	op, err := ParseOperation("")
	require.NoError(t, err)
	assert.Equal(t, OpRegisterDisplay, op)

	for _, want := range Operations() {
		got, err := ParseOperation(want.CommandName())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = ParseOperation("mintmysticon")
	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestOperationMetadata(t *testing.T) {
	assert.Len(t, Operations(), 6)
	for _, op := range Operations() {
		assert.True(t, op.Valid())
		assert.NotEmpty(t, op.CommandName())
		assert.Contains(t, op.RequiredConfig(), EnvPackageID)
	}
	assert.False(t, Operation(42).Valid())
	assert.Equal(t, "operation(42)", Operation(42).String())

	assert.False(t, OpMint.NeedsAsset())
	assert.True(t, OpBurn.NeedsAsset())
	assert.Contains(t, OpRegisterDisplay.RequiredConfig(), EnvPublisherID)
	assert.Contains(t, OpMint.RequiredConfig(), EnvAdminCapID)
}

func TestDispatchRoutesToOneHandler(t *testing.T) {
	ctx := context.Background()
	req := DefaultRequest()
	req.Asset = "0xa55e7"
	done := &Result{Status: "success"}

	expectations := map[Operation]func(m *MockOperator){
		OpRegisterDisplay: func(m *MockOperator) { m.On("RegisterDisplay", ctx, req.Display).Return(done, nil) },
		OpMint:            func(m *MockOperator) { m.On("Mint", ctx, req.Mint).Return(done, nil) },
		OpUpdatePowerLevel: func(m *MockOperator) {
			m.On("UpdatePowerLevel", ctx, req.Asset, DefaultTrainedPowerLevel).Return(done, nil)
		},
		OpAttachCreature: func(m *MockOperator) { m.On("AttachCreature", ctx, req.Asset, req.Creature).Return(done, nil) },
		OpLock:           func(m *MockOperator) { m.On("Lock", ctx, req.Asset).Return(done, nil) },
		OpBurn:           func(m *MockOperator) { m.On("Burn", ctx, req.Asset).Return(done, nil) },
	}
	require.Len(t, expectations, len(Operations()))

	for _, op := range Operations() {
		t.Run(op.String(), func(t *testing.T) {
			m := &MockOperator{}
			expectations[op](m)

			res, err := Dispatch(ctx, m, op, req)
			require.NoError(t, err)
			assert.Same(t, done, res)

			m.AssertExpectations(t)
			assert.Len(t, m.Calls, 1)
		})
	}
}

func TestDispatchUnknownOperation(t *testing.T) {
	m := &MockOperator{}
	_, err := Dispatch(context.Background(), m, Operation(99), DefaultRequest())
	require.ErrorIs(t, err, ErrUnknownOperation)
	m.AssertNotCalled(t, "RegisterDisplay", mock.Anything, mock.Anything)
	assert.Empty(t, m.Calls)
}
