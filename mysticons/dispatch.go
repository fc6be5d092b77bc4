package mysticons

import (
	"context"
	"fmt"
)

// Operator runs the individual operations. Session implements it.
type Operator interface {
	RegisterDisplay(ctx context.Context, p DisplayParams) (*Result, error)
	Mint(ctx context.Context, p MintParams) (*Result, error)
	UpdatePowerLevel(ctx context.Context, asset string, powerLevel uint64) (*Result, error)
	AttachCreature(ctx context.Context, asset string, p CreatureParams) (*Result, error)
	Lock(ctx context.Context, asset string) (*Result, error)
	Burn(ctx context.Context, asset string) (*Result, error)
}

var _ Operator = (*Session)(nil)

// Dispatch runs exactly one operation with the arguments from req.
func Dispatch(ctx context.Context, op Operator, operation Operation, req Request) (*Result, error) {
	switch operation {
	case OpRegisterDisplay:
		return op.RegisterDisplay(ctx, req.Display)
	case OpMint:
		return op.Mint(ctx, req.Mint)
	case OpUpdatePowerLevel:
		return op.UpdatePowerLevel(ctx, req.Asset, req.PowerLevel)
	case OpAttachCreature:
		return op.AttachCreature(ctx, req.Asset, req.Creature)
	case OpLock:
		return op.Lock(ctx, req.Asset)
	case OpBurn:
		return op.Burn(ctx, req.Asset)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperation, int(operation))
	}
}
