package txblock

import (
	"context"
	"fmt"

	"github.com/mysticon-legends/setup/interfaces"
)

const (
	// MaxGasBudget is the budget used when dry running to estimate gas.
	MaxGasBudget uint64 = 50_000_000_000
	// GasSafeOverhead is multiplied by the gas price and added to the estimated computation cost.
	GasSafeOverhead uint64 = 1000
	// MaxGasObjects caps the number of coins used for gas payment.
	MaxGasObjects = 256

	SuiCoinType = "0x2::sui::SUI"
)

type inputUsage struct {
	pureType   *interfaces.NormalizedType
	byValue    bool
	mutable    bool
	usedAsCall bool
}

// Build resolves every input against the chain, fills in any gas settings
// that were not set explicitly and returns the BCS transaction bytes.
//
// Resolution order is object/pure inputs, gas price, gas budget (dry run
// with MaxGasBudget), then gas payment.
func (b *Builder) Build(ctx context.Context, chain interfaces.ChainReader) ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.sender == nil {
		return nil, ErrMissingSender
	}

	if err := b.resolveInputs(ctx, chain); err != nil {
		return nil, err
	}

	if b.gasPrice == 0 {
		price, err := chain.GetReferenceGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not fetch reference gas price: %w", err)
		}
		b.gasPrice = price
	}

	if b.gasBudget == 0 {
		budget, err := b.estimateGasBudget(ctx, chain)
		if err != nil {
			return nil, err
		}
		b.gasBudget = budget
	}

	if b.gasPayment == nil {
		payment, err := b.selectGasPayment(ctx, chain)
		if err != nil {
			return nil, err
		}
		b.gasPayment = payment
	}

	data, err := b.transactionData(GasData{
		Payment: b.gasPayment,
		Owner:   b.gasOwnerOrSender(),
		Price:   b.gasPrice,
		Budget:  b.gasBudget,
	})
	if err != nil {
		return nil, err
	}
	return data.Marshal()
}

func (b *Builder) resolveInputs(ctx context.Context, chain interfaces.ChainReader) error {
	usages := make([]inputUsage, len(b.inputs))
	signatures := make(map[string]*interfaces.NormalizedFunction)

	inputAt := func(arg Argument) (*inputUsage, *CallArg, error) {
		if arg.Kind != ArgInput {
			return nil, nil, nil
		}
		if int(arg.Index) >= len(b.inputs) {
			return nil, nil, fmt.Errorf("%w: input %d does not exist", ErrUnresolvedInput, arg.Index)
		}
		return &usages[arg.Index], &b.inputs[arg.Index], nil
	}

	for cmdIdx, cmd := range b.commands {
		switch {
		case cmd.MoveCall != nil:
			call := cmd.MoveCall
			fn, ok := signatures[call.Target()]
			if !ok {
				var err error
				fn, err = chain.GetNormalizedMoveFunction(ctx, call.Package, call.Module, call.Function)
				if err != nil {
					return fmt.Errorf("could not fetch signature of %s: %w", call.Target(), err)
				}
				signatures[call.Target()] = fn
			}

			params := fn.CallParameters()
			if len(params) != len(call.Arguments) {
				return fmt.Errorf("command %d: %s expects %d arguments, got %d", cmdIdx, call.Target(), len(params), len(call.Arguments))
			}

			for i, arg := range call.Arguments {
				usage, in, err := inputAt(arg)
				if err != nil {
					return fmt.Errorf("command %d: %w", cmdIdx, err)
				}
				if in == nil {
					continue
				}

				if in.isPure() {
					if usage.pureType == nil {
						t, err := substituteTypeParameters(params[i], call.TypeArguments)
						if err != nil {
							return fmt.Errorf("command %d argument %d: %w", cmdIdx, i, err)
						}
						usage.pureType = &t
					}
					continue
				}

				_, mutable := params[i].Deref()
				usage.usedAsCall = true
				usage.mutable = usage.mutable || mutable
			}

		case cmd.TransferObjects != nil:
			for _, obj := range cmd.TransferObjects.Objects {
				usage, _, err := inputAt(obj)
				if err != nil {
					return fmt.Errorf("command %d: %w", cmdIdx, err)
				}
				if usage != nil {
					usage.byValue = true
				}
			}
			usage, _, err := inputAt(cmd.TransferObjects.Address)
			if err != nil {
				return fmt.Errorf("command %d: %w", cmdIdx, err)
			}
			if usage != nil && usage.pureType == nil {
				t := addressType
				usage.pureType = &t
			}
		}
	}

	for i := range b.inputs {
		in := &b.inputs[i]
		if in.Resolved() {
			continue
		}

		if in.UnresolvedPure != nil {
			if usages[i].pureType == nil {
				return fmt.Errorf("%w: pure input %d is not passed to any call", ErrUnresolvedInput, i)
			}
			encoded, err := EncodePure(in.UnresolvedPure, *usages[i].pureType)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			in.Pure = encoded
			continue
		}

		if in.UnresolvedObject == nil {
			return fmt.Errorf("%w %q", ErrInvalidObjectID, in.RawObject)
		}

		info, err := chain.GetObject(ctx, *in.UnresolvedObject)
		if err != nil {
			return fmt.Errorf("could not resolve object %s: %w", in.UnresolvedObject, err)
		}
		if info.Owner == nil {
			return fmt.Errorf("object %s has no owner information", in.UnresolvedObject)
		}

		switch info.Owner.Kind {
		case interfaces.OwnerShared:
			mutable := usages[i].byValue || usages[i].mutable || !usages[i].usedAsCall
			in.Object = &ObjectArg{Shared: &SharedObject{
				ObjectID:             info.ObjectID,
				InitialSharedVersion: info.Owner.InitialSharedVersion,
				Mutable:              mutable,
			}}
		case interfaces.OwnerAddress, interfaces.OwnerObject, interfaces.OwnerImmutable:
			ref := info.Ref()
			in.Object = &ObjectArg{ImmOrOwned: &ref}
		default:
			return fmt.Errorf("object %s has unsupported ownership", in.UnresolvedObject)
		}
	}

	return nil
}

// substituteTypeParameters replaces generic parameters of a pure argument
// type with the call's concrete type arguments.
func substituteTypeParameters(t interfaces.NormalizedType, typeArgs []TypeTag) (interfaces.NormalizedType, error) {
	switch {
	case t.TypeParameter != nil:
		idx := int(*t.TypeParameter)
		if idx >= len(typeArgs) {
			return t, fmt.Errorf("%w: missing type argument T%d", ErrUnsupportedPureType, idx)
		}
		return typeArgs[idx].normalized(), nil
	case t.Vector != nil:
		inner, err := substituteTypeParameters(*t.Vector, typeArgs)
		if err != nil {
			return t, err
		}
		return interfaces.NormalizedType{Vector: &inner}, nil
	case t.Struct != nil && len(t.Struct.TypeArguments) > 0:
		s := *t.Struct
		s.TypeArguments = make([]interfaces.NormalizedType, len(t.Struct.TypeArguments))
		for i, arg := range t.Struct.TypeArguments {
			sub, err := substituteTypeParameters(arg, typeArgs)
			if err != nil {
				return t, err
			}
			s.TypeArguments[i] = sub
		}
		return interfaces.NormalizedType{Struct: &s}, nil
	default:
		return t, nil
	}
}

func (t TypeTag) normalized() interfaces.NormalizedType {
	switch t.Kind {
	case TagVector:
		inner := t.Vector.normalized()
		return interfaces.NormalizedType{Vector: &inner}
	case TagStruct:
		args := make([]interfaces.NormalizedType, 0, len(t.Struct.TypeParams))
		for _, p := range t.Struct.TypeParams {
			args = append(args, p.normalized())
		}
		return interfaces.NormalizedType{Struct: &interfaces.NormalizedStruct{
			Address:       t.Struct.Address.String(),
			Module:        t.Struct.Module,
			Name:          t.Struct.Name,
			TypeArguments: args,
		}}
	}

	names := map[TypeTagKind]string{
		TagBool: "Bool", TagU8: "U8", TagU16: "U16", TagU32: "U32", TagU64: "U64",
		TagU128: "U128", TagU256: "U256", TagAddress: "Address", TagSigner: "Signer",
	}
	return interfaces.NormalizedType{Primitive: names[t.Kind]}
}

func (b *Builder) estimateGasBudget(ctx context.Context, chain interfaces.ChainReader) (uint64, error) {
	data, err := b.transactionData(GasData{
		Payment: []interfaces.ObjectRef{},
		Owner:   b.gasOwnerOrSender(),
		Price:   b.gasPrice,
		Budget:  MaxGasBudget,
	})
	if err != nil {
		return 0, err
	}
	txBytes, err := data.Marshal()
	if err != nil {
		return 0, err
	}

	resp, err := chain.DryRunTransactionBlock(ctx, txBytes)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDryRunFailed, err)
	}
	if resp.Effects == nil {
		return 0, fmt.Errorf("%w: response has no effects", ErrDryRunFailed)
	}
	if !resp.Effects.Status.Succeeded() {
		return 0, fmt.Errorf("%w: %s", ErrDryRunFailed, resp.Effects.Status.Error)
	}

	return GasBudgetFromSummary(resp.Effects.GasUsed, b.gasPrice), nil
}

// GasBudgetFromSummary derives a budget from dry run gas usage:
// computation plus a safety overhead, plus net storage when that is larger.
func GasBudgetFromSummary(gas interfaces.GasCostSummary, price uint64) uint64 {
	base := uint64(gas.ComputationCost) + GasSafeOverhead*price
	total := base + uint64(gas.StorageCost)
	if total > uint64(gas.StorageRebate) {
		total -= uint64(gas.StorageRebate)
	} else {
		total = 0
	}
	if total < base {
		return base
	}
	return total
}

func (b *Builder) selectGasPayment(ctx context.Context, chain interfaces.ChainReader) ([]interfaces.ObjectRef, error) {
	owner := b.gasOwnerOrSender()

	inputObjects := make(map[interfaces.ObjectID]struct{})
	for _, in := range b.inputs {
		if in.Object != nil && in.Object.ImmOrOwned != nil {
			inputObjects[in.Object.ImmOrOwned.ObjectID] = struct{}{}
		}
	}

	var (
		selected []interfaces.ObjectRef
		total    uint64
		cursor   *string
	)
	for {
		page, err := chain.GetCoins(ctx, owner, SuiCoinType, cursor)
		if err != nil {
			return nil, fmt.Errorf("could not list gas coins of %s: %w", owner, err)
		}

		for i := range page.Data {
			coin := &page.Data[i]
			if _, used := inputObjects[coin.CoinObjectID]; used {
				continue
			}
			selected = append(selected, coin.Ref())
			total += uint64(coin.Balance)
			if total >= b.gasBudget || len(selected) == MaxGasObjects {
				break
			}
		}

		if total >= b.gasBudget || len(selected) == MaxGasObjects || !page.HasNextPage || page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor
	}

	if total < b.gasBudget {
		return nil, fmt.Errorf("%w: %s holds %d, budget is %d", ErrInsufficientGas, owner, total, b.gasBudget)
	}
	return selected, nil
}
