package txblock

import (
	"fmt"

	"github.com/fardream/go-bcs/bcs"
	"github.com/mysticon-legends/setup/interfaces"
)

// GasData selects the coins, price and budget paying for a transaction.
type GasData struct {
	Payment []interfaces.ObjectRef
	Owner   interfaces.SuiAddress
	Price   uint64
	Budget  uint64
}

// TransactionData is a fully resolved programmable transaction ready to sign.
type TransactionData struct {
	Sender   interfaces.SuiAddress
	Inputs   []CallArg
	Commands []Command
	Gas      GasData
}

// Marshal encodes TransactionData::V1 with a ProgrammableTransaction kind and
// no expiration.
func (t *TransactionData) Marshal() ([]byte, error) {
	pt := &wireProgrammableTransaction{
		Inputs:   make([]wireCallArg, 0, len(t.Inputs)),
		Commands: make([]wireCommand, 0, len(t.Commands)),
	}
	for i := range t.Inputs {
		in, err := t.Inputs[i].wire()
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		pt.Inputs = append(pt.Inputs, in)
	}
	for i, cmd := range t.Commands {
		c, err := cmd.wire()
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		pt.Commands = append(pt.Commands, c)
	}

	payment := make([]wireObjectRef, 0, len(t.Gas.Payment))
	for _, ref := range t.Gas.Payment {
		payment = append(payment, wireRef(ref))
	}

	data := wireTransactionData{V1: &wireTransactionDataV1{
		Kind:   wireTransactionKind{ProgrammableTransaction: pt},
		Sender: t.Sender,
		GasData: wireGasData{
			Payment: payment,
			Owner:   t.Gas.Owner,
			Price:   t.Gas.Price,
			Budget:  t.Gas.Budget,
		},
		Expiration: wireExpiration{None: &unit{}},
	}}

	out, err := bcs.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("could not encode transaction data: %w", err)
	}
	return out, nil
}

func (b *Builder) gasOwnerOrSender() interfaces.SuiAddress {
	if b.gasOwner != nil {
		return *b.gasOwner
	}
	return *b.sender
}

func (b *Builder) transactionData(gas GasData) (*TransactionData, error) {
	if b.sender == nil {
		return nil, ErrMissingSender
	}
	for i := range b.inputs {
		if !b.inputs[i].Resolved() {
			return nil, fmt.Errorf("input %d: %w", i, ErrUnresolvedInput)
		}
	}

	return &TransactionData{
		Sender:   *b.sender,
		Inputs:   b.inputs,
		Commands: b.commands,
		Gas:      gas,
	}, nil
}
