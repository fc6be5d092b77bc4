package txblock

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mysticon-legends/setup/interfaces"
)

var (
	ErrInvalidObjectID  = errors.New("invalid object id")
	ErrInvalidTarget    = errors.New("invalid move call target")
	ErrUnresolvedInput  = errors.New("unresolved transaction input")
	ErrMissingSender    = errors.New("transaction sender not set")
	ErrInsufficientGas  = errors.New("insufficient gas coins")
	ErrDryRunFailed     = errors.New("dry run failed")
	ErrTooManyArguments = errors.New("too many arguments")
)

// Builder assembles a programmable transaction block: an ordered list of
// inputs and commands plus gas configuration.
//
// Builder methods mirror how calls are written by hand: MoveCall returns the
// Result argument of the new command so later commands can consume it.
type Builder struct {
	inputs   []CallArg
	commands []Command

	sender     *interfaces.SuiAddress
	gasOwner   *interfaces.SuiAddress
	gasPrice   uint64
	gasBudget  uint64
	gasPayment []interfaces.ObjectRef

	err error
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns the first error recorded while adding inputs or commands.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) addInput(arg CallArg) Argument {
	if len(b.inputs) >= 1<<16 {
		b.setErr(fmt.Errorf("%w: inputs", ErrTooManyArguments))
	}
	b.inputs = append(b.inputs, arg)
	return Input(uint16(len(b.inputs) - 1))
}

// Object adds an object input by id. Repeated ids share one input.
// An unparsable id is reported by Build.
func (b *Builder) Object(id string) Argument {
	objectID, err := interfaces.NewSuiAddressFromHex(id)
	if err != nil {
		b.setErr(fmt.Errorf("%w %q: %v", ErrInvalidObjectID, id, err))
		return b.addInput(CallArg{RawObject: id})
	}

	for i := range b.inputs {
		if in := b.inputs[i]; in.UnresolvedObject != nil && *in.UnresolvedObject == objectID {
			return Input(uint16(i))
		}
	}

	return b.addInput(CallArg{UnresolvedObject: &objectID, RawObject: id})
}

// ObjectRef adds an already resolved owned or immutable object input.
func (b *Builder) ObjectRef(ref interfaces.ObjectRef) Argument {
	return b.addInput(CallArg{Object: &ObjectArg{ImmOrOwned: &ref}})
}

// SharedObjectRef adds an already resolved shared object input.
func (b *Builder) SharedObjectRef(obj SharedObject) Argument {
	return b.addInput(CallArg{Object: &ObjectArg{Shared: &obj}})
}

// Pure adds a pure input whose BCS encoding is chosen during Build from the
// parameter type it is passed to.
func (b *Builder) Pure(value any) Argument {
	if value == nil {
		b.setErr(fmt.Errorf("%w: nil pure value", ErrUnresolvedInput))
	}
	return b.addInput(CallArg{UnresolvedPure: value})
}

// PureBytes adds a pure input that is already BCS encoded.
func (b *Builder) PureBytes(encoded []byte) Argument {
	return b.addInput(CallArg{Pure: append([]byte{}, encoded...)})
}

// MoveCall appends a call to target ("0xPKG::module::function") and returns its result.
func (b *Builder) MoveCall(target string, typeArguments []string, arguments ...Argument) Argument {
	call, err := parseTarget(target)
	if err != nil {
		b.setErr(err)
		call = &MoveCall{}
	}

	for _, raw := range typeArguments {
		tag, err := ParseTypeTag(raw)
		if err != nil {
			b.setErr(err)
			continue
		}
		call.TypeArguments = append(call.TypeArguments, tag)
	}
	call.Arguments = append(call.Arguments, arguments...)

	return b.addCommand(Command{MoveCall: call})
}

// TransferObjects appends a transfer of objects to address.
func (b *Builder) TransferObjects(objects []Argument, address Argument) Argument {
	return b.addCommand(Command{TransferObjects: &TransferObjects{
		Objects: append([]Argument{}, objects...),
		Address: address,
	}})
}

func (b *Builder) addCommand(cmd Command) Argument {
	if len(b.commands) >= 1<<16 {
		b.setErr(fmt.Errorf("%w: commands", ErrTooManyArguments))
	}
	b.commands = append(b.commands, cmd)
	return Result(uint16(len(b.commands) - 1))
}

func parseTarget(target string) (*MoveCall, error) {
	parts := strings.Split(target, "::")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return nil, fmt.Errorf("%w %q: expected package::module::function", ErrInvalidTarget, target)
	}
	pkg, err := interfaces.NewSuiAddressFromHex(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidTarget, target, err)
	}
	return &MoveCall{Package: pkg, Module: parts[1], Function: parts[2]}, nil
}

func (b *Builder) SetSender(addr interfaces.SuiAddress) {
	b.sender = &addr
}

// SetSenderIfNotSet sets the sender unless one was configured already.
func (b *Builder) SetSenderIfNotSet(addr interfaces.SuiAddress) {
	if b.sender == nil {
		b.SetSender(addr)
	}
}

// Sender returns the configured sender, if any.
func (b *Builder) Sender() (interfaces.SuiAddress, bool) {
	if b.sender == nil {
		return interfaces.SuiAddress{}, false
	}
	return *b.sender, true
}

// SetGasOwner sponsors gas from owner instead of the sender.
func (b *Builder) SetGasOwner(owner interfaces.SuiAddress) {
	b.gasOwner = &owner
}

func (b *Builder) SetGasPrice(price uint64) {
	b.gasPrice = price
}

// SetGasBudget fixes the budget; zero means estimate with a dry run.
func (b *Builder) SetGasBudget(budget uint64) {
	b.gasBudget = budget
}

func (b *Builder) GasBudget() uint64 {
	return b.gasBudget
}

func (b *Builder) SetGasPayment(coins []interfaces.ObjectRef) {
	b.gasPayment = append([]interfaces.ObjectRef{}, coins...)
}

// Inputs returns the inputs added so far.
func (b *Builder) Inputs() []CallArg {
	return b.inputs
}

// Commands returns the commands added so far.
func (b *Builder) Commands() []Command {
	return b.commands
}

// MoveCalls returns the move call commands in order.
func (b *Builder) MoveCalls() []*MoveCall {
	calls := make([]*MoveCall, 0, len(b.commands))
	for _, cmd := range b.commands {
		if cmd.MoveCall != nil {
			calls = append(calls, cmd.MoveCall)
		}
	}
	return calls
}
