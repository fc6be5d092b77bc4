package txblock

import (
	"fmt"

	"github.com/mysticon-legends/setup/interfaces"
)

// ArgumentKind selects which value a command argument refers to.
type ArgumentKind uint8

const (
	ArgGasCoin ArgumentKind = iota
	ArgInput
	ArgResult
	ArgNestedResult
)

// Argument references a transaction input, the gas coin, or the result of an
// earlier command.
type Argument struct {
	Kind     ArgumentKind
	Index    uint16
	SubIndex uint16
}

func GasCoin() Argument {
	return Argument{Kind: ArgGasCoin}
}

func Input(idx uint16) Argument {
	return Argument{Kind: ArgInput, Index: idx}
}

func Result(cmd uint16) Argument {
	return Argument{Kind: ArgResult, Index: cmd}
}

func NestedResult(cmd, idx uint16) Argument {
	return Argument{Kind: ArgNestedResult, Index: cmd, SubIndex: idx}
}

func (a Argument) String() string {
	switch a.Kind {
	case ArgGasCoin:
		return "GasCoin"
	case ArgInput:
		return fmt.Sprintf("Input(%d)", a.Index)
	case ArgResult:
		return fmt.Sprintf("Result(%d)", a.Index)
	case ArgNestedResult:
		return fmt.Sprintf("NestedResult(%d,%d)", a.Index, a.SubIndex)
	default:
		return "Invalid"
	}
}

func (a Argument) wire() (wireArgument, error) {
	idx := a.Index
	switch a.Kind {
	case ArgGasCoin:
		return wireArgument{GasCoin: &unit{}}, nil
	case ArgInput:
		return wireArgument{Input: &idx}, nil
	case ArgResult:
		return wireArgument{Result: &idx}, nil
	case ArgNestedResult:
		return wireArgument{NestedResult: &wireNestedResult{Command: a.Index, Index: a.SubIndex}}, nil
	default:
		return wireArgument{}, fmt.Errorf("invalid argument kind %d", a.Kind)
	}
}

func wireArguments(args []Argument) ([]wireArgument, error) {
	out := make([]wireArgument, 0, len(args))
	for _, a := range args {
		w, err := a.wire()
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// MoveCall invokes package::module::function.
type MoveCall struct {
	Package       interfaces.ObjectID
	Module        string
	Function      string
	TypeArguments []TypeTag
	Arguments     []Argument
}

// Target returns the call target in 0xPKG::module::function form.
func (c *MoveCall) Target() string {
	return fmt.Sprintf("%s::%s::%s", c.Package, c.Module, c.Function)
}

// TransferObjects sends Objects to Address.
type TransferObjects struct {
	Objects []Argument
	Address Argument
}

// Command is one step of a programmable transaction. Exactly one field is set.
type Command struct {
	MoveCall        *MoveCall
	TransferObjects *TransferObjects
}

func (c Command) wire() (wireCommand, error) {
	switch {
	case c.MoveCall != nil:
		args, err := wireArguments(c.MoveCall.Arguments)
		if err != nil {
			return wireCommand{}, err
		}
		tags := make([]wireTypeTag, 0, len(c.MoveCall.TypeArguments))
		for _, tag := range c.MoveCall.TypeArguments {
			tags = append(tags, tag.wire())
		}
		return wireCommand{MoveCall: &wireMoveCall{
			Package:       c.MoveCall.Package,
			Module:        c.MoveCall.Module,
			Function:      c.MoveCall.Function,
			TypeArguments: tags,
			Arguments:     args,
		}}, nil
	case c.TransferObjects != nil:
		objects, err := wireArguments(c.TransferObjects.Objects)
		if err != nil {
			return wireCommand{}, err
		}
		addr, err := c.TransferObjects.Address.wire()
		if err != nil {
			return wireCommand{}, err
		}
		return wireCommand{TransferObjects: &wireTransferObjects{Objects: objects, Address: addr}}, nil
	default:
		return wireCommand{}, fmt.Errorf("empty command")
	}
}

// SharedObject is a shared object input.
type SharedObject struct {
	ObjectID             interfaces.ObjectID
	InitialSharedVersion uint64
	Mutable              bool
}

// ObjectArg is a resolved object input. Exactly one field is set.
type ObjectArg struct {
	ImmOrOwned *interfaces.ObjectRef
	Shared     *SharedObject
}

func wireRef(ref interfaces.ObjectRef) wireObjectRef {
	return wireObjectRef{
		ObjectID: ref.ObjectID,
		Version:  uint64(ref.Version),
		Digest:   append([]byte{}, ref.Digest[:]...),
	}
}

func (o ObjectArg) wire() (wireObjectArg, error) {
	switch {
	case o.ImmOrOwned != nil:
		ref := wireRef(*o.ImmOrOwned)
		return wireObjectArg{ImmOrOwnedObject: &ref}, nil
	case o.Shared != nil:
		return wireObjectArg{SharedObject: &wireSharedObject{
			ObjectID:             o.Shared.ObjectID,
			InitialSharedVersion: o.Shared.InitialSharedVersion,
			Mutable:              o.Shared.Mutable,
		}}, nil
	default:
		return wireObjectArg{}, fmt.Errorf("empty object argument")
	}
}

// CallArg is one transaction input. Until resolution an input holds either an
// object id or an untyped pure value; afterwards Pure or Object is set.
type CallArg struct {
	// Pure holds BCS bytes of a resolved pure input.
	Pure []byte
	// Object holds a resolved object input.
	Object *ObjectArg

	// UnresolvedObject is the object id given to Builder.Object.
	UnresolvedObject *interfaces.ObjectID
	// UnresolvedPure is the Go value given to Builder.Pure.
	UnresolvedPure any
	// RawObject keeps the caller supplied id text for error messages.
	RawObject string
}

// Resolved reports whether the input can be encoded.
func (a *CallArg) Resolved() bool {
	return a.Pure != nil || a.Object != nil
}

func (a *CallArg) isPure() bool {
	return a.Pure != nil || a.UnresolvedPure != nil
}

func (a *CallArg) wire() (wireCallArg, error) {
	switch {
	case a.Pure != nil:
		pure := append([]byte{}, a.Pure...)
		return wireCallArg{Pure: &pure}, nil
	case a.Object != nil:
		obj, err := a.Object.wire()
		if err != nil {
			return wireCallArg{}, err
		}
		return wireCallArg{Object: &obj}, nil
	default:
		return wireCallArg{}, ErrUnresolvedInput
	}
}
