package mysticons

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrUnexpectedArgs   = errors.New("unexpected arguments")
	ErrUnknownOperation = errors.New("unknown operation")
)

// Operation is one of the transactions the tool can submit.
type Operation int

const (
	OpRegisterDisplay Operation = iota
	OpMint
	OpUpdatePowerLevel
	OpAttachCreature
	OpLock
	OpBurn
)

var operations = []Operation{
	OpRegisterDisplay,
	OpMint,
	OpUpdatePowerLevel,
	OpAttachCreature,
	OpLock,
	OpBurn,
}

// Operations lists every operation in command order.
func Operations() []Operation {
	return append([]Operation{}, operations...)
}

// CommandName is the command line name selecting the operation.
// Display registration is also what runs when no command is given.
func (o Operation) CommandName() string {
	switch o {
	case OpRegisterDisplay:
		return "addDisplayFields"
	case OpMint:
		return "mintMysticon"
	case OpUpdatePowerLevel:
		return "updateMysticonPowerLevel"
	case OpAttachCreature:
		return "attachCreature"
	case OpLock:
		return "lockMysticon"
	case OpBurn:
		return "burnMysticon"
	default:
		return ""
	}
}

func (o Operation) String() string {
	switch o {
	case OpRegisterDisplay:
		return "register-display"
	case OpMint:
		return "mint"
	case OpUpdatePowerLevel:
		return "update-power-level"
	case OpAttachCreature:
		return "attach-creature"
	case OpLock:
		return "lock"
	case OpBurn:
		return "burn"
	default:
		return fmt.Sprintf("operation(%d)", int(o))
	}
}

// Valid reports whether o is one of the declared operations.
func (o Operation) Valid() bool {
	return o >= OpRegisterDisplay && o <= OpBurn
}

// ParseOperation maps a command name to its operation. The empty name selects
// display registration.
func ParseOperation(command string) (Operation, error) {
	if command == "" {
		return OpRegisterDisplay, nil
	}
	for _, op := range operations {
		if op.CommandName() == command {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownCommand, command)
}

// NeedsAsset reports whether the operation acts on an existing mysticon.
func (o Operation) NeedsAsset() bool {
	switch o {
	case OpUpdatePowerLevel, OpAttachCreature, OpLock, OpBurn:
		return true
	default:
		return false
	}
}

// RequiredConfig lists the environment keys the operation cannot run without.
func (o Operation) RequiredConfig() []string {
	keys := []string{EnvNetwork, EnvAdminPhrase, EnvPackageID}
	switch o {
	case OpRegisterDisplay:
		keys = append(keys, EnvPublisherID, EnvAdminAddress)
	case OpMint:
		keys = append(keys, EnvAdminCapID, EnvAdminAddress)
	}
	return keys
}
