package txblock

// The wire types mirror the Sui protocol types field for field. Enums are
// structs of pointers with IsBcsEnum; the variant index is the field index.

type unit struct{}

type wireTransactionData struct {
	V1 *wireTransactionDataV1
}

func (wireTransactionData) IsBcsEnum() {}

type wireTransactionDataV1 struct {
	Kind       wireTransactionKind
	Sender     [32]byte
	GasData    wireGasData
	Expiration wireExpiration
}

type wireTransactionKind struct {
	ProgrammableTransaction *wireProgrammableTransaction
}

func (wireTransactionKind) IsBcsEnum() {}

type wireProgrammableTransaction struct {
	Inputs   []wireCallArg
	Commands []wireCommand
}

type wireCallArg struct {
	Pure   *[]byte
	Object *wireObjectArg
}

func (wireCallArg) IsBcsEnum() {}

type wireObjectArg struct {
	ImmOrOwnedObject *wireObjectRef
	SharedObject     *wireSharedObject
}

func (wireObjectArg) IsBcsEnum() {}

type wireObjectRef struct {
	ObjectID [32]byte
	Version  uint64
	Digest   []byte
}

type wireSharedObject struct {
	ObjectID             [32]byte
	InitialSharedVersion uint64
	Mutable              bool
}

type wireCommand struct {
	MoveCall        *wireMoveCall
	TransferObjects *wireTransferObjects
}

func (wireCommand) IsBcsEnum() {}

type wireMoveCall struct {
	Package       [32]byte
	Module        string
	Function      string
	TypeArguments []wireTypeTag
	Arguments     []wireArgument
}

type wireTransferObjects struct {
	Objects []wireArgument
	Address wireArgument
}

type wireArgument struct {
	GasCoin      *unit
	Input        *uint16
	Result       *uint16
	NestedResult *wireNestedResult
}

func (wireArgument) IsBcsEnum() {}

type wireNestedResult struct {
	Command uint16
	Index   uint16
}

type wireTypeTag struct {
	Bool    *unit
	U8      *unit
	U64     *unit
	U128    *unit
	Address *unit
	Signer  *unit
	Vector  *wireTypeTag
	Struct  *wireStructTag
	U16     *unit
	U32     *unit
	U256    *unit
}

func (wireTypeTag) IsBcsEnum() {}

type wireStructTag struct {
	Address    [32]byte
	Module     string
	Name       string
	TypeParams []wireTypeTag
}

type wireGasData struct {
	Payment []wireObjectRef
	Owner   [32]byte
	Price   uint64
	Budget  uint64
}

type wireExpiration struct {
	None  *unit
	Epoch *uint64
}

func (wireExpiration) IsBcsEnum() {}
