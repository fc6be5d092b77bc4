package interfaces

import "context"

// Signer signs transaction bytes on behalf of a single address.
type Signer interface {
	// Address returns the address transactions are sent from.
	Address() SuiAddress

	// SignTransaction returns the base64 serialized signature over the
	// intent-wrapped BCS transaction bytes.
	SignTransaction(txBytes []byte) (string, error)
}

// ChainReader is the set of node queries needed to turn a transaction
// description into signable bytes.
type ChainReader interface {
	// GetObject returns the latest version and ownership of an object.
	GetObject(ctx context.Context, id ObjectID) (*ObjectInfo, error)

	// GetNormalizedMoveFunction returns the signature of pkg::module::function.
	GetNormalizedMoveFunction(ctx context.Context, pkg ObjectID, module, function string) (*NormalizedFunction, error)

	// GetReferenceGasPrice returns the current epoch's reference gas price.
	GetReferenceGasPrice(ctx context.Context) (uint64, error)

	// GetCoins returns one page of coins of coinType owned by owner.
	GetCoins(ctx context.Context, owner SuiAddress, coinType string, cursor *string) (*CoinPage, error)

	// DryRunTransactionBlock simulates the transaction without committing it.
	DryRunTransactionBlock(ctx context.Context, txBytes []byte) (*TransactionResponse, error)
}
