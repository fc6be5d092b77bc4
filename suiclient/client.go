// Package suiclient talks to a Sui full node over JSON-RPC.
package suiclient

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/mysticon-legends/setup/interfaces"
)

var (
	ErrObjectNotFound  = errors.New("object not found")
	ErrExecutionFailed = errors.New("transaction execution failed")
)

// Client implements interfaces.ChainReader on top of a JSON-RPC connection
// and adds transaction execution.
type Client struct {
	rpc *rpc.Client
}

// Dial connects to the node at rawurl (http, ws or ipc).
func Dial(ctx context.Context, rawurl string) (*Client, error) {
	c, err := rpc.DialContext(ctx, rawurl)
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", rawurl, err)
	}
	return NewClient(c), nil
}

// NewClient wraps an existing rpc connection.
func NewClient(c *rpc.Client) *Client {
	return &Client{rpc: c}
}

func (c *Client) Close() {
	c.rpc.Close()
}

// GetObject returns the latest version and owner of an object.
func (c *Client) GetObject(ctx context.Context, id interfaces.ObjectID) (*interfaces.ObjectInfo, error) {
	var resp interfaces.ObjectResponse
	err := c.rpc.CallContext(ctx, &resp, "sui_getObject", id, map[string]bool{
		"showOwner": true,
		"showType":  true,
	})
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %w", ErrObjectNotFound, resp.Error)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	return resp.Data, nil
}

func (c *Client) GetNormalizedMoveFunction(ctx context.Context, pkg interfaces.ObjectID, module, function string) (*interfaces.NormalizedFunction, error) {
	var fn interfaces.NormalizedFunction
	if err := c.rpc.CallContext(ctx, &fn, "sui_getNormalizedMoveFunction", pkg, module, function); err != nil {
		return nil, err
	}
	return &fn, nil
}

func (c *Client) GetReferenceGasPrice(ctx context.Context) (uint64, error) {
	var price interfaces.Uint64String
	if err := c.rpc.CallContext(ctx, &price, "suix_getReferenceGasPrice"); err != nil {
		return 0, err
	}
	return uint64(price), nil
}

// GetCoins returns one page of owner's coins, starting after cursor.
func (c *Client) GetCoins(ctx context.Context, owner interfaces.SuiAddress, coinType string, cursor *string) (*interfaces.CoinPage, error) {
	var page interfaces.CoinPage
	if err := c.rpc.CallContext(ctx, &page, "suix_getCoins", owner, coinType, cursor, nil); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) DryRunTransactionBlock(ctx context.Context, txBytes []byte) (*interfaces.TransactionResponse, error) {
	var resp interfaces.TransactionResponse
	err := c.rpc.CallContext(ctx, &resp, "sui_dryRunTransactionBlock", base64.StdEncoding.EncodeToString(txBytes))
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExecuteTransactionBlock submits signed transaction bytes.
func (c *Client) ExecuteTransactionBlock(ctx context.Context, txBytes []byte, signatures []string, opts *interfaces.ResponseOptions, requestType string) (*interfaces.TransactionResponse, error) {
	var resp interfaces.TransactionResponse
	err := c.rpc.CallContext(ctx, &resp, "sui_executeTransactionBlock",
		base64.StdEncoding.EncodeToString(txBytes), signatures, opts, requestType)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
