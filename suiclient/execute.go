package suiclient

import (
	"context"
	"fmt"

	"github.com/mysticon-legends/setup/interfaces"
	"github.com/mysticon-legends/setup/txblock"
)

// SignAndExecute builds b with signer as the sender (unless one is set),
// signs it and waits for local execution.
//
// A transaction that executed but aborted returns the response together with
// an error wrapping ErrExecutionFailed.
func (c *Client) SignAndExecute(ctx context.Context, b *txblock.Builder, signer interfaces.Signer, opts *interfaces.ResponseOptions) (*interfaces.TransactionResponse, error) {
	b.SetSenderIfNotSet(signer.Address())

	txBytes, err := b.Build(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("could not build transaction: %w", err)
	}

	signature, err := signer.SignTransaction(txBytes)
	if err != nil {
		return nil, fmt.Errorf("could not sign transaction: %w", err)
	}

	if opts == nil {
		opts = &interfaces.ResponseOptions{}
	}
	withEffects := *opts
	withEffects.ShowEffects = true

	resp, err := c.ExecuteTransactionBlock(ctx, txBytes, []string{signature}, &withEffects, interfaces.WaitForLocalExecution)
	if err != nil {
		return nil, err
	}
	return resp, checkEffects(resp)
}

// DryRun builds b for sender and simulates it without signing.
func (c *Client) DryRun(ctx context.Context, b *txblock.Builder, sender interfaces.SuiAddress) (*interfaces.TransactionResponse, error) {
	b.SetSenderIfNotSet(sender)

	txBytes, err := b.Build(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("could not build transaction: %w", err)
	}

	resp, err := c.DryRunTransactionBlock(ctx, txBytes)
	if err != nil {
		return nil, err
	}
	return resp, checkEffects(resp)
}

func checkEffects(resp *interfaces.TransactionResponse) error {
	if resp.Effects == nil {
		return fmt.Errorf("%w: response %s has no effects", ErrExecutionFailed, resp.Digest)
	}
	if !resp.Effects.Status.Succeeded() {
		return fmt.Errorf("%w: %s", ErrExecutionFailed, resp.Effects.Status.Error)
	}
	return nil
}
