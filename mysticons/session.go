package mysticons

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mysticon-legends/setup/cryptoutils"
	"github.com/mysticon-legends/setup/interfaces"
	"github.com/mysticon-legends/setup/suiclient"
	"github.com/mysticon-legends/setup/txblock"
)

// Executor submits a built transaction and reports its effects.
type Executor interface {
	Execute(ctx context.Context, b *txblock.Builder) (*interfaces.TransactionResponse, error)
}

// ChainExecutor signs and executes transactions against a node, or only dry
// runs them when DryRun is set.
type ChainExecutor struct {
	Client *suiclient.Client
	Signer interfaces.Signer
	DryRun bool
}

func (e *ChainExecutor) Execute(ctx context.Context, b *txblock.Builder) (*interfaces.TransactionResponse, error) {
	if e.DryRun {
		return e.Client.DryRun(ctx, b, e.Signer.Address())
	}
	return e.Client.SignAndExecute(ctx, b, e.Signer, &interfaces.ResponseOptions{ShowEffects: true})
}

// Result is what an operation reports once its transaction has executed.
type Result struct {
	Operation string                     `json:"operation"`
	Digest    string                     `json:"digest,omitempty"`
	Status    string                     `json:"status"`
	Created   []interfaces.ObjectID      `json:"created,omitempty"`
	GasUsed   *interfaces.GasCostSummary `json:"gasUsed,omitempty"`
	DryRun    bool                       `json:"dryRun,omitempty"`
}

// FirstCreated returns the first created object id, or an empty string.
func (r *Result) FirstCreated() string {
	if len(r.Created) == 0 {
		return ""
	}
	return r.Created[0].String()
}

// Session is the state shared by all operations of one invocation: the
// configuration, the operator address and the executor bound to the node.
type Session struct {
	cfg     *Config
	log     *slog.Logger
	exec    Executor
	address interfaces.SuiAddress
	closer  func()
}

// NewSession assembles a session from its parts.
func NewSession(cfg *Config, log *slog.Logger, exec Executor, address interfaces.SuiAddress) *Session {
	return &Session{
		cfg:     cfg,
		log:     log,
		exec:    exec,
		address: address,
	}
}

// OpenSession derives the operator keypair from the configured phrase and
// connects to the configured node.
func OpenSession(ctx context.Context, cfg *Config, log *slog.Logger) (*Session, error) {
	if err := cfg.Require(EnvNetwork, EnvAdminPhrase); err != nil {
		return nil, err
	}

	keypair, err := cryptoutils.DeriveKeypair(cfg.AdminPhrase)
	if err != nil {
		return nil, fmt.Errorf("could not derive operator key: %w", err)
	}

	log.Info("Connecting to", "network", cfg.RPCURL)
	client, err := suiclient.Dial(ctx, cfg.RPCURL)
	if err != nil {
		return nil, err
	}

	s := NewSession(cfg, log, &ChainExecutor{
		Client: client,
		Signer: keypair,
		DryRun: cfg.DryRun,
	}, keypair.Address())
	s.closer = client.Close
	return s, nil
}

// Address is the operator address transactions are sent from.
func (s *Session) Address() interfaces.SuiAddress {
	return s.address
}

func (s *Session) Close() {
	if s.closer != nil {
		s.closer()
	}
}

func (s *Session) submit(ctx context.Context, op Operation, b *txblock.Builder) (*Result, error) {
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	b.SetSenderIfNotSet(s.address)

	s.log.Debug("Submitting transaction", "operation", op.String(), "commands", len(b.Commands()), "gasBudget", b.GasBudget())

	resp, err := s.exec.Execute(ctx, b)
	if err != nil {
		if resp != nil && resp.Digest != "" {
			return nil, fmt.Errorf("%s: transaction %s: %w", op, resp.Digest, err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := &Result{
		Operation: op.String(),
		Digest:    resp.Digest,
		DryRun:    s.cfg.DryRun,
	}
	if resp.Effects != nil {
		res.Status = resp.Effects.Status.Status
		res.Created = resp.Effects.CreatedIDs()
		gas := resp.Effects.GasUsed
		res.GasUsed = &gas
		if res.Digest == "" {
			res.Digest = resp.Effects.TransactionDigest
		}
	}

	s.log.Debug("Transaction executed", "operation", op.String(), "digest", res.Digest, "status", res.Status)
	return res, nil
}
