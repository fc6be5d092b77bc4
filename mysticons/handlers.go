package mysticons

import (
	"context"

	"github.com/mysticon-legends/setup/txblock"
)

// LargeGasBudget is the fixed budget of display registration, creature
// attachment and burning. Other operations estimate their budget.
const LargeGasBudget uint64 = 2_000_000_000

// MintParams are the attributes of a newly minted Mysticon.
type MintParams struct {
	Name           string
	Type           string
	PowerLevel     uint64
	SpecialAbility string
	Image          string
}

func DefaultMintParams() MintParams {
	return MintParams{
		Name:           "Frostwing",
		Type:           "Ice",
		PowerLevel:     10,
		SpecialAbility: "Ice Storm",
		Image:          "frost",
	}
}

// CreatureParams describe the creature attached to a Mysticon.
type CreatureParams struct {
	Name        string
	Description string
}

func DefaultCreatureParams() CreatureParams {
	return CreatureParams{
		Name:        "Frostbite",
		Description: "A playful yet fiercely loyal arctic fox spirit that radiates a chilling aura",
	}
}

const DefaultTrainedPowerLevel uint64 = 100

// Request carries the arguments of a single invocation. Only the fields of
// the dispatched operation are read.
type Request struct {
	Asset      string
	PowerLevel uint64
	Mint       MintParams
	Creature   CreatureParams
	Display    DisplayParams
}

func DefaultRequest() Request {
	return Request{
		PowerLevel: DefaultTrainedPowerLevel,
		Mint:       DefaultMintParams(),
		Creature:   DefaultCreatureParams(),
		Display:    DefaultDisplayParams(),
	}
}

func (c *Config) target(function string) string {
	return c.PackageID + "::mysticons::" + function
}

func (c *Config) mysticonType() string {
	return c.PackageID + "::mysticons::Mysticon"
}

// BuildRegisterDisplay creates a Display for Mysticon with the standard fields,
// publishes its first version and hands it to the admin address.
func BuildRegisterDisplay(cfg *Config, p DisplayParams) *txblock.Builder {
	keys, values := DisplayFields(p)
	typeArgs := []string{cfg.mysticonType()}

	b := txblock.NewBuilder()
	display := b.MoveCall("0x2::display::new_with_fields", typeArgs,
		b.Object(cfg.PublisherID),
		b.Pure(keys),
		b.Pure(values),
	)
	b.MoveCall("0x2::display::update_version", typeArgs, display)
	b.TransferObjects([]txblock.Argument{display}, b.Pure(cfg.AdminAddress))
	b.SetGasBudget(cfg.gasBudget(LargeGasBudget))
	return b
}

// BuildMint mints a Mysticon with the admin capability and sends it to the admin address.
func BuildMint(cfg *Config, p MintParams) *txblock.Builder {
	b := txblock.NewBuilder()
	mysticon := b.MoveCall(cfg.target("new_mysticon"), nil,
		b.Object(cfg.AdminCapID),
		b.Pure(p.Name),
		b.Pure(p.Type),
		b.Pure(p.PowerLevel),
		b.Pure(p.SpecialAbility),
		b.Pure(p.Image),
	)
	b.TransferObjects([]txblock.Argument{mysticon}, b.Pure(cfg.AdminAddress))
	b.SetGasBudget(cfg.gasBudget(0))
	return b
}

func BuildUpdatePowerLevel(cfg *Config, asset string, powerLevel uint64) *txblock.Builder {
	b := txblock.NewBuilder()
	b.MoveCall(cfg.target("train_mysticon"), nil, b.Object(asset), b.Pure(powerLevel))
	b.SetGasBudget(cfg.gasBudget(0))
	return b
}

// BuildAttachCreature attaches a creature and settles the invoice the
// attachment returns in the same transaction.
func BuildAttachCreature(cfg *Config, asset string, p CreatureParams) *txblock.Builder {
	b := txblock.NewBuilder()
	invoice := b.MoveCall(cfg.target("attach_creature"), nil,
		b.Object(asset),
		b.Pure(p.Name),
		b.Pure(p.Description),
	)
	b.MoveCall(cfg.target("pay_invoice"), nil, b.Object(asset), invoice)
	b.SetGasBudget(cfg.gasBudget(LargeGasBudget))
	return b
}

func BuildLock(cfg *Config, asset string) *txblock.Builder {
	b := txblock.NewBuilder()
	b.MoveCall(cfg.target("lock_mysticon"), nil, b.Object(asset))
	b.SetGasBudget(cfg.gasBudget(0))
	return b
}

func BuildBurn(cfg *Config, asset string) *txblock.Builder {
	b := txblock.NewBuilder()
	b.MoveCall(cfg.target("destroy_mysticon"), nil, b.Object(asset))
	b.SetGasBudget(cfg.gasBudget(LargeGasBudget))
	return b
}

// ReportedError wraps a failure that the session has already logged.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// run checks the operation's configuration, submits the transaction built by
// build and logs failure with attrs under msg.
func (s *Session) run(ctx context.Context, op Operation, msg string, build func() *txblock.Builder, attrs ...any) (*Result, error) {
	fail := func(err error) (*Result, error) {
		s.log.Error(msg, append(attrs, "err", err)...)
		return nil, &ReportedError{Err: err}
	}

	if err := s.cfg.Require(op.RequiredConfig()...); err != nil {
		return fail(err)
	}
	res, err := s.submit(ctx, op, build())
	if err != nil {
		return fail(err)
	}
	return res, nil
}

func (s *Session) RegisterDisplay(ctx context.Context, p DisplayParams) (*Result, error) {
	res, err := s.run(ctx, OpRegisterDisplay, "Could not create display", func() *txblock.Builder {
		return BuildRegisterDisplay(s.cfg, p)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Display created", "display", res.FirstCreated(), "status", res.Status)
	return res, nil
}

func (s *Session) Mint(ctx context.Context, p MintParams) (*Result, error) {
	res, err := s.run(ctx, OpMint, "Could not mint mysticon", func() *txblock.Builder {
		return BuildMint(s.cfg, p)
	}, "name", p.Name)
	if err != nil {
		return nil, err
	}
	s.log.Info("Minted mysticon", "mysticon", res.FirstCreated(), "name", p.Name)
	return res, nil
}

func (s *Session) UpdatePowerLevel(ctx context.Context, asset string, powerLevel uint64) (*Result, error) {
	res, err := s.run(ctx, OpUpdatePowerLevel, "Could not train mysticon", func() *txblock.Builder {
		return BuildUpdatePowerLevel(s.cfg, asset, powerLevel)
	}, "mysticon", asset)
	if err != nil {
		return nil, err
	}
	s.log.Info("Trained mysticon", "mysticon", asset, "powerLevel", powerLevel)
	return res, nil
}

func (s *Session) AttachCreature(ctx context.Context, asset string, p CreatureParams) (*Result, error) {
	res, err := s.run(ctx, OpAttachCreature, "Could not attach creature", func() *txblock.Builder {
		return BuildAttachCreature(s.cfg, asset, p)
	}, "mysticon", asset, "creature", p.Name)
	if err != nil {
		return nil, err
	}
	s.log.Info("Attached creature", "mysticon", asset, "creature", p.Name, "created", res.Created)
	return res, nil
}

func (s *Session) Lock(ctx context.Context, asset string) (*Result, error) {
	res, err := s.run(ctx, OpLock, "Could not lock mysticon", func() *txblock.Builder {
		return BuildLock(s.cfg, asset)
	}, "mysticon", asset)
	if err != nil {
		return nil, err
	}
	s.log.Info("Mysticon locked", "mysticon", asset)
	return res, nil
}

func (s *Session) Burn(ctx context.Context, asset string) (*Result, error) {
	res, err := s.run(ctx, OpBurn, "Could not burn mysticon", func() *txblock.Builder {
		return BuildBurn(s.cfg, asset)
	}, "mysticon", asset)
	if err != nil {
		return nil, err
	}
	s.log.Info("Mysticon burned", "mysticon", asset)
	return res, nil
}
