package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mysticon-legends/setup/cmd/flags"
	"github.com/mysticon-legends/setup/cryptoutils"
	"github.com/mysticon-legends/setup/mysticons"
	"github.com/urfave/cli/v2"
)

var flagMintName = &cli.StringFlag{
	Name:  "name",
	Value: mysticons.DefaultMintParams().Name,
}
var flagMintType = &cli.StringFlag{
	Name:  "type",
	Value: mysticons.DefaultMintParams().Type,
}
var flagMintPowerLevel = &cli.Uint64Flag{
	Name:  "power-level",
	Value: mysticons.DefaultMintParams().PowerLevel,
}
var flagMintSpecialAbility = &cli.StringFlag{
	Name:  "special-ability",
	Value: mysticons.DefaultMintParams().SpecialAbility,
}
var flagMintImage = &cli.StringFlag{
	Name:  "image",
	Value: mysticons.DefaultMintParams().Image,
	Usage: "image name interpolated into the display image url",
}

var flagTrainPowerLevel = &cli.Uint64Flag{
	Name:  "power-level",
	Value: mysticons.DefaultTrainedPowerLevel,
	Usage: "new power level",
}

var flagCreatureName = &cli.StringFlag{
	Name:  "creature-name",
	Value: mysticons.DefaultCreatureParams().Name,
}
var flagCreatureDescription = &cli.StringFlag{
	Name:  "creature-description",
	Value: mysticons.DefaultCreatureParams().Description,
}

var flagImageURLPrefix = &cli.StringFlag{
	Name:  "image-url-prefix",
	Value: mysticons.DefaultImageURLPrefix,
}
var flagImageURLPostfix = &cli.StringFlag{
	Name:  "image-url-postfix",
	Value: mysticons.DefaultImageURLPostfix,
}

func operationFlags(op mysticons.Operation) []cli.Flag {
	switch op {
	case mysticons.OpRegisterDisplay:
		return []cli.Flag{flagImageURLPrefix, flagImageURLPostfix}
	case mysticons.OpMint:
		return []cli.Flag{flagMintName, flagMintType, flagMintPowerLevel, flagMintSpecialAbility, flagMintImage}
	case mysticons.OpUpdatePowerLevel:
		return []cli.Flag{flagTrainPowerLevel}
	case mysticons.OpAttachCreature:
		return []cli.Flag{flagCreatureName, flagCreatureDescription}
	default:
		return nil
	}
}

func requestFromFlags(cCtx *cli.Context, op mysticons.Operation) mysticons.Request {
	req := mysticons.DefaultRequest()
	if op.NeedsAsset() {
		req.Asset = cCtx.Args().First()
	}

	switch op {
	case mysticons.OpRegisterDisplay:
		req.Display = mysticons.DisplayParams{
			ImageURLPrefix:  cCtx.String(flagImageURLPrefix.Name),
			ImageURLPostfix: cCtx.String(flagImageURLPostfix.Name),
		}
	case mysticons.OpMint:
		req.Mint = mysticons.MintParams{
			Name:           cCtx.String(flagMintName.Name),
			Type:           cCtx.String(flagMintType.Name),
			PowerLevel:     cCtx.Uint64(flagMintPowerLevel.Name),
			SpecialAbility: cCtx.String(flagMintSpecialAbility.Name),
			Image:          cCtx.String(flagMintImage.Name),
		}
	case mysticons.OpUpdatePowerLevel:
		req.PowerLevel = cCtx.Uint64(flagTrainPowerLevel.Name)
	case mysticons.OpAttachCreature:
		req.Creature = mysticons.CreatureParams{
			Name:        cCtx.String(flagCreatureName.Name),
			Description: cCtx.String(flagCreatureDescription.Name),
		}
	}
	return req
}

// checkArgs rejects positional arguments beyond the mysticon id. Flag parsing
// stops at the first positional argument, so flags written after the id land
// here instead of being applied.
func checkArgs(op mysticons.Operation, args []string) error {
	if !op.NeedsAsset() {
		if len(args) > 0 {
			return fmt.Errorf("%w %q: %s takes no arguments", mysticons.ErrUnexpectedArgs, args, op.CommandName())
		}
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w %q: %s flags go before the mysticon id", mysticons.ErrUnexpectedArgs, args[1:], op.CommandName())
	}
	return nil
}

func runOperation(cCtx *cli.Context, op mysticons.Operation, args []string) error {
	if err := checkArgs(op, args); err != nil {
		return err
	}

	log := flags.SetupLogger(cCtx)

	cfg := flags.ConfigFromFlags(cCtx)
	if err := cfg.Require(op.RequiredConfig()...); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cCtx.Duration(flags.TimeoutFlag.Name))
	defer cancel()

	session, err := mysticons.OpenSession(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer session.Close()

	res, err := mysticons.Dispatch(ctx, session, op, requestFromFlags(cCtx, op))
	if err != nil {
		return err
	}

	return json.NewEncoder(cCtx.App.Writer).Encode(res)
}

func operationCommand(op mysticons.Operation) *cli.Command {
	cmd := &cli.Command{
		Name:  op.CommandName(),
		Usage: "submit the " + op.String() + " transaction",
		Flags: operationFlags(op),
		Action: func(cCtx *cli.Context) error {
			return runOperation(cCtx, op, cCtx.Args().Slice())
		},
	}
	if op.NeedsAsset() {
		cmd.ArgsUsage = "[command flags] <mysticon-id>"
	}
	return cmd
}

func newApp(stdout, stderr io.Writer) *cli.App {
	commands := make([]*cli.Command, 0, len(mysticons.Operations())+1)
	for _, op := range mysticons.Operations() {
		commands = append(commands, operationCommand(op))
	}
	commands = append(commands, &cli.Command{
		Name:  "address",
		Usage: "print the operator address derived from the phrase",
		Action: func(cCtx *cli.Context) error {
			cfg := flags.ConfigFromFlags(cCtx)
			if err := cfg.Require(mysticons.EnvAdminPhrase); err != nil {
				return err
			}
			keypair, err := cryptoutils.DeriveKeypair(cfg.AdminPhrase)
			if err != nil {
				return err
			}
			fmt.Fprintln(cCtx.App.Writer, keypair.Address())
			return nil
		},
	})

	appFlags := append([]cli.Flag{}, flags.NetworkFlags...)
	appFlags = append(appFlags, flags.CommonFlags...)
	appFlags = append(appFlags, flags.LogServiceFlagFn("mysticons"))
	appFlags = append(appFlags, operationFlags(mysticons.OpRegisterDisplay)...)

	return &cli.App{
		Name:      "mysticons",
		Usage:     "Register, mint and manage mysticons on Sui",
		ArgsUsage: "[command]",
		Flags:     appFlags,
		Commands:  commands,
		Writer:    stdout,
		ErrWriter: stderr,
		// Without a command the display is registered.
		Action: func(cCtx *cli.Context) error {
			op, err := mysticons.ParseOperation(cCtx.Args().First())
			if err != nil {
				return err
			}
			return runOperation(cCtx, op, cCtx.Args().Tail())
		},
	}
}

// alreadyReported tells whether a failing operation has logged err itself.
func alreadyReported(err error) bool {
	var reported *mysticons.ReportedError
	return errors.As(err, &reported)
}

func main() {
	if err := mysticons.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}

	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		if alreadyReported(err) {
			os.Exit(1)
		}
		log.Fatal(err)
	}
}
