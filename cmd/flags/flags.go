package flags

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mysticon-legends/setup/common"
	"github.com/mysticon-legends/setup/mysticons"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String("log-service")

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
		Output:  cCtx.App.ErrWriter,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

// ConfigFromFlags collects the network and identity settings. Each flag
// falls back to its environment variable.
func ConfigFromFlags(cCtx *cli.Context) *mysticons.Config {
	return &mysticons.Config{
		RPCURL:       cCtx.String(RpcUrlFlag.Name),
		AdminPhrase:  cCtx.String(PhraseFlag.Name),
		PackageID:    cCtx.String(PackageIDFlag.Name),
		AdminCapID:   cCtx.String(AdminCapIDFlag.Name),
		PublisherID:  cCtx.String(PublisherIDFlag.Name),
		AdminAddress: cCtx.String(AdminAddressFlag.Name),
		GasBudget:    cCtx.Uint64(GasBudgetFlag.Name),
		DryRun:       cCtx.Bool(DryRunFlag.Name),
	}
}

var RpcUrlFlag = &cli.StringFlag{
	Name:    "rpc-url",
	EnvVars: []string{mysticons.EnvNetwork},
	Usage:   "Sui full node JSON-RPC endpoint",
}

var PhraseFlag = &cli.StringFlag{
	Name:    "phrase",
	EnvVars: []string{mysticons.EnvAdminPhrase},
	Usage:   "BIP-39 phrase of the operator key",
}

var PackageIDFlag = &cli.StringFlag{
	Name:    "package-id",
	EnvVars: []string{mysticons.EnvPackageID},
	Usage:   "id of the published mysticons package",
}

var AdminCapIDFlag = &cli.StringFlag{
	Name:    "admin-cap-id",
	EnvVars: []string{mysticons.EnvAdminCapID},
	Usage:   "id of the AdminCap object used to mint",
}

var PublisherIDFlag = &cli.StringFlag{
	Name:    "publisher-id",
	EnvVars: []string{mysticons.EnvPublisherID},
	Usage:   "id of the package Publisher object",
}

var AdminAddressFlag = &cli.StringFlag{
	Name:    "admin-address",
	EnvVars: []string{mysticons.EnvAdminAddress},
	Usage:   "address receiving minted mysticons and the display object",
}

var GasBudgetFlag = &cli.Uint64Flag{
	Name:  "gas-budget",
	Usage: "fixed gas budget in MIST, 0 keeps the per operation default",
}

var DryRunFlag = &cli.BoolFlag{
	Name:  "dry-run",
	Value: false,
	Usage: "simulate the transaction without executing it",
}

var TimeoutFlag = &cli.DurationFlag{
	Name:  "timeout",
	Value: 60 * time.Second,
	Usage: "maximum time to wait for the transaction",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlagFn = func(service string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "log-service",
		Value: service,
		Usage: "add 'service' tag to logs",
	}
}

var NetworkFlags = []cli.Flag{
	RpcUrlFlag,
	PhraseFlag,
	PackageIDFlag,
	AdminCapIDFlag,
	PublisherIDFlag,
	AdminAddressFlag,
	GasBudgetFlag,
	DryRunFlag,
	TimeoutFlag,
}

var CommonFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
}
