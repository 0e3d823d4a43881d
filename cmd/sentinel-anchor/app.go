package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sentinel-Intelligence/sentinel-public/internal/config"
	"github.com/Sentinel-Intelligence/sentinel-public/internal/logging"
	"github.com/Sentinel-Intelligence/sentinel-public/internal/metrics"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/commitment"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/hcsledger"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/ledger"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/mirror"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/shared"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/verify"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/xrpl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configFile  string
	metricsFile string

	viper    *viper.Viper
	settings config.Settings
	logger   *zap.Logger
	recorder *metrics.Recorder
	clock    commitment.Clock

	newTransport  func(settings config.Settings, logger *zap.Logger) (ledger.Transport, error)
	newMemoSource func(settings config.Settings) (verify.MemoSource, error)
}

func newApp(stdin io.Reader, stdout io.Writer, stderr io.Writer) *app {
	return &app{
		stdin:         stdin,
		stdout:        stdout,
		stderr:        stderr,
		logger:        zap.NewNop(),
		recorder:      metrics.NewRecorder(),
		clock:         commitment.SystemClock{},
		newTransport:  newLedgerTransport,
		newMemoSource: newLedgerMemoSource,
	}
}

// execute runs the command line and returns the exit status.
func (a *app) execute(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if a.metricsFile != "" {
		if writeErr := a.recorder.WriteTextfile(a.metricsFile); writeErr != nil {
			fmt.Fprintf(a.stderr, "warning: %v\n", writeErr)
		}
	}
	_ = a.logger.Sync()

	if err != nil {
		fmt.Fprintf(a.stderr, "Failure: %s\n", failureLabel(err))
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sentinel-anchor",
		Short:         "Fingerprint graph data and anchor it on a public ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadSettings(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ~/.sentinel/config.yaml)")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus textfile metrics here after the run")
	flags.String("ledger", "", "ledger to anchor on: xrpl or hedera")
	flags.String("network", "", "ledger network: mainnet, testnet or devnet")
	flags.String("rpc-url", "", "rippled JSON-RPC URL (XRP Ledger)")
	flags.String("mirror-url", "", "mirror node base URL (Hedera)")
	flags.String("explorer-url", "", "explorer base URL for verification links")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: console or json")

	root.AddCommand(
		a.anchorCommand(),
		a.verifyCommand(),
		a.rootHashCommand(),
		a.queriesCommand(),
		a.versionCommand(),
	)
	return root
}

var flagKeys = map[string]string{
	"ledger":        config.KeyLedger,
	"network":       config.KeyNetwork,
	"rpc-url":       config.KeyRPCURL,
	"mirror-url":    config.KeyMirrorURL,
	"explorer-url":  config.KeyExplorerURL,
	"log-level":     config.KeyLogLevel,
	"log-format":    config.KeyLogFormat,
	"amount":        config.KeyAmountDrops,
	"wait-timeout":  config.KeyWaitTimeout,
	"poll-interval": config.KeyPollInterval,
	"topic-id":      config.KeyTopicID,
	"workers":       config.KeyWorkers,
}

func (a *app) loadSettings(cmd *cobra.Command) error {
	v, err := config.New(a.configFile)
	if err != nil {
		return &usageError{message: err.Error()}
	}
	for flagName, key := range flagKeys {
		if flag := cmd.Flags().Lookup(flagName); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", flagName, err)
			}
		}
	}

	settings, err := config.Resolve(v)
	if err != nil {
		return &usageError{message: err.Error()}
	}
	logger, err := logging.New(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return &usageError{message: err.Error()}
	}

	a.viper = v
	a.settings = settings
	a.logger = logger.With(zap.String("ledger", settings.Ledger), zap.String("network", settings.Network))
	return nil
}

func (a *app) explorer() (verify.Explorer, error) {
	explorer, err := verify.ExplorerFor(a.settings.Ledger, a.settings.Network)
	if err != nil {
		return verify.Explorer{}, err
	}
	if a.settings.ExplorerURL != "" {
		return explorer.WithBaseURL(a.settings.ExplorerURL)
	}
	return explorer, nil
}

func newLedgerTransport(settings config.Settings, logger *zap.Logger) (ledger.Transport, error) {
	switch settings.Ledger {
	case shared.LedgerHedera:
		return hcsledger.NewTransport(hcsledger.Config{
			Network:        settings.Network,
			TopicID:        settings.TopicID,
			MirrorBaseURL:  settings.MirrorURL,
			ReceiptTimeout: settings.WaitTimeout,
			Logger:         logger,
		})
	default:
		client, err := xrpl.NewClient(xrpl.Config{Network: settings.Network, URL: settings.RPCURL})
		if err != nil {
			return nil, err
		}
		return xrpl.NewTransport(xrpl.TransportConfig{
			Client:       client,
			WaitTimeout:  settings.WaitTimeout,
			PollInterval: settings.PollInterval,
			Logger:       logger,
		})
	}
}

func newLedgerMemoSource(settings config.Settings) (verify.MemoSource, error) {
	switch settings.Ledger {
	case shared.LedgerHedera:
		mirrorClient, err := mirror.NewClient(mirror.Config{Network: settings.Network, BaseURL: settings.MirrorURL})
		if err != nil {
			return nil, err
		}
		return hcsledger.NewReader(mirrorClient)
	default:
		return xrpl.NewClient(xrpl.Config{Network: settings.Network, URL: settings.RPCURL})
	}
}
