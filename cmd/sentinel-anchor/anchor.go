package main

import (
	"fmt"
	"strings"

	"github.com/Sentinel-Intelligence/sentinel-public/internal/snapshot"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/anchor"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/commitment"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/digest"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/ledger"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/shared"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type anchorOptions struct {
	data    string
	file    string
	event   string
	records bool
	seed    string
	account string
	dryRun  bool
}

func (a *app) anchorCommand() *cobra.Command {
	var options anchorOptions
	command := &cobra.Command{
		Use:   "anchor",
		Short: "Hash a snapshot or record set and anchor the hash",
		Long: "Hash JSON input and anchor the hash as a ledger memo. Without a secret " +
			"the command performs a dry run and prints the memo it would write.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnchor(cmd, options)
		},
	}

	flags := command.Flags()
	flags.StringVar(&options.data, "data", "", "inline JSON to anchor")
	flags.StringVar(&options.file, "file", "", "JSON file to anchor (.br for brotli, - for stdin)")
	flags.StringVar(&options.event, "event", commitment.DefaultEvent, "event label recorded in the memo")
	flags.BoolVar(&options.records, "records", false, "treat input as a record list and anchor its Merkle root")
	flags.StringVar(&options.seed, "seed", "", "signing secret (XRPL family seed or Hedera private key)")
	flags.StringVar(&options.account, "account", "", "submitting account (derived from the seed on XRPL when empty)")
	flags.BoolVar(&options.dryRun, "dry-run", false, "never submit, even when a secret is configured")
	flags.String("amount", "", "self-payment amount in drops (XRPL)")
	flags.Duration("wait-timeout", 0, "how long to wait for ledger confirmation")
	flags.Duration("poll-interval", 0, "confirmation polling interval (XRPL)")
	flags.String("topic-id", "", "anchor topic ID (Hedera)")
	flags.Int("workers", 0, "parallel record hashing workers (0 uses all CPUs)")
	return command
}

func (a *app) runAnchor(cmd *cobra.Command, options anchorOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	data, err := snapshot.Read(snapshot.Source{Data: options.data, Path: options.file, Stdin: cmd.InOrStdin()})
	if err != nil {
		return err
	}

	credentials, err := a.credentials(options)
	if err != nil {
		return &usageError{message: err.Error()}
	}

	var transport ledger.Transport
	if credentials.HasSecret() {
		transport, err = a.newTransport(a.settings, a.logger)
		if err != nil {
			return &usageError{message: fmt.Sprintf("failed to configure %s transport: %v", a.settings.Ledger, err)}
		}
	}

	pipeline := anchor.Pipeline{
		Submitter: anchor.NewSubmitter(anchor.Config{
			Transport: transport,
			Amount:    a.settings.AmountDrops,
			Logger:    a.logger,
			Recorder:  a.recorder,
		}),
		Clock:   a.clock,
		Workers: a.settings.Workers,
	}

	var hash digest.Digest
	if options.records {
		records, err := snapshot.Records(data)
		if err != nil {
			return err
		}
		hash, err = pipeline.RecordsRoot(ctx, records)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Records: %d\n", len(records))
	} else {
		value, err := snapshot.Snapshot(data)
		if err != nil {
			return err
		}
		hash, err = pipeline.SnapshotDigest(value)
		if err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "Hash: %s\n", hash.Hex())

	result, err := pipeline.AnchorDigest(ctx, hash, options.event, credentials)
	if err != nil {
		return err
	}

	if result.Receipt.IsDryRun() {
		dryRun := result.Receipt.DryRun
		fmt.Fprintf(out, "DRY RUN - would anchor: %s... event=%s\n", hash.Hex()[:16], result.Payload.Event)
		fmt.Fprintf(out, "Memo type: %s\n", dryRun.MemoType)
		fmt.Fprintf(out, "Memo: %s\n", dryRun.MemoData)
		return nil
	}

	fmt.Fprintf(out, "Anchored: %s\n", result.Receipt.ConfirmationID)
	explorer, err := a.explorer()
	if err != nil {
		a.logger.Warn("no explorer for ledger", zap.Error(err))
		return nil
	}
	locator, err := explorer.Locate(result.Receipt.ConfirmationID)
	if err != nil {
		a.logger.Warn("confirmation id has no explorer link", zap.Error(err))
		return nil
	}
	fmt.Fprintf(out, "Verify: %s\n", locator.URL)
	return nil
}

// credentials returns nil for a dry run.
func (a *app) credentials(options anchorOptions) (*ledger.Credentials, error) {
	if options.dryRun {
		return nil, nil
	}
	if secret := strings.TrimSpace(options.seed); secret != "" {
		account := strings.TrimSpace(options.account)
		if account == "" && a.settings.Ledger == shared.LedgerHedera {
			return nil, fmt.Errorf("--account is required with --seed on hedera")
		}
		return &ledger.Credentials{Account: account, Secret: secret}, nil
	}

	credentials, err := shared.CredentialsFromEnv(a.settings.Ledger, a.settings.Network)
	if err != nil {
		return nil, err
	}
	if credentials != nil && strings.TrimSpace(options.account) != "" {
		credentials.Account = strings.TrimSpace(options.account)
	}
	return credentials, nil
}
