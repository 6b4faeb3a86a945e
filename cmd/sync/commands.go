package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	sonic "github.com/bytedance/sonic"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/riskibarqy/courtvision/internal/app"
	"github.com/riskibarqy/courtvision/internal/config"
	"github.com/riskibarqy/courtvision/internal/platform/logging"
	"github.com/riskibarqy/courtvision/internal/usecase"
	"github.com/spf13/cobra"
)

type syncFlags struct {
	team    string
	workers int
	queue   bool
	json    bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "courtvision-sync",
		Short:        "Run game log maintenance jobs against the NBA stats API",
		SilenceUsage: true,
	}

	root.AddCommand(
		newJobCmd("update-game-logs", "Fetch game logs newer than each team's latest stored game", usecase.SyncJobUpdateGameLogs),
		newJobCmd("backfill-stats", "Refresh box score columns for stored game logs", usecase.SyncJobBackfillStats),
	)
	return root
}

func newJobCmd(use, short string, job usecase.SyncJob) *cobra.Command {
	flags := &syncFlags{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJob(cmd.Context(), cmd.OutOrStdout(), job, flags)
		},
	}
	cmd.Flags().StringVar(&flags.team, "team", "", "limit the run to one team (name, abbreviation or id)")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "worker pool size (defaults to SYNC_MAX_WORKERS)")
	cmd.Flags().BoolVar(&flags.queue, "queue", false, "fan out through the job queue instead of running inline")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the run summary as JSON")
	return cmd
}

func runJob(ctx context.Context, out io.Writer, job usecase.SyncJob, flags *syncFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flags.queue && !cfg.QStashEnabled {
		return fmt.Errorf("--queue requires QSTASH_ENABLED=true")
	}

	logger := logging.NewJSONTo(os.Stderr, cfg.LogLevel).With("service", cfg.ServiceName, "job", string(job))
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	container, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer container.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := container.Sync.Run(ctx, usecase.SyncInput{
		Job:        job,
		Team:       flags.team,
		MaxWorkers: flags.workers,
		Queue:      flags.queue,
	})
	if err != nil {
		return err
	}

	if flags.json {
		payload, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		_, err = fmt.Fprintln(out, string(payload))
		return err
	}
	renderResult(out, result)
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d teams failed", result.Failed, result.Teams)
	}
	return nil
}

func renderResult(out io.Writer, result usecase.SyncResult) {
	table := tablewriter.NewTable(out, tablewriter.WithConfig(tablewriter.Config{
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
	}))
	table.Header("TEAM", "STATUS", "ROWS", "MS", "MESSAGE")
	for _, item := range result.TeamResults {
		table.Append(item.Team, item.Status, strconv.Itoa(item.Rows), strconv.FormatInt(item.DurationMs, 10), item.Message)
	}
	table.Render()

	fmt.Fprintf(out, "\nrun %s (%s): %d teams, %d ok, %d failed, %d queued, %d rows, %d workers, %dms\n",
		result.RunID, result.Job, result.Teams, result.Succeeded, result.Failed, result.Queued,
		result.Rows, result.WorkerCount, result.DurationMs)
}
