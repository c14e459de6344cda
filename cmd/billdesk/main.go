package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/app"
	"github.com/mamadbah2/milkbill/internal/config"
	"github.com/mamadbah2/milkbill/internal/console"
	"github.com/mamadbah2/milkbill/pkg/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "billdesk",
	Short:         "Record milk deliveries and bill customers from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "path of a .env file to load before reading the environment")
}

func run(ctx context.Context) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	// The terminal belongs to the console, so logs go to a file.
	log, err := logger.NewFile(cfg.Console.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = log.Sync() }()

	svcs, err := app.NewServices(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	defer func() {
		if err := svcs.Close(context.Background()); err != nil {
			log.Error("failed to close store", zap.Error(err))
		}
	}()

	model := console.New(console.Deps{
		Customers:    svcs.Directory,
		Submissions:  svcs.Submissions,
		Messages:     svcs.Messaging,
		Invoices:     svcs.Invoices,
		Title:        cfg.Billing.BusinessName,
		PDFDir:       cfg.Console.PDFDir,
		DefaultPrice: cfg.Billing.DefaultPricePerLiter,
		Logger:       log.Named("console"),
	})

	log.Info("billdesk starting", zap.String("store", cfg.Store.Driver), zap.String("sheet_sink", cfg.Sheets.Sink))
	return console.Run(model)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
