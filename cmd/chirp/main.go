package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chirpnet/chirp/internal/app"
	"github.com/chirpnet/chirp/internal/config"
	"github.com/chirpnet/chirp/internal/console"
	"github.com/chirpnet/chirp/internal/logging"
	"github.com/chirpnet/chirp/internal/session"
	"github.com/chirpnet/chirp/internal/store/sqlite"
)

var rootCmd = &cobra.Command{
	Use:   "chirp [database]",
	Short: "Terminal client for the chirp social network",
	Long: `chirp is an interactive terminal client for a small social
network: compose tweets, browse the activity of people you follow,
search tweets and users, and manage followers. The optional argument
is the SQLite database path (default ./chirp.db, or CHIRP_DB).`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if len(args) > 0 {
			cfg.DBPath = args[0]
		}
		return run(cfg)
	},
}

func run(cfg config.Config) error {
	log, err := logging.New(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Error("open store", zap.Error(err))
		return err
	}
	defer st.Close()
	log.Info("session start", zap.String("db", cfg.DBPath))

	con := console.New(os.Stdin, os.Stdout)
	auth := session.NewService(st, log)
	a := app.New(st, con, auth, log)

	// A storage error is the one fault with no recovery path: log it
	// and let the process die.
	if err := a.Run(context.Background()); err != nil {
		log.Error("storage failure", zap.Error(err))
		return err
	}
	log.Info("session end")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "chirp:", err)
		os.Exit(1)
	}
}
