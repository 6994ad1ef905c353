package main

import (
	"skillmatch/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedOnly []string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the skill vocabulary and demo postings",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringSliceVar(&seedOnly, "only", nil, "run only these seeders (skills, demo_jobs)")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := connect(cmd.Context(), log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	runner := seeder.Runner{Seeders: seeder.Defaults(), Logger: log}
	return runner.Run(cmd.Context(), db, seedOnly...)
}
