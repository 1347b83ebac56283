// Command buddyseed loads a YAML people directory into a buddyhub database.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dalemusser/buddyhub/internal/app/seed"
	"github.com/dalemusser/buddyhub/internal/app/system/indexes"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	root := &cobra.Command{
		Use:           "buddyseed",
		Short:         "Seed the buddyhub people directory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(loadCmd(), checkCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "buddyseed:", err)
		os.Exit(1)
	}
}

func checkCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a seed file without touching the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seed.LoadFile(file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d users ok\n", file, len(f.Users))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "people.yaml", "Seed YAML file")
	return cmd
}

func loadCmd() *cobra.Command {
	var (
		file     string
		mongoURI string
		database string
		timeout  time.Duration
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Create missing users and presence from a seed file",
		Long: `Load reads a YAML seed file and creates every listed user that does
not exist yet (matched by email). Bot owners are resolved by email.
Existing users are left untouched, so the command can be re-run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if err := wafflemongo.ValidateURI(mongoURI); err != nil {
				return fmt.Errorf("invalid --mongo-uri: %w", err)
			}
			f, err := seed.LoadFile(file)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
			if err != nil {
				return fmt.Errorf("mongo connect: %w", err)
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			db := client.Database(database)
			if err := indexes.EnsureAll(ctx, db); err != nil {
				return fmt.Errorf("ensure indexes: %w", err)
			}

			res, err := seed.Apply(ctx, db, f, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d, existing %d, presence %d\n", res.Created, res.Existing, res.Presence)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "people.yaml", "Seed YAML file")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", envOr("BUDDYHUB_MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	cmd.Flags().StringVar(&database, "database", envOr("BUDDYHUB_MONGO_DATABASE", "buddyhub"), "MongoDB database name")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall deadline for the load")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every created user")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
