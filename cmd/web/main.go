package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dswhitely1/donthetreasurer/pkg/server"
	"github.com/dswhitely1/donthetreasurer/pkg/services/config"
	"github.com/dswhitely1/donthetreasurer/pkg/services/report"
	"github.com/dswhitely1/donthetreasurer/pkg/store/ledger"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the treasurer report export server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a config file (environment variables take precedence)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := ledger.NewDB(ledger.Settings{DbPath: cfg.Database.Path})
	if err != nil {
		return fmt.Errorf("failed to open ledger database: %w", err)
	}
	defer db.Close()

	store, err := ledger.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create ledger store: %w", err)
	}

	logger.Info().Str("db", cfg.Database.Path).Msg("ledger database ready")

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Reports: report.NewGenerator(store),
		},
	})

	return api.Start()
}
