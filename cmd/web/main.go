package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/audit-atlas/pkg/server"
	auditsvc "github.com/de-tools/audit-atlas/pkg/services/audit"
	"github.com/de-tools/audit-atlas/pkg/services/config"
	"github.com/de-tools/audit-atlas/pkg/services/stats"
	"github.com/de-tools/audit-atlas/pkg/services/templates"
	"github.com/de-tools/audit-atlas/pkg/store/duckdb"
	auditstore "github.com/de-tools/audit-atlas/pkg/store/duckdb/audit"
	recstore "github.com/de-tools/audit-atlas/pkg/store/duckdb/recommendation"
	templatestore "github.com/de-tools/audit-atlas/pkg/store/duckdb/template"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Audit Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the server config file (YAML)")

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

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.DBPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	templateStore, err := templatestore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create template store: %w", err)
	}
	auditStore, err := auditstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create audit store: %w", err)
	}
	recommendationStore, err := recstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create recommendation store: %w", err)
	}

	addr := cfg.Addr
	if host, port := os.Getenv("SERVER_HOST"), os.Getenv("SERVER_PORT"); host != "" && port != "" {
		addr = net.JoinHostPort(host, port)
	}

	webAPI := server.NewWebAPI(server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Audits:    auditsvc.NewManager(db, templateStore, auditStore, recommendationStore),
			Reporter:  stats.NewReporter(auditStore, templateStore, cfg.TrendSize),
			Templates: templates.NewCatalog(templateStore),
			Logger:    logger,
		},
	})

	return webAPI.Start()
}
