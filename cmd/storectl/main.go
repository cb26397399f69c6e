package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shasthoai/store-backend/internal/app"
	"github.com/shasthoai/store-backend/internal/store"
	"github.com/shasthoai/store-backend/pkg/config"
	"github.com/shasthoai/store-backend/pkg/logger"
	"github.com/shasthoai/store-backend/pkg/metrics"
)

var (
	sessionID   string
	backendName string
	dbPath      string
	jsonOutput  bool
	verbose     bool

	logg    = logger.Nop()
	backend *app.Backend
	session *store.Session
)

var rootCmd = &cobra.Command{
	Use:   "storectl",
	Short: "Browse the medication catalog and manage a cart from the terminal",
	Long: `storectl drives the same store sessions as the HTTP API.

By default the cart is kept in a local sqlite file so it survives between
invocations. Use --backend to point it at memory, redis or another sql database.`,
	SilenceUsage:      true,
	PersistentPreRunE: openSession,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&sessionID, "session", "s", "", "Session id (default: the shared default cart)")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "KV backend: memory|redis|sql (default: $SHASTHO_KV_BACKEND or sql)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database DSN for the sql backend (default: $SHASTHO_DB_DSN or shastho.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of tables")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(productsCmd, productCmd, cartCmd)
}

func main() {
	_ = godotenv.Load()
	err := rootCmd.Execute()
	if cerr := closeSession(); cerr != nil {
		fmt.Fprintf(os.Stderr, "close backend: %v\n", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	switch {
	case backendName != "":
		cfg.Store.KVBackend = backendName
	case os.Getenv(config.EnvKVBackend) == "":
		cfg.Store.KVBackend = "sql"
	}
	if dbPath != "" {
		cfg.DB.DSN = dbPath
	}
	if strings.EqualFold(cfg.Store.KVBackend, "sql") && cfg.DB.DSN == "" && cfg.DB.IsSQLite() {
		cfg.DB.DSN = "shastho.db"
	}
	return cfg, nil
}

func openSession(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	logg = logger.New(logger.Options{
		ServiceName: "storectl",
		Level:       logger.ParseLevel(level),
		Output:      cmd.ErrOrStderr(),
		Format:      "console",
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	backend, err = app.OpenBackend(ctx, cfg, logg)
	if err != nil {
		return err
	}
	reg, err := app.NewRegistry(ctx, cfg, logg, backend, metrics.NewStoreMetrics(nil))
	if err != nil {
		return err
	}
	session, err = reg.Session(ctx, sessionID)
	return err
}

func closeSession() error {
	if backend == nil {
		return nil
	}
	err := backend.Close()
	backend, session = nil, nil
	return err
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func warnIfNotPersisted(cmd *cobra.Command, view store.CartView) {
	if !view.Persisted() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: cart change not saved: %v\n", view.PersistError)
	}
}
