package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/ethioagri/gebeya/app/clients"
	"github.com/ethioagri/gebeya/app/models"
	"github.com/ethioagri/gebeya/app/services"
	"github.com/ethioagri/gebeya/config"
	"github.com/ethioagri/gebeya/pkg/kv"
	"github.com/ethioagri/gebeya/pkg/logger"
	"github.com/ethioagri/gebeya/pkg/metrics"
	"github.com/ethioagri/gebeya/pkg/storage"
)

// Shared state wired up by boot() before any command runs.
var (
	authSvc    *services.AuthService
	productSvc *services.ProductService
	analyzer   *clients.Analyzer

	closeLogs = func() {}
)

func main() {
	defer closeLogs()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", friendly(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "gebeya",
	Short:         "Gebeya — farmer marketplace CLI",
	Long:          "Gebeya is a marketplace client for Ethiopian farmers: accounts, product listings and crop disease analysis from the command line.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return boot()
	},
}

func init() {
	// Accounts
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(loginCustomerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(testConnectionCmd)

	// Products
	rootCmd.AddCommand(productCmd)
	rootCmd.AddCommand(marketCmd)

	// Analysis
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(healthCmd)
}

// boot loads config and wires the stores and clients. Runs once per
// invocation, before the selected command.
func boot() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var err error
	closeLogs, err = logger.ConnectMongo()
	if err != nil {
		logger.Warn("boot: mongo log sink unavailable", "error", err)
	}

	store, err := kv.Open()
	if err != nil {
		return fmt.Errorf("open %s store: %w", config.KVDriver(), err)
	}

	storage.Connect()

	authSvc = services.NewAuthService(store, clients.NewBackendFromConfig())
	productSvc = services.NewProductService(store)
	analyzer = clients.NewAnalyzerFromConfig()

	if addr := config.MetricsAddr(); addr != "" {
		serveMetrics(addr)
	}
	return nil
}

// serveMetrics exposes /metrics while the command runs. Long-lived
// commands (none today, but watchers are planned) benefit most; for
// one-shot commands the listener simply dies with the process.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", metrics.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Warn("metrics endpoint stopped", "addr", addr, "error", err)
		}
	}()
}

// requireFarmer returns the logged-in farmer identity, or an error telling
// the user to log in.
func requireFarmer() (models.Farmer, error) {
	state := authSvc.Current()
	if !state.IsAuthenticated || state.User == nil {
		return models.Farmer{}, errors.New("not logged in — run `gebeya login` first")
	}
	if state.UserType != models.UserTypeFarmer {
		return models.Farmer{}, errors.New("this command needs a farmer account, not a customer session")
	}
	return *state.User, nil
}

// friendly unwraps the typed client errors into plain user-facing text.
func friendly(err error) string {
	var ve *clients.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var re *clients.RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	var te *clients.TransportError
	if errors.As(err, &te) {
		return te.Error()
	}
	return err.Error()
}
