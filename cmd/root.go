package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/printcal/internal/app"
	"github.com/zjrosen/printcal/internal/cachemanager"
	"github.com/zjrosen/printcal/internal/calendar"
	"github.com/zjrosen/printcal/internal/config"
	"github.com/zjrosen/printcal/internal/infrastructure/sqlite"
	"github.com/zjrosen/printcal/internal/log"
	"github.com/zjrosen/printcal/internal/orders"
	"github.com/zjrosen/printcal/internal/persistence"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".printcal/config.yaml"

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "printcal",
	Short:   "A terminal print calendar for YBS orders",
	Long:    `A terminal calendar for scheduling print orders: log in to the YBS portal, drag orders onto days, keep notes, and undo anything.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/printcal/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write debug logs to debug.log")
	rootCmd.PersistentFlags().String("state", "",
		"path to the calendar state file")

	_ = viper.BindPFlag("state_path", rootCmd.PersistentFlags().Lookup("state"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())
	viper.SetEnvPrefix("printcal")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .printcal/config.yaml (current directory)
		// 2. ~/.config/printcal/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "printcal"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the default in the user dir
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			defaultPath := userConfigPath()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func userConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "printcal", "config.yaml")
}

// setupLogging enables the file logger when --debug or PRINTCAL_DEBUG is set.
func setupLogging() func() {
	if !debug && !log.Enabled() {
		return func() {}
	}
	cleanup, err := log.InitWithTeaLog("debug.log", "printcal")
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug log unavailable: %v\n", err)
		return func() {}
	}
	log.Info(log.CatConfig, "debug logging enabled", "version", version)
	return cleanup
}

// newService builds the order service with the credential cache and, when
// the snapshot database opens, the last fetched list. The returned close
// func releases the database.
func newService(c config.Config, tracer trace.Tracer) (*orders.Service, func(), error) {
	src, err := orders.NewHTTPSource(c.Orders.BaseURL, c.Orders.Timeout, orders.WithSourceTracer(tracer))
	if err != nil {
		return nil, nil, fmt.Errorf("creating order source: %w", err)
	}

	creds := cachemanager.NewInMemoryCacheManager[string, orders.Credentials](
		"credentials", c.Orders.CredentialTTL, cachemanager.DefaultCleanupInterval)
	opts := []orders.ServiceOption{
		orders.WithCredentialCache(creds, c.Orders.CredentialTTL),
		orders.WithTracer(tracer),
	}

	closeDB := func() {}
	if c.Orders.SnapshotPath != "" {
		db, err := sqlite.NewDB(config.ExpandPath(c.Orders.SnapshotPath))
		if err != nil {
			log.ErrorErr(log.CatDB, "snapshot database unavailable", err, "path", c.Orders.SnapshotPath)
		} else {
			opts = append(opts, orders.WithSnapshots(db.Orders()))
			closeDB = func() { _ = db.Close() }
		}
	}
	return orders.NewService(src, opts...), closeDB, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	cleanupLog := setupLogging()
	defer cleanupLog()

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gateway := persistence.NewGateway(config.ExpandPath(cfg.StatePath))
	store := calendar.NewStore(gateway.Load())

	provider, closeTracing := newTracing(cfg.Tracing)
	defer closeTracing()

	svc, closeDB, err := newService(cfg, provider.Tracer())
	if err != nil {
		return err
	}
	defer closeDB()

	// Store the config file path for remembering the username
	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = userConfigPath()
	}

	zone.NewGlobal()
	model := app.New(context.Background(), app.Deps{
		Config:     cfg,
		ConfigPath: configFilePath,
		Store:      store,
		Gateway:    gateway,
		Service:    svc,
	})
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	// Stop the worker and write anything not yet saved
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
