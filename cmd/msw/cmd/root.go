package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/mSW/internal/lab"
	"github.com/msto63/mSW/internal/synth"
	"github.com/msto63/mSW/internal/voicestore"
	"github.com/msto63/mSW/pkg/core/config"
	"github.com/msto63/mSW/pkg/core/logging"
)

var (
	cfgFile string
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "msw",
	Short: "meinSTIMMWERK - Lokales Stimm-Labor",
	Long: `meinSTIMMWERK verwaltet einen lokalen Katalog von Stimm-Stilvektoren
und erzeugt daraus neue Stimmen durch Interpolation.

Befehle:
  import       - Stimmen aus einem Manifest importieren
  list         - Stimmen im Katalog anzeigen
  interpolate  - Zwischen zwei Stimmgruppen interpolieren
  say          - Text mit einer gespeicherten Stimme sprechen
  export       - Stilvektoren exportieren
  browse       - Katalog interaktiv durchsuchen`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "Pfad zur Stimmen-Datenbank")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}

// loadConfig resolves the configuration from flags, environment and files
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if verbose {
		cfg.General.LogLevel = "debug"
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.LoggerConfig{
		Name:   "msw",
		Level:  cfg.General.LogLevel,
		Format: cfg.General.LogFormat,
	})
}

// openStore opens the SQLite-backed voice catalog
func openStore(cfg *config.Config) (voicestore.Store, error) {
	return voicestore.NewSQLiteVoiceStore(voicestore.SQLiteConfig{Path: cfg.Store.Path})
}

// newLab wires the store, synthesis engine and lab workflows together.
// The caller closes store and engine through the returned cleanup function.
func newLab(cfg *config.Config, player lab.AudioPlayer) (*lab.Lab, func(), error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	engine := synth.NewHTTPEngine(synth.HTTPConfig{
		BaseURL: cfg.Engine.BaseURL,
		Timeout: cfg.Engine.Timeout.Duration,
	})

	l := lab.New(store, engine, player, lab.Config{
		OutputDir: cfg.Output.Dir,
		ExportDir: cfg.Output.ExportDir,
		Speed:     cfg.Engine.DefaultSpeed,
		Language:  cfg.Engine.DefaultLanguage,
	}, newLogger(cfg))

	cleanup := func() {
		engine.Close()
		store.Close()
	}
	return l, cleanup, nil
}
