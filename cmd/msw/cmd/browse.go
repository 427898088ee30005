package cmd

import (
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/mSW/internal/tui/catalog"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Katalog interaktiv durchsuchen",
	Long: `Öffnet einen interaktiven Browser für den Stimmenkatalog mit
Filterung nach Name, Geschlecht und synthetischen Stimmen.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("Konfiguration konnte nicht geladen werden", err)
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		printError("Katalog konnte nicht geöffnet werden", err)
		return err
	}
	defer store.Close()

	p := tea.NewProgram(catalog.New(store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		printError("TUI beendet mit Fehler", err)
		return err
	}

	return nil
}
