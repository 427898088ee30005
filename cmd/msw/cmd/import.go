package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var importPack string

var importCmd = &cobra.Command{
	Use:   "import <manifest>",
	Short: "Stimmen aus einem Manifest importieren",
	Long: `Importiert Stimmen aus einer JSON- oder YAML-Manifestdatei in den
Katalog. Stilvektoren stehen entweder direkt im Manifest oder kommen aus
einem Voice-Pack-Archiv (--pack). Vorhandene Stimmen gleichen Namens
werden aktualisiert.

Beispiele:
  msw import voices.json
  msw import voices.yaml --pack kokoro_voices.npz`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importPack, "pack", "", "Voice-Pack-Archiv mit Stilvektoren (.npz)")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("Konfiguration konnte nicht geladen werden", err)
		return err
	}

	l, cleanup, err := newLab(cfg, nil)
	if err != nil {
		printError("Katalog konnte nicht geöffnet werden", err)
		return err
	}
	defer cleanup()

	result, err := l.ImportManifest(context.Background(), args[0], importPack)
	if err != nil {
		printError("Import fehlgeschlagen", err)
		return err
	}

	fmt.Printf("%d Stimmen importiert, Katalog enthält jetzt %d Stimmen.\n", result.Imported, result.Total)
	if len(result.Skipped) > 0 {
		fmt.Printf("%d Einträge übersprungen:\n", len(result.Skipped))
		for _, p := range result.Skipped {
			fmt.Printf("  %s: %v\n", p.Name, p.Reason)
		}
	}

	return nil
}
