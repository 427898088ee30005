package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/mSW/internal/voicestore"
)

var (
	exportVoice       string
	exportAll         bool
	exportSelect      string
	exportDestination string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Stilvektoren exportieren",
	Long: `Exportiert Stilvektoren aus dem Katalog. Eine einzelne Stimme wird
als Tensor-Datei (.npy) geschrieben, mehrere Stimmen als Archiv (.npz),
das sich als Voice-Pack wieder importieren lässt.

Beispiele:
  msw export --voice af_bella
  msw export --all
  msw export --all --select "quality>=80" --dir ./release_voices`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportVoice, "voice", "", "Einzelne Stimme exportieren")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Alle passenden Stimmen als Archiv exportieren")
	exportCmd.Flags().StringVar(&exportSelect, "select", "", "Selektor für --all")
	exportCmd.Flags().StringVar(&exportDestination, "dir", "", "Zielverzeichnis")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportVoice == "" && !exportAll {
		err := fmt.Errorf("--voice oder --all angeben")
		printError("Nichts zu exportieren", err)
		return err
	}

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

	ctx := context.Background()

	if exportVoice != "" {
		path, err := l.ExportVoice(ctx, exportVoice, exportDestination)
		if err != nil {
			printError("Export fehlgeschlagen", err)
			return err
		}
		fmt.Printf("Stimme %q exportiert: %s\n", exportVoice, path)
		return nil
	}

	sel, err := voicestore.ParseSelector(exportSelect)
	if err != nil {
		printError("Ungültiger Selektor", err)
		return err
	}

	path, names, err := l.ExportAll(ctx, sel, exportDestination)
	if err != nil {
		printError("Export fehlgeschlagen", err)
		return err
	}
	fmt.Printf("%d Stimmen exportiert: %s\n", len(names), path)

	return nil
}
