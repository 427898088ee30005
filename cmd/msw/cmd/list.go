package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/mSW/internal/voicestore"
)

var listSelector string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Stimmen im Katalog anzeigen",
	Long: `Zeigt die Stimmen im Katalog an, optional gefiltert über einen
Selektor.

Beispiele:
  msw list
  msw list --select gender=F
  msw list --select "gender=M,quality>=70,name=af_*"
  msw list --select synthetic=true`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listSelector, "select", "", "Selektor, z.B. gender=F,quality>=70")
}

func runList(cmd *cobra.Command, args []string) error {
	sel, err := voicestore.ParseSelector(listSelector)
	if err != nil {
		printError("Ungültiger Selektor", err)
		return err
	}

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

	voices, err := store.Select(context.Background(), sel)
	if err != nil {
		printError("Abfrage fehlgeschlagen", err)
		return err
	}

	if len(voices) == 0 {
		fmt.Printf("Keine Stimmen für Selektor %s gefunden.\n", sel.String())
		return nil
	}

	fmt.Printf("Stimmen (%s)\n", sel.String())
	fmt.Println("============================================================")
	fmt.Printf("%-24s %-3s %-10s %4s %6s %6s\n", "Name", "G", "Sprache", "Q", "Dim", "Synth")
	for _, v := range voices {
		synth := ""
		if v.IsSynthetic {
			synth = "ja"
		}
		fmt.Printf("%-24s %-3s %-10s %4d %6d %6s\n",
			v.Name, v.Gender, v.Language, v.Quality, len(v.StyleVector), synth)
	}
	fmt.Printf("\n%d Stimmen.\n", len(voices))

	return nil
}
