package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/mSW/internal/audio"
	"github.com/msto63/mSW/internal/lab"
)

var (
	sayText   string
	saySpeed  float32
	sayLang   string
	sayOutput string
	sayPlay   bool
)

var sayCmd = &cobra.Command{
	Use:   "say <stimme>",
	Short: "Text mit einer gespeicherten Stimme sprechen",
	Long: `Synthetisiert Text mit einer Stimme aus dem Katalog und schreibt
das Ergebnis als WAV-Datei. Mit --play wird es zusätzlich direkt
abgespielt.

Beispiele:
  msw say af_bella --text "Hallo Welt"
  msw say neutral_blend --text "Guten Morgen" --speed 0.9 --play`,
	Args: cobra.ExactArgs(1),
	RunE: runSay,
}

func init() {
	rootCmd.AddCommand(sayCmd)

	sayCmd.Flags().StringVar(&sayText, "text", "", "Zu sprechender Text")
	sayCmd.Flags().Float32Var(&saySpeed, "speed", 0, "Sprechgeschwindigkeit")
	sayCmd.Flags().StringVar(&sayLang, "lang", "", "Sprachcode, z.B. en-us")
	sayCmd.Flags().StringVarP(&sayOutput, "output", "o", "", "Pfad der Ausgabedatei")
	sayCmd.Flags().BoolVar(&sayPlay, "play", false, "Ergebnis direkt abspielen")
}

func runSay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("Konfiguration konnte nicht geladen werden", err)
		return err
	}

	var player lab.AudioPlayer
	if sayPlay {
		p, err := audio.NewPlayer()
		if err != nil {
			printError("Audioausgabe nicht verfügbar", err)
			return err
		}
		defer p.Close()
		player = p
	}

	l, cleanup, err := newLab(cfg, player)
	if err != nil {
		printError("Katalog konnte nicht geöffnet werden", err)
		return err
	}
	defer cleanup()

	result, err := l.Say(context.Background(), lab.SayOptions{
		Voice:    args[0],
		Text:     sayText,
		Speed:    saySpeed,
		Language: sayLang,
		Output:   sayOutput,
		Play:     sayPlay,
	})
	if err != nil {
		printError("Synthese fehlgeschlagen", err)
		return err
	}

	seconds := float64(result.Samples) / float64(result.SampleRate)
	fmt.Printf("%s gesprochen (%.1fs): %s\n", result.Voice.Name, seconds, result.OutputPath)

	return nil
}
