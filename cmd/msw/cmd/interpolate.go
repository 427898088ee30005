package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/mSW/internal/lab"
	"github.com/msto63/mSW/internal/voicestore"
)

var (
	interpSource  string
	interpTarget  string
	interpRanges  string
	interpText    string
	interpSpeed   float32
	interpLang    string
	interpOutDir  string
	interpInsert  bool
	interpFactor  float64
	interpName    string
	interpGender  string
	interpQuality int
	interpNotes   string
)

var interpolateCmd = &cobra.Command{
	Use:   "interpolate",
	Short: "Zwischen zwei Stimmgruppen interpolieren",
	Long: `Bildet die Zentroide zweier Stimmgruppen und interpoliert zwischen
ihnen. Faktor -1 ergibt die Quellgruppe, +1 die Zielgruppe, 0 die Mitte.
Faktoren außerhalb von [-1, 1] extrapolieren über die Gruppen hinaus.

Mit --insert wird das Ergebnis eines einzelnen Faktors als neue
synthetische Stimme gespeichert. Dabei sind --name, --gender und
--quality Pflicht; ein bereits vergebener Name bricht ab.

Beispiele:
  msw interpolate --source gender=M --target gender=F \
      --ranges -1:1:0.5 --text "Hallo Welt"
  msw interpolate --source name=af_bella --target name=am_adam \
      --ranges 0,0.25,0.5 --text "Testsatz" --speed 1.2
  msw interpolate --source gender=M --target gender=F --factor 0 \
      --insert --name neutral_blend --gender X --quality 75`,
	RunE: runInterpolate,
}

func init() {
	rootCmd.AddCommand(interpolateCmd)

	interpolateCmd.Flags().StringVar(&interpSource, "source", "", "Selektor der Quellgruppe")
	interpolateCmd.Flags().StringVar(&interpTarget, "target", "", "Selektor der Zielgruppe")
	interpolateCmd.Flags().StringVar(&interpRanges, "ranges", "-2,-1,-0.5,0,0.5,1,2", "Faktoren: Liste (0,0.5,1) oder Bereich (start:ende:schritt)")
	interpolateCmd.Flags().StringVar(&interpText, "text", "Hello, world!", "Zu sprechender Text")
	interpolateCmd.Flags().Float32Var(&interpSpeed, "speed", 0, "Sprechgeschwindigkeit")
	interpolateCmd.Flags().StringVar(&interpLang, "lang", "", "Sprachcode, z.B. en-us")
	interpolateCmd.Flags().StringVar(&interpOutDir, "output-dir", "", "Ausgabeverzeichnis für WAV-Dateien")
	interpolateCmd.Flags().BoolVar(&interpInsert, "insert", false, "Ergebnis als synthetische Stimme speichern")
	interpolateCmd.Flags().Float64Var(&interpFactor, "factor", 0, "Interpolationsfaktor für --insert")
	interpolateCmd.Flags().StringVar(&interpName, "name", "", "Name der neuen Stimme (--insert)")
	interpolateCmd.Flags().StringVar(&interpGender, "gender", "", "Geschlecht der neuen Stimme: M, F oder X (--insert)")
	interpolateCmd.Flags().IntVar(&interpQuality, "quality", 0, "Qualität 0-100 der neuen Stimme (--insert)")
	interpolateCmd.Flags().StringVar(&interpNotes, "notes", "", "Notizen zur neuen Stimme (--insert)")
}

// parseFactors accepts either a comma-separated list of factors or a
// start:end:step range
func parseFactors(text string) ([]float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	if strings.Contains(text, ":") {
		parts := strings.Split(text, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid range %q, want start:end:step", text)
		}
		start, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid range start %q", parts[0])
		}
		end, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid range end %q", parts[1])
		}
		step, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil || step <= 0 {
			return nil, fmt.Errorf("invalid range step %q", parts[2])
		}

		var factors []float64
		// Small epsilon keeps the end point inside despite float drift
		for f := start; f <= end+step/1e6; f += step {
			factors = append(factors, f)
		}
		return factors, nil
	}

	var factors []float64
	for _, part := range strings.Split(text, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid factor %q", part)
		}
		factors = append(factors, f)
	}
	return factors, nil
}

func runInterpolate(cmd *cobra.Command, args []string) error {
	source, err := voicestore.ParseSelector(interpSource)
	if err != nil {
		printError("Ungültiger Quell-Selektor", err)
		return err
	}
	target, err := voicestore.ParseSelector(interpTarget)
	if err != nil {
		printError("Ungültiger Ziel-Selektor", err)
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

	if interpInsert {
		// Changed distinguishes an explicit --quality 0 from an unset flag
		var quality *int
		if cmd.Flags().Changed("quality") {
			q := interpQuality
			quality = &q
		}

		result, err := l.InsertSynthetic(ctx, lab.SyntheticOptions{
			Source:   source,
			Target:   target,
			Factor:   interpFactor,
			Name:     interpName,
			Gender:   interpGender,
			Quality:  quality,
			Notes:    interpNotes,
			Text:     interpText,
			Speed:    interpSpeed,
			Language: interpLang,
			Output:   interpOutDir,
		})
		if err != nil {
			printError("Stimme konnte nicht angelegt werden", err)
			return err
		}

		printGroups(result.SourceVoices, result.TargetVoices)
		fmt.Printf("Synthetische Stimme %q gespeichert (Faktor %.2f).\n", result.Record.Name, interpFactor)
		if result.OutputPath != "" {
			fmt.Printf("Hörprobe: %s\n", result.OutputPath)
		}
		return nil
	}

	factors, err := parseFactors(interpRanges)
	if err != nil {
		printError("Ungültige Faktoren", err)
		return err
	}

	result, err := l.Interpolate(ctx, lab.InterpolateOptions{
		Source:   source,
		Target:   target,
		Factors:  factors,
		Text:     interpText,
		Speed:    interpSpeed,
		Language: interpLang,
		Output:   interpOutDir,
	})
	if err != nil {
		printError("Interpolation fehlgeschlagen", err)
		return err
	}

	printGroups(result.SourceVoices, result.TargetVoices)
	fmt.Printf("%d Schritte erzeugt:\n", len(result.Steps))
	for _, step := range result.Steps {
		fmt.Printf("  %+.2f  %s\n", step.Factor, step.OutputPath)
	}

	return nil
}

func printGroups(source, target []*voicestore.VoiceRecord) {
	fmt.Printf("Quellgruppe (%d Stimmen): %s\n", len(source), voiceNames(source))
	fmt.Printf("Zielgruppe  (%d Stimmen): %s\n", len(target), voiceNames(target))
}

func voiceNames(voices []*voicestore.VoiceRecord) string {
	names := make([]string, len(voices))
	for i, v := range voices {
		names[i] = v.Name
	}
	return strings.Join(names, ", ")
}
