package analyze

import (
	"fmt"
	"os"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/missola/gt7-lap-engine/log"
	"github.com/missola/gt7-lap-engine/pkg/config"
	"github.com/missola/gt7-lap-engine/pkg/model"
	"github.com/missola/gt7-lap-engine/pkg/processing"
	"github.com/missola/gt7-lap-engine/pkg/processing/session"
	"github.com/missola/gt7-lap-engine/pkg/utils"
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <telemetry.json>",
		Short: "analyze each lap of a recorded telemetry session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyzeSession(args[0])
		},
	}
	return cmd
}

func analyzeSession(path string) error {
	logger, err := log.New(
		log.WithLevel(config.LogLevel),
		log.WithFormat(config.LogFormat),
		log.WithFilters(config.LogFilters))
	if err != nil {
		return err
	}
	log.ResetDefault(logger)
	logger = logger.Named("analyze")

	data, err := utils.LoadSession(path)
	if err != nil {
		return err
	}
	tuning, err := config.TuningFromViper(nil)
	if err != nil {
		return fmt.Errorf("invalid tuning config: %w", err)
	}
	logger.Info("loaded session",
		log.Int("samples", len(data.Samples)),
		log.String("file", path))

	analyzer := processing.NewAnalyzer(processing.WithTuning(tuning))
	laps := session.SplitLaps(data.Samples)
	results := make([]model.LapAnalysis, 0, len(laps))
	for _, lap := range laps {
		result := analyzer.AnalyzeLap(lap)
		logger.Info("analyzed lap",
			log.Int("lap", result.LapNumber),
			log.Float64("distance", result.TotalDistance),
			log.Int("corners", len(result.Corners)),
			log.Int("brakeZones", len(result.BrakeZones)))
		results = append(results, result)
	}

	if config.Output == "json" {
		fmt.Fprintln(os.Stdout, oj.JSON(results, 2))
		return nil
	}
	for i := range results {
		printLap(&results[i])
	}
	return nil
}

func printLap(r *model.LapAnalysis) {
	fmt.Printf("Lap %d: %.3fs, %.1f m, avg %.1f km/h, max %.1f km/h\n",
		r.LapNumber, r.Stats.LapTime, r.TotalDistance,
		r.Stats.AvgSpeed, r.Stats.MaxSpeed)
	for i := range r.Corners {
		c := &r.Corners[i]
		fmt.Printf("  corner %d @ %.1f%%: apex %.1f km/h, %s (%.3fs lost)\n",
			c.Number, c.ApexPct, c.ApexSpeed, c.Rating, c.TimeLoss)
		for _, s := range c.Suggestions {
			fmt.Printf("    - %s\n", s)
		}
	}
	for i := range r.BrakeZones {
		z := &r.BrakeZones[i]
		trail := ""
		if z.TrailBraking {
			trail = " (trail braking)"
		}
		fmt.Printf("  brake zone %.1f%%-%.1f%%: %.0f%% peak%s\n",
			z.StartPct, z.EndPct, z.MaxPressure*100, trail)
	}
}
