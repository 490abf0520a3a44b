package compare

import (
	"fmt"
	"os"

	"github.com/ohler55/ojg/oj"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/missola/gt7-lap-engine/log"
	"github.com/missola/gt7-lap-engine/pkg/config"
	"github.com/missola/gt7-lap-engine/pkg/model"
	"github.com/missola/gt7-lap-engine/pkg/processing"
	comparisons "github.com/missola/gt7-lap-engine/pkg/processing/compare"
	"github.com/missola/gt7-lap-engine/pkg/processing/session"
	"github.com/missola/gt7-lap-engine/pkg/utils"
)

var lapNumbers []int

func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <telemetry.json>",
		Short: "compare two laps of a recorded telemetry session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compareSession(args[0])
		},
	}
	cmd.Flags().IntSliceVar(&lapNumbers, "laps", nil,
		"the two lap numbers to compare (default: the two fastest laps)")
	return cmd
}

//nolint:funlen // mostly output
func compareSession(path string) error {
	logger, err := log.New(
		log.WithLevel(config.LogLevel),
		log.WithFormat(config.LogFormat),
		log.WithFilters(config.LogFilters))
	if err != nil {
		return err
	}
	log.ResetDefault(logger)
	logger = logger.Named("compare")

	data, err := utils.LoadSession(path)
	if err != nil {
		return err
	}
	tuning, err := config.TuningFromViper(nil)
	if err != nil {
		return fmt.Errorf("invalid tuning config: %w", err)
	}

	laps := session.SplitLaps(data.Samples)
	summaries := data.Summaries
	if len(summaries) == 0 {
		summaries = session.Summaries(laps)
	}
	if len(laps) < 2 || len(summaries) < 2 {
		return fmt.Errorf("need at least 2 laps to compare, got %d", len(laps))
	}

	idxA, idxB, err := pickLaps(summaries)
	if err != nil {
		return err
	}
	logger.Info("comparing laps",
		log.Int("lapA", summaries[idxA].LapNumber),
		log.Int("lapB", summaries[idxB].LapNumber))

	analyzer := processing.NewAnalyzer(processing.WithTuning(tuning))
	annotated := analyzer.AnnotateLaps(laps)

	// summaries may come from the file and cover more laps than the stream
	lapA := lapByNumber(annotated, summaries[idxA].LapNumber)
	lapB := lapByNumber(annotated, summaries[idxB].LapNumber)
	if lapA == nil || lapB == nil {
		return fmt.Errorf("laps %d and %d not both present in the sample stream",
			summaries[idxA].LapNumber, summaries[idxB].LapNumber)
	}

	engine := comparisons.NewEngine(comparisons.WithGridSize(config.NumSamples))
	result := engine.Compare(summaries[idxA], summaries[idxB], lapA, lapB)

	// brake consistency across all recorded laps
	zones := lo.Map(annotated, func(lap []model.DistanceSample, _ int) []model.BrakeZone {
		return analyzer.Brakes().Detect(lap)
	})
	consistency := analyzer.Brakes().Consistency(zones)

	if config.Output == "json" {
		fmt.Fprintln(os.Stdout, oj.JSON(map[string]any{
			"comparison":  result,
			"consistency": consistency,
		}, 2))
		return nil
	}

	fmt.Printf("Lap %d vs lap %d\n", result.LapA, result.LapB)
	for _, s := range result.Sectors {
		fmt.Printf("  sector %d: %+.3fs (%.1f vs %.1f km/h)\n",
			s.Sector, s.Delta, s.AvgSpeedA, s.AvgSpeedB)
	}
	for _, insight := range result.Insights {
		fmt.Printf("  %s\n", insight)
	}
	for _, c := range consistency {
		fmt.Printf("  brake zone %d consistency: %.0f/100\n", c.Zone, c.Score)
	}
	return nil
}

func lapByNumber(laps [][]model.DistanceSample, number int) []model.DistanceSample {
	for _, lap := range laps {
		if len(lap) > 0 && lap[0].LapNumber == number {
			return lap
		}
	}
	return nil
}

// pickLaps resolves the --laps flag against the summaries, defaulting to
// the two fastest laps.
func pickLaps(summaries []model.LapSummary) (int, int, error) {
	if len(lapNumbers) == 0 {
		type ranked struct {
			idx  int
			time float64
		}
		order := make([]ranked, 0, len(summaries))
		for i := range summaries {
			order = append(order, ranked{idx: i, time: summaries[i].LapTime})
		}
		fastest := lo.MinBy(order, func(a, b ranked) bool { return a.time < b.time })
		rest := lo.Filter(order, func(r ranked, _ int) bool { return r.idx != fastest.idx })
		second := lo.MinBy(rest, func(a, b ranked) bool { return a.time < b.time })
		return fastest.idx, second.idx, nil
	}
	if len(lapNumbers) != 2 {
		return 0, 0, fmt.Errorf("--laps needs exactly 2 lap numbers")
	}
	idxA := lo.IndexOf(lo.Map(summaries,
		func(s model.LapSummary, _ int) int { return s.LapNumber }), lapNumbers[0])
	idxB := lo.IndexOf(lo.Map(summaries,
		func(s model.LapSummary, _ int) int { return s.LapNumber }), lapNumbers[1])
	if idxA == -1 || idxB == -1 {
		return 0, 0, fmt.Errorf("lap numbers %v not found in session", lapNumbers)
	}
	return idxA, idxB, nil
}
