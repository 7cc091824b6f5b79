package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/epmodel/schedkit/core/schedule"
	"github.com/epmodel/schedkit/infra/logger"
)

var (
	averageName     string
	averageWeights  string
	averageTimestep int
	averageOut      string
)

var averageCmd = &cobra.Command{
	Use:   "average <schedule.json>...",
	Short: "Merge schedules into a weighted average schedule",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAverage,
}

func init() {
	averageCmd.Flags().StringVar(&averageName, "name", "Averaged Schedule", "name of the result")
	averageCmd.Flags().StringVar(&averageWeights, "weights", "", "comma separated weights, one per schedule")
	averageCmd.Flags().IntVar(&averageTimestep, "timestep", 1, "resolution of the averaged day profiles")
	averageCmd.Flags().StringVarP(&averageOut, "out", "o", "-", "output file, - for stdout")
	rootCmd.AddCommand(averageCmd)
}

func runAverage(cmd *cobra.Command, args []string) error {
	log := logger.New("average")
	runID := uuid.NewString()

	scheds := make([]*schedule.Ruleset, 0, len(args))
	for _, path := range args {
		rs, err := loadRuleset(path)
		if err != nil {
			return err
		}
		scheds = append(scheds, rs)
	}
	weights, err := parseWeights(averageWeights, len(scheds))
	if err != nil {
		return err
	}

	avg, err := schedule.AverageRulesets(averageName, scheds, weights, averageTimestep)
	if err != nil {
		return fmt.Errorf("average: %w", err)
	}
	log.Infof("run %s: averaged %d schedules into %s with %d rules",
		runID, len(scheds), avg.Name(), avg.NumRules())

	out, closeOut, err := openOutput(averageOut)
	if err != nil {
		return err
	}
	defer closeOut()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(avg)
}

func parseWeights(s string, n int) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("got %d weights for %d schedules", len(parts), n)
	}
	weights := make([]float64, n)
	for i, p := range parts {
		w, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("weight %q: %w", p, err)
		}
		weights[i] = w
	}
	return weights, nil
}
