package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/epmodel/schedkit/core/metrics"
	"github.com/epmodel/schedkit/infra/logger"
	"github.com/epmodel/schedkit/pkg/export"
)

var (
	valuesTimestep int
	valuesLeap     bool
	valuesFormat   string
	valuesOut      string
)

var valuesCmd = &cobra.Command{
	Use:   "values <schedule.json>",
	Short: "Expand a schedule into annual per-timestep values",
	Args:  cobra.ExactArgs(1),
	RunE:  runValues,
}

func init() {
	valuesCmd.Flags().IntVar(&valuesTimestep, "timestep", 0, "values per hour (overrides config)")
	valuesCmd.Flags().BoolVar(&valuesLeap, "leap", false, "expand over a 366-day calendar")
	valuesCmd.Flags().StringVar(&valuesFormat, "format", "json", "output format: json or csv")
	valuesCmd.Flags().StringVarP(&valuesOut, "out", "o", "-", "output file, - for stdout")
	rootCmd.AddCommand(valuesCmd)
}

func runValues(cmd *cobra.Command, args []string) error {
	log := logger.New("values")
	runID := uuid.NewString()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	rs, err := loadRuleset(args[0])
	if err != nil {
		return err
	}
	opts, err := cfg.Run.ExpandOptions()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("timestep") {
		opts.Timestep = valuesTimestep
	}
	if cmd.Flags().Changed("leap") {
		opts.LeapYear = valuesLeap
	}

	values, err := rs.Values(opts)
	if err != nil {
		return fmt.Errorf("expand %s: %w", rs.Name(), err)
	}
	timestep := opts.Timestep
	if timestep == 0 {
		timestep = 1
	}
	log.Infof("run %s: expanded %s into %d values at timestep %d", runID, rs.Name(), len(values), timestep)
	recordExpansion(log, metrics.ExpansionEvent{
		Schedule: rs.Name(),
		Days:     len(values) / (24 * timestep),
		Timestep: timestep,
	})

	series := export.Series{Schedule: rs.Name(), Timestep: timestep, Values: values}
	if tl := rs.TypeLimit(); tl != nil {
		series.Unit = tl.Unit()
	}
	out, closeOut, err := openOutput(valuesOut)
	if err != nil {
		return err
	}
	defer closeOut()
	switch valuesFormat {
	case "json":
		return export.WriteSeriesJSON(out, series)
	case "csv":
		return export.WriteSeriesCSV(out, series)
	default:
		return fmt.Errorf("unknown format %q", valuesFormat)
	}
}
