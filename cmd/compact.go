package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/epmodel/schedkit/core/metrics"
	"github.com/epmodel/schedkit/infra/logger"
	"github.com/epmodel/schedkit/pkg/export"
	"github.com/epmodel/schedkit/pkg/idf"
)

var (
	compactFormat string
	compactOut    string
)

var compactCmd = &cobra.Command{
	Use:   "compact <schedule.json>",
	Short: "Compact a schedule into its minimal week-pattern calendar",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompact,
}

func init() {
	compactCmd.Flags().StringVar(&compactFormat, "format", "json", "output format: json, csv or idf")
	compactCmd.Flags().StringVarP(&compactOut, "out", "o", "-", "output file, - for stdout")
	rootCmd.AddCommand(compactCmd)
}

func runCompact(cmd *cobra.Command, args []string) error {
	log := logger.New("compact")
	runID := uuid.NewString()

	rs, err := loadRuleset(args[0])
	if err != nil {
		return err
	}
	cal := rs.CompactCalendar()
	log.Infof("run %s: compacted %s into %d week patterns over %d ranges",
		runID, rs.Name(), len(cal.Patterns), len(cal.Timeline))
	recordCompaction(log, metrics.CompactionEvent{
		Schedule:        rs.Name(),
		WeekPatterns:    len(cal.Patterns),
		TimelineEntries: len(cal.Timeline),
	})

	out, closeOut, err := openOutput(compactOut)
	if err != nil {
		return err
	}
	defer closeOut()
	switch compactFormat {
	case "json":
		return export.WriteCalendarJSON(out, export.NewCalendar(rs.Name(), cal))
	case "csv":
		return export.WriteCalendarCSV(out, export.NewCalendar(rs.Name(), cal))
	case "idf":
		return idf.WriteRuleset(out, rs)
	default:
		return fmt.Errorf("unknown format %q", compactFormat)
	}
}
