// Package schedules exposes schedule expansion and compaction over HTTP.
package schedules

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/epmodel/schedkit/core/metrics"
	"github.com/epmodel/schedkit/core/schedule"
	"github.com/epmodel/schedkit/infra/logger"
	"github.com/epmodel/schedkit/pkg/export"
)

// NewListHandler returns an HTTP handler listing schedule names via
// GET /api/schedules.
func NewListHandler(store Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		names, err := store.List()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(names); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// NewValuesHandler returns an HTTP handler expanding a schedule into annual
// values via GET /api/schedules/values?name=X. The base calendar comes from
// opts; the timestep and leap query parameters override it per request.
func NewValuesHandler(store Store, opts schedule.ExpandOptions, sink metrics.Sink, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		name := r.URL.Query().Get("name")
		rs, err := store.Get(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		reqOpts := opts
		if ts := r.URL.Query().Get("timestep"); ts != "" {
			n, err := strconv.Atoi(ts)
			if err != nil {
				http.Error(w, "timestep must be an integer", http.StatusBadRequest)
				return
			}
			reqOpts.Timestep = n
		}
		if lp := r.URL.Query().Get("leap"); lp != "" {
			b, err := strconv.ParseBool(lp)
			if err != nil {
				http.Error(w, "leap must be a boolean", http.StatusBadRequest)
				return
			}
			reqOpts.LeapYear = b
		}
		values, err := rs.Values(reqOpts)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		timestep := reqOpts.Timestep
		if timestep == 0 {
			timestep = 1
		}
		if err := sink.RecordExpansion(metrics.ExpansionEvent{
			Schedule: rs.Name(),
			Days:     len(values) / (24 * timestep),
			Timestep: timestep,
		}); err != nil {
			log.Warnf("record expansion: %v", err)
		}
		series := export.Series{Schedule: rs.Name(), Timestep: timestep, Values: values}
		if tl := rs.TypeLimit(); tl != nil {
			series.Unit = tl.Unit()
		}
		w.Header().Set("Content-Type", "application/json")
		if err := export.WriteSeriesJSON(w, series); err != nil {
			log.Errorf("write series: %v", err)
		}
	})
}

// NewCalendarHandler returns an HTTP handler compacting a schedule into its
// minimal week-pattern calendar via GET /api/schedules/calendar?name=X.
func NewCalendarHandler(store Store, sink metrics.Sink, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		name := r.URL.Query().Get("name")
		rs, err := store.Get(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		cal := rs.CompactCalendar()
		if err := sink.RecordCompaction(metrics.CompactionEvent{
			Schedule:        rs.Name(),
			WeekPatterns:    len(cal.Patterns),
			TimelineEntries: len(cal.Timeline),
		}); err != nil {
			log.Warnf("record compaction: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := export.WriteCalendarJSON(w, export.NewCalendar(rs.Name(), cal)); err != nil {
			log.Errorf("write calendar: %v", err)
		}
	})
}
