// Package schedule implements annual schedule resolution for building-energy
// models: reusable daily value profiles, priority-ordered applicability
// rules, full per-timestep annual expansion, minimal week-pattern calendar
// compaction and weighted schedule averaging.
//
// All evaluation entry points are pure functions of their inputs and safe
// for concurrent use. Mutating a ruleset's rule list requires exclusive
// access; Freeze turns a ruleset read-only so it can be shared across many
// owners without duplication.
package schedule
