package schedule

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Numeric types accepted by TypeLimit. Discrete limits only admit integer
// schedule values.
const (
	Continuous = "Continuous"
	Discrete   = "Discrete"
)

// unitForType maps an EnergyPlus unit type to the unit its values carry.
var unitForType = map[string]string{
	"Dimensionless":         "fraction",
	"Temperature":           "C",
	"DeltaTemperature":      "C",
	"PrecipitationRate":     "m",
	"Angle":                 "degrees",
	"ConvectionCoefficient": "W/m2-K",
	"ActivityLevel":         "W",
	"Velocity":              "m/s",
	"Capacity":              "W",
	"Power":                 "W",
	"Availability":          "fraction",
	"Percent":               "%",
	"Control":               "fraction",
	"Mode":                  "fraction",
}

// TypeLimit tags schedule values with numeric bounds and a unit. It plays no
// algorithmic role; it exists only to validate values and annotate output.
type TypeLimit struct {
	name        string
	lowerLimit  *float64
	upperLimit  *float64
	numericType string
	unitType    string
	unit        string
}

// NewTypeLimit creates a TypeLimit. Nil limits mean unbounded on that side.
// An empty numericType defaults to Continuous and an empty unitType to
// Dimensionless.
func NewTypeLimit(name string, lower, upper *float64, numericType, unitType string) (*TypeLimit, error) {
	if name == "" {
		return nil, fmt.Errorf("type limit name must not be empty")
	}
	if lower != nil && upper != nil && *lower > *upper {
		return nil, fmt.Errorf("type limit %q lower limit %v exceeds upper limit %v",
			name, *lower, *upper)
	}
	switch numericType {
	case "":
		numericType = Continuous
	case Continuous, Discrete:
	default:
		return nil, fmt.Errorf("type limit %q numeric type must be %s or %s, got %q",
			name, Continuous, Discrete, numericType)
	}
	if unitType == "" {
		unitType = "Dimensionless"
	}
	unit, ok := "", false
	for key, u := range unitForType {
		if strings.EqualFold(key, unitType) {
			unitType, unit, ok = key, u, true
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("type limit %q has unrecognized unit type %q", name, unitType)
	}
	tl := &TypeLimit{
		name:        name,
		numericType: numericType,
		unitType:    unitType,
		unit:        unit,
	}
	if lower != nil {
		v := *lower
		tl.lowerLimit = &v
	}
	if upper != nil {
		v := *upper
		tl.upperLimit = &v
	}
	return tl, nil
}

// Name returns the type limit name.
func (t *TypeLimit) Name() string { return t.name }

// LowerLimit returns the lower bound, or nil when unbounded.
func (t *TypeLimit) LowerLimit() *float64 { return t.lowerLimit }

// UpperLimit returns the upper bound, or nil when unbounded.
func (t *TypeLimit) UpperLimit() *float64 { return t.upperLimit }

// NumericType returns Continuous or Discrete.
func (t *TypeLimit) NumericType() string { return t.numericType }

// UnitType returns the EnergyPlus unit type.
func (t *TypeLimit) UnitType() string { return t.unitType }

// Unit returns the unit string carried by the schedule values (e.g. "C").
func (t *TypeLimit) Unit() string { return t.unit }

// CheckValue validates a single schedule value against the limits.
func (t *TypeLimit) CheckValue(v float64) error {
	if t.lowerLimit != nil && v < *t.lowerLimit {
		return fmt.Errorf("value %v below lower limit %v of type limit %q",
			v, *t.lowerLimit, t.name)
	}
	if t.upperLimit != nil && v > *t.upperLimit {
		return fmt.Errorf("value %v above upper limit %v of type limit %q",
			v, *t.upperLimit, t.name)
	}
	if t.numericType == Discrete && v != float64(int64(v)) {
		return fmt.Errorf("value %v is not an integer for discrete type limit %q", v, t.name)
	}
	return nil
}

// Duplicate returns an independent copy.
func (t *TypeLimit) Duplicate() *TypeLimit {
	dup, _ := NewTypeLimit(t.name, t.lowerLimit, t.upperLimit, t.numericType, t.unitType)
	return dup
}

// Equal reports structural equality of all fields.
func (t *TypeLimit) Equal(o *TypeLimit) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.Fingerprint() == o.Fingerprint()
}

// Fingerprint returns a structural hash of all fields.
func (t *TypeLimit) Fingerprint() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s", t.name, t.numericType, t.unitType)
	if t.lowerLimit != nil {
		fmt.Fprintf(h, "|lo=%v", *t.lowerLimit)
	}
	if t.upperLimit != nil {
		fmt.Fprintf(h, "|hi=%v", *t.upperLimit)
	}
	return h.Sum64()
}
