package schedule

import (
	"encoding/json"
	"fmt"

	"github.com/epmodel/schedkit/core/caldate"
)

// JSON representations carry a "type" discriminator so schedule files remain
// self-describing when embedded in larger model documents.

type dayProfileJSON struct {
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Times       [][2]int  `json:"times"`
	Values      []float64 `json:"values"`
	Interpolate bool      `json:"interpolate,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (p *DayProfile) MarshalJSON() ([]byte, error) {
	dto := dayProfileJSON{
		Type:        "DayProfile",
		Name:        p.name,
		Times:       make([][2]int, len(p.times)),
		Values:      p.Values(),
		Interpolate: p.interpolate,
	}
	for i, t := range p.times {
		dto.Times[i] = [2]int{t.Hour, t.Minute}
	}
	return json.Marshal(dto)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *DayProfile) UnmarshalJSON(b []byte) error {
	var dto dayProfileJSON
	if err := json.Unmarshal(b, &dto); err != nil {
		return err
	}
	if dto.Type != "DayProfile" {
		return fmt.Errorf("expected type DayProfile, got %q", dto.Type)
	}
	times := make([]TimeOfDay, len(dto.Times))
	for i, t := range dto.Times {
		times[i] = TimeOfDay{Hour: t[0], Minute: t[1]}
	}
	if len(times) == 0 {
		times = nil
	}
	built, err := NewDayProfile(dto.Name, dto.Values, times, dto.Interpolate)
	if err != nil {
		return err
	}
	*p = *built
	return nil
}

type ruleJSON struct {
	Type      string      `json:"type"`
	Profile   *DayProfile `json:"profile"`
	Days      []string    `json:"days"`
	StartDate [2]int      `json:"start_date"`
	EndDate   [2]int      `json:"end_date"`
}

// MarshalJSON implements json.Marshaler.
func (r *Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(ruleJSON{
		Type:      "Rule",
		Profile:   r.profile,
		Days:      r.DaysApplied(),
		StartDate: [2]int{r.startDate.Month, r.startDate.Day},
		EndDate:   [2]int{r.endDate.Month, r.endDate.Day},
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rule) UnmarshalJSON(b []byte) error {
	var dto ruleJSON
	if err := json.Unmarshal(b, &dto); err != nil {
		return err
	}
	if dto.Type != "Rule" {
		return fmt.Errorf("expected type Rule, got %q", dto.Type)
	}
	start, err := caldate.NewLeap(dto.StartDate[0], dto.StartDate[1], dto.StartDate[0] == 2 && dto.StartDate[1] == 29)
	if err != nil {
		return fmt.Errorf("rule start date: %w", err)
	}
	end, err := caldate.NewLeap(dto.EndDate[0], dto.EndDate[1], dto.EndDate[0] == 2 && dto.EndDate[1] == 29)
	if err != nil {
		return fmt.Errorf("rule end date: %w", err)
	}
	built, err := NewRuleForDays(dto.Profile, dto.Days, start, end)
	if err != nil {
		return err
	}
	*r = *built
	return nil
}

type typeLimitJSON struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	LowerLimit  *float64 `json:"lower_limit,omitempty"`
	UpperLimit  *float64 `json:"upper_limit,omitempty"`
	NumericType string   `json:"numeric_type,omitempty"`
	UnitType    string   `json:"unit_type,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (t *TypeLimit) MarshalJSON() ([]byte, error) {
	return json.Marshal(typeLimitJSON{
		Type:        "TypeLimit",
		Name:        t.name,
		LowerLimit:  t.lowerLimit,
		UpperLimit:  t.upperLimit,
		NumericType: t.numericType,
		UnitType:    t.unitType,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TypeLimit) UnmarshalJSON(b []byte) error {
	var dto typeLimitJSON
	if err := json.Unmarshal(b, &dto); err != nil {
		return err
	}
	if dto.Type != "TypeLimit" {
		return fmt.Errorf("expected type TypeLimit, got %q", dto.Type)
	}
	built, err := NewTypeLimit(dto.Name, dto.LowerLimit, dto.UpperLimit, dto.NumericType, dto.UnitType)
	if err != nil {
		return err
	}
	*t = *built
	return nil
}

type rulesetJSON struct {
	Type           string      `json:"type"`
	Name           string      `json:"name"`
	DefaultProfile *DayProfile `json:"default_profile"`
	Rules          []*Rule     `json:"rules,omitempty"`
	TypeLimit      *TypeLimit  `json:"type_limit,omitempty"`
	SummerDesign   *DayProfile `json:"summer_design_profile,omitempty"`
	WinterDesign   *DayProfile `json:"winter_design_profile,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s *Ruleset) MarshalJSON() ([]byte, error) {
	return json.Marshal(rulesetJSON{
		Type:           "Ruleset",
		Name:           s.name,
		DefaultProfile: s.defaultProfile,
		Rules:          s.rules,
		TypeLimit:      s.typeLimit,
		SummerDesign:   s.summerDesign,
		WinterDesign:   s.winterDesign,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Ruleset) UnmarshalJSON(b []byte) error {
	var dto rulesetJSON
	if err := json.Unmarshal(b, &dto); err != nil {
		return err
	}
	if dto.Type != "Ruleset" {
		return fmt.Errorf("expected type Ruleset, got %q", dto.Type)
	}
	built, err := NewRuleset(dto.Name, dto.DefaultProfile, dto.Rules)
	if err != nil {
		return err
	}
	if dto.TypeLimit != nil {
		if err := built.SetTypeLimit(dto.TypeLimit); err != nil {
			return err
		}
	}
	if dto.SummerDesign != nil {
		if err := built.SetSummerDesignProfile(dto.SummerDesign); err != nil {
			return err
		}
	}
	if dto.WinterDesign != nil {
		if err := built.SetWinterDesignProfile(dto.WinterDesign); err != nil {
			return err
		}
	}
	*s = *built
	return nil
}
