package models

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Criterion is one constraint inside an archetype definition. Numeric
// criteria score 1.0 inside [Min,Max] with a linear ramp of width
// FuzzyRange outside; FuzzyRange 0 makes the edge hard. Categorical
// criteria use Allowed instead and score 1.0 on membership. An omitted
// bound is open-ended.
type Criterion struct {
	Min        *float64 `yaml:"min" json:"min,omitempty"`
	Max        *float64 `yaml:"max" json:"max,omitempty"`
	FuzzyRange float64  `yaml:"fuzzy_range" json:"fuzzy_range,omitempty"`
	Weight     float64  `yaml:"weight" json:"weight,omitempty"`
	Allowed    []string `yaml:"allowed" json:"allowed,omitempty"`
}

// EffectiveWeight returns the criterion weight, defaulting to 1.
func (c Criterion) EffectiveWeight() float64 {
	if c.Weight <= 0 {
		return 1.0
	}
	return c.Weight
}

// ArchetypeDefinition is one static category: attribute requirements,
// range-profile constraints, disqualifying zones and a scalar weight.
// Loaded once per run, never mutated by the pipeline.
type ArchetypeDefinition struct {
	Requirements     map[string]Criterion `yaml:"requirements" json:"requirements"`
	RangeConstraints map[string]Criterion `yaml:"range_constraints" json:"range_constraints,omitempty"`
	Exclusions       map[string]Criterion `yaml:"exclusions" json:"exclusions,omitempty"`
	Weight           float64              `yaml:"weight" json:"weight,omitempty"`
}

// ArchetypeLibrary is the full static definition document.
type ArchetypeLibrary struct {
	Archetypes map[string]ArchetypeDefinition `yaml:"archetypes" json:"archetypes"`
}

// Names returns the archetype names sorted lexicographically. The
// classifier iterates in this order so tie resolution is deterministic.
func (l *ArchetypeLibrary) Names() []string {
	names := make([]string, 0, len(l.Archetypes))
	for name := range l.Archetypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks semantic constraints of the loaded definitions.
func (l *ArchetypeLibrary) Validate() error {
	if len(l.Archetypes) == 0 {
		return fmt.Errorf("archetype library: no archetypes defined")
	}
	var errs []string
	for name, def := range l.Archetypes {
		if def.Weight < 0 {
			errs = append(errs, fmt.Sprintf("%s: weight must be >= 0", name))
		}
		if len(def.Requirements) == 0 {
			errs = append(errs, fmt.Sprintf("%s: at least one requirement is required", name))
		}
		check := func(kind, attr string, c Criterion) {
			if c.FuzzyRange < 0 {
				errs = append(errs, fmt.Sprintf("%s.%s.%s: fuzzy_range must be >= 0", name, kind, attr))
			}
			if c.Weight < 0 {
				errs = append(errs, fmt.Sprintf("%s.%s.%s: weight must be >= 0", name, kind, attr))
			}
			if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
				errs = append(errs, fmt.Sprintf("%s.%s.%s: min > max", name, kind, attr))
			}
			if len(c.Allowed) > 0 && (c.Min != nil || c.Max != nil) {
				errs = append(errs, fmt.Sprintf("%s.%s.%s: allowed and min/max are mutually exclusive", name, kind, attr))
			}
		}
		for attr, c := range def.Requirements {
			check("requirements", attr, c)
		}
		for attr, c := range def.RangeConstraints {
			check("range_constraints", attr, c)
		}
		for attr, c := range def.Exclusions {
			check("exclusions", attr, c)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("archetype library: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LoadArchetypeLibrary reads and validates the static definition document.
func LoadArchetypeLibrary(path string) (*ArchetypeLibrary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archetype library: %w", err)
	}
	var lib ArchetypeLibrary
	if err := yaml.Unmarshal(raw, &lib); err != nil {
		return nil, fmt.Errorf("parse archetype library: %w", err)
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// Assignment is one champion's classification result.
type Assignment struct {
	PrimaryArchetype string             `json:"primary_archetype"`
	PrimaryScore     float64            `json:"primary_score"`
	AllScores        map[string]float64 `json:"all_scores"`
	// Flagged marks champions whose every score was 0: still assigned,
	// never dropped, but worth a look.
	Flagged bool `json:"flagged_for_review,omitempty"`
}

// AssignmentDoc is the final stage document and the only interface exposed
// to downstream relationship/recommendation consumers.
type AssignmentDoc struct {
	Metadata    DocMeta                `json:"metadata"`
	Assignments map[string]*Assignment `json:"assignments"`
}
