// Package tables holds the static lookup tables used by the calculators and
// the command grammar. Tables are loaded once and never mutated afterwards.
package tables

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultYAML []byte

// MacroRatio is a protein/carbs/fat split in percent of total calories
type MacroRatio struct {
	Protein float64 `yaml:"protein"`
	Carbs   float64 `yaml:"carbs"`
	Fat     float64 `yaml:"fat"`
}

// WorkoutLevel is one experience level of a workout plan
type WorkoutLevel struct {
	Experience string `yaml:"experience"`
	Plan       string `yaml:"plan"`
}

// WorkoutGoal groups the plans for one training goal
type WorkoutGoal struct {
	Goal   string         `yaml:"goal"`
	Levels []WorkoutLevel `yaml:"levels"`
}

// MealPlan is a named meal suggestion
type MealPlan struct {
	Name string `yaml:"name"`
	Meal string `yaml:"meal"`
}

// Tables is the read-only set of lookup tables
type Tables struct {
	Calories           map[string]float64    `yaml:"calories"`
	ActivityFactors    map[string]float64    `yaml:"activity_factors"`
	ProteinMultipliers map[string]float64    `yaml:"protein_multipliers"`
	WaterBonusML       map[string]float64    `yaml:"water_bonus_ml"`
	MacroRatios        map[string]MacroRatio `yaml:"macro_ratios"`
	WorkoutPlans       []WorkoutGoal         `yaml:"workout_plans"`
	MealPlans          []MealPlan            `yaml:"meal_plans"`
}

// Default returns the tables compiled into the binary
func Default() *Tables {
	t, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded tables are invalid: %v", err))
	}
	return t
}

// Load reads tables from path, or returns the embedded defaults when path is empty
func Load(path string) (*Tables, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates a YAML tables document. Keys are lower-cased.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tables: %w", err)
	}

	t.Calories = lowerKeys(t.Calories)
	t.ActivityFactors = lowerKeys(t.ActivityFactors)
	t.ProteinMultipliers = lowerKeys(t.ProteinMultipliers)
	t.WaterBonusML = lowerKeys(t.WaterBonusML)

	ratios := make(map[string]MacroRatio, len(t.MacroRatios))
	for k, v := range t.MacroRatios {
		ratios[strings.ToLower(k)] = v
	}
	t.MacroRatios = ratios

	for i := range t.WorkoutPlans {
		t.WorkoutPlans[i].Goal = strings.ToLower(t.WorkoutPlans[i].Goal)
		for j := range t.WorkoutPlans[i].Levels {
			t.WorkoutPlans[i].Levels[j].Experience = strings.ToLower(t.WorkoutPlans[i].Levels[j].Experience)
		}
	}
	for i := range t.MealPlans {
		t.MealPlans[i].Name = strings.ToLower(t.MealPlans[i].Name)
	}

	if err := t.validate(); err != nil {
		return nil, err
	}

	return &t, nil
}

func (t *Tables) validate() error {
	if len(t.ActivityFactors) == 0 {
		return fmt.Errorf("tables: activity_factors is empty")
	}
	if _, ok := t.MacroRatios[DefaultMacroGoal]; !ok {
		return fmt.Errorf("tables: macro_ratios must define %q", DefaultMacroGoal)
	}
	for goal, r := range t.MacroRatios {
		if sum := r.Protein + r.Carbs + r.Fat; sum != 100 {
			return fmt.Errorf("tables: macro ratio %q sums to %.1f%%, want 100%%", goal, sum)
		}
	}
	if len(t.WorkoutPlans) == 0 {
		return fmt.Errorf("tables: workout_plans is empty")
	}
	return nil
}

// DefaultMacroGoal is used when a macro goal is not in the table
const DefaultMacroGoal = "maintain"

// WorkoutGoals returns the workout goals in table order
func (t *Tables) WorkoutGoals() []string {
	goals := make([]string, len(t.WorkoutPlans))
	for i, g := range t.WorkoutPlans {
		goals[i] = g.Goal
	}
	return goals
}

// WorkoutExperiences returns every experience level in first-seen order
func (t *Tables) WorkoutExperiences() []string {
	var levels []string
	seen := make(map[string]bool)
	for _, g := range t.WorkoutPlans {
		for _, l := range g.Levels {
			if !seen[l.Experience] {
				seen[l.Experience] = true
				levels = append(levels, l.Experience)
			}
		}
	}
	return levels
}

// FindWorkoutGoal returns the plans for goal, if any
func (t *Tables) FindWorkoutGoal(goal string) (WorkoutGoal, bool) {
	goal = strings.ToLower(strings.TrimSpace(goal))
	for _, g := range t.WorkoutPlans {
		if g.Goal == goal {
			return g, true
		}
	}
	return WorkoutGoal{}, false
}

// MealPlanNames returns the meal plan names in table order
func (t *Tables) MealPlanNames() []string {
	names := make([]string, len(t.MealPlans))
	for i, m := range t.MealPlans {
		names[i] = m.Name
	}
	return names
}

// SortedKeys returns the keys of a lookup table in alphabetical order
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lowerKeys(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}
