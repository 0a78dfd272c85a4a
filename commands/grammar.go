// Package commands recognizes the fixed set of calculator commands a user can
// type. Matching is deterministic: patterns are anchored to the whole message
// and tried in priority order, first match wins.
package commands

import (
	"regexp"
	"strconv"
	"strings"

	"fitness-ai-assistant/models"
	"fitness-ai-assistant/tables"
)

// Kind identifies a recognized command
type Kind string

const (
	KindBMI             Kind = "bmi"
	KindCalories        Kind = "calories"
	KindMealCalories    Kind = "meal_calories"
	KindWorkoutPlan     Kind = "workout_plan"
	KindWorkoutDuration Kind = "workout_duration"
	KindBodyFat         Kind = "body_fat"
	KindIdealWeight     Kind = "ideal_weight"
	KindProtein         Kind = "protein"
	KindWater           Kind = "water"
	KindHeartRate       Kind = "heart_rate"
	KindMacros          Kind = "macros"
	KindMealPlan        Kind = "meal_plan"
	KindProfileShow     Kind = "profile_show"
	KindProfileReset    Kind = "profile_reset"
	KindProfileSet      Kind = "profile_set"
)

// Default enum values for optional trailing arguments
const (
	DefaultActivity = "moderate"
	DefaultGoal     = tables.DefaultMacroGoal
)

// Args are the typed arguments extracted by a matcher. Only the fields a
// command uses are set.
type Args struct {
	Weight     float64
	Height     float64
	Age        int
	Gender     string
	Activity   string
	Goal       string
	Experience string
	Items      []string
	Sets       int
	Reps       int
	Rest       float64
	Calories   float64
	Name       string
	Field      string
	Value      string
}

// Match is the result of matching a message. The zero value means no match.
type Match struct {
	Kind Kind
	Args Args
}

// Matched reports whether a command was recognized
func (m Match) Matched() bool {
	return m.Kind != ""
}

// Matcher recognizes one command surface form. Extract validates and converts
// the regexp submatches; returning false counts as no match.
type Matcher struct {
	Kind    Kind
	Pattern *regexp.Regexp
	Extract func(groups []string) (Args, bool)
}

// Grammar is an ordered list of matchers
type Grammar struct {
	matchers []Matcher
}

const (
	decimal = `(\d+(?:\.\d+)?)`
	integer = `(\d+)`
)

var spaces = regexp.MustCompile(`\s+`)

// Normalize lower-cases, trims and collapses whitespace
func Normalize(text string) string {
	return spaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
}

// NewGrammar builds the matchers. Enumerated arguments come from the lookup
// tables so every command accepts exactly the keys its calculator knows.
func NewGrammar(t *tables.Tables) *Grammar {
	genders := alternation([]string{"male", "female"})
	calorieActivities := alternation(tables.SortedKeys(t.ActivityFactors))
	proteinActivities := alternation(tables.SortedKeys(t.ProteinMultipliers))
	waterActivities := alternation(tables.SortedKeys(t.WaterBonusML))
	macroGoals := alternation(tables.SortedKeys(t.MacroRatios))
	workoutGoals := alternation(t.WorkoutGoals())
	experiences := alternation(t.WorkoutExperiences())
	mealPlans := alternation(t.MealPlanNames())
	profileFields := alternation(models.ProfileFields)

	return &Grammar{matchers: []Matcher{
		{
			Kind:    KindBMI,
			Pattern: compile(`bmi ` + decimal + ` ` + decimal),
			Extract: func(g []string) (Args, bool) {
				w, ok1 := parseFloat(g[1])
				h, ok2 := parseFloat(g[2])
				return Args{Weight: w, Height: h}, ok1 && ok2
			},
		},
		{
			Kind:    KindCalories,
			Pattern: compile(`calories ` + decimal + ` ` + decimal + ` ` + integer + ` ` + genders + ` ` + calorieActivities),
			Extract: func(g []string) (Args, bool) {
				w, ok1 := parseFloat(g[1])
				h, ok2 := parseFloat(g[2])
				a, ok3 := parseAge(g[3])
				return Args{Weight: w, Height: h, Age: a, Gender: g[4], Activity: g[5]}, ok1 && ok2 && ok3
			},
		},
		{
			Kind:    KindMealCalories,
			Pattern: compile(`meal calories ([a-z][a-z ]*(?:, ?[a-z][a-z ]*)*)`),
			Extract: func(g []string) (Args, bool) {
				var items []string
				for _, item := range strings.Split(g[1], ",") {
					if item = strings.TrimSpace(item); item != "" {
						items = append(items, item)
					}
				}
				return Args{Items: items}, len(items) > 0
			},
		},
		{
			Kind:    KindWorkoutPlan,
			Pattern: compile(`workout ` + workoutGoals + ` ` + experiences),
			Extract: func(g []string) (Args, bool) {
				return Args{Goal: g[1], Experience: g[2]}, true
			},
		},
		{
			Kind:    KindWorkoutDuration,
			Pattern: compile(`(?:workout )?duration ` + integer + ` ` + integer + ` ` + integer),
			Extract: func(g []string) (Args, bool) {
				sets, ok1 := parseCount(g[1])
				reps, ok2 := parseCount(g[2])
				rest, ok3 := parseFloat(g[3])
				return Args{Sets: sets, Reps: reps, Rest: rest}, ok1 && ok2 && ok3
			},
		},
		{
			Kind:    KindBodyFat,
			Pattern: compile(`bodyfat ` + decimal + ` ` + decimal + ` ` + integer + ` ` + genders),
			Extract: func(g []string) (Args, bool) {
				w, ok1 := parseFloat(g[1])
				h, ok2 := parseFloat(g[2])
				a, ok3 := parseAge(g[3])
				return Args{Weight: w, Height: h, Age: a, Gender: g[4]}, ok1 && ok2 && ok3
			},
		},
		{
			Kind:    KindIdealWeight,
			Pattern: compile(`idealweight ` + decimal + ` ` + genders),
			Extract: func(g []string) (Args, bool) {
				h, ok := parseFloat(g[1])
				return Args{Height: h, Gender: g[2]}, ok && h > 0
			},
		},
		{
			Kind:    KindProtein,
			Pattern: compile(`protein ` + decimal + `(?: ` + proteinActivities + `)?`),
			Extract: func(g []string) (Args, bool) {
				w, ok := parseFloat(g[1])
				return Args{Weight: w, Activity: orDefault(g[2], DefaultActivity)}, ok
			},
		},
		{
			Kind:    KindWater,
			Pattern: compile(`water ` + decimal + `(?: ` + waterActivities + `)?`),
			Extract: func(g []string) (Args, bool) {
				w, ok := parseFloat(g[1])
				return Args{Weight: w, Activity: orDefault(g[2], DefaultActivity)}, ok
			},
		},
		{
			Kind:    KindHeartRate,
			Pattern: compile(`heartrate ` + integer),
			Extract: func(g []string) (Args, bool) {
				a, ok := parseAge(g[1])
				return Args{Age: a}, ok
			},
		},
		{
			Kind:    KindMacros,
			Pattern: compile(`macros ` + decimal + `(?: ` + macroGoals + `)?`),
			Extract: func(g []string) (Args, bool) {
				c, ok := parseFloat(g[1])
				return Args{Calories: c, Goal: orDefault(g[2], DefaultGoal)}, ok && c > 0
			},
		},
		{
			Kind:    KindMealPlan,
			Pattern: compile(`meal plan(?: ` + mealPlans + `)?`),
			Extract: func(g []string) (Args, bool) {
				return Args{Name: g[1]}, true
			},
		},
		{
			Kind:    KindProfileShow,
			Pattern: compile(`profile`),
			Extract: func(g []string) (Args, bool) {
				return Args{}, true
			},
		},
		{
			Kind:    KindProfileReset,
			Pattern: compile(`profile reset`),
			Extract: func(g []string) (Args, bool) {
				return Args{}, true
			},
		},
		{
			Kind:    KindProfileSet,
			Pattern: compile(`profile ` + profileFields + ` (.+)`),
			Extract: func(g []string) (Args, bool) {
				value, ok := models.NormalizeProfileValue(g[1], g[2])
				return Args{Field: g[1], Value: value}, ok
			},
		},
	}}
}

// Match returns the first matcher that fires on text, or the zero Match
func (g *Grammar) Match(text string) Match {
	normalized := Normalize(text)
	for _, m := range g.matchers {
		if args, ok := m.match(normalized); ok {
			return Match{Kind: m.Kind, Args: args}
		}
	}
	return Match{}
}

// MatchAll returns every matcher that fires on text, in priority order
func (g *Grammar) MatchAll(text string) []Match {
	normalized := Normalize(text)
	var out []Match
	for _, m := range g.matchers {
		if args, ok := m.match(normalized); ok {
			out = append(out, Match{Kind: m.Kind, Args: args})
		}
	}
	return out
}

// Kinds returns the command kinds in priority order
func (g *Grammar) Kinds() []Kind {
	kinds := make([]Kind, len(g.matchers))
	for i, m := range g.matchers {
		kinds[i] = m.Kind
	}
	return kinds
}

func (m Matcher) match(normalized string) (Args, bool) {
	groups := m.Pattern.FindStringSubmatch(normalized)
	if groups == nil {
		return Args{}, false
	}
	return m.Extract(groups)
}

func compile(body string) *regexp.Regexp {
	return regexp.MustCompile(`^` + body + `$`)
}

// alternation builds a capturing group matching exactly one of values
func alternation(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = regexp.QuoteMeta(v)
	}
	return `(` + strings.Join(quoted, "|") + `)`
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	return v, err == nil
}

func parseAge(s string) (int, bool) {
	v, ok := parseInt(s)
	return v, ok && v > 0 && v < 120
}

// maxCount caps sets and reps; anything larger is not a workout
const maxCount = 1000

func parseCount(s string) (int, bool) {
	v, ok := parseInt(s)
	return v, ok && v > 0 && v <= maxCount
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
