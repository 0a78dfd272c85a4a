package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-ai-assistant/tables"
)

func newGrammar(t *testing.T) *Grammar {
	t.Helper()
	return NewGrammar(tables.Default())
}

func TestGrammar_Match(t *testing.T) {
	g := newGrammar(t)

	tests := []struct {
		name  string
		input string
		kind  Kind
		args  Args
	}{
		{"bmi", "bmi 70 175", KindBMI, Args{Weight: 70, Height: 175}},
		{"bmi decimals and case", "  BMI 70.5   175.2 ", KindBMI, Args{Weight: 70.5, Height: 175.2}},
		{"bmi zero height still matches", "bmi 70 0", KindBMI, Args{Weight: 70, Height: 0}},
		{"calories", "calories 70 175 30 male medium", KindCalories,
			Args{Weight: 70, Height: 175, Age: 30, Gender: "male", Activity: "medium"}},
		{"meal calories", "meal calories apple, banana,chicken breast", KindMealCalories,
			Args{Items: []string{"apple", "banana", "chicken breast"}}},
		{"workout plan", "workout weight loss beginner", KindWorkoutPlan,
			Args{Goal: "weight loss", Experience: "beginner"}},
		{"duration", "duration 3 10 60", KindWorkoutDuration, Args{Sets: 3, Reps: 10, Rest: 60}},
		{"workout duration", "Workout Duration 4 12 90", KindWorkoutDuration, Args{Sets: 4, Reps: 12, Rest: 90}},
		{"bodyfat", "bodyfat 70 175 30 female", KindBodyFat,
			Args{Weight: 70, Height: 175, Age: 30, Gender: "female"}},
		{"idealweight", "idealweight 175 male", KindIdealWeight, Args{Height: 175, Gender: "male"}},
		{"protein default", "protein 70", KindProtein, Args{Weight: 70, Activity: "moderate"}},
		{"protein level", "protein 70 cutting_phase", KindProtein, Args{Weight: 70, Activity: "cutting_phase"}},
		{"water default", "water 70", KindWater, Args{Weight: 70, Activity: "moderate"}},
		{"water level", "water 70 hot_weather", KindWater, Args{Weight: 70, Activity: "hot_weather"}},
		{"heartrate", "heartrate 30", KindHeartRate, Args{Age: 30}},
		{"macros default", "macros 2000", KindMacros, Args{Calories: 2000, Goal: "maintain"}},
		{"macros goal", "macros 2000 keto", KindMacros, Args{Calories: 2000, Goal: "keto"}},
		{"meal plan list", "meal plan", KindMealPlan, Args{}},
		{"meal plan name", "meal plan post_workout", KindMealPlan, Args{Name: "post_workout"}},
		{"profile", "Profile", KindProfileShow, Args{}},
		{"profile reset", "profile reset", KindProfileReset, Args{}},
		{"profile set", "profile goal build muscle", KindProfileSet, Args{Field: "goal", Value: "build muscle"}},
		{"profile set numeric", "profile weight 72.50", KindProfileSet, Args{Field: "weight", Value: "72.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := g.Match(tt.input)
			require.True(t, m.Matched(), "expected %q to match", tt.input)
			assert.Equal(t, tt.kind, m.Kind)
			assert.Equal(t, tt.args, m.Args)
		})
	}
}

func TestGrammar_NoMatch(t *testing.T) {
	g := newGrammar(t)

	inputs := []string{
		"",
		"How are you today?",
		"what is my bmi 70 175",
		"bmi seventy 175",
		"bmi 70",
		"bmi 70 175 extra",
		"calories 70 175 30 male moderate",
		"calories 70 175 30 other low",
		"calories 70 175 0 male low",
		"protein 70 medium",
		"water 70 bodybuilder",
		"macros 2000 maintenance",
		"macros 0",
		"workout flexibility beginner",
		"workout weight loss expert",
		"duration 0 10 60",
		"duration 3 10",
		"duration 1001 10 60",
		"duration 3 5000 60",
		"duration 9999999999 9999999999 60",
		"heartrate 150",
		"heartrate -5",
		"idealweight 175 robot",
		"meal calories",
		"meal calories 2 eggs",
		"meal plan midnight_snack",
		"profile age old",
		"profile gender robot",
		"profile training_days 9",
		"profile nickname bob",
		"tell me about my profile",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			m := g.Match(in)
			assert.False(t, m.Matched(), "expected %q not to match, got %s", in, m.Kind)
		})
	}
}

func TestGrammar_AtMostOneMatcherFires(t *testing.T) {
	g := newGrammar(t)

	corpus := []string{
		"bmi 70 175", "calories 70 175 30 male medium", "meal calories apple",
		"meal calories calories", "workout weight loss beginner", "workout duration 3 10 60",
		"duration 3 10 60", "bodyfat 70 175 30 male", "idealweight 175 female",
		"protein 70", "protein 70 active", "water 70 active", "heartrate 30",
		"macros 2000", "macros 2000 keto", "meal plan", "meal plan light_snack",
		"profile", "profile reset", "profile age 30", "profile goal reset",
		"How are you today?", "workout", "calories", "meal", "profile reset now",
	}

	for _, in := range corpus {
		all := g.MatchAll(in)
		assert.LessOrEqual(t, len(all), 1, "%q fired %d matchers: %v", in, len(all), all)
		if len(all) == 1 {
			assert.Equal(t, all[0], g.Match(in))
		}
	}
}

func TestGrammar_PriorityOrder(t *testing.T) {
	g := newGrammar(t)

	assert.Equal(t, []Kind{
		KindBMI, KindCalories, KindMealCalories, KindWorkoutPlan, KindWorkoutDuration,
		KindBodyFat, KindIdealWeight, KindProtein, KindWater, KindHeartRate, KindMacros,
		KindMealPlan, KindProfileShow, KindProfileReset, KindProfileSet,
	}, g.Kinds())
}

func TestGrammar_EnumsFollowTables(t *testing.T) {
	tb := tables.Default()
	tb.ActivityFactors = map[string]float64{"couch": 1.1}
	g := NewGrammar(tb)

	assert.Equal(t, KindCalories, g.Match("calories 70 175 30 male couch").Kind)
	assert.False(t, g.Match("calories 70 175 30 male low").Matched())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "bmi 70 175", Normalize("  BMI\t70   175\n"))
}
