package calculator

import (
	"strings"

	"fitness-ai-assistant/tables"
)

// Fallback values for activity levels missing from a table
const (
	DefaultActivityFactor    = 1.2
	DefaultProteinMultiplier = 1.2
	DefaultWaterBonusML      = 500.0

	proteinBaseGramsPerKg = 0.8
	waterBaseMLPerKg      = 35.0
	cupsPerLiter          = 4.2
)

// DailyCalories returns Mifflin-St Jeor BMR times the activity factor, rounded to 2 decimals
func DailyCalories(t *tables.Tables, weightKg, heightCm float64, age int, gender, activity string) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if isMale(gender) {
		bmr += 5
	} else {
		bmr -= 161
	}

	factor, ok := t.ActivityFactors[normalize(activity)]
	if !ok {
		factor = DefaultActivityFactor
	}

	return Round(bmr*factor, 2)
}

// ItemCalories is one looked-up meal item
type ItemCalories struct {
	Item     string  `json:"item"`
	Calories float64 `json:"calories"`
	Known    bool    `json:"known"`
}

// MealResult totals a meal. Unknown items contribute zero and are listed separately.
type MealResult struct {
	Total   float64        `json:"total"`
	Items   []ItemCalories `json:"items"`
	Unknown []string       `json:"unknown,omitempty"`
}

// MealCalories sums the calorie table entries for items
func MealCalories(t *tables.Tables, items []string) MealResult {
	var res MealResult
	for _, raw := range items {
		item := normalize(raw)
		if item == "" {
			continue
		}
		kcal, ok := t.Calories[item]
		res.Items = append(res.Items, ItemCalories{Item: item, Calories: kcal, Known: ok})
		if !ok {
			res.Unknown = append(res.Unknown, item)
			continue
		}
		res.Total += kcal
	}
	return res
}

// ProteinResult is a daily protein target in grams
type ProteinResult struct {
	ProteinGrams  float64 `json:"protein_grams"`
	ActivityLevel string  `json:"activity_level"`
}

// ProteinNeeds scales 0.8 g/kg by the activity multiplier
func ProteinNeeds(t *tables.Tables, weightKg float64, activity string) ProteinResult {
	multiplier, ok := t.ProteinMultipliers[normalize(activity)]
	if !ok {
		multiplier = DefaultProteinMultiplier
	}

	return ProteinResult{
		ProteinGrams:  Round(weightKg*proteinBaseGramsPerKg*multiplier, 1),
		ActivityLevel: activity,
	}
}

// WaterResult is a daily water target
type WaterResult struct {
	ML     float64 `json:"ml"`
	Liters float64 `json:"liters"`
	Cups   float64 `json:"cups"`
}

// WaterIntake returns 35 ml/kg plus the activity bonus
func WaterIntake(t *tables.Tables, weightKg float64, activity string) WaterResult {
	bonus, ok := t.WaterBonusML[normalize(activity)]
	if !ok {
		bonus = DefaultWaterBonusML
	}

	totalML := weightKg*waterBaseMLPerKg + bonus
	liters := Round(totalML/1000, 2)

	return WaterResult{
		ML:     Round(totalML, 0),
		Liters: liters,
		Cups:   Round(liters*cupsPerLiter, 1),
	}
}

// MacroShare is one macronutrient of a split
type MacroShare struct {
	Grams      float64 `json:"grams"`
	Calories   float64 `json:"calories"`
	Percentage float64 `json:"percentage"`
}

// MacroResult is the protein/carbs/fat split of a calorie budget
type MacroResult struct {
	Goal    string     `json:"goal"`
	Protein MacroShare `json:"protein"`
	Carbs   MacroShare `json:"carbs"`
	Fat     MacroShare `json:"fat"`
}

// Macros splits totalCalories according to the goal's ratio
func Macros(t *tables.Tables, totalCalories float64, goal string) MacroResult {
	ratio, ok := t.MacroRatios[normalize(goal)]
	if !ok {
		ratio = t.MacroRatios[tables.DefaultMacroGoal]
	}

	share := func(percent, kcalPerGram float64) MacroShare {
		kcal := totalCalories * percent / 100
		return MacroShare{
			Grams:      Round(kcal/kcalPerGram, 1),
			Calories:   Round(kcal, 0),
			Percentage: Round(percent, 1),
		}
	}

	return MacroResult{
		Goal:    goal,
		Protein: share(ratio.Protein, 4),
		Carbs:   share(ratio.Carbs, 4),
		Fat:     share(ratio.Fat, 9),
	}
}

// WorkoutPlanResult carries either a plan or a message listing valid values
type WorkoutPlanResult struct {
	Plan  string `json:"plan,omitempty"`
	Found bool   `json:"found"`
	Error string `json:"error,omitempty"`
}

// WorkoutPlan looks up goal then experience in the plan table
func WorkoutPlan(t *tables.Tables, goal, experience string) WorkoutPlanResult {
	g, ok := t.FindWorkoutGoal(goal)
	if !ok {
		return WorkoutPlanResult{
			Error: "Unknown goal. Try " + joinOr(t.WorkoutGoals()) + ".",
		}
	}

	experience = normalize(experience)
	levels := make([]string, 0, len(g.Levels))
	for _, l := range g.Levels {
		if l.Experience == experience {
			return WorkoutPlanResult{Plan: l.Plan, Found: true}
		}
		levels = append(levels, l.Experience)
	}

	return WorkoutPlanResult{
		Error: "Unknown experience level. Try " + joinOr(levels) + ".",
	}
}

// MealPlan returns the meal suggestion stored under name
func MealPlan(t *tables.Tables, name string) (string, bool) {
	name = normalize(name)
	for _, m := range t.MealPlans {
		if m.Name == name {
			return m.Meal, true
		}
	}
	return "", false
}

// joinOr renders "a, b, or c"
func joinOr(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	case 2:
		return values[0] + " or " + values[1]
	}
	return strings.Join(values[:len(values)-1], ", ") + ", or " + values[len(values)-1]
}
