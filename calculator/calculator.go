// Package calculator implements the deterministic fitness formulas.
// Every function is pure: inputs are already parsed and no state is kept.
package calculator

import (
	"math"
	"strings"
)

// Round rounds x to the given number of decimals, half away from zero
func Round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

func isMale(gender string) bool {
	return strings.EqualFold(strings.TrimSpace(gender), "male")
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// BMI categories
const (
	CategoryInvalidHeight = "invalid_height"
	CategoryUnderweight   = "underweight"
	CategoryNormal        = "normal"
	CategoryOverweight    = "overweight"
	CategoryObese         = "obese"
)

// BMIResult holds a body mass index. Value is only meaningful when Valid is true.
type BMIResult struct {
	Value    float64 `json:"bmi_value"`
	Valid    bool    `json:"valid"`
	Category string  `json:"category"`
}

// BMI computes weight / height(m)^2, rounded to one decimal
func BMI(weightKg, heightCm float64) BMIResult {
	bmi, ok := rawBMI(weightKg, heightCm)
	if !ok {
		return BMIResult{Category: CategoryInvalidHeight}
	}

	var category string
	switch {
	case bmi < 18.5:
		category = CategoryUnderweight
	case bmi < 25:
		category = CategoryNormal
	case bmi < 30:
		category = CategoryOverweight
	default:
		category = CategoryObese
	}

	return BMIResult{Value: Round(bmi, 1), Valid: true, Category: category}
}

func rawBMI(weightKg, heightCm float64) (float64, bool) {
	heightM := heightCm / 100.0
	if heightM <= 0 {
		return 0, false
	}
	return weightKg / (heightM * heightM), true
}

// BodyFatResult is an estimated body fat percentage
type BodyFatResult struct {
	BodyFat  float64 `json:"body_fat"`
	Valid    bool    `json:"valid"`
	Category string  `json:"category"`
}

// BodyFat estimates body fat with the Deurenberg formula, clamped to [5, 50]
func BodyFat(weightKg, heightCm float64, age int, gender string) BodyFatResult {
	bmi, ok := rawBMI(weightKg, heightCm)
	if !ok {
		return BodyFatResult{Category: CategoryInvalidHeight}
	}

	male := isMale(gender)
	bf := 1.20*bmi + 0.23*float64(age)
	if male {
		bf -= 16.2
	} else {
		bf -= 5.4
	}
	bf = math.Max(5, math.Min(50, bf))

	bands := femaleBodyFatBands
	if male {
		bands = maleBodyFatBands
	}
	category := "Obese"
	for _, b := range bands {
		if bf < b.below {
			category = b.label
			break
		}
	}

	return BodyFatResult{BodyFat: Round(bf, 1), Valid: true, Category: category}
}

type band struct {
	below float64
	label string
}

var maleBodyFatBands = []band{
	{6, "Essential fat"},
	{14, "Athletes"},
	{18, "Fitness"},
	{25, "Average"},
}

var femaleBodyFatBands = []band{
	{14, "Essential fat"},
	{20, "Athletes"},
	{25, "Fitness"},
	{32, "Average"},
}

// IdealWeightResult is a Robinson ideal weight with a ±10% range, in kg
type IdealWeightResult struct {
	Ideal float64 `json:"ideal"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// IdealWeight applies the Robinson formula
func IdealWeight(heightCm float64, gender string) IdealWeightResult {
	inches := heightCm / 2.54

	var ideal float64
	if isMale(gender) {
		ideal = 52 + 1.9*(inches-60)
	} else {
		ideal = 49 + 1.7*(inches-60)
	}

	return IdealWeightResult{
		Ideal: Round(ideal, 1),
		Min:   Round(ideal*0.9, 1),
		Max:   Round(ideal*1.1, 1),
	}
}

// WorkoutDuration estimates minutes for sets of reps at 3 seconds per rep
func WorkoutDuration(sets, reps int, restSeconds float64) float64 {
	repSeconds := float64(sets) * float64(reps) * 3
	restTotal := float64(sets-1) * restSeconds
	return Round((repSeconds+restTotal)/60, 2)
}
