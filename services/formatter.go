package services

import (
	"fmt"
	"strings"

	"fitness-ai-assistant/calculator"
	"fitness-ai-assistant/commands"
	"fitness-ai-assistant/models"
	"fitness-ai-assistant/tables"
)

// formatCommandResult formats calculator results into natural language
func formatCommandResult(m commands.Match, result interface{}) string {
	switch m.Kind {
	case commands.KindBMI:
		bmi := result.(calculator.BMIResult)
		if !bmi.Valid {
			return "I can't calculate BMI with a height of zero. Please give your height in centimeters."
		}
		return fmt.Sprintf("Your BMI is %.1f, which is in the %s range.", bmi.Value, bmi.Category)

	case commands.KindCalories:
		kcal := result.(float64)
		return fmt.Sprintf("Your estimated daily calorie needs are %.2f kcal (%s activity).", kcal, m.Args.Activity)

	case commands.KindMealCalories:
		meal := result.(calculator.MealResult)
		msg := fmt.Sprintf("Total calories: %s kcal\n", trimFloat(meal.Total))
		for _, item := range meal.Items {
			if item.Known {
				msg += fmt.Sprintf("- %s: %s kcal\n", item.Item, trimFloat(item.Calories))
			}
		}
		if len(meal.Unknown) > 0 {
			msg += fmt.Sprintf("I don't have calorie data for: %s.", strings.Join(meal.Unknown, ", "))
		}
		return strings.TrimRight(msg, "\n")

	case commands.KindWorkoutPlan:
		plan := result.(calculator.WorkoutPlanResult)
		if !plan.Found {
			return plan.Error
		}
		return fmt.Sprintf("Workout plan for %s (%s):\n%s", m.Args.Goal, m.Args.Experience, plan.Plan)

	case commands.KindWorkoutDuration:
		minutes := result.(float64)
		return fmt.Sprintf("%d sets of %d reps with %s s rest takes about %s minutes.",
			m.Args.Sets, m.Args.Reps, trimFloat(m.Args.Rest), trimFloat(minutes))

	case commands.KindBodyFat:
		bf := result.(calculator.BodyFatResult)
		if !bf.Valid {
			return "I can't estimate body fat with a height of zero. Please give your height in centimeters."
		}
		return fmt.Sprintf("Your estimated body fat is %.1f%% (%s).", bf.BodyFat, bf.Category)

	case commands.KindIdealWeight:
		iw := result.(calculator.IdealWeightResult)
		return fmt.Sprintf("Your ideal weight is about %.1f kg (healthy range %.1f-%.1f kg).", iw.Ideal, iw.Min, iw.Max)

	case commands.KindProtein:
		p := result.(calculator.ProteinResult)
		return fmt.Sprintf("You need about %s g of protein per day (%s).", trimFloat(p.ProteinGrams), label(p.ActivityLevel))

	case commands.KindWater:
		w := result.(calculator.WaterResult)
		return fmt.Sprintf("Aim for %s ml of water per day (%s L, about %s cups).",
			trimFloat(w.ML), trimFloat(w.Liters), trimFloat(w.Cups))

	case commands.KindHeartRate:
		hr := result.(calculator.HeartRateResult)
		msg := fmt.Sprintf("Max heart rate: %d bpm (resting reference %d bpm)\n", hr.MaxHeartRate, hr.RestingHeartRate)
		for _, z := range hr.Zones {
			msg += fmt.Sprintf("- %s: %d-%d bpm, %s\n", label(z.Name), z.Min, z.Max, z.Description)
		}
		return strings.TrimRight(msg, "\n")

	case commands.KindMacros:
		mr := result.(calculator.MacroResult)
		msg := fmt.Sprintf("Macros for %s kcal (%s):\n", trimFloat(m.Args.Calories), label(mr.Goal))
		msg += formatMacroShare("Protein", mr.Protein)
		msg += formatMacroShare("Carbs", mr.Carbs)
		msg += formatMacroShare("Fat", mr.Fat)
		return strings.TrimRight(msg, "\n")

	default:
		return fmt.Sprintf("%v", result)
	}
}

func formatMacroShare(name string, s calculator.MacroShare) string {
	return fmt.Sprintf("- %s: %s g (%s kcal, %s%%)\n", name, trimFloat(s.Grams), trimFloat(s.Calories), trimFloat(s.Percentage))
}

func formatMealPlanList(plans []tables.MealPlan) string {
	msg := "Meal plan ideas:\n"
	for _, p := range plans {
		msg += fmt.Sprintf("- %s: %s\n", label(p.Name), p.Meal)
	}
	return strings.TrimRight(msg, "\n")
}

// formatProfile summarizes a profile after a profile command
func formatProfile(m commands.Match, p models.Profile, missing []string) string {
	var msg string
	switch m.Kind {
	case commands.KindProfileSet:
		msg = fmt.Sprintf("Saved %s: %s.\n", label(m.Args.Field), m.Args.Value)
	default:
		msg = "Your fitness profile:\n"
		for _, f := range models.ProfileFields {
			if v := p[f]; v != "" {
				msg += fmt.Sprintf("- %s: %s\n", label(f), v)
			}
		}
	}

	if len(missing) > 0 {
		msg += fmt.Sprintf("Still missing: %s.", strings.Join(missing, ", "))
	} else {
		msg += "Your profile is complete! Would you like a workout plan, nutrition plan, or both?"
	}
	return msg
}

// trimFloat prints f without trailing zeros
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func label(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
