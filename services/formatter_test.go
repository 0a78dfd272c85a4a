package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"fitness-ai-assistant/models"
)

func TestFormatting(t *testing.T) {
	s := newService(&fakeGenerator{})

	tests := []struct {
		input string
		want  string
	}{
		{"bmi 70 0", "I can't calculate BMI with a height of zero. Please give your height in centimeters."},
		{"calories 70 175 30 male medium", "Your estimated daily calorie needs are 2555.56 kcal (medium activity)."},
		{"duration 3 10 60", "3 sets of 10 reps with 60 s rest takes about 3.5 minutes."},
		{"idealweight 175 male", "Your ideal weight is about 68.9 kg (healthy range 62.0-75.8 kg)."},
		{"protein 70 very_active", "You need about 89.6 g of protein per day (very active)."},
		{"water 70 active", "Aim for 3450 ml of water per day (3.45 L, about 14.5 cups)."},
		{"bodyfat 80 180 35 male", "Your estimated body fat is 21.5% (Average)."},
		{"meal calories apple, rice", "Total calories: 95 kcal\n- apple: 95 kcal\nI don't have calorie data for: rice."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			reply, _ := s.Respond(context.Background(), tt.input, nil)
			assert.Equal(t, tt.want, reply)
		})
	}
}

func TestFormatting_HeartRateAndMacros(t *testing.T) {
	s := newService(&fakeGenerator{})

	reply, _ := s.Respond(context.Background(), "heartrate 40", nil)
	assert.Contains(t, reply, "Max heart rate: 180 bpm (resting reference 60 bpm)")
	assert.Contains(t, reply, "- fat burn: 90-108 bpm, Fat burning zone")
	assert.Contains(t, reply, "- vo2 max: 175-180 bpm, Elite conditioning")

	reply, _ = s.Respond(context.Background(), "macros 2000", nil)
	assert.Equal(t, "Macros for 2000 kcal (maintain):\n"+
		"- Protein: 125 g (500 kcal, 25%)\n"+
		"- Carbs: 225 g (900 kcal, 45%)\n"+
		"- Fat: 66.7 g (600 kcal, 30%)", reply)
}

func TestFormatting_WorkoutPlan(t *testing.T) {
	s := newService(&fakeGenerator{})

	reply, _ := s.Respond(context.Background(), "workout weight loss beginner", nil)
	assert.Contains(t, reply, "Workout plan for weight loss (beginner):")
}

func TestTrimFloat(t *testing.T) {
	assert.Equal(t, "0", trimFloat(0))
	assert.Equal(t, "100", trimFloat(100))
	assert.Equal(t, "3.5", trimFloat(3.5))
	assert.Equal(t, "1.17", trimFloat(1.17))
}

func TestPromptInstructions(t *testing.T) {
	p := Prompt{System: "be nice", Profile: models.Profile{"gender": "female", "age": "28"}}
	assert.Equal(t, "be nice\n\nUSER PROFILE (may be empty):\n- age: 28\n- gender: female\n", p.Instructions())

	empty := Prompt{System: "be nice"}
	assert.Contains(t, empty.Instructions(), "(none)")
}
