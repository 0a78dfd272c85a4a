package models

import (
	"strconv"
	"strings"
)

// ProfileFields are the fields a complete fitness profile needs, in the order they are asked for
var ProfileFields = []string{
	"age", "weight", "height", "gender",
	"goal", "level", "training_days", "equipment",
}

// Profile maps a profile field to its value
type Profile map[string]string

// ProfileUpdateRequest is a partial profile update
type ProfileUpdateRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

// ProfileResponse is a profile with the fields still missing
type ProfileResponse struct {
	Profile Profile  `json:"profile"`
	Missing []string `json:"missing"`
}

// IsProfileField reports whether name is one of ProfileFields
func IsProfileField(name string) bool {
	for _, f := range ProfileFields {
		if f == name {
			return true
		}
	}
	return false
}

// NormalizeProfileValue validates value for field and returns its canonical form.
// Numeric fields must parse as positive numbers and gender must be male or female.
func NormalizeProfileValue(field, value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" || !IsProfileField(field) {
		return "", false
	}

	switch field {
	case "age", "training_days":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return "", false
		}
		if field == "training_days" && n > 7 {
			return "", false
		}
		return strconv.Itoa(n), true
	case "weight", "height":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	case "gender":
		value = strings.ToLower(value)
		if value != "male" && value != "female" {
			return "", false
		}
		return value, true
	}

	return value, true
}
