// Package profile stores the single user's fitness profile.
package profile

import (
	"context"
	"fmt"

	"fitness-ai-assistant/models"
)

// Store persists profile fields. Update merges; Reset clears everything.
type Store interface {
	Get(ctx context.Context) (models.Profile, error)
	Update(ctx context.Context, fields map[string]string) error
	Reset(ctx context.Context) error
}

// MissingFields lists the required fields p has no value for, in asking order
func MissingFields(p models.Profile) []string {
	missing := []string{}
	for _, f := range models.ProfileFields {
		if p[f] == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Normalize validates fields and returns their canonical values. Unknown
// fields and invalid values are rejected with an error naming the field.
func Normalize(fields map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(fields))
	for field, value := range fields {
		if !models.IsProfileField(field) {
			return nil, fmt.Errorf("unknown profile field: %s", field)
		}
		v, ok := models.NormalizeProfileValue(field, value)
		if !ok {
			return nil, fmt.Errorf("invalid value for %s: %q", field, value)
		}
		out[field] = v
	}
	return out, nil
}
