package calculator

import "math"

// RestingHeartRate is the average adult resting heart rate used as the floor of the resting zone
const RestingHeartRate = 60

// Zone is one heart-rate training band in beats per minute
type Zone struct {
	Name        string `json:"name"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Description string `json:"description"`
}

// HeartRateResult lists the training zones for an age, lowest first
type HeartRateResult struct {
	MaxHeartRate     int    `json:"max_heart_rate"`
	RestingHeartRate int    `json:"resting_heart_rate"`
	Zones            []Zone `json:"zones"`
}

// HeartRateZones derives six zones from max HR = 220 - age
func HeartRateZones(age int) HeartRateResult {
	maxHR := 220 - age
	pct := func(p float64) int {
		return int(math.Round(float64(maxHR) * p))
	}

	return HeartRateResult{
		MaxHeartRate:     maxHR,
		RestingHeartRate: RestingHeartRate,
		Zones: []Zone{
			{Name: "resting", Min: RestingHeartRate, Max: pct(0.5), Description: "Rest and recovery"},
			{Name: "fat_burn", Min: pct(0.5), Max: pct(0.6), Description: "Fat burning zone"},
			{Name: "cardio", Min: pct(0.6), Max: pct(0.7), Description: "Cardio endurance"},
			{Name: "aerobic", Min: pct(0.7), Max: pct(0.85), Description: "Aerobic training"},
			{Name: "anaerobic", Min: pct(0.85), Max: maxHR, Description: "Near-max training"},
			{Name: "vo2_max", Min: maxHR - 5, Max: maxHR, Description: "Elite conditioning"},
		},
	}
}
