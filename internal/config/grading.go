package config

import (
	"os"
	"strconv"
)

// GradingConfig carries the bubble-detection tuning defaults used when a
// grade request omits them. The values are opaque to this service; the
// engine interprets them.
type GradingConfig struct {
	// Threshold is the fill-ratio above which a bubble counts as marked.
	Threshold float64 `json:"threshold"`

	// Tie is the tolerance below which two candidate marks are ambiguous.
	Tie float64 `json:"tie"`

	// CellRadiusRatio hints the bubble radius relative to cell size.
	CellRadiusRatio float64 `json:"cellRadiusRatio"`
}

// DefaultGradingConfig returns the grading defaults, overridable per
// deployment through the environment.
func DefaultGradingConfig() *GradingConfig {
	return &GradingConfig{
		Threshold:       getEnvFloat("GRADE_THRESHOLD", 0.5),
		Tie:             getEnvFloat("GRADE_TIE", 0.1),
		CellRadiusRatio: getEnvFloat("GRADE_CELL_RADIUS_RATIO", 0.4),
	}
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultVal
}
