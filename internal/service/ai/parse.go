package ai

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultRelation is the score used when no model is configured or the
// model's reply holds no number
const DefaultRelation = 0.5

var firstNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseRelation reads a score from a model reply. It accepts
// {"relation": x} (optionally inside a code fence) and falls back to the
// first number in the text. The result is clamped to [0,1].
func ParseRelation(reply string) float64 {
	text := strings.TrimSpace(reply)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var parsed struct {
		Relation *float64 `json:"relation"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &parsed); err == nil && parsed.Relation != nil {
		return clamp(*parsed.Relation)
	}

	if m := firstNumber.FindString(reply); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return clamp(v)
		}
	}
	return DefaultRelation
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return DefaultRelation
	}
	return math.Max(0, math.Min(1, v))
}
