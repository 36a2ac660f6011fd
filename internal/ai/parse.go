package ai

import (
	"encoding/json"
	"strings"
)

// ParseAction attempts to read a structured action out of raw model output.
// The model is instructed to reply with bare JSON but is not guaranteed to
// honor that, so this is best-effort: code fences are stripped, the
// outermost {...} span is extracted (tolerating prose before and after),
// and the result must carry an action tag from the closed set. On any
// failure the original text is returned with ok=false and the caller treats
// it as a plain message.
func ParseAction(raw string) (*Action, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	first := strings.Index(cleaned, "{")
	last := strings.LastIndex(cleaned, "}")
	if first == -1 || last <= first {
		return nil, false
	}
	cleaned = cleaned[first : last+1]

	var action Action
	if err := json.Unmarshal([]byte(cleaned), &action); err != nil {
		return nil, false
	}
	if !ValidAction(action.Action) {
		return nil, false
	}
	return &action, true
}
