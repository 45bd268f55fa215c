package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"rickhouse-server/internal/models"
)

type scriptResponse struct {
	Phases  []models.ScriptPhase `json:"phases"`
	Closing string               `json:"closing"`
}

// parseScriptResponse validates the AI output and normalizes phase order.
// Any structural problem maps to models.ErrGenerationFailed so the caller
// treats it exactly like a failed AI call: nothing is written to the cache.
func parseScriptResponse(responseText string) ([]models.ScriptPhase, string, error) {
	cleaned := cleanJSONResponse(responseText)
	if cleaned == "" {
		return nil, "", fmt.Errorf("%w: empty response", models.ErrGenerationFailed)
	}

	var resp scriptResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, "", fmt.Errorf("%w: unparseable response: %v", models.ErrGenerationFailed, err)
	}

	byKey := make(map[string]models.ScriptPhase, len(resp.Phases))
	for _, phase := range resp.Phases {
		if strings.TrimSpace(phase.Guidance) == "" {
			return nil, "", fmt.Errorf("%w: phase %q has no guidance", models.ErrGenerationFailed, phase.Key)
		}
		if _, dup := byKey[phase.Key]; dup {
			return nil, "", fmt.Errorf("%w: duplicate phase %q", models.ErrGenerationFailed, phase.Key)
		}
		byKey[phase.Key] = phase
	}

	// The cached script always carries the full guided phase set; the notes
	// mode reads a subset of it.
	expected := models.PhasesForMode(models.ModeGuided)
	ordered := make([]models.ScriptPhase, 0, len(expected))
	for _, key := range expected {
		phase, ok := byKey[key]
		if !ok {
			return nil, "", fmt.Errorf("%w: missing phase %q", models.ErrGenerationFailed, key)
		}
		ordered = append(ordered, phase)
	}

	return ordered, strings.TrimSpace(resp.Closing), nil
}

// cleanJSONResponse strips markdown code fences some models wrap JSON in.
func cleanJSONResponse(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}
