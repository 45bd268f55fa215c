package service

import (
	"fmt"
	"strings"

	"rickhouse-server/internal/models"
)

// scriptSystemPrompt instructs the model to return the tasting walkthrough as
// strict JSON. The phase list is injected so prompt and parser cannot drift.
const scriptSystemPrompt = `You are Rick House, a warm and knowledgeable whiskey tasting guide.
Given a bottle description, write a guided tasting walkthrough.

Respond with JSON only, no markdown, in exactly this shape:
{
  "phases": [
    {"key": "<phase key>", "title": "<short phase title>", "guidance": "<2-4 sentences of guidance for this phase>"}
  ],
  "closing": "<one short closing remark>"
}

Produce one entry per phase, in this order: %s.
The "intro" phase welcomes the taster and sets expectations for this specific bottle.
The "summary" phase wraps up and invites the taster to record an overall impression.
Keep the tone friendly and concrete; reference the bottle's characteristics where relevant.`

// buildScriptPrompts renders the system and user prompts for one bottle.
// The community review count is passed along as a light personalization
// signal; the model may reference how widely reviewed the bottle is.
func buildScriptPrompts(bottle *models.Bottle) (systemPrompt, userInput string) {
	systemPrompt = fmt.Sprintf(scriptSystemPrompt, strings.Join(models.PhasesForMode(models.ModeGuided), ", "))

	var sb strings.Builder
	fmt.Fprintf(&sb, "Bottle: %s\n", bottle.Name)
	if bottle.Distillery != "" {
		fmt.Fprintf(&sb, "Distillery: %s\n", bottle.Distillery)
	}
	if bottle.WhiskeyType != "" {
		fmt.Fprintf(&sb, "Type: %s\n", bottle.WhiskeyType)
	}
	if bottle.AgeYears > 0 {
		fmt.Fprintf(&sb, "Age: %d years\n", bottle.AgeYears)
	}
	if bottle.ABV > 0 {
		fmt.Fprintf(&sb, "ABV: %.1f%%\n", bottle.ABV)
	}
	if bottle.ReviewCount > 0 {
		fmt.Fprintf(&sb, "Community reviews: %d\n", bottle.ReviewCount)
	}
	return systemPrompt, sb.String()
}
