package models

import "time"

// QuotaStatus describes a user's remaining AI-generation allowance for the
// current day. Configured reflects whether the AI collaborator is reachable
// at all; callers must treat "not configured" as feature-disabled, which is
// distinct from an exhausted quota.
type QuotaStatus struct {
	DailyLimit int  `json:"dailyLimit"`
	Remaining  int  `json:"remaining"`
	Allowed    bool `json:"allowed"`
	Configured bool `json:"configured"`
}

// QuotaDay returns the calendar-day key quota counters are scoped by.
// Day boundaries are UTC so the key is stable across server instances.
func QuotaDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
