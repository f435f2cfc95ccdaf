package domain

import "time"

// ScopeAlert is a stored scope-creep finding for one project.
// Metadata holds the rule engine's per-rule figures as JSON.
type ScopeAlert struct {
	ID        string
	ProjectID string
	Triggers  []ScopeTrigger
	Metadata  []byte
	Status    AlertStatus
	CreatedAt time.Time
}
