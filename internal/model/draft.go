package model

import "time"

// AssignmentDraft is the pending first half of an interactive code
// assignment: the code and module are known, the target is still to be
// chosen from Candidates.
type AssignmentDraft struct {
	ID         string     `json:"id"`
	Code       string     `json:"code"`
	ModuleCode string     `json:"module_code"`
	Kind       TargetKind `json:"kind"`
	Candidates []string   `json:"candidates"`
	ExpiresAt  time.Time  `json:"expires_at"`
}

// HasCandidate reports whether name is one of the offered targets.
func (d *AssignmentDraft) HasCandidate(name string) bool {
	for _, c := range d.Candidates {
		if c == name {
			return true
		}
	}
	return false
}
