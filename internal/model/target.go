package model

import (
	"fmt"
	"strings"
)

// TargetKind names the session type a code is issued for.
type TargetKind string

const (
	TargetLecture TargetKind = "lecture"
	TargetSeminar TargetKind = "seminar"
)

// ParseTargetKind accepts "lecture" or "seminar" in any case.
func ParseTargetKind(s string) (TargetKind, error) {
	switch kind := TargetKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case TargetLecture, TargetSeminar:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown target kind %q", s)
	}
}

// Target identifies the lecture or seminar a code is attached to, by name.
type Target struct {
	Kind TargetKind `json:"kind"`
	Name string     `json:"name"`
}

// EntityKind is one of the four counted tables.
type EntityKind string

const (
	EntityModule  EntityKind = "module"
	EntityLecture EntityKind = "lecture"
	EntitySeminar EntityKind = "seminar"
	EntityCode    EntityKind = "code"
)

// Table returns the table backing the entity kind.
func (k EntityKind) Table() (string, error) {
	switch k {
	case EntityModule:
		return "modules", nil
	case EntityLecture:
		return "lectures", nil
	case EntitySeminar:
		return "seminars", nil
	case EntityCode:
		return "codes", nil
	default:
		return "", fmt.Errorf("unknown entity kind %q", string(k))
	}
}
