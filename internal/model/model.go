// Package model holds the domain types shared by the repositories,
// services and handlers.
package model

import "time"

// StatusActive is the only status the service writes today; the column
// exists so rows can later be disabled without being deleted.
const StatusActive = 1

// Base holds the columns every table carries.
type Base struct {
	ID        int64     `json:"id" db:"id"`
	Status    int       `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Module is a university course. ModuleCode is unique and stored upper-cased.
type Module struct {
	Base
	Name        string  `json:"name" db:"name"`
	ModuleCode  string  `json:"module_code" db:"module_code"`
	Description *string `json:"description" db:"description"`
}

// Lecture belongs to one module; its name is unique within that module.
type Lecture struct {
	Base
	Name     string `json:"name" db:"name"`
	ModuleID int64  `json:"module_id" db:"module_id"`
}

// Seminar belongs to one module; its name is globally unique.
type Seminar struct {
	Base
	Name     string `json:"name" db:"name"`
	ModuleID int64  `json:"module_id" db:"module_id"`
}

// Code is an attendance code. Exactly one of LectureID and SeminarID is set.
type Code struct {
	Base
	Code      string `json:"code" db:"code"`
	ModuleID  int64  `json:"module_id" db:"module_id"`
	LectureID *int64 `json:"lecture_id" db:"lecture_id"`
	SeminarID *int64 `json:"seminar_id" db:"seminar_id"`
}

// CodeListing is a code joined with the names it is displayed with.
type CodeListing struct {
	ID         int64      `json:"id" db:"id"`
	Code       string     `json:"code" db:"code"`
	ModuleCode string     `json:"module_code" db:"module_code"`
	ModuleName string     `json:"module_name" db:"module_name"`
	TargetKind TargetKind `json:"target_kind" db:"target_kind"`
	TargetName string     `json:"target_name" db:"target_name"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// Stats counts every entity kind.
type Stats struct {
	Modules  int64 `json:"modules"`
	Lectures int64 `json:"lectures"`
	Seminars int64 `json:"seminars"`
	Codes    int64 `json:"codes"`
}
