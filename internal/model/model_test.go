package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentWindow(t *testing.T) {
	now := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
	w := RecentWindow(now, 2*time.Hour, time.Hour)

	assert.True(t, w.Contains(now.Add(-30*time.Minute)))
	assert.True(t, w.Contains(now.Add(-2*time.Hour)), "lower bound is inclusive")
	assert.True(t, w.Contains(now.Add(time.Hour)), "upper bound is inclusive")
	assert.False(t, w.Contains(now.Add(-3*time.Hour)))
	assert.False(t, w.Contains(now.Add(61*time.Minute)))
	assert.True(t, w.Valid())
	assert.False(t, Window{From: now, To: now.Add(-time.Second)}.Valid())
}

func TestParseTargetKind(t *testing.T) {
	kind, err := ParseTargetKind(" Seminar ")
	require.NoError(t, err)
	assert.Equal(t, TargetSeminar, kind)

	_, err = ParseTargetKind("workshop")
	assert.Error(t, err)
}

func TestEntityKindTable(t *testing.T) {
	table, err := EntityCode.Table()
	require.NoError(t, err)
	assert.Equal(t, "codes", table)

	_, err = EntityKind("users").Table()
	assert.Error(t, err)
}

func TestDraftHasCandidate(t *testing.T) {
	d := &AssignmentDraft{Candidates: []string{"Lecture 1", "Lecture 2"}}

	assert.True(t, d.HasCandidate("Lecture 2"))
	assert.False(t, d.HasCandidate("lecture 2"))
}
