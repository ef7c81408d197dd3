package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport_Add_GroupsByCategory(t *testing.T) {
	var r Report
	r.Add("descriptor", "name", true, "")
	r.Add("descriptor", "version", true, "")
	r.Add("files", "README.md", false, "missing")

	assert.Len(t, r.Categories, 2)
	assert.Len(t, r.Categories[0].Checks, 2)
	assert.Equal(t, "files", r.Categories[1].Name)
}

func TestReport_Counts(t *testing.T) {
	var r Report
	r.Add("a", "one", true, "")
	r.Add("a", "two", false, "bad")
	r.Add("b", "three", true, "")

	assert.Equal(t, 3, r.Total())
	assert.Equal(t, 2, r.PassedCount())
	assert.Equal(t, 1, r.FailedCount())
	assert.InDelta(t, 66.6, r.SuccessRate(), 0.1)
}

func TestReport_AllPassed(t *testing.T) {
	var r Report
	r.Add("a", "one", true, "")
	assert.True(t, r.AllPassed())

	r.Add("a", "two", false, "bad")
	assert.False(t, r.AllPassed())
}

// TestReport_Empty verifies an empty report never passes: it means
// nothing was validated
func TestReport_Empty(t *testing.T) {
	var r Report

	assert.False(t, r.AllPassed())
	assert.Zero(t, r.SuccessRate())
}

// Callers pass the would-be failure message unconditionally; a passing
// check must not carry it.
func TestReport_Add_DropsDetailOnPass(t *testing.T) {
	var r Report
	r.Add("descriptor", "build-system", true, "missing build-system table")
	r.Add("descriptor", "license", false, "license missing")

	assert.Empty(t, r.Categories[0].Checks[0].Detail)
	assert.Equal(t, "license missing", r.Categories[0].Checks[1].Detail)
}
