package model

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultOutcome(t *testing.T) {
	assert.Equal(t, OutcomeWin, Result{OurScore: 24, OpponentScore: 17}.Outcome())
	assert.Equal(t, OutcomeLoss, Result{OurScore: 10, OpponentScore: 31}.Outcome())
	assert.Equal(t, OutcomeDraw, Result{OurScore: 12, OpponentScore: 12}.Outcome())
}

func TestResultScoreLine(t *testing.T) {
	assert.Equal(t, "24 – 17", Result{OurScore: 24, OpponentScore: 17}.ScoreLine())
}

func TestParseVenue(t *testing.T) {
	assert.Equal(t, VenueAway, ParseVenue("away"))
	assert.Equal(t, VenueHome, ParseVenue("home"))
	assert.Equal(t, VenueHome, ParseVenue("neutral"))
}

func TestParseStaffCategory(t *testing.T) {
	assert.Equal(t, StaffCommittee, ParseStaffCategory("committee"))
	assert.Equal(t, StaffCoach, ParseStaffCategory("coach"))
	assert.Equal(t, StaffCoach, ParseStaffCategory(""))
}

func TestRichTextHTMLIsExplicit(t *testing.T) {
	rt := RichText("<p>hello</p>")
	assert.Equal(t, template.HTML("<p>hello</p>"), rt.HTML())
	assert.False(t, rt.Empty())
	assert.True(t, RichText("  ").Empty())
}
