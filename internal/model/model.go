package model

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

type Venue string
type StaffCategory string
type Outcome string

const (
	VenueHome Venue = "home"
	VenueAway Venue = "away"

	StaffCoach     StaffCategory = "coach"
	StaffCommittee StaffCategory = "committee"

	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// ParseVenue normalises a submitted venue value, defaulting to home.
func ParseVenue(value string) Venue {
	if Venue(value) == VenueAway {
		return VenueAway
	}
	return VenueHome
}

// ParseStaffCategory normalises a submitted category, defaulting to coach.
func ParseStaffCategory(value string) StaffCategory {
	if StaffCategory(value) == StaffCommittee {
		return StaffCommittee
	}
	return StaffCoach
}

// RichText holds HTML written by the trusted admin. It is stored verbatim;
// templates must call HTML() explicitly to render it unescaped, so no field
// bypasses escaping by accident.
type RichText string

func (rt RichText) HTML() template.HTML {
	return template.HTML(rt)
}

func (rt RichText) Empty() bool {
	return strings.TrimSpace(string(rt)) == ""
}

type AdminUser struct {
	ID           int64
	Username     string
	PasswordHash string
}

type Player struct {
	ID          int64
	Name        string
	Position    string
	SquadNumber int
	Age         int
	Bio         string
	// PhotoPath is relative to the upload root, e.g. "players/ab12...png".
	// Empty when the player has no photo.
	PhotoPath string
}

type PlayerSeasonStat struct {
	ID          int64
	PlayerID    int64
	Season      string
	Appearances int
	Tries       int
	Points      int
}

type Fixture struct {
	ID          int64
	MatchDate   time.Time
	Opponent    string
	Venue       Venue
	Competition string
}

type Result struct {
	ID            int64
	MatchDate     time.Time
	Opponent      string
	OurScore      int
	OpponentScore int
	Venue         Venue
	Competition   string
	MatchReport   string
	ManOfTheMatch string
}

func (r Result) Outcome() Outcome {
	switch {
	case r.OurScore > r.OpponentScore:
		return OutcomeWin
	case r.OurScore < r.OpponentScore:
		return OutcomeLoss
	}
	return OutcomeDraw
}

func (r Result) ScoreLine() string {
	return fmt.Sprintf("%d – %d", r.OurScore, r.OpponentScore)
}

type StaffMember struct {
	ID        int64
	Name      string
	Role      string
	Category  StaffCategory
	Bio       string
	SortOrder int
	PhotoPath string
}

// ClubInfo is a single-row record holding contact details, social links and
// the rich-text history content edited in the admin panel.
type ClubInfo struct {
	ID                 int64
	ContactEmail       string
	ContactPhone       string
	ContactAddress     string
	SocialFacebook     string
	SocialTwitter      string
	SocialInstagram    string
	FoundedYear        int
	HistoryContent     RichText
	AnniversaryMessage RichText
}
