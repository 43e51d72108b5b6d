package web

import (
	"porthmadog-rfc/internal/i18n"
	"porthmadog-rfc/internal/model"
	"porthmadog-rfc/internal/session"
)

type BaseView struct {
	Title       string
	Lang        i18n.Lang
	CurrentPath string
	AdminName   string
	CSRFToken   string
	Flash       *session.Flash
}

// T resolves a translation key in the viewer's language. Promoted into
// every page view so templates can call {{.T "nav.players"}} directly.
func (v BaseView) T(key string) string {
	return i18n.T(v.Lang, key)
}

func (v BaseView) IsAuthenticated() bool {
	return v.AdminName != ""
}

type HomeView struct {
	BaseView
	NextFixture  *model.Fixture
	LatestResult *model.Result
	Featured     []model.Player
	FoundedYear  int
	Anniversary  model.RichText
}

type PlayersView struct {
	BaseView
	Players []model.Player
}

type PlayerView struct {
	BaseView
	Player model.Player
	Stats  []model.PlayerSeasonStat
}

type FixturesView struct {
	BaseView
	Fixtures []model.Fixture
}

type ResultsView struct {
	BaseView
	Results []model.Result
}

type ClubView struct {
	BaseView
	Info    model.ClubInfo
	Coaches []model.StaffMember
	Board   []model.StaffMember
}

type HistoryView struct {
	BaseView
	Info model.ClubInfo
}

type ContactView struct {
	BaseView
	Info model.ClubInfo
}

type LoginView struct {
	BaseView
	Error    string
	TimedOut bool
}

type DashboardView struct {
	BaseView
	PlayerCount  int
	FixtureCount int
	ResultCount  int
	NextFixture  *model.Fixture
}

type AdminPlayersView struct {
	BaseView
	Players []model.Player
}

type PlayerFormView struct {
	BaseView
	Player model.Player
	Stats  []model.PlayerSeasonStat
	IsNew  bool
	Error  string
}

type AdminFixturesView struct {
	BaseView
	Fixtures []model.Fixture
}

type FixtureFormView struct {
	BaseView
	Fixture   model.Fixture
	DateValue string
	IsNew     bool
	Error     string
}

type AdminResultsView struct {
	BaseView
	Results []model.Result
}

type ResultFormView struct {
	BaseView
	Result    model.Result
	DateValue string
	IsNew     bool
	Error     string
}

type AdminStaffView struct {
	BaseView
	Staff []model.StaffMember
}

type StaffFormView struct {
	BaseView
	Staff model.StaffMember
	IsNew bool
	Error string
}

type ClubFormView struct {
	BaseView
	Info  model.ClubInfo
	Error string
}

type HistoryFormView struct {
	BaseView
	Info  model.ClubInfo
	Error string
}
