package store

import (
	"time"

	"porthmadog-rfc/internal/model"
)

// Store is the persistence boundary for the site. Lists return their full
// result set in a documented stable order; there is no pagination at club
// scale.
type Store interface {
	GetAdminByUsername(username string) (model.AdminUser, bool)
	UpsertAdmin(user model.AdminUser) (model.AdminUser, error)

	// Players, ordered by squad number then name.
	ListPlayers() []model.Player
	GetPlayer(id int64) (model.Player, bool)
	CreatePlayer(p model.Player) (model.Player, error)
	UpdatePlayer(p model.Player) error
	DeletePlayer(id int64) error

	// Per-season stats for a player, newest season first.
	ListStatsForPlayer(playerID int64) []model.PlayerSeasonStat
	SaveStat(stat model.PlayerSeasonStat) (model.PlayerSeasonStat, error)
	DeleteStat(id int64) error

	// Fixtures, ordered by match date ascending.
	ListFixtures() []model.Fixture
	ListUpcomingFixtures(from time.Time) []model.Fixture
	NextFixture(from time.Time) (model.Fixture, bool)
	GetFixture(id int64) (model.Fixture, bool)
	CreateFixture(f model.Fixture) (model.Fixture, error)
	UpdateFixture(f model.Fixture) error
	DeleteFixture(id int64) error

	// Results, ordered by match date descending.
	ListResults() []model.Result
	LatestResult() (model.Result, bool)
	GetResult(id int64) (model.Result, bool)
	CreateResult(res model.Result) (model.Result, error)
	UpdateResult(res model.Result) error
	DeleteResult(id int64) error

	// Staff, ordered by category, sort order, name.
	ListStaff() []model.StaffMember
	GetStaff(id int64) (model.StaffMember, bool)
	CreateStaff(st model.StaffMember) (model.StaffMember, error)
	UpdateStaff(st model.StaffMember) error
	DeleteStaff(id int64) error

	// ClubInfo is a single row, created on first save.
	GetClubInfo() (model.ClubInfo, bool)
	SaveClubInfo(info model.ClubInfo) (model.ClubInfo, error)

	// Counts feeds the admin dashboard.
	Counts() (players, fixtures, results int)
}
