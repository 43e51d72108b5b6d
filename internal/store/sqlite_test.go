package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porthmadog-rfc/internal/model"
)

func newSQLiteTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:", SQLiteOptions{MigrationsDir: "../../migrations/sqlite"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteFixtureRoundTrip(t *testing.T) {
	s := newSQLiteTestStore(t)

	kickoff := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	created, err := s.CreateFixture(model.Fixture{
		MatchDate:   kickoff,
		Opponent:    "Bangor",
		Venue:       model.VenueHome,
		Competition: "North Wales League",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	loaded, ok := s.GetFixture(created.ID)
	require.True(t, ok)
	assert.True(t, kickoff.Equal(loaded.MatchDate), "got %v", loaded.MatchDate)
	assert.Equal(t, "Bangor", loaded.Opponent)
	assert.Equal(t, model.VenueHome, loaded.Venue)
	assert.Equal(t, "North Wales League", loaded.Competition)
}

func TestSQLiteFixtureOrderingAndUpcoming(t *testing.T) {
	s := newSQLiteTestStore(t)
	for day, opponent := range map[int]string{14: "Nefyn", 1: "Bangor", 7: "Caernarfon"} {
		_, err := s.CreateFixture(model.Fixture{
			MatchDate: time.Date(2026, 3, day, 15, 0, 0, 0, time.UTC),
			Opponent:  opponent,
			Venue:     model.VenueHome,
		})
		require.NoError(t, err)
	}

	all := s.ListFixtures()
	require.Len(t, all, 3)
	assert.Equal(t, "Bangor", all[0].Opponent)
	assert.Equal(t, "Nefyn", all[2].Opponent)

	next, ok := s.NextFixture(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "Caernarfon", next.Opponent)
}

func TestSQLitePlayerNullableFields(t *testing.T) {
	s := newSQLiteTestStore(t)

	created, err := s.CreatePlayer(model.Player{Name: "Aled"})
	require.NoError(t, err)

	loaded, ok := s.GetPlayer(created.ID)
	require.True(t, ok)
	assert.Zero(t, loaded.SquadNumber)
	assert.Zero(t, loaded.Age)
	assert.Empty(t, loaded.PhotoPath)

	numbered, err := s.CreatePlayer(model.Player{Name: "Rhys", SquadNumber: 10, Age: 24, PhotoPath: "players/abc.png"})
	require.NoError(t, err)
	loaded, _ = s.GetPlayer(numbered.ID)
	assert.Equal(t, 10, loaded.SquadNumber)
	assert.Equal(t, "players/abc.png", loaded.PhotoPath)

	players := s.ListPlayers()
	require.Len(t, players, 2)
	assert.Equal(t, "Rhys", players[0].Name, "numberless players sort last")
}

func TestSQLiteStatUpsertAndCascade(t *testing.T) {
	s := newSQLiteTestStore(t)
	player, err := s.CreatePlayer(model.Player{Name: "Rhys"})
	require.NoError(t, err)

	first, err := s.SaveStat(model.PlayerSeasonStat{PlayerID: player.ID, Season: "2025/26", Tries: 2})
	require.NoError(t, err)
	second, err := s.SaveStat(model.PlayerSeasonStat{PlayerID: player.ID, Season: "2025/26", Tries: 6, Points: 30})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stats := s.ListStatsForPlayer(player.ID)
	require.Len(t, stats, 1)
	assert.Equal(t, 6, stats[0].Tries)

	require.NoError(t, s.DeletePlayer(player.ID))
	assert.Empty(t, s.ListStatsForPlayer(player.ID), "stats go with the player")
}

func TestSQLiteResultRoundTrip(t *testing.T) {
	s := newSQLiteTestStore(t)

	created, err := s.CreateResult(model.Result{
		MatchDate:     time.Date(2026, 2, 21, 14, 30, 0, 0, time.UTC),
		Opponent:      "Pwllheli",
		OurScore:      31,
		OpponentScore: 10,
		Venue:         model.VenueAway,
		Competition:   "Cup",
		MatchReport:   "A strong second half sealed it.",
		ManOfTheMatch: "Rhys Jones",
	})
	require.NoError(t, err)

	loaded, ok := s.GetResult(created.ID)
	require.True(t, ok)
	assert.Equal(t, model.OutcomeWin, loaded.Outcome())
	assert.Equal(t, "Rhys Jones", loaded.ManOfTheMatch)
	assert.Equal(t, "A strong second half sealed it.", loaded.MatchReport)

	latest, ok := s.LatestResult()
	require.True(t, ok)
	assert.Equal(t, created.ID, latest.ID)
}

func TestSQLiteClubInfoUpsert(t *testing.T) {
	s := newSQLiteTestStore(t)

	saved, err := s.SaveClubInfo(model.ClubInfo{
		ContactEmail:   "club@example.org",
		FoundedYear:    1974,
		HistoryContent: model.RichText("<p>Founded in 1974.</p>"),
	})
	require.NoError(t, err)

	saved.ContactPhone = "01766 000000"
	again, err := s.SaveClubInfo(saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)

	info, ok := s.GetClubInfo()
	require.True(t, ok)
	assert.Equal(t, "01766 000000", info.ContactPhone)
	assert.Equal(t, model.RichText("<p>Founded in 1974.</p>"), info.HistoryContent)
}

func TestSQLiteAdminUpsert(t *testing.T) {
	s := newSQLiteTestStore(t)

	first, err := s.UpsertAdmin(model.AdminUser{Username: "clubadmin", PasswordHash: "hash-one"})
	require.NoError(t, err)
	second, err := s.UpsertAdmin(model.AdminUser{Username: "clubadmin", PasswordHash: "hash-two"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	loaded, ok := s.GetAdminByUsername("clubadmin")
	require.True(t, ok)
	assert.Equal(t, "hash-two", loaded.PasswordHash)
}

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	s := newSQLiteTestStore(t)
	require.NoError(t, applyMigrations(s.db, "../../migrations/sqlite"))
}
