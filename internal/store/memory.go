package store

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"porthmadog-rfc/internal/model"
)

// MemoryStore is the in-memory Store used for development and tests.
type MemoryStore struct {
	mu sync.RWMutex

	nextID   int64
	admins   map[int64]model.AdminUser
	players  map[int64]model.Player
	stats    map[int64]model.PlayerSeasonStat
	fixtures map[int64]model.Fixture
	results  map[int64]model.Result
	staff    map[int64]model.StaffMember
	clubInfo *model.ClubInfo
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		admins:   map[int64]model.AdminUser{},
		players:  map[int64]model.Player{},
		stats:    map[int64]model.PlayerSeasonStat{},
		fixtures: map[int64]model.Fixture{},
		results:  map[int64]model.Result{},
		staff:    map[int64]model.StaffMember{},
	}
}

func (s *MemoryStore) newID() int64 {
	s.nextID++
	return s.nextID
}

func (s *MemoryStore) GetAdminByUsername(username string) (model.AdminUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, admin := range s.admins {
		if admin.Username == username {
			return admin, true
		}
	}
	return model.AdminUser{}, false
}

func (s *MemoryStore) UpsertAdmin(user model.AdminUser) (model.AdminUser, error) {
	if strings.TrimSpace(user.Username) == "" {
		return model.AdminUser{}, errors.New("username is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.admins {
		if existing.Username == user.Username {
			user.ID = id
			s.admins[id] = user
			return user, nil
		}
	}
	user.ID = s.newID()
	s.admins[user.ID] = user
	return user, nil
}

func (s *MemoryStore) ListPlayers() []model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].SquadNumber != players[j].SquadNumber {
			return squadOrder(players[i].SquadNumber) < squadOrder(players[j].SquadNumber)
		}
		return players[i].Name < players[j].Name
	})
	return players
}

// squadOrder pushes players without a number to the end, matching the SQL
// stores where NULL squad numbers sort last.
func squadOrder(n int) int {
	if n == 0 {
		return 1 << 30
	}
	return n
}

func (s *MemoryStore) GetPlayer(id int64) (model.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	return p, ok
}

func (s *MemoryStore) CreatePlayer(p model.Player) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.newID()
	s.players[p.ID] = p
	return p, nil
}

func (s *MemoryStore) UpdatePlayer(p model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[p.ID]; !ok {
		return errors.New("player not found")
	}
	s.players[p.ID] = p
	return nil
}

func (s *MemoryStore) DeletePlayer(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[id]; !ok {
		return errors.New("player not found")
	}
	delete(s.players, id)
	for statID, stat := range s.stats {
		if stat.PlayerID == id {
			delete(s.stats, statID)
		}
	}
	return nil
}

func (s *MemoryStore) ListStatsForPlayer(playerID int64) []model.PlayerSeasonStat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := []model.PlayerSeasonStat{}
	for _, stat := range s.stats {
		if stat.PlayerID == playerID {
			stats = append(stats, stat)
		}
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Season > stats[j].Season })
	return stats
}

func (s *MemoryStore) SaveStat(stat model.PlayerSeasonStat) (model.PlayerSeasonStat, error) {
	if strings.TrimSpace(stat.Season) == "" {
		return model.PlayerSeasonStat{}, errors.New("season is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[stat.PlayerID]; !ok {
		return model.PlayerSeasonStat{}, errors.New("player not found")
	}
	for id, existing := range s.stats {
		if existing.PlayerID == stat.PlayerID && existing.Season == stat.Season {
			stat.ID = id
			s.stats[id] = stat
			return stat, nil
		}
	}
	stat.ID = s.newID()
	s.stats[stat.ID] = stat
	return stat, nil
}

func (s *MemoryStore) DeleteStat(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stats[id]; !ok {
		return errors.New("stat not found")
	}
	delete(s.stats, id)
	return nil
}

func (s *MemoryStore) ListFixtures() []model.Fixture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fixtures := make([]model.Fixture, 0, len(s.fixtures))
	for _, f := range s.fixtures {
		fixtures = append(fixtures, f)
	}
	sortFixtures(fixtures)
	return fixtures
}

func (s *MemoryStore) ListUpcomingFixtures(from time.Time) []model.Fixture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fixtures := []model.Fixture{}
	for _, f := range s.fixtures {
		if !f.MatchDate.Before(from) {
			fixtures = append(fixtures, f)
		}
	}
	sortFixtures(fixtures)
	return fixtures
}

func (s *MemoryStore) NextFixture(from time.Time) (model.Fixture, bool) {
	upcoming := s.ListUpcomingFixtures(from)
	if len(upcoming) == 0 {
		return model.Fixture{}, false
	}
	return upcoming[0], true
}

func sortFixtures(fixtures []model.Fixture) {
	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].MatchDate.Before(fixtures[j].MatchDate)
	})
}

func (s *MemoryStore) GetFixture(id int64) (model.Fixture, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.fixtures[id]
	return f, ok
}

func (s *MemoryStore) CreateFixture(f model.Fixture) (model.Fixture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = s.newID()
	s.fixtures[f.ID] = f
	return f, nil
}

func (s *MemoryStore) UpdateFixture(f model.Fixture) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.fixtures[f.ID]; !ok {
		return errors.New("fixture not found")
	}
	s.fixtures[f.ID] = f
	return nil
}

func (s *MemoryStore) DeleteFixture(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.fixtures[id]; !ok {
		return errors.New("fixture not found")
	}
	delete(s.fixtures, id)
	return nil
}

func (s *MemoryStore) ListResults() []model.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]model.Result, 0, len(s.results))
	for _, res := range s.results {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].MatchDate.After(results[j].MatchDate)
	})
	return results
}

func (s *MemoryStore) LatestResult() (model.Result, bool) {
	results := s.ListResults()
	if len(results) == 0 {
		return model.Result{}, false
	}
	return results[0], true
}

func (s *MemoryStore) GetResult(id int64) (model.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.results[id]
	return res, ok
}

func (s *MemoryStore) CreateResult(res model.Result) (model.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res.ID = s.newID()
	s.results[res.ID] = res
	return res, nil
}

func (s *MemoryStore) UpdateResult(res model.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.results[res.ID]; !ok {
		return errors.New("result not found")
	}
	s.results[res.ID] = res
	return nil
}

func (s *MemoryStore) DeleteResult(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.results[id]; !ok {
		return errors.New("result not found")
	}
	delete(s.results, id)
	return nil
}

func (s *MemoryStore) ListStaff() []model.StaffMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	staff := make([]model.StaffMember, 0, len(s.staff))
	for _, st := range s.staff {
		staff = append(staff, st)
	}
	sort.Slice(staff, func(i, j int) bool {
		if staff[i].Category != staff[j].Category {
			return staff[i].Category < staff[j].Category
		}
		if staff[i].SortOrder != staff[j].SortOrder {
			return staff[i].SortOrder < staff[j].SortOrder
		}
		return staff[i].Name < staff[j].Name
	})
	return staff
}

func (s *MemoryStore) GetStaff(id int64) (model.StaffMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.staff[id]
	return st, ok
}

func (s *MemoryStore) CreateStaff(st model.StaffMember) (model.StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.ID = s.newID()
	s.staff[st.ID] = st
	return st, nil
}

func (s *MemoryStore) UpdateStaff(st model.StaffMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staff[st.ID]; !ok {
		return errors.New("staff member not found")
	}
	s.staff[st.ID] = st
	return nil
}

func (s *MemoryStore) DeleteStaff(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staff[id]; !ok {
		return errors.New("staff member not found")
	}
	delete(s.staff, id)
	return nil
}

func (s *MemoryStore) GetClubInfo() (model.ClubInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.clubInfo == nil {
		return model.ClubInfo{}, false
	}
	return *s.clubInfo, true
}

func (s *MemoryStore) SaveClubInfo(info model.ClubInfo) (model.ClubInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clubInfo == nil {
		info.ID = s.newID()
	} else {
		info.ID = s.clubInfo.ID
	}
	s.clubInfo = &info
	return info, nil
}

func (s *MemoryStore) Counts() (players, fixtures, results int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players), len(s.fixtures), len(s.results)
}
