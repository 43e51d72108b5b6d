package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"porthmadog-rfc/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

type SQLiteOptions struct {
	MigrationsDir string
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(path string, opts SQLiteOptions) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	migrationsDir := strings.TrimSpace(opts.MigrationsDir)
	if migrationsDir == "" {
		migrationsDir = "migrations/sqlite"
	}
	if err := applyMigrations(db, migrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetAdminByUsername(username string) (model.AdminUser, bool) {
	var u model.AdminUser
	err := s.db.QueryRow(`SELECT id, username, password_hash FROM admin_users WHERE username = ? LIMIT 1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		return model.AdminUser{}, false
	}
	return u, true
}

func (s *SQLiteStore) UpsertAdmin(user model.AdminUser) (model.AdminUser, error) {
	if strings.TrimSpace(user.Username) == "" {
		return model.AdminUser{}, errors.New("username is required")
	}
	_, err := s.db.Exec(`INSERT INTO admin_users (username, password_hash) VALUES (?,?)
		ON CONFLICT(username) DO UPDATE SET password_hash = excluded.password_hash`,
		user.Username, user.PasswordHash,
	)
	if err != nil {
		return model.AdminUser{}, err
	}
	if err := s.db.QueryRow(`SELECT id FROM admin_users WHERE username = ?`, user.Username).Scan(&user.ID); err != nil {
		return model.AdminUser{}, err
	}
	return user, nil
}

func (s *SQLiteStore) ListPlayers() []model.Player {
	rows, err := s.db.Query(`SELECT id, name, position, squad_number, age, bio, photo_path FROM players
		ORDER BY squad_number IS NULL, squad_number ASC, name ASC`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	players := []model.Player{}
	for rows.Next() {
		p, err := scanPlayerRow(rows)
		if err != nil {
			continue
		}
		players = append(players, p)
	}
	return players
}

func (s *SQLiteStore) GetPlayer(id int64) (model.Player, bool) {
	row := s.db.QueryRow(`SELECT id, name, position, squad_number, age, bio, photo_path FROM players WHERE id = ?`, id)
	p, err := scanPlayerRow(row)
	if err != nil {
		return model.Player{}, false
	}
	return p, true
}

func (s *SQLiteStore) CreatePlayer(p model.Player) (model.Player, error) {
	res, err := s.db.Exec(`INSERT INTO players (name, position, squad_number, age, bio, photo_path) VALUES (?,?,?,?,?,?)`,
		p.Name, p.Position, nullableInt(p.SquadNumber), nullableInt(p.Age), p.Bio, nullableString(p.PhotoPath),
	)
	if err != nil {
		return model.Player{}, err
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return model.Player{}, err
	}
	return p, nil
}

func (s *SQLiteStore) UpdatePlayer(p model.Player) error {
	res, err := s.db.Exec(`UPDATE players SET name = ?, position = ?, squad_number = ?, age = ?, bio = ?, photo_path = ? WHERE id = ?`,
		p.Name, p.Position, nullableInt(p.SquadNumber), nullableInt(p.Age), p.Bio, nullableString(p.PhotoPath), p.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "player not found")
}

func (s *SQLiteStore) DeletePlayer(id int64) error {
	res, err := s.db.Exec(`DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "player not found")
}

func (s *SQLiteStore) ListStatsForPlayer(playerID int64) []model.PlayerSeasonStat {
	rows, err := s.db.Query(`SELECT id, player_id, season, appearances, tries, points FROM player_stats
		WHERE player_id = ? ORDER BY season DESC`, playerID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	stats := []model.PlayerSeasonStat{}
	for rows.Next() {
		var st model.PlayerSeasonStat
		if err := rows.Scan(&st.ID, &st.PlayerID, &st.Season, &st.Appearances, &st.Tries, &st.Points); err != nil {
			continue
		}
		stats = append(stats, st)
	}
	return stats
}

func (s *SQLiteStore) SaveStat(stat model.PlayerSeasonStat) (model.PlayerSeasonStat, error) {
	if strings.TrimSpace(stat.Season) == "" {
		return model.PlayerSeasonStat{}, errors.New("season is required")
	}
	_, err := s.db.Exec(`INSERT INTO player_stats (player_id, season, appearances, tries, points) VALUES (?,?,?,?,?)
		ON CONFLICT(player_id, season) DO UPDATE SET appearances = excluded.appearances, tries = excluded.tries, points = excluded.points`,
		stat.PlayerID, stat.Season, stat.Appearances, stat.Tries, stat.Points,
	)
	if err != nil {
		return model.PlayerSeasonStat{}, err
	}
	if err := s.db.QueryRow(`SELECT id FROM player_stats WHERE player_id = ? AND season = ?`,
		stat.PlayerID, stat.Season).Scan(&stat.ID); err != nil {
		return model.PlayerSeasonStat{}, err
	}
	return stat, nil
}

func (s *SQLiteStore) DeleteStat(id int64) error {
	res, err := s.db.Exec(`DELETE FROM player_stats WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "stat not found")
}

func (s *SQLiteStore) ListFixtures() []model.Fixture {
	return s.queryFixtures(`SELECT id, match_date, opponent, location, competition FROM fixtures ORDER BY match_date ASC`)
}

func (s *SQLiteStore) ListUpcomingFixtures(from time.Time) []model.Fixture {
	return s.queryFixtures(`SELECT id, match_date, opponent, location, competition FROM fixtures
		WHERE match_date >= ? ORDER BY match_date ASC`, timeValueString(from))
}

func (s *SQLiteStore) NextFixture(from time.Time) (model.Fixture, bool) {
	row := s.db.QueryRow(`SELECT id, match_date, opponent, location, competition FROM fixtures
		WHERE match_date >= ? ORDER BY match_date ASC LIMIT 1`, timeValueString(from))
	f, err := scanFixtureRow(row)
	if err != nil {
		return model.Fixture{}, false
	}
	return f, true
}

func (s *SQLiteStore) queryFixtures(query string, args ...any) []model.Fixture {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil
	}
	defer rows.Close()

	fixtures := []model.Fixture{}
	for rows.Next() {
		f, err := scanFixtureRow(rows)
		if err != nil {
			continue
		}
		fixtures = append(fixtures, f)
	}
	return fixtures
}

func (s *SQLiteStore) GetFixture(id int64) (model.Fixture, bool) {
	row := s.db.QueryRow(`SELECT id, match_date, opponent, location, competition FROM fixtures WHERE id = ?`, id)
	f, err := scanFixtureRow(row)
	if err != nil {
		return model.Fixture{}, false
	}
	return f, true
}

func (s *SQLiteStore) CreateFixture(f model.Fixture) (model.Fixture, error) {
	res, err := s.db.Exec(`INSERT INTO fixtures (match_date, opponent, location, competition) VALUES (?,?,?,?)`,
		timeValueString(f.MatchDate), f.Opponent, string(f.Venue), f.Competition,
	)
	if err != nil {
		return model.Fixture{}, err
	}
	f.ID, err = res.LastInsertId()
	if err != nil {
		return model.Fixture{}, err
	}
	return f, nil
}

func (s *SQLiteStore) UpdateFixture(f model.Fixture) error {
	res, err := s.db.Exec(`UPDATE fixtures SET match_date = ?, opponent = ?, location = ?, competition = ? WHERE id = ?`,
		timeValueString(f.MatchDate), f.Opponent, string(f.Venue), f.Competition, f.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "fixture not found")
}

func (s *SQLiteStore) DeleteFixture(id int64) error {
	res, err := s.db.Exec(`DELETE FROM fixtures WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "fixture not found")
}

func (s *SQLiteStore) ListResults() []model.Result {
	rows, err := s.db.Query(`SELECT id, match_date, opponent, our_score, opponent_score, location, competition, match_report, motm
		FROM results ORDER BY match_date DESC`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	results := []model.Result{}
	for rows.Next() {
		res, err := scanResultRow(rows)
		if err != nil {
			continue
		}
		results = append(results, res)
	}
	return results
}

func (s *SQLiteStore) LatestResult() (model.Result, bool) {
	row := s.db.QueryRow(`SELECT id, match_date, opponent, our_score, opponent_score, location, competition, match_report, motm
		FROM results ORDER BY match_date DESC LIMIT 1`)
	res, err := scanResultRow(row)
	if err != nil {
		return model.Result{}, false
	}
	return res, true
}

func (s *SQLiteStore) GetResult(id int64) (model.Result, bool) {
	row := s.db.QueryRow(`SELECT id, match_date, opponent, our_score, opponent_score, location, competition, match_report, motm
		FROM results WHERE id = ?`, id)
	res, err := scanResultRow(row)
	if err != nil {
		return model.Result{}, false
	}
	return res, true
}

func (s *SQLiteStore) CreateResult(result model.Result) (model.Result, error) {
	res, err := s.db.Exec(`INSERT INTO results (match_date, opponent, our_score, opponent_score, location, competition, match_report, motm)
		VALUES (?,?,?,?,?,?,?,?)`,
		timeValueString(result.MatchDate), result.Opponent, result.OurScore, result.OpponentScore,
		string(result.Venue), result.Competition, nullableString(result.MatchReport), nullableString(result.ManOfTheMatch),
	)
	if err != nil {
		return model.Result{}, err
	}
	result.ID, err = res.LastInsertId()
	if err != nil {
		return model.Result{}, err
	}
	return result, nil
}

func (s *SQLiteStore) UpdateResult(result model.Result) error {
	res, err := s.db.Exec(`UPDATE results SET match_date = ?, opponent = ?, our_score = ?, opponent_score = ?,
		location = ?, competition = ?, match_report = ?, motm = ? WHERE id = ?`,
		timeValueString(result.MatchDate), result.Opponent, result.OurScore, result.OpponentScore,
		string(result.Venue), result.Competition, nullableString(result.MatchReport), nullableString(result.ManOfTheMatch), result.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "result not found")
}

func (s *SQLiteStore) DeleteResult(id int64) error {
	res, err := s.db.Exec(`DELETE FROM results WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "result not found")
}

func (s *SQLiteStore) ListStaff() []model.StaffMember {
	rows, err := s.db.Query(`SELECT id, name, role, category, bio, sort_order, photo_path FROM staff
		ORDER BY category ASC, sort_order ASC, name ASC`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	staff := []model.StaffMember{}
	for rows.Next() {
		st, err := scanStaffRow(rows)
		if err != nil {
			continue
		}
		staff = append(staff, st)
	}
	return staff
}

func (s *SQLiteStore) GetStaff(id int64) (model.StaffMember, bool) {
	row := s.db.QueryRow(`SELECT id, name, role, category, bio, sort_order, photo_path FROM staff WHERE id = ?`, id)
	st, err := scanStaffRow(row)
	if err != nil {
		return model.StaffMember{}, false
	}
	return st, true
}

func (s *SQLiteStore) CreateStaff(st model.StaffMember) (model.StaffMember, error) {
	res, err := s.db.Exec(`INSERT INTO staff (name, role, category, bio, sort_order, photo_path) VALUES (?,?,?,?,?,?)`,
		st.Name, st.Role, string(st.Category), st.Bio, st.SortOrder, nullableString(st.PhotoPath),
	)
	if err != nil {
		return model.StaffMember{}, err
	}
	st.ID, err = res.LastInsertId()
	if err != nil {
		return model.StaffMember{}, err
	}
	return st, nil
}

func (s *SQLiteStore) UpdateStaff(st model.StaffMember) error {
	res, err := s.db.Exec(`UPDATE staff SET name = ?, role = ?, category = ?, bio = ?, sort_order = ?, photo_path = ? WHERE id = ?`,
		st.Name, st.Role, string(st.Category), st.Bio, st.SortOrder, nullableString(st.PhotoPath), st.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "staff member not found")
}

func (s *SQLiteStore) DeleteStaff(id int64) error {
	res, err := s.db.Exec(`DELETE FROM staff WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "staff member not found")
}

func (s *SQLiteStore) GetClubInfo() (model.ClubInfo, bool) {
	row := s.db.QueryRow(`SELECT id, contact_email, contact_phone, contact_address, social_facebook, social_twitter,
		social_instagram, founded_year, history_content, anniversary_message FROM club_info LIMIT 1`)
	info, err := scanClubInfoRow(row)
	if err != nil {
		return model.ClubInfo{}, false
	}
	return info, true
}

func (s *SQLiteStore) SaveClubInfo(info model.ClubInfo) (model.ClubInfo, error) {
	existing, ok := s.GetClubInfo()
	if ok {
		info.ID = existing.ID
		_, err := s.db.Exec(`UPDATE club_info SET contact_email = ?, contact_phone = ?, contact_address = ?,
			social_facebook = ?, social_twitter = ?, social_instagram = ?, founded_year = ?,
			history_content = ?, anniversary_message = ? WHERE id = ?`,
			nullableString(info.ContactEmail), nullableString(info.ContactPhone), nullableString(info.ContactAddress),
			nullableString(info.SocialFacebook), nullableString(info.SocialTwitter), nullableString(info.SocialInstagram),
			info.FoundedYear, string(info.HistoryContent), string(info.AnniversaryMessage), info.ID,
		)
		if err != nil {
			return model.ClubInfo{}, err
		}
		return info, nil
	}
	res, err := s.db.Exec(`INSERT INTO club_info (contact_email, contact_phone, contact_address, social_facebook,
		social_twitter, social_instagram, founded_year, history_content, anniversary_message) VALUES (?,?,?,?,?,?,?,?,?)`,
		nullableString(info.ContactEmail), nullableString(info.ContactPhone), nullableString(info.ContactAddress),
		nullableString(info.SocialFacebook), nullableString(info.SocialTwitter), nullableString(info.SocialInstagram),
		info.FoundedYear, string(info.HistoryContent), string(info.AnniversaryMessage),
	)
	if err != nil {
		return model.ClubInfo{}, err
	}
	info.ID, err = res.LastInsertId()
	if err != nil {
		return model.ClubInfo{}, err
	}
	return info, nil
}

func (s *SQLiteStore) Counts() (players, fixtures, results int) {
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM players`).Scan(&players)
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM fixtures`).Scan(&fixtures)
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM results`).Scan(&results)
	return players, fixtures, results
}

// Row scanning helpers shared by the query paths. The scanner interface
// covers both *sql.Row and *sql.Rows.

type rowScanner interface{ Scan(dest ...any) error }

func scanPlayerRow(scanner rowScanner) (model.Player, error) {
	var p model.Player
	var squadNumber, age sql.NullInt64
	var photoPath sql.NullString
	if err := scanner.Scan(&p.ID, &p.Name, &p.Position, &squadNumber, &age, &p.Bio, &photoPath); err != nil {
		return model.Player{}, err
	}
	p.SquadNumber = int(squadNumber.Int64)
	p.Age = int(age.Int64)
	p.PhotoPath = photoPath.String
	return p, nil
}

func scanFixtureRow(scanner rowScanner) (model.Fixture, error) {
	var f model.Fixture
	var matchDate sql.NullString
	var venue string
	if err := scanner.Scan(&f.ID, &matchDate, &f.Opponent, &venue, &f.Competition); err != nil {
		return model.Fixture{}, err
	}
	f.Venue = model.Venue(venue)
	if matchDate.Valid {
		if parsed, ok := parseTimeString(matchDate.String); ok {
			f.MatchDate = parsed
		}
	}
	return f, nil
}

func scanResultRow(scanner rowScanner) (model.Result, error) {
	var res model.Result
	var matchDate sql.NullString
	var venue string
	var report, motm sql.NullString
	if err := scanner.Scan(&res.ID, &matchDate, &res.Opponent, &res.OurScore, &res.OpponentScore, &venue, &res.Competition, &report, &motm); err != nil {
		return model.Result{}, err
	}
	res.Venue = model.Venue(venue)
	res.MatchReport = report.String
	res.ManOfTheMatch = motm.String
	if matchDate.Valid {
		if parsed, ok := parseTimeString(matchDate.String); ok {
			res.MatchDate = parsed
		}
	}
	return res, nil
}

func scanStaffRow(scanner rowScanner) (model.StaffMember, error) {
	var st model.StaffMember
	var category string
	var photoPath sql.NullString
	if err := scanner.Scan(&st.ID, &st.Name, &st.Role, &category, &st.Bio, &st.SortOrder, &photoPath); err != nil {
		return model.StaffMember{}, err
	}
	st.Category = model.StaffCategory(category)
	st.PhotoPath = photoPath.String
	return st, nil
}

func scanClubInfoRow(scanner rowScanner) (model.ClubInfo, error) {
	var info model.ClubInfo
	var email, phone, address, facebook, twitter, instagram sql.NullString
	var history, anniversary sql.NullString
	if err := scanner.Scan(&info.ID, &email, &phone, &address, &facebook, &twitter, &instagram,
		&info.FoundedYear, &history, &anniversary); err != nil {
		return model.ClubInfo{}, err
	}
	info.ContactEmail = email.String
	info.ContactPhone = phone.String
	info.ContactAddress = address.String
	info.SocialFacebook = facebook.String
	info.SocialTwitter = twitter.String
	info.SocialInstagram = instagram.String
	info.HistoryContent = model.RichText(history.String)
	info.AnniversaryMessage = model.RichText(anniversary.String)
	return info, nil
}

func requireRow(res sql.Result, notFound string) error {
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New(notFound)
	}
	return nil
}

func nullableInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func nullableString(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func timeValueString(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}
