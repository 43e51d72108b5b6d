package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"porthmadog-rfc/internal/model"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	db *sql.DB
}

type PostgresOptions struct {
	MigrationsDir string
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(dsn string, opts PostgresOptions) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	migrationsDir := strings.TrimSpace(opts.MigrationsDir)
	if migrationsDir == "" {
		migrationsDir = "migrations/postgres"
	}
	if err := applyMigrations(db, migrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) GetAdminByUsername(username string) (model.AdminUser, bool) {
	var u model.AdminUser
	err := s.db.QueryRow(`SELECT id, username, password_hash FROM admin_users WHERE username = $1 LIMIT 1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		return model.AdminUser{}, false
	}
	return u, true
}

func (s *PostgresStore) UpsertAdmin(user model.AdminUser) (model.AdminUser, error) {
	if strings.TrimSpace(user.Username) == "" {
		return model.AdminUser{}, errors.New("username is required")
	}
	err := s.db.QueryRow(`INSERT INTO admin_users (username, password_hash) VALUES ($1,$2)
		ON CONFLICT (username) DO UPDATE SET password_hash = excluded.password_hash
		RETURNING id`,
		user.Username, user.PasswordHash,
	).Scan(&user.ID)
	if err != nil {
		return model.AdminUser{}, err
	}
	return user, nil
}

func (s *PostgresStore) ListPlayers() []model.Player {
	rows, err := s.db.Query(`SELECT id, name, position, squad_number, age, bio, photo_path FROM players
		ORDER BY squad_number ASC NULLS LAST, name ASC`)
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

func (s *PostgresStore) GetPlayer(id int64) (model.Player, bool) {
	row := s.db.QueryRow(`SELECT id, name, position, squad_number, age, bio, photo_path FROM players WHERE id = $1`, id)
	p, err := scanPlayerRow(row)
	if err != nil {
		return model.Player{}, false
	}
	return p, true
}

func (s *PostgresStore) CreatePlayer(p model.Player) (model.Player, error) {
	err := s.db.QueryRow(`INSERT INTO players (name, position, squad_number, age, bio, photo_path)
		VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		p.Name, p.Position, nullableInt(p.SquadNumber), nullableInt(p.Age), p.Bio, nullableString(p.PhotoPath),
	).Scan(&p.ID)
	if err != nil {
		return model.Player{}, err
	}
	return p, nil
}

func (s *PostgresStore) UpdatePlayer(p model.Player) error {
	res, err := s.db.Exec(`UPDATE players SET name = $1, position = $2, squad_number = $3, age = $4, bio = $5, photo_path = $6 WHERE id = $7`,
		p.Name, p.Position, nullableInt(p.SquadNumber), nullableInt(p.Age), p.Bio, nullableString(p.PhotoPath), p.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "player not found")
}

func (s *PostgresStore) DeletePlayer(id int64) error {
	res, err := s.db.Exec(`DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "player not found")
}

func (s *PostgresStore) ListStatsForPlayer(playerID int64) []model.PlayerSeasonStat {
	rows, err := s.db.Query(`SELECT id, player_id, season, appearances, tries, points FROM player_stats
		WHERE player_id = $1 ORDER BY season DESC`, playerID)
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

func (s *PostgresStore) SaveStat(stat model.PlayerSeasonStat) (model.PlayerSeasonStat, error) {
	if strings.TrimSpace(stat.Season) == "" {
		return model.PlayerSeasonStat{}, errors.New("season is required")
	}
	err := s.db.QueryRow(`INSERT INTO player_stats (player_id, season, appearances, tries, points)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (player_id, season) DO UPDATE SET appearances = excluded.appearances, tries = excluded.tries, points = excluded.points
		RETURNING id`,
		stat.PlayerID, stat.Season, stat.Appearances, stat.Tries, stat.Points,
	).Scan(&stat.ID)
	if err != nil {
		return model.PlayerSeasonStat{}, err
	}
	return stat, nil
}

func (s *PostgresStore) DeleteStat(id int64) error {
	res, err := s.db.Exec(`DELETE FROM player_stats WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "stat not found")
}

func (s *PostgresStore) ListFixtures() []model.Fixture {
	return s.queryFixtures(`SELECT id, match_date, opponent, location, competition FROM fixtures ORDER BY match_date ASC`)
}

func (s *PostgresStore) ListUpcomingFixtures(from time.Time) []model.Fixture {
	return s.queryFixtures(`SELECT id, match_date, opponent, location, competition FROM fixtures
		WHERE match_date >= $1 ORDER BY match_date ASC`, from.UTC())
}

func (s *PostgresStore) NextFixture(from time.Time) (model.Fixture, bool) {
	row := s.db.QueryRow(`SELECT id, match_date, opponent, location, competition FROM fixtures
		WHERE match_date >= $1 ORDER BY match_date ASC LIMIT 1`, from.UTC())
	f, err := scanPGFixtureRow(row)
	if err != nil {
		return model.Fixture{}, false
	}
	return f, true
}

func (s *PostgresStore) queryFixtures(query string, args ...any) []model.Fixture {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil
	}
	defer rows.Close()

	fixtures := []model.Fixture{}
	for rows.Next() {
		f, err := scanPGFixtureRow(rows)
		if err != nil {
			continue
		}
		fixtures = append(fixtures, f)
	}
	return fixtures
}

func (s *PostgresStore) GetFixture(id int64) (model.Fixture, bool) {
	row := s.db.QueryRow(`SELECT id, match_date, opponent, location, competition FROM fixtures WHERE id = $1`, id)
	f, err := scanPGFixtureRow(row)
	if err != nil {
		return model.Fixture{}, false
	}
	return f, true
}

func (s *PostgresStore) CreateFixture(f model.Fixture) (model.Fixture, error) {
	err := s.db.QueryRow(`INSERT INTO fixtures (match_date, opponent, location, competition)
		VALUES ($1,$2,$3,$4) RETURNING id`,
		f.MatchDate.UTC(), f.Opponent, string(f.Venue), f.Competition,
	).Scan(&f.ID)
	if err != nil {
		return model.Fixture{}, err
	}
	return f, nil
}

func (s *PostgresStore) UpdateFixture(f model.Fixture) error {
	res, err := s.db.Exec(`UPDATE fixtures SET match_date = $1, opponent = $2, location = $3, competition = $4 WHERE id = $5`,
		f.MatchDate.UTC(), f.Opponent, string(f.Venue), f.Competition, f.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "fixture not found")
}

func (s *PostgresStore) DeleteFixture(id int64) error {
	res, err := s.db.Exec(`DELETE FROM fixtures WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "fixture not found")
}

func (s *PostgresStore) ListResults() []model.Result {
	rows, err := s.db.Query(`SELECT id, match_date, opponent, our_score, opponent_score, location, competition, match_report, motm
		FROM results ORDER BY match_date DESC`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	results := []model.Result{}
	for rows.Next() {
		res, err := scanPGResultRow(rows)
		if err != nil {
			continue
		}
		results = append(results, res)
	}
	return results
}

func (s *PostgresStore) LatestResult() (model.Result, bool) {
	row := s.db.QueryRow(`SELECT id, match_date, opponent, our_score, opponent_score, location, competition, match_report, motm
		FROM results ORDER BY match_date DESC LIMIT 1`)
	res, err := scanPGResultRow(row)
	if err != nil {
		return model.Result{}, false
	}
	return res, true
}

func (s *PostgresStore) GetResult(id int64) (model.Result, bool) {
	row := s.db.QueryRow(`SELECT id, match_date, opponent, our_score, opponent_score, location, competition, match_report, motm
		FROM results WHERE id = $1`, id)
	res, err := scanPGResultRow(row)
	if err != nil {
		return model.Result{}, false
	}
	return res, true
}

func (s *PostgresStore) CreateResult(result model.Result) (model.Result, error) {
	err := s.db.QueryRow(`INSERT INTO results (match_date, opponent, our_score, opponent_score, location, competition, match_report, motm)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`,
		result.MatchDate.UTC(), result.Opponent, result.OurScore, result.OpponentScore,
		string(result.Venue), result.Competition, nullableString(result.MatchReport), nullableString(result.ManOfTheMatch),
	).Scan(&result.ID)
	if err != nil {
		return model.Result{}, err
	}
	return result, nil
}

func (s *PostgresStore) UpdateResult(result model.Result) error {
	res, err := s.db.Exec(`UPDATE results SET match_date = $1, opponent = $2, our_score = $3, opponent_score = $4,
		location = $5, competition = $6, match_report = $7, motm = $8 WHERE id = $9`,
		result.MatchDate.UTC(), result.Opponent, result.OurScore, result.OpponentScore,
		string(result.Venue), result.Competition, nullableString(result.MatchReport), nullableString(result.ManOfTheMatch), result.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "result not found")
}

func (s *PostgresStore) DeleteResult(id int64) error {
	res, err := s.db.Exec(`DELETE FROM results WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "result not found")
}

func (s *PostgresStore) ListStaff() []model.StaffMember {
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

func (s *PostgresStore) GetStaff(id int64) (model.StaffMember, bool) {
	row := s.db.QueryRow(`SELECT id, name, role, category, bio, sort_order, photo_path FROM staff WHERE id = $1`, id)
	st, err := scanStaffRow(row)
	if err != nil {
		return model.StaffMember{}, false
	}
	return st, true
}

func (s *PostgresStore) CreateStaff(st model.StaffMember) (model.StaffMember, error) {
	err := s.db.QueryRow(`INSERT INTO staff (name, role, category, bio, sort_order, photo_path)
		VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		st.Name, st.Role, string(st.Category), st.Bio, st.SortOrder, nullableString(st.PhotoPath),
	).Scan(&st.ID)
	if err != nil {
		return model.StaffMember{}, err
	}
	return st, nil
}

func (s *PostgresStore) UpdateStaff(st model.StaffMember) error {
	res, err := s.db.Exec(`UPDATE staff SET name = $1, role = $2, category = $3, bio = $4, sort_order = $5, photo_path = $6 WHERE id = $7`,
		st.Name, st.Role, string(st.Category), st.Bio, st.SortOrder, nullableString(st.PhotoPath), st.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "staff member not found")
}

func (s *PostgresStore) DeleteStaff(id int64) error {
	res, err := s.db.Exec(`DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "staff member not found")
}

func (s *PostgresStore) GetClubInfo() (model.ClubInfo, bool) {
	row := s.db.QueryRow(`SELECT id, contact_email, contact_phone, contact_address, social_facebook, social_twitter,
		social_instagram, founded_year, history_content, anniversary_message FROM club_info LIMIT 1`)
	info, err := scanClubInfoRow(row)
	if err != nil {
		return model.ClubInfo{}, false
	}
	return info, true
}

func (s *PostgresStore) SaveClubInfo(info model.ClubInfo) (model.ClubInfo, error) {
	existing, ok := s.GetClubInfo()
	if ok {
		info.ID = existing.ID
		_, err := s.db.Exec(`UPDATE club_info SET contact_email = $1, contact_phone = $2, contact_address = $3,
			social_facebook = $4, social_twitter = $5, social_instagram = $6, founded_year = $7,
			history_content = $8, anniversary_message = $9 WHERE id = $10`,
			nullableString(info.ContactEmail), nullableString(info.ContactPhone), nullableString(info.ContactAddress),
			nullableString(info.SocialFacebook), nullableString(info.SocialTwitter), nullableString(info.SocialInstagram),
			info.FoundedYear, string(info.HistoryContent), string(info.AnniversaryMessage), info.ID,
		)
		if err != nil {
			return model.ClubInfo{}, err
		}
		return info, nil
	}
	err := s.db.QueryRow(`INSERT INTO club_info (contact_email, contact_phone, contact_address, social_facebook,
		social_twitter, social_instagram, founded_year, history_content, anniversary_message)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id`,
		nullableString(info.ContactEmail), nullableString(info.ContactPhone), nullableString(info.ContactAddress),
		nullableString(info.SocialFacebook), nullableString(info.SocialTwitter), nullableString(info.SocialInstagram),
		info.FoundedYear, string(info.HistoryContent), string(info.AnniversaryMessage),
	).Scan(&info.ID)
	if err != nil {
		return model.ClubInfo{}, err
	}
	return info, nil
}

func (s *PostgresStore) Counts() (players, fixtures, results int) {
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM players`).Scan(&players)
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM fixtures`).Scan(&fixtures)
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM results`).Scan(&results)
	return players, fixtures, results
}

// Postgres returns timestamptz columns as time.Time, so fixtures and
// results need their own scanners.

func scanPGFixtureRow(scanner rowScanner) (model.Fixture, error) {
	var f model.Fixture
	var venue string
	if err := scanner.Scan(&f.ID, &f.MatchDate, &f.Opponent, &venue, &f.Competition); err != nil {
		return model.Fixture{}, err
	}
	f.Venue = model.Venue(venue)
	f.MatchDate = f.MatchDate.UTC()
	return f, nil
}

func scanPGResultRow(scanner rowScanner) (model.Result, error) {
	var res model.Result
	var venue string
	var report, motm sql.NullString
	if err := scanner.Scan(&res.ID, &res.MatchDate, &res.Opponent, &res.OurScore, &res.OpponentScore, &venue, &res.Competition, &report, &motm); err != nil {
		return model.Result{}, err
	}
	res.Venue = model.Venue(venue)
	res.MatchDate = res.MatchDate.UTC()
	res.MatchReport = report.String
	res.ManOfTheMatch = motm.String
	return res, nil
}
