package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/chirpnet/chirp/internal/model"
	"github.com/chirpnet/chirp/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "enable foreign keys")
	}
	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// migrations is an ordered list of SQL migrations.
// Each migration runs exactly once, tracked by schema_version table.
//
// Retweets and follows deliberately carry no uniqueness constraint:
// duplicates are rejected by existence checks before insert, which is
// the contract the rest of the system depends on.
var migrations = []string{
	// Migration 1: Initial schema
	`
CREATE TABLE IF NOT EXISTS users (
	usr INTEGER PRIMARY KEY,
	pwd TEXT NOT NULL,
	name TEXT NOT NULL,
	email TEXT,
	city TEXT,
	timezone TEXT
);

CREATE TABLE IF NOT EXISTS tweets (
	tid INTEGER PRIMARY KEY,
	writer INTEGER NOT NULL,
	tdate TEXT NOT NULL,
	text TEXT NOT NULL,
	replyto INTEGER,
	FOREIGN KEY(writer) REFERENCES users(usr),
	FOREIGN KEY(replyto) REFERENCES tweets(tid)
);
CREATE INDEX IF NOT EXISTS idx_tweets_writer ON tweets(writer);
CREATE INDEX IF NOT EXISTS idx_tweets_tdate ON tweets(tdate DESC);

CREATE TABLE IF NOT EXISTS retweets (
	usr INTEGER NOT NULL,
	tid INTEGER NOT NULL,
	rdate TEXT NOT NULL,
	FOREIGN KEY(usr) REFERENCES users(usr),
	FOREIGN KEY(tid) REFERENCES tweets(tid)
);

CREATE TABLE IF NOT EXISTS follows (
	flwer INTEGER NOT NULL,
	flwee INTEGER NOT NULL,
	start_date TEXT NOT NULL,
	FOREIGN KEY(flwer) REFERENCES users(usr),
	FOREIGN KEY(flwee) REFERENCES users(usr)
);
CREATE INDEX IF NOT EXISTS idx_follows_flwer ON follows(flwer);

CREATE TABLE IF NOT EXISTS hashtags (
	term TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS mentions (
	tid INTEGER NOT NULL,
	term TEXT NOT NULL,
	FOREIGN KEY(tid) REFERENCES tweets(tid),
	FOREIGN KEY(term) REFERENCES hashtags(term)
);
`,
	// Future migrations go here:
	// Migration 2: `ALTER TABLE ...`,
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return errors.Wrap(err, "create schema_version")
	}

	var currentVersion int
	row := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`)
	if err := row.Scan(&currentVersion); err != nil {
		return errors.Wrap(err, "read schema version")
	}

	for i := currentVersion; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return errors.Wrapf(err, "migration %d failed", i+1)
		}
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, i+1); err != nil {
			return errors.Wrapf(err, "record migration %d", i+1)
		}
	}

	return nil
}

// CreateUser allocates the next id as max+1 and inserts in one call.
// Safe only under the single-operator contract; there is no guard
// against a concurrent writer racing the MAX.
func (s *Store) CreateUser(ctx context.Context, user *model.User, password string) (int64, error) {
	var next int64
	row := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(usr), 0) + 1 FROM users`)
	if err := row.Scan(&next); err != nil {
		return 0, err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO users (usr, pwd, name, email, city, timezone)
VALUES (?, ?, ?, ?, ?, ?)
`, next, password, user.Name, nullIfEmpty(user.Email), nullIfEmpty(user.City), nullIfEmpty(user.Timezone))
	if err != nil {
		return 0, err
	}
	user.ID = next
	return next, nil
}

func (s *Store) Authenticate(ctx context.Context, id int64, password string) (model.User, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT usr, name, email, city, timezone
FROM users
WHERE usr = ? AND pwd = ?
`, id, password)
	return scanUser(row)
}

func (s *Store) GetUser(ctx context.Context, id int64) (model.User, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT usr, name, email, city, timezone
FROM users
WHERE usr = ?
`, id)
	return scanUser(row)
}

func (s *Store) CreateTweet(ctx context.Context, tweet *model.Tweet) (int64, error) {
	var next int64
	row := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(tid), 0) + 1 FROM tweets`)
	if err := row.Scan(&next); err != nil {
		return 0, err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO tweets (tid, writer, tdate, text, replyto)
VALUES (?, ?, ?, ?, ?)
`, next, tweet.WriterID, tweet.Date.Format(model.DateLayout), tweet.Text, nullableInt(tweet.ReplyTo))
	if err != nil {
		return 0, err
	}
	tweet.ID = next
	return next, nil
}

func (s *Store) GetTweetStats(ctx context.Context, tweetID int64) (model.TweetStats, error) {
	var stats model.TweetStats
	row := s.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM tweets WHERE replyto = ? AND tid != ?
`, tweetID, tweetID)
	if err := row.Scan(&stats.Replies); err != nil {
		return stats, err
	}
	row = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM retweets WHERE tid = ?`, tweetID)
	if err := row.Scan(&stats.Retweets); err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *Store) TweetTexts(ctx context.Context, writerID int64, limit int) ([]string, error) {
	q := `
SELECT text FROM tweets
WHERE writer = ?
ORDER BY tdate DESC
`
	args := []any{writerID}
	if limit > 0 {
		q += `LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		texts = append(texts, t)
	}
	return texts, rows.Err()
}

// RecentActivity merges followee tweets with followee retweets and
// sorts the result date-descending. Retweet rows sort by retweet
// date. Same-date ordering is whatever the stable sort preserves; no
// secondary key is defined.
func (s *Store) RecentActivity(ctx context.Context, userID int64) ([]model.Activity, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT u.name, t.tdate, t.text, t.tid, u.usr
FROM tweets t
JOIN follows f ON f.flwee = t.writer
JOIN users u ON u.usr = t.writer
WHERE f.flwer = ?
ORDER BY t.tdate DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var acts []model.Activity
	for rows.Next() {
		var a model.Activity
		var date string
		a.Kind = model.KindTweet
		if err := rows.Scan(&a.AuthorName, &date, &a.Text, &a.TweetID, &a.AuthorID); err != nil {
			return nil, err
		}
		if a.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		acts = append(acts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rrows, err := s.db.QueryContext(ctx, `
SELECT u1.name, rt.rdate, t.text, t.tid, u1.usr, u2.name, u2.usr
FROM retweets rt
JOIN tweets t ON t.tid = rt.tid
JOIN follows f ON f.flwee = rt.usr
JOIN users u1 ON u1.usr = rt.usr
JOIN users u2 ON u2.usr = t.writer
WHERE f.flwer = ?
ORDER BY rt.rdate DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rrows.Close()

	for rrows.Next() {
		var a model.Activity
		var date string
		a.Kind = model.KindRetweet
		if err := rrows.Scan(&a.AuthorName, &date, &a.Text, &a.TweetID, &a.AuthorID, &a.OriginName, &a.OriginID); err != nil {
			return nil, err
		}
		if a.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		acts = append(acts, a)
	}
	if err := rrows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(acts, func(i, j int) bool {
		return acts[i].Date.After(acts[j].Date)
	})
	return acts, nil
}

func (s *Store) SearchTweetsByTerm(ctx context.Context, term string) ([]model.Activity, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT u.name, u.usr, t.tdate, t.text, t.tid
FROM tweets t
JOIN mentions m ON m.tid = t.tid
JOIN users u ON u.usr = t.writer
WHERE m.term = ?
`, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTweetRows(rows)
}

func (s *Store) SearchTweetsByText(ctx context.Context, keyword string) ([]model.Activity, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT u.name, u.usr, t.tdate, t.text, t.tid
FROM tweets t
JOIN users u ON u.usr = t.writer
WHERE t.text LIKE ?
`, "%"+keyword+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTweetRows(rows)
}

func (s *Store) CreateRetweet(ctx context.Context, userID, tweetID int64, date time.Time) error {
	var one int
	row := s.db.QueryRowContext(ctx, `
SELECT 1 FROM retweets WHERE usr = ? AND tid = ?
`, userID, tweetID)
	switch err := row.Scan(&one); {
	case err == nil:
		return store.ErrDuplicateRetweet
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO retweets (usr, tid, rdate) VALUES (?, ?, ?)
`, userID, tweetID, date.Format(model.DateLayout))
	return err
}

func (s *Store) CreateFollow(ctx context.Context, followerID, followeeID int64, date time.Time) error {
	var one int
	row := s.db.QueryRowContext(ctx, `
SELECT 1 FROM follows WHERE flwer = ? AND flwee = ?
`, followerID, followeeID)
	switch err := row.Scan(&one); {
	case err == nil:
		return store.ErrDuplicateFollow
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO follows (flwer, flwee, start_date) VALUES (?, ?, ?)
`, followerID, followeeID, date.Format(model.DateLayout))
	return err
}

func (s *Store) Followers(ctx context.Context, userID int64) ([]model.UserHit, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT u.usr, u.name
FROM users u
JOIN follows f ON f.flwer = u.usr
WHERE f.flwee = ?
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUserHits(rows)
}

func (s *Store) GetProfile(ctx context.Context, userID int64) (model.Profile, error) {
	var p model.Profile
	row := s.db.QueryRowContext(ctx, `SELECT usr, name FROM users WHERE usr = ?`, userID)
	if err := row.Scan(&p.User.ID, &p.User.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, store.ErrNotFound
		}
		return p, err
	}
	row = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tweets WHERE writer = ?`, userID)
	if err := row.Scan(&p.TweetCount); err != nil {
		return p, err
	}
	row = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM follows WHERE flwer = ?`, userID)
	if err := row.Scan(&p.FollowingCount); err != nil {
		return p, err
	}
	row = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM follows WHERE flwee = ?`, userID)
	if err := row.Scan(&p.FollowerCount); err != nil {
		return p, err
	}
	recent, err := s.TweetTexts(ctx, userID, 3)
	if err != nil {
		return p, err
	}
	p.RecentTweets = recent
	return p, nil
}

func (s *Store) EnsureHashtag(ctx context.Context, term string) error {
	var one int
	row := s.db.QueryRowContext(ctx, `SELECT 1 FROM hashtags WHERE term = ?`, term)
	switch err := row.Scan(&one); {
	case err == nil:
		return nil
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO hashtags (term) VALUES (?)`, term)
	return err
}

func (s *Store) EnsureMention(ctx context.Context, tweetID int64, term string) error {
	var one int
	row := s.db.QueryRowContext(ctx, `
SELECT 1 FROM mentions WHERE tid = ? AND term = ?
`, tweetID, term)
	switch err := row.Scan(&one); {
	case err == nil:
		return nil
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO mentions (tid, term) VALUES (?, ?)`, tweetID, term)
	return err
}

func (s *Store) CountUsersByName(ctx context.Context, keyword string) (int, error) {
	return s.countUsers(ctx, `SELECT COUNT(*) FROM users WHERE name LIKE ?`, keyword)
}

func (s *Store) CountUsersByCity(ctx context.Context, keyword string) (int, error) {
	return s.countUsers(ctx, `SELECT COUNT(*) FROM users WHERE city LIKE ?`, keyword)
}

func (s *Store) countUsers(ctx context.Context, query, keyword string) (int, error) {
	var n int
	row := s.db.QueryRowContext(ctx, query, "%"+keyword+"%")
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) SearchUsersByName(ctx context.Context, keyword string, page int) ([]model.UserHit, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT usr, name
FROM users
WHERE name LIKE ?
ORDER BY LENGTH(name), name
LIMIT ? OFFSET ?
`, "%"+keyword+"%", store.PageSize, (page-1)*store.PageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUserHits(rows)
}

func (s *Store) SearchUsersByCity(ctx context.Context, keyword string, page int) ([]model.UserHit, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT usr, name
FROM users
WHERE city LIKE ?
ORDER BY LENGTH(city), city
LIMIT ? OFFSET ?
`, "%"+keyword+"%", store.PageSize, (page-1)*store.PageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUserHits(rows)
}

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var email, city, tz sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &email, &city, &tz); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, store.ErrNotFound
		}
		return model.User{}, err
	}
	u.Email = email.String
	u.City = city.String
	u.Timezone = tz.String
	return u, nil
}

func collectTweetRows(rows *sql.Rows) ([]model.Activity, error) {
	var acts []model.Activity
	for rows.Next() {
		var a model.Activity
		var date string
		a.Kind = model.KindTweet
		if err := rows.Scan(&a.AuthorName, &a.AuthorID, &date, &a.Text, &a.TweetID); err != nil {
			return nil, err
		}
		var err error
		if a.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		acts = append(acts, a)
	}
	return acts, rows.Err()
}

func collectUserHits(rows *sql.Rows) ([]model.UserHit, error) {
	var hits []model.UserHit
	for rows.Next() {
		var h model.UserHit
		if err := rows.Scan(&h.ID, &h.Name); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse date %q", s)
	}
	return t, nil
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
