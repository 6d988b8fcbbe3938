package store

import (
	"context"
	"errors"
	"time"

	"github.com/chirpnet/chirp/internal/model"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateRetweet = errors.New("duplicate retweet")
	ErrDuplicateFollow  = errors.New("duplicate follow")
)

// PageSize is the fixed page length used by every paginated view.
const PageSize = 5

type Store interface {
	UserStore
	TweetStore
	RetweetStore
	FollowStore
	HashtagStore
	SearchStore
	Close() error
}

type UserStore interface {
	// CreateUser allocates the next user id (max+1, 1 when the table
	// is empty) and inserts the row. Single-writer only; see the id
	// allocation note in DESIGN.md.
	CreateUser(ctx context.Context, user *model.User, password string) (int64, error)
	// Authenticate returns the user whose id and password match
	// exactly, or ErrNotFound.
	Authenticate(ctx context.Context, id int64, password string) (model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
}

type TweetStore interface {
	// CreateTweet allocates the next tweet id the same max+1 way and
	// inserts the row.
	CreateTweet(ctx context.Context, tweet *model.Tweet) (int64, error)
	GetTweetStats(ctx context.Context, tweetID int64) (model.TweetStats, error)
	// TweetTexts returns the texts of a user's tweets, newest first.
	// limit <= 0 means no limit.
	TweetTexts(ctx context.Context, writerID int64, limit int) ([]string, error)
	// RecentActivity returns the tweets and retweets of everyone the
	// user follows, merged and sorted date-descending.
	RecentActivity(ctx context.Context, userID int64) ([]model.Activity, error)
	SearchTweetsByTerm(ctx context.Context, term string) ([]model.Activity, error)
	SearchTweetsByText(ctx context.Context, keyword string) ([]model.Activity, error)
}

type RetweetStore interface {
	// CreateRetweet inserts a retweet row unless one already exists
	// for that user and tweet, in which case it returns
	// ErrDuplicateRetweet.
	CreateRetweet(ctx context.Context, userID, tweetID int64, date time.Time) error
}

type FollowStore interface {
	// CreateFollow inserts a follow edge unless it already exists, in
	// which case it returns ErrDuplicateFollow. Self-follows are
	// rejected by the caller before reaching the store.
	CreateFollow(ctx context.Context, followerID, followeeID int64, date time.Time) error
	Followers(ctx context.Context, userID int64) ([]model.UserHit, error)
	GetProfile(ctx context.Context, userID int64) (model.Profile, error)
}

type HashtagStore interface {
	// EnsureHashtag and EnsureMention insert only when the row is not
	// already present. Each statement commits on its own.
	EnsureHashtag(ctx context.Context, term string) error
	EnsureMention(ctx context.Context, tweetID int64, term string) error
}

type SearchStore interface {
	CountUsersByName(ctx context.Context, keyword string) (int, error)
	CountUsersByCity(ctx context.Context, keyword string) (int, error)
	// SearchUsersByName and SearchUsersByCity page through substring
	// matches ordered by string length then lexicographically, PageSize
	// rows per page (page is 1-based).
	SearchUsersByName(ctx context.Context, keyword string, page int) ([]model.UserHit, error)
	SearchUsersByCity(ctx context.Context, keyword string, page int) ([]model.UserHit, error)
}
