package model

import "time"

// DateLayout is the on-disk and on-screen date format. The schema
// stores dates as YYYY-MM-DD text, which also sorts chronologically.
const DateLayout = "2006-01-02"

type User struct {
	ID       int64
	Name     string
	Email    string
	City     string
	Timezone string
}

type Tweet struct {
	ID       int64
	WriterID int64
	Date     time.Time
	Text     string
	ReplyTo  *int64
}

type Retweet struct {
	UserID  int64
	TweetID int64
	Date    time.Time
}

type Follow struct {
	FollowerID int64
	FolloweeID int64
	StartDate  time.Time
}

// ActivityKind tags an Activity as an original tweet or a retweet.
type ActivityKind int

const (
	KindTweet ActivityKind = iota
	KindRetweet
)

func (k ActivityKind) String() string {
	if k == KindRetweet {
		return "Retweet"
	}
	return "Tweet"
}

// Activity is one row of a chronological feed: a tweet by a followee,
// or a followee's retweet of someone else's tweet. For retweets Date
// is the retweet date and OriginID/OriginName identify the original
// author.
type Activity struct {
	Kind       ActivityKind
	TweetID    int64
	AuthorID   int64
	AuthorName string
	Date       time.Time
	Text       string
	OriginID   int64
	OriginName string
}

// TweetStats carries the per-tweet counters shown by the information
// panel.
type TweetStats struct {
	Replies  int
	Retweets int
}

// UserHit is a user-search or follower-list row.
type UserHit struct {
	ID   int64
	Name string
}

// Profile is the drill-in view of a single user.
type Profile struct {
	User           UserHit
	TweetCount     int
	FollowingCount int
	FollowerCount  int
	RecentTweets   []string
}
