package app

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirpnet/chirp/internal/model"
	"github.com/chirpnet/chirp/internal/store/sqlite"
)

// seedFeed creates the operator, one followee and n tweets by the
// followee dated 2024-01-01 upward, one day apart.
func seedFeed(t *testing.T, st *sqlite.Store, n int) (me, friend model.User) {
	t.Helper()
	me = seedUser(t, st, "Me", "Town")
	friend = seedUser(t, st, "Friend", "Town")
	seedFollow(t, st, me.ID, friend.ID)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		seedTweet(t, st, friend.ID, base.AddDate(0, 0, i).Format(model.DateLayout), fmt.Sprintf("tweet %d", i+1))
	}
	return me, friend
}

func TestRecentActivityEmpty(t *testing.T) {
	st := newTestStore(t)
	me := seedUser(t, st, "Me", "")
	a, out := newTestApp(t, st, "")
	startSession(a, me)

	require.NoError(t, a.recentActivity(context.Background()))

	s := out.String()
	assert.Contains(t, s, "You have no recent activity.")
	assert.NotContains(t, s, "Options:", "empty feed skips the browser")
}

func TestRecentActivityPaging(t *testing.T) {
	st := newTestStore(t)
	me, _ := seedFeed(t, st, 7)
	a, out := newTestApp(t, st, "m\nm\nc\n")
	startSession(a, me)

	require.NoError(t, a.recentActivity(context.Background()))

	s := out.String()
	// Newest first: row 1 is the latest tweet, five rows per page.
	assert.Contains(t, s, "1-Tweet")
	assert.Contains(t, s, "tweet 7")
	assert.Contains(t, s, "5-Tweet")
	assert.Contains(t, s, "6-Tweet")
	assert.Contains(t, s, "7-Tweet")
	assert.NotContains(t, s, "8-Tweet")
	// First page plus one non-empty More page.
	assert.Equal(t, 2, strings.Count(s, "Followee"))
	assert.Equal(t, 1, strings.Count(s, "You have no more recent activity."))

	first := strings.Index(s, "1-Tweet")
	sixth := strings.Index(s, "6-Tweet")
	assert.Less(t, first, sixth)
}

func TestRecentActivityNoMoreRepeats(t *testing.T) {
	st := newTestStore(t)
	me, _ := seedFeed(t, st, 3)
	a, out := newTestApp(t, st, "m\nm\nm\nc\n")
	startSession(a, me)

	require.NoError(t, a.recentActivity(context.Background()))
	assert.Equal(t, 3, strings.Count(out.String(), "You have no more recent activity."))
}

func TestBrowserSelectionOutsideWindow(t *testing.T) {
	st := newTestStore(t)
	me, _ := seedFeed(t, st, 7)
	// Row 6 exists but is beyond the rendered first page, so it is as
	// invalid as non-numeric input.
	a, out := newTestApp(t, st, "i\n6\ni\nabc\nc\n")
	startSession(a, me)

	require.NoError(t, a.recentActivity(context.Background()))

	s := out.String()
	assert.Equal(t, 2, strings.Count(s, "Invalid tweet selection."))
	assert.NotContains(t, s, "Selected tweet for information:")
}

func TestBrowserRetweetRowsRejectSubActions(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	me := seedUser(t, st, "Me", "")
	friend := seedUser(t, st, "Friend", "")
	other := seedUser(t, st, "Other", "")
	seedFollow(t, st, me.ID, friend.ID)
	seedTweet(t, st, friend.ID, "2024-01-01", "own words")
	origin := seedTweet(t, st, other.ID, "2024-01-05", "borrowed words")
	require.NoError(t, st.CreateRetweet(ctx, friend.ID,
		origin, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))

	a, out := newTestApp(t, st, "i\n1\nr\n1\nt\n1\nc\n")
	startSession(a, me)
	require.NoError(t, a.recentActivity(ctx))

	s := out.String()
	assert.Contains(t, s, "1-Retweet")
	assert.Contains(t, s, fmt.Sprintf("(From Other@ID:%d) borrowed words", other.ID))
	assert.Contains(t, s, "There is no information about retweets.")
	assert.Contains(t, s, "You cannot reply to a retweet.")
	assert.Contains(t, s, "You cannot retweet a retweet.")
}

func TestBrowserInspectCounts(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	me := seedUser(t, st, "Me", "")
	friend := seedUser(t, st, "Friend", "")
	other := seedUser(t, st, "Other", "")
	seedFollow(t, st, me.ID, friend.ID)
	tid := seedTweet(t, st, friend.ID, "2024-03-01", "talk to me")
	for i := 0; i < 2; i++ {
		d, _ := time.Parse(model.DateLayout, "2024-03-02")
		_, err := st.CreateTweet(ctx, &model.Tweet{WriterID: other.ID, Date: d, Text: "a reply", ReplyTo: &tid})
		require.NoError(t, err)
	}
	require.NoError(t, st.CreateRetweet(ctx, other.ID, tid, fixedNow))

	a, out := newTestApp(t, st, "i\n1\nc\n")
	startSession(a, me)
	require.NoError(t, a.recentActivity(ctx))

	s := out.String()
	assert.Contains(t, s, "Selected tweet for information:")
	assert.Contains(t, s, "Number of replies: 2")
	assert.Contains(t, s, "Number of retweets: 1")
}

func TestBrowserRetweetOnceOnly(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	me, friend := seedFeed(t, st, 1)

	a, out := newTestApp(t, st, "t\n1\nt\n1\nc\n")
	startSession(a, me)
	require.NoError(t, a.recentActivity(ctx))

	s := out.String()
	assert.Contains(t, s, "Your retweet to...")
	assert.Contains(t, s, "...has been made!")
	assert.Contains(t, s, "You have already retweeted this tweet!")

	tweets, err := st.RecentActivity(ctx, friend.ID)
	require.NoError(t, err)
	assert.Empty(t, tweets, "friend follows nobody")

	stats, err := st.GetTweetStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Retweets)
}

func TestBrowserReplyCreatesTweet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	me, _ := seedFeed(t, st, 1)

	a, out := newTestApp(t, st, "r\n1\nCould not agree more\nc\n")
	startSession(a, me)
	require.NoError(t, a.recentActivity(ctx))

	s := out.String()
	assert.Contains(t, s, "Selected tweet for reply:")
	assert.Contains(t, s, "Your reply...")
	assert.Contains(t, s, "    Me : Could not agree more")
	assert.Contains(t, s, "...has been made!")

	stats, err := st.GetTweetStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Replies)
}
