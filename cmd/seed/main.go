// Command seed populates a chirp database with a small cast of users,
// follows, tweets and retweets so the client has something to browse.
package main

import (
	"context"
	"flag"
	"log"
	"regexp"
	"time"

	"github.com/chirpnet/chirp/internal/model"
	"github.com/chirpnet/chirp/internal/store/sqlite"
)

var users = []struct {
	name     string
	password string
	email    string
	city     string
	timezone string
}{
	{"Ada Lovelace", "ada123", "ada@example.com", "London", "GMT"},
	{"Grace Hopper", "grace123", "grace@example.com", "New York", "EST"},
	{"Alan Turing", "alan123", "alan@example.com", "London", "GMT"},
	{"Edsger Dijkstra", "edsger123", "edsger@example.com", "Austin", "CST"},
	{"Barbara Liskov", "barbara123", "barbara@example.com", "Boston", "EST"},
}

// follower -> followee, by seed index.
var follows = [][2]int{
	{0, 1}, {0, 2}, {1, 0}, {1, 3}, {2, 0}, {3, 4}, {4, 0}, {4, 1},
}

var tweets = []struct {
	writer  int
	daysAgo int
	text    string
	replyTo int // index into this slice, -1 for none
}{
	{1, 9, "Compilers should speak English. #plainspeak", -1},
	{0, 8, "The engine weaves algebraic patterns. #analytical", -1},
	{2, 7, "Machinery can surprise you. #computing #ai", -1},
	{0, 6, "Agreed, and it can imagine too. #computing", 2},
	{3, 4, "Simplicity is prerequisite for reliability.", -1},
	{4, 3, "Abstraction is not about vagueness. #types", -1},
	{2, 2, "A very able body of thought. #computing", 5},
	{1, 1, "Ships in port are safe, but that is not what ships are for.", -1},
}

// user retweets tweet, by seed index.
var retweets = [][2]int{
	{0, 7}, {3, 1}, {4, 2},
}

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

func main() {
	dbPath := flag.String("db", "./chirp.db", "chirp database path")
	flag.Parse()

	st, err := sqlite.Open(*dbPath)
	if err != nil {
		log.Fatalf("open %s: %v", *dbPath, err)
	}
	defer st.Close()

	ctx := context.Background()
	now := time.Now()

	var userIDs []int64
	for _, u := range users {
		id, err := st.CreateUser(ctx, &model.User{
			Name: u.name, Email: u.email, City: u.city, Timezone: u.timezone,
		}, u.password)
		if err != nil {
			log.Fatalf("create user %s: %v", u.name, err)
		}
		userIDs = append(userIDs, id)
		log.Printf("user %d: %s", id, u.name)
	}

	for _, f := range follows {
		if err := st.CreateFollow(ctx, userIDs[f[0]], userIDs[f[1]], now); err != nil {
			log.Fatalf("create follow: %v", err)
		}
	}

	var tweetIDs []int64
	for _, t := range tweets {
		tweet := model.Tweet{
			WriterID: userIDs[t.writer],
			Date:     now.AddDate(0, 0, -t.daysAgo),
			Text:     t.text,
		}
		if t.replyTo >= 0 {
			id := tweetIDs[t.replyTo]
			tweet.ReplyTo = &id
		}
		id, err := st.CreateTweet(ctx, &tweet)
		if err != nil {
			log.Fatalf("create tweet: %v", err)
		}
		tweetIDs = append(tweetIDs, id)

		for _, m := range hashtagPattern.FindAllStringSubmatch(t.text, -1) {
			if err := st.EnsureHashtag(ctx, m[1]); err != nil {
				log.Fatalf("hashtag %s: %v", m[1], err)
			}
			if err := st.EnsureMention(ctx, id, m[1]); err != nil {
				log.Fatalf("mention %s: %v", m[1], err)
			}
		}
	}

	for _, rt := range retweets {
		if err := st.CreateRetweet(ctx, userIDs[rt[0]], tweetIDs[rt[1]], now); err != nil {
			log.Fatalf("create retweet: %v", err)
		}
	}

	log.Printf("seeded %d users, %d tweets, %d retweets into %s",
		len(users), len(tweets), len(retweets), *dbPath)
}
