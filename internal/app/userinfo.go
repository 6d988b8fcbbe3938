package app

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/chirpnet/chirp/internal/model"
	"github.com/chirpnet/chirp/internal/store"
)

// userInfoPanel is the drill-in for a single user: counters, the
// three most recent tweets, and the follow / see-more / return loop.
func (a *App) userInfoPanel(ctx context.Context, hit model.UserHit) error {
	profile, err := a.store.GetProfile(ctx, hit.ID)
	if err != nil {
		return err
	}

	a.con.Println(divider)
	a.con.Println()
	a.con.Printf("%s (User ID: %d)\n", hit.Name, hit.ID)
	a.con.Printf("Tweets: %d, Following: %d, Followers: %d\n",
		profile.TweetCount, profile.FollowingCount, profile.FollowerCount)
	a.con.Println()
	a.con.Println("Recent Tweets:")
	if len(profile.RecentTweets) == 0 {
		a.con.Println()
		a.con.Println("*No recent tweets from " + hit.Name)
	} else {
		for _, text := range profile.RecentTweets {
			a.con.Printf(" - %s\n", text)
		}
	}
	a.con.Println()
	a.con.Println(divider)

	for {
		a.con.Println("Options:  1. Follow this user")
		a.con.Println("          2. See more tweets")
		a.con.Println("          0. Return to previous menu")
		a.con.Println()
		raw := strings.TrimSpace(a.con.Prompt("Select an option: "))
		option, convErr := strconv.Atoi(raw)
		if convErr != nil {
			if a.con.Exhausted() {
				return nil
			}
			a.con.Println("Invalid selection. Please try again.")
			continue
		}
		switch option {
		case 1:
			a.con.Println(divider)
			if err := a.followUser(ctx, hit.ID); err != nil {
				return err
			}
			a.con.Printf("%s\n\n", divider)
		case 2:
			if err := a.seeMoreTweets(ctx, hit); err != nil {
				return err
			}
			a.con.Println(divider)
		case 0:
			a.con.Printf("%s\n\n", divider)
			return nil
		default:
			a.con.Println("Invalid selection. Please try again.")
		}
	}
}

// followUser follows the target on behalf of the operator. Following
// yourself is rejected outright; following twice is reported, not
// repeated. There is no unfollow.
func (a *App) followUser(ctx context.Context, targetID int64) error {
	if a.sess.User.ID == targetID {
		a.con.Println("You cannot follow yourself!")
		return nil
	}
	err := a.store.CreateFollow(ctx, a.sess.User.ID, targetID, a.now())
	if err == store.ErrDuplicateFollow {
		a.con.Println("You are already following this user.")
		return nil
	}
	if err != nil {
		return err
	}
	a.log.Info("follow",
		zap.Int64("follower", a.sess.User.ID), zap.Int64("followee", targetID))
	a.con.Println("You are now following this user.")
	return nil
}

// seeMoreTweets lists every tweet the target has written, newest
// first, with no pagination.
func (a *App) seeMoreTweets(ctx context.Context, hit model.UserHit) error {
	a.con.Println(divider)
	a.con.Println("Showing all tweets from " + hit.Name + ":")
	a.con.Println()
	texts, err := a.store.TweetTexts(ctx, hit.ID, 0)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		a.con.Println("*There are no tweets from " + hit.Name)
	}
	for _, text := range texts {
		a.con.Println("- " + text)
	}
	a.con.Println()
	return nil
}
