package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/chirpnet/chirp/internal/console"
	"github.com/chirpnet/chirp/internal/model"
)

var tableRule = strings.Repeat("-", 73)

// recentActivity shows the tweets and retweets of everyone the
// operator follows, newest first, five per page. Runs right after
// login and owns the i/r/t sub-actions through the shared browser.
func (a *App) recentActivity(ctx context.Context) error {
	rows, err := a.store.RecentActivity(ctx, a.sess.User.ID)
	if err != nil {
		return err
	}

	a.con.Println("-----------Recent Activity----------")
	if len(rows) == 0 {
		a.con.Println("You have no recent activity.")
		a.con.Println(divider)
		return nil
	}
	if err := a.browse(ctx, rows, activityView{}); err != nil {
		return err
	}
	a.con.Println(divider)
	return nil
}

// activityView renders the feed as the fixed-width activity table.
type activityView struct{}

func (activityView) first(b *browser) {
	printActivityHeader(b.a.con)
	b.render(func(i int, row model.Activity) {
		b.a.con.Println(activityLine(i, row))
	})
	b.a.con.Println(tableRule)
}

func (activityView) more(b *browser) {
	b.a.con.Println("-----------Recent Activity----------")
	if b.exhausted() {
		b.a.con.Println("You have no more recent activity.")
		b.a.con.Println(divider)
		return
	}
	printActivityHeader(b.a.con)
	b.render(func(i int, row model.Activity) {
		b.a.con.Println(activityLine(i, row))
	})
	b.a.con.Println(tableRule)
}

func (activityView) options(c *console.Console) {
	c.Println("Options:  M - More recent activity")
	c.Println("          I - Tweet information")
	c.Println("          R - Reply to tweet")
	c.Println("          T - Retweet a tweet")
	c.Println("          C - Continue to Main Menu")
}

func (activityView) keys() []string { return []string{"m", "i", "r", "t", "c"} }

func (activityView) infoGap() bool { return false }

func printActivityHeader(c *console.Console) {
	c.Printf("%s | %s | %s | %-50s\n",
		console.Center("#-Type", 10),
		console.Center("Followee", 25),
		console.Center("Date", 12),
		"Text")
	c.Println(tableRule)
}

// activityLine formats one feed row. Retweet text carries the
// original author prefix; the leading column is the 1-based index and
// the kind tag.
func activityLine(i int, row model.Activity) string {
	label := fmt.Sprintf("%d-%s", i+1, row.Kind)
	followee := fmt.Sprintf("(ID:%d) %s", row.AuthorID, row.AuthorName)
	text := row.Text
	if row.Kind == model.KindRetweet {
		text = fmt.Sprintf("(From %s@ID:%d) %s", row.OriginName, row.OriginID, row.Text)
	}
	return fmt.Sprintf("%-10s | %-25s @ %s : %-50s",
		label, followee, console.Center(row.Date.Format(model.DateLayout), 12), text)
}
