package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/chirpnet/chirp/internal/console"
	"github.com/chirpnet/chirp/internal/model"
)

// searchTweets matches tweets against space-separated keywords:
// #term keywords go through the mention table, plain keywords are
// text substring matches. Hits from every keyword are merged and
// de-duplicated by tweet id, then browsed newest first.
func (a *App) searchTweets(ctx context.Context) error {
	a.con.Println("---------Search for Tweets---------")
	keywords := strings.Fields(a.con.Prompt("Enter one or more keywords separated by spaces: "))

	var rows []model.Activity
	seen := make(map[int64]bool)
	for _, kw := range keywords {
		var (
			hits []model.Activity
			err  error
		)
		if strings.HasPrefix(kw, "#") {
			hits, err = a.store.SearchTweetsByTerm(ctx, kw[1:])
		} else {
			hits, err = a.store.SearchTweetsByText(ctx, kw)
		}
		if err != nil {
			return err
		}
		for _, h := range hits {
			if !seen[h.TweetID] {
				seen[h.TweetID] = true
				rows = append(rows, h)
			}
		}
	}

	a.con.Println(thinDivider)
	if len(rows) == 0 {
		a.con.Println("No tweets have been found!")
		a.con.Println(thinDivider)
		return nil
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})
	if err := a.browse(ctx, rows, searchView{}); err != nil {
		return err
	}
	a.con.Println(thinDivider)
	return nil
}

// searchView renders matches as the compact numbered list.
type searchView struct{}

func (searchView) first(b *browser) {
	b.a.con.Println("Matching tweets:")
	b.a.con.Println()
	b.render(func(i int, row model.Activity) {
		b.a.con.Println(matchLine(i, row))
	})
	b.a.con.Println()
	b.a.con.Println(thinDivider)
}

func (searchView) more(b *browser) {
	b.a.con.Println(thinDivider)
	if b.exhausted() {
		b.a.con.Println("There is no more matching tweets.")
		b.a.con.Println(divider)
		return
	}
	b.a.con.Println("More matching tweets:")
	b.a.con.Println()
	b.render(func(i int, row model.Activity) {
		b.a.con.Println(matchLine(i, row))
	})
	b.a.con.Println()
	b.a.con.Println(divider)
}

func (searchView) options(c *console.Console) {
	c.Println("Options:  M - More matching tweets")
	c.Println("          I - Tweet information")
	c.Println("          R - Reply to tweet")
	c.Println("          T - Retweet a tweet")
	c.Println("          B - Back to Main Menu")
}

func (searchView) keys() []string { return []string{"m", "i", "r", "t", "b"} }

func (searchView) infoGap() bool { return true }

func matchLine(i int, row model.Activity) string {
	id := fmt.Sprintf("(ID:%d)", row.AuthorID)
	return fmt.Sprintf("%-3s. %-7s %-20s @ %s : %-50s",
		fmt.Sprint(i+1), id, row.AuthorName,
		console.Center(row.Date.Format(model.DateLayout), 12), row.Text)
}
