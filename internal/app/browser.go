package app

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/chirpnet/chirp/internal/console"
	"github.com/chirpnet/chirp/internal/model"
	"github.com/chirpnet/chirp/internal/store"
)

// browser is the Browsing state of the paginated result loop: an
// ordered row list, index (next unseen row, 0-based) and stop (the
// exclusive page boundary, advanced by PageSize per More command).
// Commands m/i/r/t self-loop; the per-flow exit key terminates.
// Selection by number is only valid within the already-rendered
// window [1, index].
type browser struct {
	a     *App
	rows  []model.Activity
	index int
	stop  int
}

// pageView is the per-flow presentation of the shared browser: how
// the first page and each More page are printed, the option block,
// and which commands the flow accepts (exit key last).
type pageView interface {
	first(b *browser)
	more(b *browser)
	options(c *console.Console)
	keys() []string
	// infoGap reports whether the information panel prints a trailing
	// blank line after the retweet count, which the flows disagree on.
	infoGap() bool
}

// browse runs the command loop until the exit key. The caller has
// already handled the empty-list case and sorted rows date-descending.
func (a *App) browse(ctx context.Context, rows []model.Activity, v pageView) error {
	b := &browser{a: a, rows: rows, stop: store.PageSize}
	v.first(b)
	keys := v.keys()
	exit := keys[len(keys)-1]
	v.options(a.con)
	sel := a.con.Select(keys...)
	for sel != exit {
		var err error
		switch sel {
		case "m":
			b.stop += store.PageSize
			v.more(b)
		case "i":
			err = b.inspect(ctx, v.infoGap())
		case "r":
			err = b.reply(ctx)
		case "t":
			err = b.retweet(ctx)
		}
		if err != nil {
			return err
		}
		v.options(a.con)
		sel = a.con.Select(keys...)
	}
	return nil
}

// render prints rows up to the current page boundary, advancing index
// past everything shown.
func (b *browser) render(line func(i int, row model.Activity)) {
	for b.index < len(b.rows) && b.index < b.stop {
		line(b.index, b.rows[b.index])
		b.index++
	}
}

func (b *browser) exhausted() bool {
	return b.index >= len(b.rows)
}

// selectRow prompts for a row number and validates it against the
// rendered window. Non-numeric input maps to 0 and fails the range
// check like any other out-of-window value.
func (b *browser) selectRow(prompt string) (model.Activity, int, bool) {
	raw := b.a.con.Prompt(prompt)
	n, err := strconv.Atoi(raw)
	if err != nil {
		n = 0
	}
	if n < 1 || n > b.index {
		b.a.con.Println(divider)
		b.a.con.Println("Invalid tweet selection.")
		b.a.con.Println(divider)
		return model.Activity{}, 0, false
	}
	return b.rows[n-1], n, true
}

func (b *browser) inspect(ctx context.Context, gap bool) error {
	c := b.a.con
	c.Println("----------Tweet Information---------")
	row, n, ok := b.selectRow("Select tweet number for information: ")
	if !ok {
		return nil
	}
	// Retweets carry no reply or retweet counters of their own.
	if row.Kind == model.KindRetweet {
		c.Println(divider)
		c.Println("There is no information about retweets.")
		c.Println(divider)
		return nil
	}
	stats, err := b.a.store.GetTweetStats(ctx, row.TweetID)
	if err != nil {
		return err
	}
	c.Println(divider)
	c.Println("Selected tweet for information:")
	c.Printf("    %d. %s @ %s : %s\n", n, row.AuthorName, row.Date.Format(model.DateLayout), row.Text)
	c.Println()
	c.Printf("Number of replies: %d\n", stats.Replies)
	c.Printf("Number of retweets: %d\n", stats.Retweets)
	if gap {
		c.Println()
	}
	c.Println(divider)
	return nil
}

func (b *browser) reply(ctx context.Context) error {
	c := b.a.con
	c.Println("----------------Reply---------------")
	row, n, ok := b.selectRow("Select tweet number to reply to: ")
	if !ok {
		return nil
	}
	if row.Kind == model.KindRetweet {
		c.Println(divider)
		c.Println("You cannot reply to a retweet.")
		c.Println(divider)
		return nil
	}
	c.Println(divider)
	c.Println("Selected tweet for reply:")
	c.Printf("    %d. %s @ %s : %s\n", n, row.AuthorName, row.Date.Format(model.DateLayout), row.Text)
	c.Println()
	replyTo := row.TweetID
	return b.a.buildTweet(ctx, &replyTo)
}

func (b *browser) retweet(ctx context.Context) error {
	c := b.a.con
	c.Println("---------------Retweet--------------")
	row, n, ok := b.selectRow("Select tweet number to retweet: ")
	if !ok {
		return nil
	}
	if row.Kind == model.KindRetweet {
		c.Println(divider)
		c.Println("You cannot retweet a retweet.")
		c.Println(divider)
		return nil
	}
	err := b.a.store.CreateRetweet(ctx, b.a.sess.User.ID, row.TweetID, b.a.now())
	if err == store.ErrDuplicateRetweet {
		c.Println(divider)
		c.Println("You have already retweeted this tweet!")
		c.Println(divider)
		return nil
	}
	if err != nil {
		return err
	}
	b.a.log.Info("retweet",
		zap.Int64("user", b.a.sess.User.ID), zap.Int64("tweet", row.TweetID))
	c.Println(divider)
	c.Println("Your retweet to...")
	c.Printf("    %d. %s @ %s : %s\n", n, row.AuthorName, row.Date.Format(model.DateLayout), row.Text)
	c.Println("...has been made!")
	c.Println(divider)
	return nil
}
