package app

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	"github.com/chirpnet/chirp/internal/model"
)

// hashtagPattern matches #word where word is a contiguous run of
// alphanumerics or underscores.
var hashtagPattern = regexp.MustCompile(`#(\w+)`)

func (a *App) compose(ctx context.Context) error {
	a.con.Println("-------Composing a New Tweet--------")
	return a.buildTweet(ctx, nil)
}

// buildTweet prompts for the message, stores the tweet (as a reply
// when replyTo is set), then records its hashtags and mentions. The
// confirmation prints before the hashtag upserts, each of which
// commits on its own.
func (a *App) buildTweet(ctx context.Context, replyTo *int64) error {
	text := a.con.Prompt("Enter the message: ")
	for text == "" {
		if a.con.Exhausted() {
			return nil
		}
		a.con.Println("The tweet message cannot be empty! Please try again.")
		text = a.con.Prompt("Enter the message: ")
	}

	tweet := model.Tweet{
		WriterID: a.sess.User.ID,
		Date:     a.now(),
		Text:     text,
		ReplyTo:  replyTo,
	}
	id, err := a.store.CreateTweet(ctx, &tweet)
	if err != nil {
		return err
	}
	a.log.Info("compose", zap.Int64("user", a.sess.User.ID), zap.Int64("tweet", id),
		zap.Bool("reply", replyTo != nil))

	a.con.Println(divider)
	if replyTo != nil {
		a.con.Println("Your reply...")
	} else {
		a.con.Println("Your tweet...")
	}
	a.con.Printf("    %s : %s\n", a.sess.User.Name, text)
	a.con.Println("...has been made!")
	a.con.Println(divider)

	for _, m := range hashtagPattern.FindAllStringSubmatch(text, -1) {
		term := m[1]
		if err := a.store.EnsureHashtag(ctx, term); err != nil {
			return err
		}
		if err := a.store.EnsureMention(ctx, id, term); err != nil {
			return err
		}
	}
	return nil
}
