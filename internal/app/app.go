// Package app is the interactive client: the menu router, the
// paginated result browser, and the feature flows it dispatches to.
// Every screen is fixed-width plain text and every prompt blocks for
// input; the only failure that escapes a flow is a storage error,
// which terminates the program.
package app

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/chirpnet/chirp/internal/console"
	"github.com/chirpnet/chirp/internal/model"
	"github.com/chirpnet/chirp/internal/session"
	"github.com/chirpnet/chirp/internal/store"
)

const (
	divider     = "------------------------------------"
	thinDivider = "-----------------------------------"
)

type App struct {
	con   *console.Console
	store store.Store
	auth  *session.Service
	log   *zap.Logger
	sess  *session.Session
	now   func() time.Time
}

func New(st store.Store, con *console.Console, auth *session.Service, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{con: con, store: st, auth: auth, log: log, now: time.Now}
}

// Run drives the top-level state machine: the login screen until a
// session exists, the main menu until logout, and back, until the
// operator quits.
func (a *App) Run(ctx context.Context) error {
	for {
		if a.sess == nil {
			quit, err := a.loginScreen(ctx)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		} else {
			if err := a.mainMenu(ctx); err != nil {
				return err
			}
		}
	}
}

func (a *App) loginScreen(ctx context.Context) (quit bool, err error) {
	for a.sess == nil {
		a.con.Println("------------LOGIN SCREEN------------")
		a.con.Println(divider)
		a.con.Println("Options:  A - Signup")
		a.con.Println("          B - Login")
		a.con.Println("          Q - Quit Program")
		switch a.con.Select("a", "b", "q") {
		case "a":
			if err := a.signup(ctx); err != nil {
				return false, err
			}
		case "b":
			if err := a.login(ctx); err != nil {
				return false, err
			}
		case "q":
			return true, nil
		}
	}
	return false, nil
}

func (a *App) mainMenu(ctx context.Context) error {
	for a.sess != nil {
		a.con.Println("------------MENU SCREEN-------------")
		a.con.Println(divider)
		a.con.Println("Options:  T - Search for Tweets")
		a.con.Println("          U - Search for Users")
		a.con.Println("          C - Compose a Tweet")
		a.con.Println("          L - List Followers")
		a.con.Println("          Q - Logout")
		var err error
		switch a.con.Select("t", "u", "c", "l", "q") {
		case "t":
			err = a.searchTweets(ctx)
		case "u":
			err = a.searchUsers(ctx)
		case "c":
			err = a.compose(ctx)
		case "l":
			err = a.listFollowers(ctx)
		case "q":
			a.logout()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) signup(ctx context.Context) error {
	a.con.Println("---------------SignUp---------------")
	name := a.con.Prompt("Enter your name: ")

	password := a.con.PromptSecret("Enter your password: ")
	confirm := a.con.PromptSecret("Repeat password: ")
	if password != confirm {
		a.con.Println(divider)
		a.con.Println("Error: passwords do not match. Please try again.")
		a.con.Println(divider)
		return nil
	}

	user := model.User{
		Name:     name,
		Email:    a.con.Prompt("Enter your email: "),
		City:     a.con.Prompt("Enter your city: "),
		Timezone: a.con.Prompt("Enter your timezone: "),
	}
	id, err := a.auth.Signup(ctx, &user, password)
	if err != nil {
		return err
	}
	a.con.Println(divider)
	a.con.Printf("Thank you for signing up, %s! Your userID is %d.\n", name, id)
	a.con.Println(divider)
	return nil
}

func (a *App) login(ctx context.Context) error {
	a.con.Println("---------------Login----------------")
	rawID := a.con.Prompt("Enter your userID: ")
	password := a.con.PromptSecret("Enter your password: ")

	id, convErr := strconv.ParseInt(rawID, 10, 64)
	if convErr == nil {
		sess, err := a.auth.Login(ctx, id, password)
		if err == nil {
			a.sess = sess
			a.con.Println(divider)
			a.con.Printf("Login successful, welcome %s!\n", sess.User.Name)
			a.con.Println(divider)
			return a.recentActivity(ctx)
		}
		if err != session.ErrBadCredentials {
			return err
		}
	}
	a.con.Println(divider)
	a.con.Println("Login failed! Please recheck your credentials and try again.")
	a.con.Println(divider)
	return nil
}

func (a *App) logout() {
	a.con.Println(divider)
	a.con.Printf("Logout successful, goodbye %s!\n", a.sess.User.Name)
	a.con.Println(divider)
	a.auth.Logout(a.sess)
	a.sess = nil
}
