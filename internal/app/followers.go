package app

import (
	"context"
	"strconv"
)

// listFollowers shows everyone following the operator and lets any of
// them be drilled into by 1-based index.
func (a *App) listFollowers(ctx context.Context) error {
	followers, err := a.store.Followers(ctx, a.sess.User.ID)
	if err != nil {
		return err
	}

	renderList := func() {
		for i, f := range followers {
			a.con.Printf("%d. %s (User ID: %d)\n", i+1, f.Name, f.ID)
		}
		a.con.Println()
		a.con.Println(thinDivider)
		a.con.Println("Options: 1. Select a user for more options")
		a.con.Println("         0. Return to main menu")
	}

	a.con.Println("----------List Followers-----------")
	a.con.Println()
	a.con.Println("Your followers:")
	a.con.Println()
	renderList()

	for {
		a.con.Println()
		option := a.con.Prompt("Select an option: ")
		switch option {
		case "1":
			a.con.Println(thinDivider)
			raw := a.con.Prompt("Enter selected user (Enter the index of the result and not the ID): ")
			idx, convErr := strconv.Atoi(raw)
			if convErr != nil {
				a.con.Println("Invalid input. Please enter a numeric value.")
				a.con.Println(thinDivider)
				continue
			}
			if idx < 1 || idx > len(followers) {
				a.con.Println("Invalid index. Please try again.")
				a.con.Println(thinDivider)
				continue
			}
			if err := a.userInfoPanel(ctx, followers[idx-1]); err != nil {
				return err
			}
			a.con.Println("Your followers:")
			a.con.Println()
			renderList()
		case "0":
			a.con.Println(thinDivider)
			return nil
		default:
			if a.con.Exhausted() {
				a.con.Println(thinDivider)
				return nil
			}
			a.con.Println("Invalid option selected. Please try again.")
			a.con.Println(thinDivider)
		}
	}
}
