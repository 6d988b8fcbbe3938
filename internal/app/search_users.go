package app

import (
	"context"
	"strconv"
	"strings"

	"github.com/chirpnet/chirp/internal/model"
	"github.com/chirpnet/chirp/internal/store"
)

// searchUsers runs two parallel ranked searches, by name and by city,
// five rows per page each, sharing one global 1-based index space.
// Every page view queries the store afresh (LIMIT/OFFSET, no
// snapshot); "see more" advances both page counters together. A
// drill-in re-renders the current page from the rows already fetched.
func (a *App) searchUsers(ctx context.Context) error {
	a.con.Println("----------Search for Users----------")
	keyword := a.con.Prompt("Enter a keyword to search for a user: ")
	a.con.Println()

	cityTotal, err := a.store.CountUsersByCity(ctx, keyword)
	if err != nil {
		return err
	}
	nameTotal, err := a.store.CountUsersByName(ctx, keyword)
	if err != nil {
		return err
	}
	maxCityPage := (cityTotal + store.PageSize - 1) / store.PageSize
	maxNamePage := (nameTotal + store.PageSize - 1) / store.PageSize

	namePage, cityPage := 1, 1
	index := 0
	results := make(map[int]model.UserHit)

	for {
		var nameRows, cityRows []model.UserHit
		if maxNamePage > 0 && namePage <= maxNamePage {
			if nameRows, err = a.store.SearchUsersByName(ctx, keyword, namePage); err != nil {
				return err
			}
		}
		if maxCityPage > 0 && cityPage <= maxCityPage {
			if cityRows, err = a.store.SearchUsersByCity(ctx, keyword, cityPage); err != nil {
				return err
			}
		}

		pageStart := index
		renderPage := func() {
			index = pageStart
			a.con.Println("---Name Based Search---")
			switch {
			case maxNamePage == 0:
				a.con.Println("No Results")
			case namePage <= maxNamePage:
				for _, h := range nameRows {
					index++
					results[index] = h
					a.con.Printf("%d- (ID:%d) %s\n", index, h.ID, h.Name)
				}
			default:
				a.con.Println("You've reached the end of the Name-based results")
			}
			a.con.Println()
			a.con.Println("---City Based Search---")
			switch {
			case maxCityPage == 0:
				a.con.Println("No Results")
				a.con.Println()
			case cityPage <= maxCityPage:
				for _, h := range cityRows {
					index++
					results[index] = h
					a.con.Printf("%d- (ID:%d) %s\n", index, h.ID, h.Name)
				}
			default:
				a.con.Println("You've reached the end of the City-based results")
			}
			a.con.Println(divider)
		}
		renderPage()

		printOptions := func() {
			a.con.Println("Options:  1. Select a user for more options")
			a.con.Println("          2. See more results")
			a.con.Println("          0. Return to main menu")
			a.con.Println()
		}
		printOptions()

	optionLoop:
		for {
			raw := strings.TrimSpace(a.con.Prompt("Select an option: "))
			option, convErr := strconv.Atoi(raw)
			if convErr != nil {
				if a.con.Exhausted() {
					return nil
				}
				a.con.Println("Invalid input. Please enter a numeric value corresponding to an option.")
				a.con.Println()
				continue
			}
			switch option {
			case 1:
				a.con.Println(divider)
				rawIdx := a.con.Prompt("Enter Selected user (Enter the index of result and not the ID): ")
				idx, idxErr := strconv.Atoi(rawIdx)
				hit, found := results[idx]
				if idxErr != nil || !found {
					a.con.Println("Invalid User Index entered!")
					a.con.Printf("%s\n\n", divider)
					continue
				}
				if err := a.userInfoPanel(ctx, hit); err != nil {
					return err
				}
				renderPage()
				printOptions()
			case 2:
				cityPage++
				namePage++
				a.con.Printf("%s\n\n", divider)
				break optionLoop
			case 0:
				a.con.Println(divider)
				return nil
			default:
				a.con.Println("Invalid selection. Please try again")
				a.con.Println()
			}
		}
	}
}
