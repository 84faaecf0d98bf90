package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"github.com/webtor-io/popcorn/services/catalog"
	"github.com/webtor-io/popcorn/services/detail"
	"github.com/webtor-io/popcorn/services/search"
)

func makeLookupCMD() cli.Command {
	lookupCMD := cli.Command{
		Name:      "lookup",
		Aliases:   []string{"l"},
		Usage:     "Searches the catalog or prints movie details",
		ArgsUsage: "QUERY",
		Action:    lookup,
	}
	configureLookup(&lookupCMD)
	return lookupCMD
}

func configureLookup(c *cli.Command) {
	c.Flags = append(c.Flags,
		cli.StringFlag{
			Name:  "id",
			Usage: "imdb id to print details for",
		},
	)
	c.Flags = configureCatalog(c.Flags)
}

func lookup(c *cli.Context) error {
	cat, closeCatalog, err := makeCatalog(c, http.DefaultClient)
	if err != nil {
		return err
	}
	defer closeCatalog()

	ctx := context.Background()

	if id := c.String("id"); id != "" {
		md, err := cat.GetByID(ctx, id)
		if err != nil {
			return errors.New(catalog.Message(err, detail.MovieNotFound, detail.FailedToFetchMovieDetail))
		}
		fmt.Printf("%v (%v)\n", md.Title, md.Year)
		fmt.Printf("%v | %v | %v\n", md.Runtime, md.Genre, md.Released)
		fmt.Printf("Rating: %v\n", md.CatalogRating)
		fmt.Printf("Directed by %v\n", md.Director)
		fmt.Printf("Starring %v\n", strings.Join(md.Cast, ", "))
		fmt.Printf("\n%v\n", md.Plot)
		return nil
	}

	query := strings.Join(c.Args(), " ")
	movies, err := cat.Search(ctx, query)
	if err != nil {
		if msg := catalog.Message(err, search.NoMoviesFound, search.FailedToFetchMovies); msg != "" {
			return errors.New(msg)
		}
		return err
	}
	for _, m := range movies {
		fmt.Printf("%v\t%v\t%v\n", m.ImdbID, m.Year, m.Title)
	}
	return nil
}
