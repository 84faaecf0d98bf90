package main

import (
	"net/http"

	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
	"github.com/webtor-io/popcorn/services/catalog"
	"github.com/webtor-io/popcorn/services/omdb"
)

func configureCatalog(f []cli.Flag) []cli.Flag {
	f = omdb.RegisterFlags(f)
	f = cs.RegisterRedisClientFlags(f)
	f = catalog.RegisterFlags(f)
	return f
}

// makeCatalog returns the OMDb client, wrapped with the redis cache when one is configured.
func makeCatalog(c *cli.Context, cl *http.Client) (catalog.Catalog, func(), error) {
	// Setting OMDB API
	omdbApi, err := omdb.New(c, cl)
	if err != nil {
		return nil, nil, err
	}

	// Setting Catalog Cache
	cat, closer := catalog.Wrap(c, omdbApi)
	return cat, closer, nil
}
