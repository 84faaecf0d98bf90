package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"github.com/webtor-io/popcorn/models"
	"github.com/webtor-io/popcorn/services/catalog"
	"golang.org/x/time/rate"
)

const (
	omdbApiKeyFlag    = "omdb-api-key"
	omdbApiSecureFlag = "omdb-api-secure"
	omdbApiHostFlag   = "omdb-api-host"
	omdbApiPortFlag   = "omdb-api-port"
	omdbApiRPSFlag    = "omdb-api-rps"
	omdbApiBurstFlag  = "omdb-api-burst"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   omdbApiHostFlag,
			Usage:  "omdb api host",
			EnvVar: "OMDB_API_HOST",
			Value:  "www.omdbapi.com",
		},
		cli.IntFlag{
			Name:   omdbApiPortFlag,
			Usage:  "omdb api port",
			EnvVar: "OMDB_API_PORT",
			Value:  443,
		},
		cli.BoolTFlag{
			Name:   omdbApiSecureFlag,
			Usage:  "omdb api secure (https)",
			EnvVar: "OMDB_API_SECURE",
		},
		cli.StringFlag{
			Name:   omdbApiKeyFlag,
			Usage:  "omdb api key",
			Value:  "",
			EnvVar: "OMDB_API_KEY",
		},
		cli.Float64Flag{
			Name:   omdbApiRPSFlag,
			Usage:  "omdb api requests per second",
			EnvVar: "OMDB_API_RPS",
			Value:  5,
		},
		cli.IntFlag{
			Name:   omdbApiBurstFlag,
			Usage:  "omdb api request burst",
			EnvVar: "OMDB_API_BURST",
			Value:  5,
		},
	)
}

type Api struct {
	url            string
	cl             *http.Client
	limiter        *rate.Limiter
	prepareRequest func(r *http.Request) (*http.Request, error)
}

var _ catalog.Catalog = (*Api)(nil)

func New(c *cli.Context, cl *http.Client) (*Api, error) {
	host := c.String(omdbApiHostFlag)
	port := c.Int(omdbApiPortFlag)
	secure := c.BoolT(omdbApiSecureFlag)
	key := c.String(omdbApiKeyFlag)
	if key == "" {
		return nil, errors.Errorf("%v is required", omdbApiKeyFlag)
	}
	protocol := "http"
	if secure {
		protocol = "https"
	}
	u := fmt.Sprintf("%v://%v:%v", protocol, host, port)
	log.Infof("omdb api endpoint %v", u)
	return NewWithURL(u, key, cl, rate.NewLimiter(rate.Limit(c.Float64(omdbApiRPSFlag)), c.Int(omdbApiBurstFlag))), nil
}

func NewWithURL(u string, key string, cl *http.Client, limiter *rate.Limiter) *Api {
	prepareRequest := func(r *http.Request) (*http.Request, error) {
		q := r.URL.Query()
		q.Set("apikey", key)
		r.URL.RawQuery = q.Encode()
		return r, nil
	}
	return &Api{
		url:            strings.TrimSuffix(u, "/"),
		cl:             cl,
		limiter:        limiter,
		prepareRequest: prepareRequest,
	}
}

type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

func (e *envelope) err() error {
	if e.Response == "True" {
		return nil
	}
	if strings.Contains(strings.ToLower(e.Error), "not found") {
		return catalog.ErrNotFound
	}
	if e.Error == "" {
		return &catalog.APIError{Message: "unexpected response"}
	}
	return &catalog.APIError{Message: e.Error}
}

type searchResponse struct {
	envelope
	Search       []searchItem `json:"Search"`
	TotalResults string       `json:"totalResults"`
}

type searchItem struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

func (api *Api) Search(ctx context.Context, query string) ([]models.SearchResultItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, catalog.ErrEmptyQuery
	}
	var res searchResponse
	err := api.get(ctx, map[string]string{
		"s": query,
	}, &res)
	if err != nil {
		return nil, err
	}
	if err := res.err(); err != nil {
		return nil, err
	}
	items := make([]models.SearchResultItem, 0, len(res.Search))
	for _, r := range res.Search {
		if r.ImdbID == "" {
			continue
		}
		items = append(items, models.SearchResultItem{
			ImdbID:    r.ImdbID,
			Title:     r.Title,
			Year:      r.Year,
			PosterURL: na(r.Poster),
		})
	}
	if len(items) == 0 {
		return nil, catalog.ErrNotFound
	}
	return items, nil
}

func (api *Api) GetByID(ctx context.Context, id string) (*models.MovieDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, catalog.ErrNotFound
	}
	var res detailResponse
	err := api.get(ctx, map[string]string{
		"i":    id,
		"plot": "full",
	}, &res)
	if err != nil {
		return nil, err
	}
	if err := res.err(); err != nil {
		return nil, err
	}
	return res.toDetail()
}

func (api *Api) get(ctx context.Context, params map[string]string, v any) error {
	if api.limiter != nil {
		if err := api.limiter.Wait(ctx); err != nil {
			return errors.Wrap(err, "rate limit")
		}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/", api.url), nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}

	q := req.URL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()

	req, err = api.prepareRequest(req)
	if err != nil {
		return errors.Wrap(err, "prepare request")
	}

	resp, err := api.cl.Do(req)
	if err != nil {
		// url.Error carries the request url with the api key in it
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return errors.Wrap(err, "request failed")
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("Failed to fetch movies: unexpected status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
