package omdb

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/webtor-io/popcorn/models"
)

const NA = "N/A"

type detailResponse struct {
	envelope
	ImdbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Runtime    string `json:"Runtime"`
	ImdbRating string `json:"imdbRating"`
	Plot       string `json:"Plot"`
	Released   string `json:"Released"`
	Actors     string `json:"Actors"`
	Director   string `json:"Director"`
	Genre      string `json:"Genre"`
}

func (r *detailResponse) toDetail() (*models.MovieDetail, error) {
	if r.ImdbID == "" {
		return nil, errors.New("detail record without imdbID")
	}
	if r.Title == "" {
		return nil, errors.Errorf("detail record %v without title", r.ImdbID)
	}
	return &models.MovieDetail{
		SearchResultItem: models.SearchResultItem{
			ImdbID:    r.ImdbID,
			Title:     r.Title,
			Year:      na(r.Year),
			PosterURL: na(r.Poster),
		},
		Runtime:        na(r.Runtime),
		RuntimeMinutes: parseRuntime(r.Runtime),
		CatalogRating:  parseRating(r.ImdbRating),
		Plot:           na(r.Plot),
		Released:       na(r.Released),
		Cast:           splitList(r.Actors),
		Director:       na(r.Director),
		Genre:          na(r.Genre),
	}, nil
}

func na(s string) string {
	s = strings.TrimSpace(s)
	if s == NA {
		return ""
	}
	return s
}

// parseRuntime reads values like "148 min", 0 if unknown
func parseRuntime(s string) int {
	fields := strings.Fields(na(s))
	if len(fields) == 0 {
		return 0
	}
	m, err := strconv.Atoi(fields[0])
	if err != nil || m < 0 {
		return 0
	}
	return m
}

func parseRating(s string) float64 {
	r, err := strconv.ParseFloat(na(s), 64)
	if err != nil || r < 0 || r > 10 {
		return 0
	}
	return r
}

func splitList(s string) []string {
	s = na(s)
	if s == "" {
		return nil
	}
	var res []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}
