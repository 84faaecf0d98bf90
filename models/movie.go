package models

// SearchResultItem is a single catalog hit as returned by a title search.
type SearchResultItem struct {
	ImdbID    string `json:"imdb_id"`
	Title     string `json:"title"`
	Year      string `json:"year"`
	PosterURL string `json:"poster_url,omitempty"`
}

// MovieDetail is the full catalog record of a single movie.
// Zero values stand for data the catalog reports as unavailable.
type MovieDetail struct {
	SearchResultItem

	Runtime        string   `json:"runtime,omitempty"`
	RuntimeMinutes int      `json:"runtime_minutes"`
	CatalogRating  float64  `json:"catalog_rating"`
	Plot           string   `json:"plot,omitempty"`
	Released       string   `json:"released,omitempty"`
	Cast           []string `json:"cast,omitempty"`
	Director       string   `json:"director,omitempty"`
	Genre          string   `json:"genre,omitempty"`
}
