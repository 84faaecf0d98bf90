package models

type WatchedEntry struct {
	ImdbID         string  `json:"imdb_id"`
	Title          string  `json:"title"`
	Year           string  `json:"year,omitempty"`
	PosterURL      string  `json:"poster_url,omitempty"`
	CatalogRating  float64 `json:"catalog_rating"`
	RuntimeMinutes int     `json:"runtime_minutes"`
	UserRating     int     `json:"user_rating"`
}

func NewWatchedEntry(md *MovieDetail, userRating int) WatchedEntry {
	return WatchedEntry{
		ImdbID:         md.ImdbID,
		Title:          md.Title,
		Year:           md.Year,
		PosterURL:      md.PosterURL,
		CatalogRating:  md.CatalogRating,
		RuntimeMinutes: md.RuntimeMinutes,
		UserRating:     userRating,
	}
}

// Summary holds watched list statistics, means are rounded to 2 decimals.
type Summary struct {
	Count            int     `json:"count"`
	AvgCatalogRating float64 `json:"avg_catalog_rating"`
	AvgUserRating    float64 `json:"avg_user_rating"`
	AvgRuntime       float64 `json:"avg_runtime"`
}
