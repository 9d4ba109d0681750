package domain

// Movie is one entry of the bundled demo catalog.
type Movie struct {
	Title  string  `json:"title"`
	Year   int     `json:"year"`
	Rating float64 `json:"rating"`
}
