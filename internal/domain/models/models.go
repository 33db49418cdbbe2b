package models

import "time"

const (
	DescriptionMaxLen = 80
	ReviewMaxLen      = 30
	ImgURLMaxLen      = 255
)

type Movie struct {
	ID          int       `json:"id"`                   // Storage primary key
	Title       string    `json:"title"`                // Unique movie title
	Year        int32     `json:"year"`                 // Release year
	Description string    `json:"description"`          // Short synopsis, at most 80 characters
	Rating      *float64  `json:"rating"`               // Personal score out of 10, nil when unrated
	Ranking     *int      `json:"ranking"`              // Derived 1-based position by descending rating
	Review      *string   `json:"review"`               // Personal review, at most 30 characters
	ImgURL      string    `json:"img_url" db:"img_url"` // Poster URL
	CreatedAt   time.Time `json:"-" db:"created_at"`    // Timestamp for when the movie is added to our database
}

// MovieUpdate carries the mutable fields of a Movie. Nil fields are left as is.
type MovieUpdate struct {
	Rating  *float64
	Review  *string
	Ranking *int
}

// Candidate is a search hit from the metadata provider that has not been
// hydrated into a Movie yet.
type Candidate struct {
	ExternalID    int    `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title,omitempty"`
	Year          int32  `json:"year,omitempty"`
	Overview      string `json:"overview,omitempty"`
	PosterPath    string `json:"poster_path,omitempty"`
}

type MovieDetails struct {
	ExternalID  int    `json:"id"`
	Title       string `json:"title"`
	Year        int32  `json:"year"`
	Description string `json:"description"`
	ImgURL      string `json:"img_url"`
}
