package model

type Movie struct {
	DTO
	Title       string     `gorm:"uniqueIndex;not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Description string     `gorm:"type:text;not null" json:"description"`
	PosterUrl   string     `gorm:"uniqueIndex;not null" json:"posterUrl"`
	Genres      StringList `gorm:"type:jsonb;not null" json:"genres"`
	Showtimes   []Showtime `gorm:"foreignKey:MovieId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type CreateMovieInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	PosterUrl   string   `json:"posterUrl" validate:"required,url"`
	Genres      []string `json:"genres" validate:"required,min=1,dive,required"`
}

type PatchMovieInput struct {
	Title       *string   `json:"title" validate:"omitempty,min=1"`
	Description *string   `json:"description" validate:"omitempty,min=1"`
	PosterUrl   *string   `json:"posterUrl" validate:"omitempty,url"`
	Genres      *[]string `json:"genres" validate:"omitempty,min=1,dive,required"`
}

// PublicMovie is what non-admin users see of a movie.
type PublicMovie struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PosterUrl   string     `json:"posterUrl"`
	Genres      StringList `json:"genres"`
}

type PosterSignatureInput struct {
	Folder   string `json:"folder"`
	PublicId string `json:"publicId"`
}
