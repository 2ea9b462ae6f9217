package model

import "time"

type Showtime struct {
	DTO
	MovieId       uint          `gorm:"not null;index" json:"movieId"`
	HallId        uint          `gorm:"not null;index" json:"hallId"`
	StartTime     time.Time     `gorm:"not null;index" json:"startTime"`
	Price         float64       `gorm:"not null" json:"price"`
	OccupiedSeats StringList    `gorm:"type:jsonb;not null" json:"occupiedSeats"`
	Movie         *Movie        `gorm:"foreignKey:MovieId;constraint:OnDelete:CASCADE" json:"movie,omitempty"`
	Hall          *Hall         `gorm:"foreignKey:HallId;constraint:OnDelete:CASCADE" json:"hall,omitempty"`
	Reservations  []Reservation `gorm:"foreignKey:ShowtimeId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type CreateShowtimeInput struct {
	MovieId   uint      `json:"movieId" validate:"required"`
	HallId    uint      `json:"hallId" validate:"required"`
	StartTime time.Time `json:"startTime" validate:"required"`
	Price     *float64  `json:"price" validate:"required,gte=0"`
}

type PatchShowtimeInput struct {
	MovieId   *uint      `json:"movieId" validate:"omitempty,gt=0"`
	HallId    *uint      `json:"hallId" validate:"omitempty,gt=0"`
	StartTime *time.Time `json:"startTime"`
	Price     *float64   `json:"price" validate:"omitempty,gte=0"`
}

// PublicShowtime is the listing shape for users.
type PublicShowtime struct {
	ID        uint        `json:"id"`
	Movie     PublicMovie `json:"movie"`
	HallId    uint        `json:"hallId"`
	HallName  string      `json:"hallName"`
	StartTime time.Time   `json:"startTime"`
	Price     float64     `json:"price"`
}

// AvailableSeat is a bookable seat with its final price.
type AvailableSeat struct {
	SeatId string  `json:"seatId"`
	Price  float64 `json:"price"`
}
