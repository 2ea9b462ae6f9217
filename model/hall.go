package model

type Hall struct {
	DTO
	Name            string     `gorm:"uniqueIndex;not null" json:"name"`
	Seats           HallSeats  `gorm:"type:jsonb;not null" json:"seats"`
	PriceMultiplier float64    `gorm:"not null" json:"priceMultiplier"`
	Showtimes       []Showtime `gorm:"foreignKey:HallId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type CreateHallInput struct {
	Name            string     `json:"name" validate:"required"`
	Seats           []HallSeat `json:"seats" validate:"required,min=1,unique=SeatId,dive"`
	PriceMultiplier *float64   `json:"priceMultiplier" validate:"omitempty,gt=0"`
}

type PatchHallInput struct {
	Name            *string     `json:"name" validate:"omitempty,min=1"`
	Seats           *[]HallSeat `json:"seats" validate:"omitempty,min=1,unique=SeatId,dive"`
	PriceMultiplier *float64    `json:"priceMultiplier" validate:"omitempty,gt=0"`
}
