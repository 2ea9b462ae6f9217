package model

type Reservation struct {
	DTO
	Code       string     `gorm:"size:36;uniqueIndex;not null" json:"code"`
	UserId     uint       `gorm:"not null;index" json:"userId"`
	ShowtimeId uint       `gorm:"not null;index" json:"showtimeId"`
	Seats      StringList `gorm:"type:jsonb;not null" json:"seats"`
	TotalPrice float64    `gorm:"not null" json:"totalPrice"`
	Showtime   *Showtime  `gorm:"foreignKey:ShowtimeId;constraint:OnDelete:CASCADE" json:"showtime,omitempty"`
	User       *User      `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE" json:"-"`
}

type CreateReservationInput struct {
	ShowtimeId uint     `json:"showtimeId"`
	Seats      []string `json:"seats"`
}

type Report struct {
	TotalReservations int64          `json:"totalReservations"`
	TotalRevenue      float64        `json:"totalRevenue"`
	RevenueByMovie    []MovieRevenue `json:"revenueByMovie"`
}

type MovieRevenue struct {
	MovieId      uint    `json:"movieId"`
	Title        string  `json:"title"`
	Reservations int64   `json:"reservations"`
	Revenue      float64 `json:"revenue"`
}
