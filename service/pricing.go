package service

import "movie_reservation/model"

// SeatPrice is seat multiplier x showtime price x hall multiplier.
func SeatPrice(seat model.HallSeat, showtimePrice, hallMultiplier float64) float64 {
	return seat.PriceMultiplier * showtimePrice * hallMultiplier
}

// AvailableSeats returns the hall seats not yet occupied, in hall order, priced.
func AvailableSeats(hall *model.Hall, showtime *model.Showtime) []model.AvailableSeat {
	seats := make([]model.AvailableSeat, 0, len(hall.Seats))
	for _, seat := range hall.Seats {
		if showtime.OccupiedSeats.Contains(seat.SeatId) {
			continue
		}
		seats = append(seats, model.AvailableSeat{
			SeatId: seat.SeatId,
			Price:  SeatPrice(seat, showtime.Price, hall.PriceMultiplier),
		})
	}
	return seats
}

// TotalPrice sums the price of the requested seats. ok is false when a seat is not in the hall.
func TotalPrice(hall *model.Hall, showtimePrice float64, seatIds []string) (total float64, ok bool) {
	for _, seatId := range seatIds {
		seat, found := hall.Seats.Find(seatId)
		if !found {
			return 0, false
		}
		total += SeatPrice(seat, showtimePrice, hall.PriceMultiplier)
	}
	return total, true
}
