package utils

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const ticketQRSize = 256

// TicketQRCode renders the PNG ticket shown at the hall entrance for a reservation.
func TicketQRCode(reservationCode string, showtimeId uint, seats []string) ([]byte, error) {
	if reservationCode == "" {
		return nil, fmt.Errorf("empty reservation code")
	}
	content := fmt.Sprintf("reservation:%s;showtime:%d;seats:%v", reservationCode, showtimeId, seats)
	return qrcode.Encode(content, qrcode.Medium, ticketQRSize)
}
