package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is stored as a JSON array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Contains reports whether v is in the list.
func (l StringList) Contains(v string) bool {
	for _, s := range l {
		if s == v {
			return true
		}
	}
	return false
}

type HallSeat struct {
	SeatId          string  `json:"seatId" validate:"required"`
	PriceMultiplier float64 `json:"priceMultiplier" validate:"gt=0"`
}

// HallSeats is the ordered seat layout of a hall, stored as JSON.
type HallSeats []HallSeat

func (s HallSeats) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]HallSeat(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *HallSeats) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// Find returns the seat with the given id.
func (s HallSeats) Find(seatId string) (HallSeat, bool) {
	for _, seat := range s {
		if seat.SeatId == seatId {
			return seat, true
		}
	}
	return HallSeat{}, false
}

func (s HallSeats) Ids() StringList {
	ids := make(StringList, 0, len(s))
	for _, seat := range s {
		ids = append(ids, seat.SeatId)
	}
	return ids
}

func scanJSON(value interface{}, dest any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return json.Unmarshal([]byte(v), dest)
	case []byte:
		return json.Unmarshal(v, dest)
	default:
		return fmt.Errorf("unsupported scan type for json column: %T", value)
	}
}
