package models

import "time"

type LineItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Receipt is the result of a successfully placed order.
type Receipt struct {
	ID       string
	Username string
	Items    []LineItem
	Total    float64
	Balance  float64 // balance after the order
	PlacedAt time.Time
}
