package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Theo524/Simple-User-based-Restaurant-order-system/models"
)

// Session is one logged-in user's cart.
type Session struct {
	username string
	admin    bool
	store    *Store
	catalog  *Catalog
	orders   OrderLog
	items    []models.LineItem
}

func (s *Session) Username() string {
	return s.username
}

func (s *Session) IsAdmin() bool {
	return s.admin
}

// Balance reads the user's current balance from the store.
func (s *Session) Balance() float64 {
	b, _ := s.store.Balance(s.username)
	return b
}

// AddItem appends the named menu item at its catalog price.
func (s *Session) AddItem(name string) error {
	price, err := s.catalog.Price(name)
	if err != nil {
		return err
	}
	s.items = append(s.items, models.LineItem{Name: name, Price: price})
	return nil
}

func (s *Session) Items() []models.LineItem {
	out := make([]models.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Session) TotalCost() float64 {
	var total float64
	for _, it := range s.items {
		total += it.Price
	}
	return total
}

// PlaceOrder charges the cart total to the user. On failure the cart is left
// as it was so the caller can retry or clear it.
func (s *Session) PlaceOrder(ctx context.Context) (*models.Receipt, error) {
	total := s.TotalCost()
	if !s.admin {
		if err := s.store.Debit(s.username, total); err != nil {
			return nil, err
		}
	}
	receipt := &models.Receipt{
		ID:       uuid.NewString(),
		Username: s.username,
		Items:    s.Items(),
		Total:    total,
		Balance:  s.Balance(),
		PlacedAt: time.Now(),
	}
	s.items = nil

	if s.orders != nil {
		if err := s.orders.RecordOrder(ctx, receipt); err != nil {
			log.Printf("record order %s for %s: %v", receipt.ID, s.username, err)
		}
	}
	return receipt, nil
}

// Clear discards every line item.
func (s *Session) Clear() {
	s.items = nil
}
