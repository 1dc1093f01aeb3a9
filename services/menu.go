package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Theo524/Simple-User-based-Restaurant-order-system/models"
)

var ErrUnknownItem = errors.New("unknown menu item")

// Catalog is the fixed menu. Order is preserved for display.
type Catalog struct {
	items  []models.MenuItem
	prices map[string]float64
}

func NewCatalog(items []models.MenuItem) *Catalog {
	c := &Catalog{
		items:  make([]models.MenuItem, len(items)),
		prices: make(map[string]float64, len(items)),
	}
	copy(c.items, items)
	for _, it := range items {
		c.prices[it.Name] = it.Price
	}
	return c
}

// DefaultCatalog returns the restaurant's standard menu.
func DefaultCatalog() *Catalog {
	return NewCatalog([]models.MenuItem{
		{Name: "Burger", Price: 10},
		{Name: "Pizza", Price: 12},
		{Name: "Pasta", Price: 15},
		{Name: "Salad", Price: 8},
		{Name: "Steak", Price: 20},
		{Name: "Sushi", Price: 18},
		{Name: "Soup", Price: 6},
		{Name: "Sandwich", Price: 7},
		{Name: "Dessert", Price: 5},
	})
}

func (c *Catalog) Items() []models.MenuItem {
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Price(name string) (float64, error) {
	p, ok := c.prices[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownItem, name)
	}
	return p, nil
}

// Lookup finds a menu item name ignoring case.
func (c *Catalog) Lookup(name string) (string, bool) {
	for _, it := range c.items {
		if strings.EqualFold(it.Name, name) {
			return it.Name, true
		}
	}
	return "", false
}

// FormatMoney renders an amount the way every front end shows it.
func FormatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
