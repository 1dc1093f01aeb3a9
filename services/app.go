package services

import (
	"context"
	"errors"

	"github.com/Theo524/Simple-User-based-Restaurant-order-system/models"
)

var ErrForbidden = errors.New("admin only")

// App bundles the store, menu and order journal that every session shares.
type App struct {
	Store   *Store
	Catalog *Catalog
	Orders  OrderLog
}

func NewApp(store *Store, catalog *Catalog, orders OrderLog) *App {
	if orders == nil {
		orders = NopOrderLog{}
	}
	return &App{Store: store, Catalog: catalog, Orders: orders}
}

// Login opens a session for valid credentials.
func (a *App) Login(username, password string) (*Session, error) {
	u, err := a.Store.Authenticate(username, password)
	if err != nil {
		return nil, err
	}
	return &Session{
		username: u.Username,
		admin:    u.IsAdmin(),
		store:    a.Store,
		catalog:  a.Catalog,
		orders:   a.Orders,
	}, nil
}

// Logout drops any unsubmitted items. The session must not be used afterwards.
func (a *App) Logout(s *Session) {
	if s != nil {
		s.Clear()
	}
}

// Roster lists every account; only the admin may see it.
func (a *App) Roster(s *Session) ([]models.User, error) {
	if s == nil || !s.IsAdmin() {
		return nil, ErrForbidden
	}
	return a.Store.Users(), nil
}

// RecentOrders returns the session user's latest journaled orders.
func (a *App) RecentOrders(ctx context.Context, s *Session, limit int) ([]models.Receipt, error) {
	return a.Orders.RecentOrders(ctx, s.Username(), limit)
}
