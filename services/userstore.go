package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"github.com/Theo524/Simple-User-based-Restaurant-order-system/models"
)

var (
	ErrAuthenticationFailed = errors.New("invalid username or password")
	ErrInsufficientFunds    = errors.New("insufficient balance")
	ErrUserNotFound         = errors.New("user not found")
)

// LoadUsers reads the user file. A missing or malformed file yields an empty map.
func LoadUsers(path string) map[string]*models.User {
	users := make(map[string]*models.User)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("read users file %s: %v", path, err)
		}
		return users
	}
	var list []models.User
	if err := json.Unmarshal(data, &list); err != nil {
		log.Printf("users file %s is malformed, starting empty: %v", path, err)
		return users
	}
	for i := range list {
		u := list[i]
		if u.Username == "" {
			log.Printf("users file %s: skipping record %d with no username", path, i)
			continue
		}
		users[u.Username] = &u
	}
	return users
}

// SaveUsers overwrites path with every user as a JSON array.
func SaveUsers(path string, users map[string]*models.User) error {
	list := make([]models.User, 0, len(users))
	for _, u := range users {
		list = append(list, *u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	return nil
}

// Store owns the user table and its JSON file.
type Store struct {
	path  string
	mu    sync.Mutex
	users map[string]*models.User
}

// OpenStore loads path and seeds the admin account when nothing was loaded.
func OpenStore(path, adminPassword string) (*Store, error) {
	s := &Store{path: path, users: LoadUsers(path)}
	if len(s.users) == 0 {
		s.users[models.AdminUsername] = &models.User{
			Username: models.AdminUsername,
			Password: adminPassword,
			Balance:  0,
		}
		if err := s.Save(); err != nil {
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SaveUsers(s.path, s.users)
}

// Authenticate returns a copy of the matching user.
func (s *Store) Authenticate(username, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok || u.Password != password {
		return nil, ErrAuthenticationFailed
	}
	cp := *u
	return &cp, nil
}

// Debit subtracts amount from the user's balance and persists the store.
// The admin account is never charged. If the write fails the balance is restored.
func (s *Store) Debit(username string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return ErrUserNotFound
	}
	if u.IsAdmin() {
		return nil
	}
	if amount > u.Balance {
		return ErrInsufficientFunds
	}
	u.Balance -= amount
	if err := SaveUsers(s.path, s.users); err != nil {
		u.Balance += amount
		return err
	}
	return nil
}

func (s *Store) Balance(username string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return 0, false
	}
	return u.Balance, true
}

// Put inserts or replaces a user in memory. Call Save to persist.
func (s *Store) Put(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Username] = &u
}

// Users returns a snapshot sorted by username.
func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		list = append(list, *u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list
}
