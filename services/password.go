package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/Theo524/Simple-User-based-Restaurant-order-system/models"
)

const (
	passwordLen     = 8
	usernameLetters = 5
	lowerLetters    = "abcdefghijklmnopqrstuvwxyz"
	upperLetters    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits          = "0123456789"
	minDemoBalance  = 10
	maxDemoBalance  = 100
)

func randIntn(n int64) (int64, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0, err
	}
	return v.Int64(), nil
}

func randString(alphabet string, n int) (string, error) {
	out := make([]byte, n)
	for i := range out {
		j, err := randIntn(int64(len(alphabet)))
		if err != nil {
			return "", err
		}
		out[i] = alphabet[j]
	}
	return string(out), nil
}

// GeneratePassword returns an 8-character alphanumeric password.
func GeneratePassword() (string, error) {
	return randString(upperLetters+lowerLetters+digits, passwordLen)
}

// GenerateRandomUsers builds n demo accounts with balances in [10, 100).
// Names that collide are regenerated, so the result always has n users.
func GenerateRandomUsers(n int) ([]models.User, error) {
	seen := make(map[string]bool, n)
	users := make([]models.User, 0, n)
	for len(users) < n {
		name, err := randString(lowerLetters, usernameLetters)
		if err != nil {
			return nil, fmt.Errorf("username: %w", err)
		}
		suffix, err := randIntn(99)
		if err != nil {
			return nil, fmt.Errorf("username suffix: %w", err)
		}
		name += strconv.FormatInt(suffix+1, 10)
		if seen[name] || name == models.AdminUsername {
			continue
		}
		seen[name] = true

		password, err := GeneratePassword()
		if err != nil {
			return nil, fmt.Errorf("password: %w", err)
		}
		// cents resolution is enough for a demo balance
		cents, err := randIntn((maxDemoBalance - minDemoBalance) * 100)
		if err != nil {
			return nil, fmt.Errorf("balance: %w", err)
		}
		users = append(users, models.User{
			Username: name,
			Password: password,
			Balance:  minDemoBalance + float64(cents)/100,
		})
	}
	return users, nil
}

// SeedDemoUsers adds n random users to the store and saves it.
func SeedDemoUsers(s *Store, n int) ([]models.User, error) {
	users, err := GenerateRandomUsers(n)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		s.Put(u)
	}
	if err := s.Save(); err != nil {
		return nil, err
	}
	return users, nil
}
