package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Theo524/Simple-User-based-Restaurant-order-system/models"
)

func writeUsers(t *testing.T, users ...models.User) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	m := make(map[string]*models.User)
	for i := range users {
		m[users[i].Username] = &users[i]
	}
	if err := SaveUsers(path, m); err != nil {
		t.Fatalf("SaveUsers: %v", err)
	}
	return path
}

func TestLoadUsers_MissingFile(t *testing.T) {
	users := LoadUsers(filepath.Join(t.TempDir(), "nope.json"))
	if len(users) != 0 {
		t.Errorf("len(users) = %d, want 0", len(users))
	}
}

func TestLoadUsers_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte(`[{"username": "alice",`), 0o644); err != nil {
		t.Fatal(err)
	}
	users := LoadUsers(path)
	if len(users) != 0 {
		t.Errorf("len(users) = %d, want 0", len(users))
	}
}

func TestLoadUsers_LaterDuplicateWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	data := `[
		{"username": "alice", "password": "old", "balance": 1},
		{"username": "alice", "password": "new", "balance": 2}
	]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	users := LoadUsers(path)
	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(users))
	}
	if u := users["alice"]; u.Password != "new" || u.Balance != 2 {
		t.Errorf("alice = %+v, want password new, balance 2", *u)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := writeUsers(t,
		models.User{Username: "admin", Password: "adminpass", Balance: 0},
		models.User{Username: "alice", Password: "pw1", Balance: 50},
		models.User{Username: "bob", Password: "pw2", Balance: 12.75},
	)
	first := LoadUsers(path)
	if err := SaveUsers(path, first); err != nil {
		t.Fatalf("SaveUsers: %v", err)
	}
	second := LoadUsers(path)
	if len(first) != len(second) {
		t.Fatalf("len changed: %d -> %d", len(first), len(second))
	}
	for name, u := range first {
		got, ok := second[name]
		if !ok {
			t.Errorf("user %q missing after round trip", name)
			continue
		}
		if *got != *u {
			t.Errorf("user %q = %+v, want %+v", name, *got, *u)
		}
	}
}

func TestOpenStore_SeedsAdminWhenFileAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	s, err := OpenStore(path, "adminpass")
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	users := s.Users()
	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(users))
	}
	want := models.User{Username: "admin", Password: "adminpass", Balance: 0}
	if users[0] != want {
		t.Errorf("seeded user = %+v, want %+v", users[0], want)
	}

	onDisk := LoadUsers(path)
	if len(onDisk) != 1 || *onDisk["admin"] != want {
		t.Errorf("persisted users = %v, want only admin", onDisk)
	}
}

func TestOpenStore_KeepsExistingUsers(t *testing.T) {
	path := writeUsers(t, models.User{Username: "alice", Password: "pw1", Balance: 50})
	s, err := OpenStore(path, "adminpass")
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	users := s.Users()
	if len(users) != 1 || users[0].Username != "alice" {
		t.Errorf("users = %+v, want only alice", users)
	}
}

func TestStore_Authenticate(t *testing.T) {
	path := writeUsers(t,
		models.User{Username: "admin", Password: "adminpass"},
		models.User{Username: "alice", Password: "pw1", Balance: 50},
	)
	s, err := OpenStore(path, "adminpass")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		user, pass string
		ok         bool
	}{
		{"admin", "adminpass", true},
		{"alice", "pw1", true},
		{"alice", "PW1", false},
		{"alice", "", false},
		{"Alice", "pw1", false},
		{"bob", "pw1", false},
		{"", "", false},
	}
	for _, tt := range tests {
		u, err := s.Authenticate(tt.user, tt.pass)
		if tt.ok {
			if err != nil {
				t.Errorf("Authenticate(%q, %q) error = %v", tt.user, tt.pass, err)
				continue
			}
			if u.Username != tt.user {
				t.Errorf("Authenticate(%q) returned %q", tt.user, u.Username)
			}
			continue
		}
		if !errors.Is(err, ErrAuthenticationFailed) {
			t.Errorf("Authenticate(%q, %q) error = %v, want ErrAuthenticationFailed", tt.user, tt.pass, err)
		}
	}
}

func TestStore_Debit(t *testing.T) {
	path := writeUsers(t,
		models.User{Username: "admin", Password: "adminpass"},
		models.User{Username: "alice", Password: "pw1", Balance: 50},
	)
	s, err := OpenStore(path, "adminpass")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Debit("alice", 51); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Debit over balance error = %v, want ErrInsufficientFunds", err)
	}
	if b, _ := s.Balance("alice"); b != 50 {
		t.Errorf("balance after failed debit = %v, want 50", b)
	}

	if err := s.Debit("alice", 50); err != nil {
		t.Fatalf("Debit exact balance: %v", err)
	}
	if b, _ := s.Balance("alice"); b != 0 {
		t.Errorf("balance = %v, want 0", b)
	}
	if u := LoadUsers(path)["alice"]; u.Balance != 0 {
		t.Errorf("persisted balance = %v, want 0", u.Balance)
	}

	if err := s.Debit("admin", 1000); err != nil {
		t.Errorf("admin debit error = %v, want nil", err)
	}
	if b, _ := s.Balance("admin"); b != 0 {
		t.Errorf("admin balance = %v, want 0", b)
	}

	if err := s.Debit("ghost", 1); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user error = %v, want ErrUserNotFound", err)
	}
}

func TestStore_UsersSorted(t *testing.T) {
	path := writeUsers(t,
		models.User{Username: "carol", Password: "c"},
		models.User{Username: "admin", Password: "a"},
		models.User{Username: "bob", Password: "b"},
	)
	s, err := OpenStore(path, "adminpass")
	if err != nil {
		t.Fatal(err)
	}
	got := s.Users()
	want := []string{"admin", "bob", "carol"}
	for i, u := range got {
		if u.Username != want[i] {
			t.Errorf("Users()[%d] = %q, want %q", i, u.Username, want[i])
		}
	}
}

func TestLoadUsers_SkipsRecordsWithoutUsername(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"null record", `[null]`, nil},
		{"empty object", `[{}]`, nil},
		{"blank name", `[{"username": "", "password": "", "balance": 3}]`, nil},
		{"mixed", `[{}, {"username": "alice", "password": "pw1", "balance": 50}]`, []string{"alice"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "users.json")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			users := LoadUsers(path)
			if len(users) != len(tt.want) {
				t.Fatalf("len(users) = %d, want %d", len(users), len(tt.want))
			}
			for _, name := range tt.want {
				if _, ok := users[name]; !ok {
					t.Errorf("user %q missing", name)
				}
			}
			if _, ok := users[""]; ok {
				t.Error("record with empty username was loaded")
			}
		})
	}
}

func TestOpenStore_BlankRecordSeedsAdmin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte(`[null]`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := OpenStore(path, "adminpass")
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if _, err := s.Authenticate("admin", "adminpass"); err != nil {
		t.Errorf("admin login after blank file: %v", err)
	}
	if _, err := s.Authenticate("", ""); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("empty login error = %v, want ErrAuthenticationFailed", err)
	}
}

func TestStore_DebitRestoresBalanceWhenSaveFails(t *testing.T) {
	path := writeUsers(t, models.User{Username: "alice", Password: "pw1", Balance: 50})
	s, err := OpenStore(path, "adminpass")
	if err != nil {
		t.Fatal(err)
	}
	// a directory in place of the file makes every write fail
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := s.Debit("alice", 10); err == nil {
		t.Fatal("Debit succeeded with an unwritable users file")
	}
	if b, _ := s.Balance("alice"); b != 50 {
		t.Errorf("balance = %v, want 50", b)
	}
}
