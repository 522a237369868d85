// Package users holds the accounts allowed to log in to the CLI and loads
// them from YAML files.
package users

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"devcli/pkg/clitypes"
)

var (
	// ErrInvalidEntry is returned for user entries missing a name or password
	ErrInvalidEntry = errors.New("invalid user entry")
	// ErrDuplicateUser is returned when a username appears twice
	ErrDuplicateUser = errors.New("duplicate username")
)

// User is an account. Passwords are stored in plain text.
type User struct {
	Username    string
	Password    string
	AccessLevel clitypes.AccessLevel
}

// Directory is the fixed list of accounts known to a service.
type Directory struct {
	users []User
}

// NewDirectory validates list and wraps it. Usernames must be unique and
// neither name nor password may be empty or contain ':'.
func NewDirectory(list []User) (*Directory, error) {
	seen := make(map[string]bool, len(list))
	for i, u := range list {
		if u.Username == "" || u.Password == "" {
			return nil, fmt.Errorf("user %d: %w: empty username or password", i, ErrInvalidEntry)
		}
		if strings.ContainsRune(u.Username, ':') {
			return nil, fmt.Errorf("user %q: %w: username contains ':'", u.Username, ErrInvalidEntry)
		}
		if seen[u.Username] {
			return nil, fmt.Errorf("user %q: %w", u.Username, ErrDuplicateUser)
		}
		seen[u.Username] = true
	}
	copied := make([]User, len(list))
	copy(copied, list)
	return &Directory{users: copied}, nil
}

// Len returns the number of accounts.
func (d *Directory) Len() int {
	return len(d.users)
}

// Users returns a copy of the accounts.
func (d *Directory) Users() []User {
	out := make([]User, len(d.users))
	copy(out, d.users)
	return out
}

// Authenticate returns the user whose username and password both match exactly.
func (d *Directory) Authenticate(username, password string) (User, bool) {
	for _, u := range d.users {
		if u.Username != username {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1 {
			return u, true
		}
		return User{}, false
	}
	return User{}, false
}

// Defaults returns the built-in accounts used when no users file is configured.
func Defaults() []User {
	return []User{
		{Username: "admin", Password: "admin123", AccessLevel: clitypes.AccessAdmin},
		{Username: "user", Password: "user123", AccessLevel: clitypes.AccessUser},
	}
}

type fileEntry struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Level    string `yaml:"level"`
}

type fileFormat struct {
	Users []fileEntry `yaml:"users"`
}

// Parse decodes a users document:
//
//	users:
//	  - username: admin
//	    password: admin123
//	    level: admin
func Parse(data []byte) ([]User, error) {
	var doc fileFormat
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse users: %w", err)
	}
	list := make([]User, 0, len(doc.Users))
	for _, e := range doc.Users {
		level, err := clitypes.ParseAccessLevel(e.Level)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", e.Username, err)
		}
		list = append(list, User{Username: e.Username, Password: e.Password, AccessLevel: level})
	}
	return list, nil
}

// LoadFile reads and parses a users file.
func LoadFile(path string) ([]User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read users file %s: %w", path, err)
	}
	list, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}
