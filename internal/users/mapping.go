package users

import (
	"strings"

	"github.com/JaimeStill/promptvault/pkg/query"
	"github.com/JaimeStill/promptvault/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("email", "Email").
	Project("name", "Name").
	Project("created_at", "CreatedAt")

const returning = "id, email, name, created_at"

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.CreatedAt,
	)
	return u, err
}

func scanCredentials(s repository.Scanner) (Credentials, error) {
	var c Credentials
	err := s.Scan(
		&c.User.ID,
		&c.User.Email,
		&c.User.Name,
		&c.User.CreatedAt,
		&c.PasswordHash,
	)
	return c, err
}
