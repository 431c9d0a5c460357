// Package collaborator defines collaborator records.
package collaborator

import (
	"errors"
	"strings"
	"time"
)

// Collection is the remote collection name for collaborators.
const Collection = "collaborators"

// Collaborator represents a non-member helper of the organization.
type Collaborator struct {
	ID             string    `json:"id,omitempty"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	DocumentNumber string    `json:"document_number,omitempty"`
	Role           string    `json:"role"`
	Phone          string    `json:"phone,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitzero"`
}

// ErrInvalidInput indicates a missing name or role.
var ErrInvalidInput = errors.New("invalid collaborator input")

// Validate checks fields required to create a collaborator.
func Validate(c Collaborator) error {
	if strings.TrimSpace(c.FirstName) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(c.LastName) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(c.Role) == "" {
		return ErrInvalidInput
	}
	return nil
}
