// Package domain contains entity without logic, just meta-data
package domain

import "strings"

const (
	MaxUserIDLen      = 64
	MaxDisplayNameLen = 64
)

type UserID string

// Identity is who a connection claims to be at join time.
type Identity struct {
	UserID      UserID `json:"userId"`
	DisplayName string `json:"displayName"`
}

// NewIdentity trims and checks the raw values before they reach the registry.
func NewIdentity(userID, displayName string) (Identity, error) {
	userID = strings.TrimSpace(userID)
	displayName = strings.TrimSpace(displayName)
	if userID == "" {
		return Identity{}, ErrUserIDEmpty
	}
	if len(userID) > MaxUserIDLen {
		return Identity{}, ErrUserIDTooLong
	}
	if displayName == "" {
		displayName = userID
	}
	if len(displayName) > MaxDisplayNameLen {
		return Identity{}, ErrDisplayNameTooLong
	}
	return Identity{UserID: UserID(userID), DisplayName: displayName}, nil
}

func (i Identity) IsZero() bool { return i.UserID == "" }
