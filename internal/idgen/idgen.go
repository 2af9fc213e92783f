// Package idgen provides short, URL-safe unique ID generation backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for the entity families served by this package.
const (
	EventPrefix = "evt-"
	UserPrefix  = "usr-"
)

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

// NewEventID returns a new unique event ID.
func NewEventID() (string, error) {
	return GenerateWithPrefix(EventPrefix)
}

// NewUserID returns a new unique user ID.
func NewUserID() (string, error) {
	return GenerateWithPrefix(UserPrefix)
}

// GenerateWithPrefix returns a new unique ID with the given prefix.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// NewSecret returns a long random bearer secret for a user account.
func NewSecret() (string, error) {
	s, err := nanoid.Generate(Alphabet, 40)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return s, nil
}
