package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns a random (v4) uuid as exactly 32 lowercase hex characters.
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
