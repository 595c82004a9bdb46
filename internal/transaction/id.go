package transaction

import (
	"encoding/base64"
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when a raw transaction ID is not in its canonical form
var ErrInvalidID = errors.New("transaction id is not in its canonical form")

// ID represents a downstream payment transaction identifier.
// Its canonical form is the lowercase hyphenated UUID string.
type ID struct {
	value uuid.UUID
}

// Parse decodes a transaction ID from its canonical form
func Parse(raw string) (ID, error) {
	value, err := uuid.Parse(raw)
	if err != nil {
		return ID{}, ErrInvalidID
	}
	return ID{value: value}, nil
}

// String returns the canonical form of the transaction ID
func (id ID) String() string {
	return id.value.String()
}

// Base64 returns the standard base64 encoding of the canonical form,
// which is how the ID is handed to external consumers.
func (id ID) Base64() string {
	return base64.StdEncoding.EncodeToString([]byte(id.String()))
}
