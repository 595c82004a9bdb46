package paymentmethod

import (
	"encoding/json"
	"fmt"
)

// Status represents the lifecycle status of a payment method
type Status uint8

const (
	StatusEnabled Status = iota
	StatusDisabled
	StatusIncoming
)

var statusStrings = map[Status]string{
	StatusEnabled:  "ENABLED",
	StatusDisabled: "DISABLED",
	StatusIncoming: "INCOMING",
}

// StatusParseError is returned when a wire string does not name a known status
type StatusParseError struct {
	Value string
}

func (err *StatusParseError) Error() string {
	return fmt.Sprintf("unknown payment method status: '%s'", err.Value)
}

// ParseStatus decodes the wire representation of a status.
// Unknown strings are rejected with a StatusParseError.
func ParseStatus(raw string) (Status, error) {
	for status, str := range statusStrings {
		if str == raw {
			return status, nil
		}
	}
	return 0, &StatusParseError{Value: raw}
}

// String returns the wire representation of the status
func (status Status) String() string {
	return statusStrings[status]
}

// MarshalJSON encodes the status using its wire representation
func (status Status) MarshalJSON() ([]byte, error) {
	str, ok := statusStrings[status]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid payment method status %d", status)
	}
	return json.Marshal(str)
}

// UnmarshalJSON decodes the status from its wire representation
func (status *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*status = parsed
	return nil
}
