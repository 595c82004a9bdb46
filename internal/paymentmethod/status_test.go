package paymentmethod

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    Status
		wantErr bool
	}{
		{"ENABLED", StatusEnabled, false},
		{"DISABLED", StatusDisabled, false},
		{"INCOMING", StatusIncoming, false},
		{"enabled", 0, true},
		{"UNKNOWN", 0, true},
		{"", 0, true},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			status, err := ParseStatus(test.raw)
			if test.wantErr {
				var parseErr *StatusParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("got error %v, want a parse error", err)
				}
				if parseErr.Value != test.raw {
					t.Errorf("parse error carries value %q, want %q", parseErr.Value, test.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if status != test.want {
				t.Errorf("got status %v, want %v", status, test.want)
			}
		})
	}
}

func TestStatusJSONRoundTrip(t *testing.T) {
	for _, status := range []Status{StatusEnabled, StatusDisabled, StatusIncoming} {
		raw, err := json.Marshal(status)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var decoded Status
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decoded != status {
			t.Errorf("round trip changed %v into %v", status, decoded)
		}
	}

	if _, err := json.Marshal(Status(42)); err == nil {
		t.Error("marshalling an invalid status did not fail")
	}
	var decoded Status
	if err := json.Unmarshal([]byte(`"NOPE"`), &decoded); err == nil {
		t.Error("unmarshalling an unknown status did not fail")
	}
}
