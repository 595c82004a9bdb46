package transaction

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	canonical := "b0ffc0de-0000-4000-8000-000000000042"

	t.Run("canonicalForm", func(t *testing.T) {
		id, err := Parse(canonical)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id.String() != canonical {
			t.Errorf("got %q, want %q", id.String(), canonical)
		}
	})

	t.Run("uppercaseIsCanonicalized", func(t *testing.T) {
		id, err := Parse(strings.ToUpper(canonical))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id.String() != canonical {
			t.Errorf("got %q, want the lowercase canonical form %q", id.String(), canonical)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		for _, raw := range []string{"", "not-a-uuid", "b0ffc0de"} {
			if _, err := Parse(raw); !errors.Is(err, ErrInvalidID) {
				t.Errorf("Parse(%q): got error %v, want %v", raw, err, ErrInvalidID)
			}
		}
	})
}

func TestIDBase64(t *testing.T) {
	canonical := "b0ffc0de-0000-4000-8000-000000000042"
	id, err := Parse(canonical)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(id.Base64())
	if err != nil {
		t.Fatalf("encoded ID is not valid base64: %v", err)
	}
	if string(decoded) != canonical {
		t.Errorf("got decoded %q, want %q", decoded, canonical)
	}
}
