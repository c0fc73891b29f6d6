package domain_test

import (
	"encoding/json"
	"testing"

	"go.trai.ch/pinset/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	s1 := "black"
	s2 := "black"

	is1 := domain.NewInternedString(s1)
	is2 := domain.NewInternedString(s2)

	// Verify that the underlying handles are equal
	if is1.Value() != is2.Value() {
		t.Errorf("Expected handles to be equal for identical strings, got %v and %v", is1.Value(), is2.Value())
	}

	// Verify String() method
	if is1.String() != s1 {
		t.Errorf("Expected String() to return %q, got %q", s1, is1.String())
	}
}

func TestInternedStringJSON(t *testing.T) {
	t.Run("Marshal and Unmarshal preserve string value", func(t *testing.T) {
		original := domain.NewInternedString("django-stubs")

		// Marshal to JSON
		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("Failed to marshal InternedString: %v", err)
		}

		// Verify marshaled value
		expectedJSON := `"django-stubs"`
		if string(data) != expectedJSON {
			t.Errorf("Expected JSON %q, got %q", expectedJSON, string(data))
		}

		// Unmarshal from JSON
		var unmarshaled domain.InternedString
		err = json.Unmarshal(data, &unmarshaled)
		if err != nil {
			t.Fatalf("Failed to unmarshal InternedString: %v", err)
		}

		if unmarshaled.String() != original.String() {
			t.Errorf("Expected %q after round trip, got %q", original.String(), unmarshaled.String())
		}
	})

	t.Run("Zero value marshals to empty string", func(t *testing.T) {
		var zero domain.InternedString

		data, err := json.Marshal(zero)
		if err != nil {
			t.Fatalf("Failed to marshal zero InternedString: %v", err)
		}

		if string(data) != `""` {
			t.Errorf("Expected empty JSON string, got %q", string(data))
		}
	})
}
