package record

import (
	"strings"
	"testing"
)

func TestNewIDIsValid(t *testing.T) {
	id, err := NewID()
	if err != nil {
		t.Fatalf("NewID: %v", err)
	}
	if err := ValidateID(id); err != nil {
		t.Errorf("generated ID %q did not validate: %v", id, err)
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"a1b2c3d4e5f6", false},
		{"001Dn00000AbCdEFGH", false},
		{"001Dn00000AbCdE", false},
		{"short", true},
		{"has-dash-in-id!", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("   "); err == nil {
		t.Error("expected error for blank name")
	}
	if err := ValidateName("Wasatch Welding"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHasCategory(t *testing.T) {
	s := Summary{Categories: []string{"Retail", "Construction"}}
	if !s.HasCategory("Construction") {
		t.Error("expected Construction to match")
	}
	if s.HasCategory("Consulting") {
		t.Error("did not expect Consulting to match")
	}
}

func TestPreviewTruncates(t *testing.T) {
	r := Record{Description: strings.Repeat("x", 100)}
	got := r.Preview(20)
	if len(got) != 20 || !strings.HasSuffix(got, "...") {
		t.Errorf("Preview(20) = %q", got)
	}

	r.Description = "line one\nline two"
	if got := r.Preview(80); got != "line one line two" {
		t.Errorf("Preview flattened = %q", got)
	}
}
