package utils

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	if got := SanitizeIdentifier(" 503-DUBAI\x00 "); got != "503-DUBAI" {
		t.Errorf("SanitizeIdentifier = %q", got)
	}
	if got := SanitizeOptionalText(nil); got != nil {
		t.Errorf("nil input should stay nil")
	}
	blank := "   "
	if got := SanitizeOptionalText(&blank); got != nil {
		t.Errorf("blank input should map to nil, got %q", *got)
	}
	note := " nuts\nshellfish "
	if got := SanitizeOptionalText(&note); got == nil || *got != "nuts\nshellfish" {
		t.Errorf("SanitizeOptionalText = %v", got)
	}
	if got := SanitizeText(" Guest's birthday & <cake>\x07 "); got != "Guest's birthday & <cake>" {
		t.Errorf("SanitizeText should keep text unescaped, got %q", got)
	}
}

func TestValidateStruct(t *testing.T) {
	type req struct {
		Name  string `validate:"required,max=5"`
		Order string `validate:"omitempty,oneof=asc desc"`
	}

	if err := ValidateStruct(req{Name: "Alice"}); err != nil {
		t.Errorf("valid struct rejected: %v", err)
	}

	err := ValidateStruct(req{Order: "up"})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "Name is required") || !strings.Contains(msg, "Order must be one of") {
		t.Errorf("unexpected message: %s", msg)
	}
}
