package auth

import "testing"

func TestHashPassword_Deterministic(t *testing.T) {
	first := HashPassword("7", "correct horse")
	second := HashPassword("7", "correct horse")

	if first != second {
		t.Fatalf("HashPassword() not deterministic: %q != %q", first, second)
	}
	if len(first) != 64 {
		t.Errorf("HashPassword() length = %d, want 64 hex chars", len(first))
	}
}

func TestHashPassword_Distinct(t *testing.T) {
	tests := []struct {
		name      string
		courierID string
		password  string
	}{
		{"other password", "7", "battery staple"},
		{"other courier", "8", "correct horse"},
		{"empty password", "7", ""},
	}

	base := HashPassword("7", "correct horse")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HashPassword(tt.courierID, tt.password); got == base {
				t.Errorf("HashPassword(%q, %q) collides with base hash", tt.courierID, tt.password)
			}
		})
	}
}

func TestGenerateCSRFSecret(t *testing.T) {
	a, err := GenerateCSRFSecret()
	if err != nil {
		t.Fatalf("GenerateCSRFSecret() error = %v", err)
	}
	b, _ := GenerateCSRFSecret()

	if len(a) != 32 {
		t.Errorf("secret length = %d, want 32", len(a))
	}
	if string(a) == string(b) {
		t.Error("two secrets should differ")
	}
}
