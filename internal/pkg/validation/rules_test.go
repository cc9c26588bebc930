package validation

import "testing"

func TestIsValidTemplateCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"monthly_progress", true},
		{"ab", true},
		{"a1_b2", true},
		{"", false},
		{"a", false},
		{"Monthly", false},
		{"1monthly", false},
		{"monthly-progress", false},
		{"monthly progress", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := IsValidTemplateCode(tt.code); got != tt.valid {
				t.Errorf("IsValidTemplateCode(%q) = %v, want %v", tt.code, got, tt.valid)
			}
		})
	}
}

func TestIsValidLanguage(t *testing.T) {
	tests := []struct {
		lang  string
		valid bool
	}{
		{"ko", true},
		{"en", true},
		{"", true}, // empty means the template default
		{"kor", false},
		{"KO", false},
		{"k1", false},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			if got := IsValidLanguage(tt.lang); got != tt.valid {
				t.Errorf("IsValidLanguage(%q) = %v, want %v", tt.lang, got, tt.valid)
			}
		})
	}
}
