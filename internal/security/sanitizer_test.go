package security

import "testing"

func TestSanitizeCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Trims whitespace", "  Lord Kaveh  ", "Lord Kaveh"},
		{"Strips markup", "<script>alert(1)</script>Kaveh", "Kaveh"},
		{"Removes null bytes", "Ka\x00veh", "Kaveh"},
		{"Plain text untouched", "PLAC", "PLAC"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeCell(tt.input); got != tt.want {
				t.Errorf("SanitizeCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateFileType(t *testing.T) {
	allowed := []string{".xlsx", ".xls"}

	tests := []struct {
		name     string
		filename string
		want     bool
	}{
		{"xlsx", "671_20250810_2040utc.xlsx", true},
		{"xls", "671_20250810_2040utc.xls", true},
		{"Uppercase extension", "671_20250810_2040utc.XLSX", true},
		{"csv", "671_20250810_2040utc.csv", false},
		{"No extension", "671_20250810_2040utc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateFileType(tt.filename, allowed); got != tt.want {
				t.Errorf("ValidateFileType(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestValidateFileSize(t *testing.T) {
	if !ValidateFileSize(100, 1000) {
		t.Error("ValidateFileSize(100, 1000) = false, want true")
	}
	if ValidateFileSize(0, 1000) {
		t.Error("ValidateFileSize(0, 1000) = true, want false")
	}
	if ValidateFileSize(2000, 1000) {
		t.Error("ValidateFileSize(2000, 1000) = true, want false")
	}
}
