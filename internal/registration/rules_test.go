package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMobileRe(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"9876543210", true},
		{"6000000000", true},
		{"7123456789", true},
		{"8123456789", true},
		{"1234567890", false}, // первая цифра вне 6-9
		{"5876543210", false},
		{"987654321", false},   // 9 цифр
		{"98765432100", false}, // 11 цифр
		{"98765a3210", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.valid, MobileRe.MatchString(tt.value))
		})
	}
}

func TestAadhaarRe(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"123456789012", true},
		{"000000000000", true},
		{"12345678901", false},
		{"1234567890123", false},
		{"12345678901a", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.valid, AadhaarRe.MatchString(tt.value))
		})
	}
}

func TestPANRe(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"ABCDE1234F", true},
		{"abcde1234f", false},
		{"ABCD1234EF", false},
		{"ABCDE12345", false},
		{"ABCDE1234FF", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.valid, PANRe.MatchString(tt.value))
		})
	}
}

func TestGSTRe(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"29ABCDE1234F1Z5", true},
		{"07ABCDE1234F2ZA", true},
		{"29ABCDE1234F15Z", false}, // Z не на своей позиции
		{"29ABCDE1234F1X5", false}, // вместо литерала Z другая буква
		{"29ABCDE1234F1Z", false},  // 14 символов
		{"29ABCDE1234F1Z55", false},
		{"29ABCDE1234F0Z5", false}, // 13-я позиция не допускает 0
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.valid, GSTRe.MatchString(tt.value))
		})
	}
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		size     int64
		wantMsg  string
	}{
		{
			name:     "png accepted",
			mimeType: "image/png",
			size:     1024,
			wantMsg:  "",
		},
		{
			name:     "4 MiB pdf accepted",
			mimeType: "application/pdf",
			size:     4 * 1024 * 1024,
			wantMsg:  "",
		},
		{
			name:     "jpeg accepted",
			mimeType: "image/jpeg",
			size:     2 * 1024 * 1024,
			wantMsg:  "",
		},
		{
			name:     "plain text rejected",
			mimeType: "text/plain",
			size:     10,
			wantMsg:  "Please upload a JPG, PNG, or PDF file",
		},
		{
			name:     "6 MiB file rejected",
			mimeType: "application/pdf",
			size:     6 * 1024 * 1024,
			wantMsg:  "File size must be less than 5MB",
		},
		{
			name:     "exactly 5 MiB accepted",
			mimeType: "image/png",
			size:     5 * 1024 * 1024,
			wantMsg:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, ValidateFile(tt.mimeType, tt.size))
		})
	}
}
