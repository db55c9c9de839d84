package language

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Chinese variants collapse
		{"zh", "zh-CN"},
		{"zh-CN", "zh-CN"},
		{"zh-cn", "zh-CN"},
		{"zh-TW", "zh-CN"},
		{"zh-HK", "zh-CN"},
		{"zh-SG", "zh-CN"},
		{"zh-MO", "zh-CN"},
		{"zh-Hans", "zh-CN"},
		{"ZH-HANS", "zh-CN"},
		// Other tags canonicalize
		{"en", "en"},
		{"EN", "en"},
		{"ja", "ja"},
		{"pt-BR", "pt-BR"},
		// Unrecognized passes through
		{"klingon", "klingon"},
		// Empty
		{"", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		fallback string
		expected string
	}{
		{"movie.zh-Hans.srt", "en", "zh-CN"},
		{"movie.en.srt", "zh", "en"},
		{"movie.pt-BR.srt", "en", "pt-BR"},
		{"movie.srt", "en", "en"},
		{"/staged/abc123/movie.zh-TW.srt", "en", "zh-CN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromFilename(tt.name, tt.fallback); got != tt.expected {
				t.Errorf("FromFilename(%q, %q) = %q, want %q", tt.name, tt.fallback, got, tt.expected)
			}
		})
	}
}
