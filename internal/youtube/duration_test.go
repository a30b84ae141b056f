package youtube

import "testing"

func TestParseDuration(t *testing.T) {
	tests := []struct {
		iso  string
		want int64
	}{
		{"PT4M13S", 253},
		{"PT1H2M3S", 3723},
		{"PT59S", 59},
		{"PT20M", 1200},
		{"PT1H", 3600},
		{"P1DT2H", 93600},
		{"P0D", 0},  // livestream
		{"", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		if got := ParseDuration(tt.iso); got != tt.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tt.iso, got, tt.want)
		}
	}
}
