package youtube

import "testing"

func TestParseDurationSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"PT45S", 45},
		{"PT1M30S", 90},
		{"PT2H15M30S", 8130},
		{"PT1H", 3600},
		{"PT10M", 600},
		{"", 0},
		{"garbage", 0},
	}
	for _, c := range cases {
		if got := parseDurationSeconds(c.in); got != c.want {
			t.Errorf("parseDurationSeconds(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
