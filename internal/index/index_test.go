package index

import "testing"

func TestFuzzinessFor(t *testing.T) {
	tests := []struct {
		term string
		want int
	}{
		{"tax", 0},
		{"lien", 1},
		{"homestead", 1},
		// Rune count, not byte count: two CJK runes are six bytes.
		{"日本", 0},
		{"契約条項", 1},
		{"señor", 1},
		{"ñu", 0},
	}

	for _, tt := range tests {
		if got := FuzzinessFor(tt.term); got != tt.want {
			t.Errorf("FuzzinessFor(%q) = %d, want %d", tt.term, got, tt.want)
		}
	}
}
