package logic

import "testing"

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ahri", "Ahri"},
		{"Miss Fortune", "MissFortune"},
		{"Cho'Gath", "Chogath"},
		{"ChoGath", "Chogath"},
		{"Wukong", "MonkeyKing"},
		{"Nunu & Willump", "Nunu"},
		{"Dr. Mundo", "DrMundo"},
		{"Renata Glasc", "Renata"},
		{"K'Sante", "KSante"},
		{"Kog'Maw", "KogMaw"},
		// Unmapped names strip punctuation and pass through.
		{"New'Champ Name", "NewChampName"},
		{"  Ahri  ", "Ahri"},
	}
	for _, tt := range tests {
		if got := CanonicalID(tt.in); got != tt.want {
			t.Errorf("CanonicalID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
