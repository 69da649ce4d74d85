package util

import (
	"reflect"
	"testing"
)

func TestWordMatcher_FindAll(t *testing.T) {
	m := NewWordMatcher("druk", "tot slot", "autisme")

	tests := []struct {
		desc string
		text string
		want []string
	}{
		{"single word", "Het was druk vandaag", []string{"druk"}},
		{"case preserved", "DRUK en Druk", []string{"DRUK", "Druk"}},
		{"inside longer word", "De opdruk was mooi en drukte", nil},
		{"diacritic after keyword", "drukë is geen woord", nil},
		{"diacritic before keyword", "ëdruk is geen woord", nil},
		{"punctuation boundary", "Druk, heel druk!", []string{"Druk", "druk"}},
		{"multi word", "Tot slot gingen we", []string{"Tot slot"}},
		{"multi word extra spaces", "tot   slot", []string{"tot   slot"}},
		{"multi word split across word", "totslot", nil},
		{"digit boundary", "druk2", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := m.FindAll(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindAll(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestWordMatcher_LongestAlternativeWins(t *testing.T) {
	m := NewWordMatcher("autis", "autistisch")

	got := m.FindAll("Hij is autistisch")
	if len(got) != 1 || got[0] != "autistisch" {
		t.Errorf("Expected [autistisch], got %v", got)
	}
}

func TestWordMatcher_SkipsRejectedCandidate(t *testing.T) {
	m := NewWordMatcher("daarna")

	loc := m.FindFirstIndex("Daarnaast deden we iets, daarna iets anders")
	if loc == nil {
		t.Fatal("Expected a match after the rejected candidate")
	}
	if loc[0] != 25 || loc[1] != 31 {
		t.Errorf("Expected match at [25 31], got %v", loc)
	}
}

func TestWordMatcher_TrimLeading(t *testing.T) {
	m := NewWordMatcher("daarna", "vervolgens")

	tests := []struct {
		in   string
		want string
	}{
		{"Daarna aten we", " aten we"},
		{"vervolgens", ""},
		{"We aten daarna", "We aten daarna"},
		{"Daarnaast aten we", "Daarnaast aten we"},
	}

	for _, tt := range tests {
		if got := m.TrimLeading(tt.in); got != tt.want {
			t.Errorf("TrimLeading(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
