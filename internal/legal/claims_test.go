package legal

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"two sentences",
			"Le contrat est valide. Le préavis est de 30 jours.",
			[]string{"Le contrat est valide.", "Le préavis est de 30 jours."},
		},
		{
			"mixed terminators",
			"Vraiment ! Est-ce légal ? Oui.",
			[]string{"Vraiment !", "Est-ce légal ?", "Oui."},
		},
		{
			"no terminator",
			"une phrase sans fin",
			[]string{"une phrase sans fin"},
		},
		{
			"terminator without trailing space stays attached",
			"montant de 1.500 euros dus",
			[]string{"montant de 1.500 euros dus"},
		},
		{"empty", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsClaim(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     bool
	}{
		{"hedge selon", "Selon le rapport, la société est en faute.", true},
		{"hedge d'après", "D'après les pièces versées, le paiement a eu lieu.", true},
		{"hedge conformément", "Conformément à la jurisprudence constante.", true},
		{"article reference", "L'article 1382 fonde la demande.", true},
		{"law reference", "La loi encadre cette pratique.", true},
		{"monetary euros", "Le préjudice s'élève à 1 500 € au total.", true},
		{"monetary EUR", "Une somme de EUR 300 est réclamée.", true},
		{"role tribunal", "Le tribunal a rejeté la demande.", true},
		{"role avocat", "L'avocat de la partie adverse conteste.", true},
		{"greeting", "Bonjour, comment allez-vous ?", false},
		{"neutral prose", "Voici un résumé des échanges récents.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsClaim(tt.sentence); got != tt.want {
				t.Errorf("IsClaim(%q) = %v, want %v", tt.sentence, got, tt.want)
			}
		})
	}
}

func TestSignificantWords(t *testing.T) {
	words := SignificantWords("Selon l'article 1382, la responsabilité est engagée.", 4)

	want := map[string]bool{
		"selon": true, "l'article": true, "1382": true,
		"responsabilité": true, "engagée": true,
	}
	if len(words) != len(want) {
		t.Fatalf("got %v, want keys %v", words, want)
	}
	for _, w := range words {
		if !want[w] {
			t.Errorf("unexpected significant word %q", w)
		}
	}
}

func TestSignificantWords_Dedup(t *testing.T) {
	words := SignificantWords("contrat contrat CONTRAT", 4)
	if len(words) != 1 {
		t.Errorf("repeated words must collapse, got %v", words)
	}
}

func TestSignificantWords_ShortWordsDropped(t *testing.T) {
	words := SignificantWords("le la un de et travail", 4)
	if len(words) != 1 || words[0] != "travail" {
		t.Errorf("only words of >= 4 runes survive, got %v", words)
	}
}
