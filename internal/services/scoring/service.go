package scoring

import "unicode"

// Letter rarity scores, keyed by uppercase letter. A letter absent from
// every table scores 1, which covers alphabets without a table of their own.
//
// The bands follow letter frequency: 1 for the most common letters up to 4
// for the rarest.
var russianLetterScores = map[rune]int{
	'А': 1, 'Е': 1, 'И': 1, 'Н': 1, 'О': 1, 'Р': 1, 'С': 1, 'Т': 1, 'В': 1, 'Л': 1,
	'Д': 2, 'К': 2, 'М': 2, 'П': 2, 'У': 2, 'Г': 2, 'Б': 2, 'Ы': 2, 'Ь': 2, 'Я': 2,
	'Ё': 3, 'Й': 3, 'Х': 3, 'Ж': 3, 'Ч': 3, 'Ш': 3, 'Ю': 3, 'Ц': 3, 'З': 3,
	'Щ': 4, 'Э': 4, 'Ф': 4, 'Ъ': 4,
}

var englishLetterScores = map[rune]int{
	'E': 1, 'A': 1, 'I': 1, 'O': 1, 'N': 1, 'R': 1, 'T': 1, 'L': 1, 'S': 1, 'U': 1,
	'D': 2, 'G': 2, 'B': 2, 'C': 2, 'M': 2, 'P': 2, 'H': 2, 'Y': 2, 'W': 2,
	'F': 3, 'V': 3, 'K': 3, 'J': 3, 'X': 3,
	'Q': 4, 'Z': 4,
}

// Service computes letter rarity scores and word scores.
// It is pure, deterministic, and holds no state.
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// LetterScore returns the rarity score (1-4) for a letter, case-insensitive.
// Letters outside the known tables score 1.
func (s *Service) LetterScore(letter rune) int {
	upper := unicode.ToUpper(letter)
	if score, ok := russianLetterScores[upper]; ok {
		return score
	}
	if score, ok := englishLetterScores[upper]; ok {
		return score
	}
	return 1
}

// WordScore returns the sum of letter scores over every character of the word
func (s *Service) WordScore(word string) int {
	total := 0
	for _, r := range word {
		total += s.LetterScore(r)
	}
	return total
}

// Interface for dependency injection
type ServiceInterface interface {
	LetterScore(letter rune) int
	WordScore(word string) int
}

var _ ServiceInterface = (*Service)(nil)
