package suggest

import (
	"context"
	"sort"

	"github.com/nkarpov/balda-go/internal/model"
	"github.com/nkarpov/balda-go/internal/services/dictionary"
	"github.com/nkarpov/balda-go/internal/services/pathfind"
	"github.com/nkarpov/balda-go/internal/services/scoring"
)

// DefaultLimit is the number of suggestions returned when the caller asks
// for none in particular
const DefaultLimit = 10

// DefaultAlphabet is the letter set tried for placements when the dictionary
// exposes no alphabet of its own
var DefaultAlphabet = []rune("АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯ")

// Service enumerates legal moves for a game snapshot and ranks them by
// score. It is read-only over the snapshot and safe to run against any
// consistent state; results are ephemeral.
//
// The generator runs the same DFS as the path validator, but in reverse:
// instead of checking a given word it grows candidate words cell by cell,
// pruning on dictionary prefixes when the lookup supports them, then
// verifies each dictionary hit against the validator before emitting it.
type Service struct {
	pathfinder *pathfind.Service
	scorer     *scoring.Service
}

// New creates a new suggestion Service
func New(pathfinder *pathfind.Service, scorer *scoring.Service) *Service {
	return &Service{
		pathfinder: pathfinder,
		scorer:     scorer,
	}
}

// Suggest returns up to limit legal moves for the game, best first.
// The search is bounded by the node budget and cancellable through ctx;
// both cutoffs yield a valid partial result, never an error.
func (s *Service) Suggest(ctx context.Context, g *model.Game, dict dictionary.Lookup, limit int, budget *pathfind.Budget) []model.Suggestion {
	if limit <= 0 {
		limit = DefaultLimit
	}

	board := g.Board()
	alphabet := alphabetFor(dict)

	type candidateKey struct {
		pos    model.Position
		letter rune
		word   string
	}
	seen := make(map[candidateKey]struct{})
	var results []model.Suggestion

	for row := 0; row < board.Size && !budget.Exhausted(); row++ {
		for col := 0; col < board.Size && !budget.Exhausted(); col++ {
			// Cooperative cancellation between candidate placements
			select {
			case <-ctx.Done():
				return rank(results, limit)
			default:
			}

			pos := model.Position{Row: row, Col: col}
			// A cell with no filled neighbor can never join a connected word
			if !board.IsEmpty(pos) || !board.HasFilledNeighbor(pos) {
				continue
			}

			for _, letter := range alphabet {
				after := board.Clone()
				after.Set(pos, letter)

				s.collectWords(ctx, after, pos, dict, budget, func(word string) {
					if g.HasUsedWord(word) {
						return
					}
					key := candidateKey{pos: pos, letter: letter, word: word}
					if _, dup := seen[key]; dup {
						return
					}
					// Generate-then-verify: the validator is the single
					// source of truth for move legality
					ok, err := s.pathfinder.Validate(board, pathfind.Placement{Position: pos, Letter: letter}, word)
					if err != nil || !ok {
						return
					}
					seen[key] = struct{}{}
					results = append(results, model.Suggestion{
						Position: pos,
						Letter:   letter,
						Word:     word,
						Score:    s.scorer.WordScore(word),
					})
				})
			}
		}
	}

	return rank(results, limit)
}

// collectWords walks every simple path on the board-after-placement and
// emits each dictionary word that runs through the new cell
func (s *Service) collectWords(ctx context.Context, after *model.Board, newPos model.Position, dict dictionary.Lookup, budget *pathfind.Budget, emit func(word string)) {
	maxLen := after.Size * after.Size
	visited := make([]bool, maxLen)
	current := make([]rune, 0, maxLen)

	var walk func(pos model.Position, throughNew bool)
	walk = func(pos model.Position, throughNew bool) {
		if !budget.Spend() {
			return
		}

		idx := after.Index(pos)
		visited[idx] = true
		current = append(current, after.Get(pos))
		if pos == newPos {
			throughNew = true
		}

		word := string(current)
		if dictionary.HasPrefix(ctx, dict, word) {
			if throughNew && len(current) >= model.MinWordLength && dictionary.Exists(ctx, dict, word) {
				emit(word)
			}
			if len(current) < maxLen {
				for _, n := range after.Neighbors(pos) {
					if !visited[after.Index(n)] && !after.IsEmpty(n) {
						walk(n, throughNew)
					}
				}
			}
		}

		current = current[:len(current)-1]
		visited[idx] = false
	}

	for row := 0; row < after.Size; row++ {
		for col := 0; col < after.Size; col++ {
			pos := model.Position{Row: row, Col: col}
			if !after.IsEmpty(pos) {
				walk(pos, false)
			}
			if budget.Exhausted() {
				return
			}
		}
	}
}

// rank orders suggestions best-first and trims to limit: score descending,
// then shorter word, then placement (row, col), then letter, then word
func rank(suggestions []model.Suggestion, limit int) []model.Suggestion {
	sort.Slice(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		al, bl := len([]rune(a.Word)), len([]rune(b.Word))
		if al != bl {
			return al < bl
		}
		if a.Position.Row != b.Position.Row {
			return a.Position.Row < b.Position.Row
		}
		if a.Position.Col != b.Position.Col {
			return a.Position.Col < b.Position.Col
		}
		if a.Letter != b.Letter {
			return a.Letter < b.Letter
		}
		return a.Word < b.Word
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

func alphabetFor(dict dictionary.Lookup) []rune {
	if provider, ok := dict.(dictionary.AlphabetProvider); ok {
		if alphabet := provider.Alphabet(); len(alphabet) > 0 {
			return alphabet
		}
	}
	return DefaultAlphabet
}
