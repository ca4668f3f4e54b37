package pathfind

import (
	"strings"
	"unicode"

	"github.com/nkarpov/balda-go/internal/model"
)

// Placement pairs an empty target cell with the letter proposed for it
type Placement struct {
	Position model.Position
	Letter   rune
}

// Service is the path search kernel. Given a placement and a claimed word it
// decides whether some simple orthogonal path of exactly len(word) cells
// passes through the placed cell and spells the word.
//
// The search is a backtracking DFS seeded at every occurrence of the placed
// letter inside the word, extending forward to the word's end and then
// backward to its start. Cell visits are tracked in a flat arena indexed by
// board position so no cell is ever used twice in one path.
type Service struct{}

// New creates a new pathfind Service
func New() *Service {
	return &Service{}
}

// Validate reports whether a valid path exists for the placement and word.
// Precondition violations (bounds, occupancy, word length, letter membership)
// are returned as errors; a clean search with no path returns (false, nil).
// The result is deterministic for identical inputs.
func (s *Service) Validate(board *model.Board, p Placement, word string) (bool, error) {
	path, err := s.FindPath(board, p, word, nil)
	if err != nil {
		return false, err
	}
	return path != nil, nil
}

// FindPath runs the same search as Validate but returns the first matching
// path, ordered so that path[i] spells word[i]. It returns (nil, nil) when
// no path exists or the budget runs out before one is found.
func (s *Service) FindPath(board *model.Board, p Placement, word string, budget *Budget) ([]model.Position, error) {
	letters := []rune(strings.ToUpper(strings.TrimSpace(word)))
	letter := unicode.ToUpper(p.Letter)

	if !board.IsValidPosition(p.Position) {
		return nil, model.ErrPositionOutOfBounds
	}
	if !board.IsEmpty(p.Position) {
		return nil, model.ErrCellOccupied
	}
	if len(letters) < model.MinWordLength || len(letters) > board.Size*board.Size {
		return nil, model.ErrInvalidWordLength
	}
	if !containsRune(letters, letter) {
		return nil, model.ErrLetterNotInWord
	}

	after := board.Clone()
	after.Set(p.Position, letter)

	// Cheap cut: the word cannot need more copies of a letter than the
	// board holds, since each cell is usable at most once per path.
	if !lettersAvailable(after, letters) {
		return nil, nil
	}

	search := &walker{
		board:   after,
		letters: letters,
		visited: make([]bool, board.Size*board.Size),
		cells:   make([]model.Position, len(letters)),
		budget:  budget,
	}

	// Seed the new cell at every occurrence of its letter in the word
	for i, r := range letters {
		if r != letter {
			continue
		}
		if search.matchAt(i, p.Position) {
			path := make([]model.Position, len(search.cells))
			copy(path, search.cells)
			return path, nil
		}
	}
	return nil, nil
}

// walker carries the backtracking state for one search
type walker struct {
	board   *model.Board
	letters []rune
	visited []bool           // arena of visited cell indices
	cells   []model.Position // cells[i] holds the cell spelling letters[i]
	budget  *Budget
}

// matchAt anchors word index seed at pos, extends the path forward to the
// end of the word, then backward to its start
func (w *walker) matchAt(seed int, pos model.Position) bool {
	idx := w.board.Index(pos)
	w.visited[idx] = true
	w.cells[seed] = pos

	ok := w.forward(seed+1, pos, seed)

	w.visited[idx] = false
	return ok
}

func (w *walker) forward(i int, from model.Position, seed int) bool {
	if i == len(w.letters) {
		return w.backward(seed-1, w.cells[seed])
	}
	if !w.budget.Spend() {
		return false
	}
	for _, n := range w.board.Neighbors(from) {
		idx := w.board.Index(n)
		if w.visited[idx] || w.board.Get(n) != w.letters[i] {
			continue
		}
		w.visited[idx] = true
		w.cells[i] = n
		if w.forward(i+1, n, seed) {
			return true
		}
		w.visited[idx] = false
	}
	return false
}

func (w *walker) backward(i int, from model.Position) bool {
	if i < 0 {
		return true
	}
	if !w.budget.Spend() {
		return false
	}
	for _, n := range w.board.Neighbors(from) {
		idx := w.board.Index(n)
		if w.visited[idx] || w.board.Get(n) != w.letters[i] {
			continue
		}
		w.visited[idx] = true
		w.cells[i] = n
		if w.backward(i-1, n) {
			return true
		}
		w.visited[idx] = false
	}
	return false
}

func containsRune(letters []rune, r rune) bool {
	for _, l := range letters {
		if l == r {
			return true
		}
	}
	return false
}

func lettersAvailable(board *model.Board, letters []rune) bool {
	needed := make(map[rune]int, len(letters))
	for _, r := range letters {
		needed[r]++
	}
	for r, n := range needed {
		if board.CountLetter(r) < n {
			return false
		}
	}
	return true
}
