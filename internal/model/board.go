package model

import "unicode"

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// Board is a square grid of letters for a Balda game.
// Cells hold uppercase runes; 0 means empty. Filled cells always form a
// single orthogonally-connected region seeded by the base word.
type Board struct {
	Size  int      // Grid dimension (e.g., 5 for 5x5)
	Cells [][]rune // Row-major: Cells[row][col], 0 means empty
}

// NewBoard creates an empty board of the given size
func NewBoard(size int) *Board {
	cells := make([][]rune, size)
	for i := range cells {
		cells[i] = make([]rune, size)
	}
	return &Board{
		Size:  size,
		Cells: cells,
	}
}

// NewBoardWithBaseWord creates a board seeded with the base word placed on
// the middle row, centered horizontally. The word must fit on the board.
func NewBoardWithBaseWord(size int, baseWord string) (*Board, error) {
	letters := []rune(baseWord)
	if len(letters) == 0 || len(letters) > size {
		return nil, ErrInvalidBaseWord
	}

	b := NewBoard(size)
	row := size / 2
	offset := (size - len(letters)) / 2
	for i, r := range letters {
		b.Cells[row][offset+i] = unicode.ToUpper(r)
	}
	return b, nil
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([][]rune, b.Size)
	for i := range cells {
		cells[i] = make([]rune, b.Size)
		copy(cells[i], b.Cells[i])
	}
	return &Board{
		Size:  b.Size,
		Cells: cells,
	}
}

// Get returns the letter at the given position, or 0 if empty or out of bounds
func (b *Board) Get(pos Position) rune {
	if !b.IsValidPosition(pos) {
		return 0
	}
	return b.Cells[pos.Row][pos.Col]
}

// Set places a letter at the given position
func (b *Board) Set(pos Position, letter rune) {
	if b.IsValidPosition(pos) {
		b.Cells[pos.Row][pos.Col] = unicode.ToUpper(letter)
	}
}

// IsEmpty returns true if the cell at the given position is empty
func (b *Board) IsEmpty(pos Position) bool {
	return b.Get(pos) == 0
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.Size && pos.Col >= 0 && pos.Col < b.Size
}

// IsFull returns true if all cells are filled
func (b *Board) IsFull() bool {
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.Cells[row][col] == 0 {
				return false
			}
		}
	}
	return true
}

// EmptyCount returns the number of empty cells
func (b *Board) EmptyCount() int {
	count := 0
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.Cells[row][col] == 0 {
				count++
			}
		}
	}
	return count
}

// Neighbors returns the in-bounds orthogonal neighbors of the given position.
// Diagonal cells are never adjacent.
func (b *Board) Neighbors(pos Position) []Position {
	candidates := [4]Position{
		{Row: pos.Row - 1, Col: pos.Col},
		{Row: pos.Row + 1, Col: pos.Col},
		{Row: pos.Row, Col: pos.Col - 1},
		{Row: pos.Row, Col: pos.Col + 1},
	}
	result := make([]Position, 0, 4)
	for _, c := range candidates {
		if b.IsValidPosition(c) {
			result = append(result, c)
		}
	}
	return result
}

// HasFilledNeighbor returns true if any orthogonal neighbor holds a letter
func (b *Board) HasFilledNeighbor(pos Position) bool {
	for _, n := range b.Neighbors(pos) {
		if !b.IsEmpty(n) {
			return true
		}
	}
	return false
}

// Index returns a stable linear index for the position, for visited arenas
func (b *Board) Index(pos Position) int {
	return pos.Row*b.Size + pos.Col
}

// CountLetter returns how many cells hold the given (uppercase) letter
func (b *Board) CountLetter(letter rune) int {
	count := 0
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.Cells[row][col] == letter {
				count++
			}
		}
	}
	return count
}
