package model

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type BoardSuite struct {
	suite.Suite
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardSuite))
}

func (s *BoardSuite) TestNewBoardIsEmpty() {
	b := NewBoard(5)

	s.Equal(5, b.Size)
	s.Equal(25, b.EmptyCount())
	s.False(b.IsFull())
}

func (s *BoardSuite) TestBaseWordSeedsMiddleRowCentered() {
	b, err := NewBoardWithBaseWord(5, "БАЛДА")
	s.Require().NoError(err)

	s.Equal([]rune("БАЛДА"), b.Cells[2])
	s.Equal(20, b.EmptyCount())
}

func (s *BoardSuite) TestShorterBaseWordIsCentered() {
	b, err := NewBoardWithBaseWord(5, "КОЛ")
	s.Require().NoError(err)

	s.Equal(rune(0), b.Get(Position{Row: 2, Col: 0}))
	s.Equal('К', b.Get(Position{Row: 2, Col: 1}))
	s.Equal('О', b.Get(Position{Row: 2, Col: 2}))
	s.Equal('Л', b.Get(Position{Row: 2, Col: 3}))
	s.Equal(rune(0), b.Get(Position{Row: 2, Col: 4}))
}

func (s *BoardSuite) TestBaseWordIsUppercased() {
	b, err := NewBoardWithBaseWord(5, "балда")
	s.Require().NoError(err)

	s.Equal([]rune("БАЛДА"), b.Cells[2])
}

func (s *BoardSuite) TestBaseWordMustFitBoard() {
	_, err := NewBoardWithBaseWord(3, "БАЛДА")
	s.ErrorIs(err, ErrInvalidBaseWord)

	_, err = NewBoardWithBaseWord(5, "")
	s.ErrorIs(err, ErrInvalidBaseWord)
}

func (s *BoardSuite) TestSetUppercasesLetter() {
	b := NewBoard(3)
	b.Set(Position{Row: 0, Col: 0}, 'к')

	s.Equal('К', b.Get(Position{Row: 0, Col: 0}))
}

func (s *BoardSuite) TestGetOutOfBoundsReturnsZero() {
	b := NewBoard(3)

	s.Equal(rune(0), b.Get(Position{Row: -1, Col: 0}))
	s.Equal(rune(0), b.Get(Position{Row: 0, Col: 3}))
}

func (s *BoardSuite) TestNeighborsAreOrthogonalOnly() {
	b := NewBoard(5)

	s.ElementsMatch([]Position{
		{Row: 1, Col: 2},
		{Row: 3, Col: 2},
		{Row: 2, Col: 1},
		{Row: 2, Col: 3},
	}, b.Neighbors(Position{Row: 2, Col: 2}))
}

func (s *BoardSuite) TestCornerHasTwoNeighbors() {
	b := NewBoard(5)

	s.ElementsMatch([]Position{
		{Row: 0, Col: 1},
		{Row: 1, Col: 0},
	}, b.Neighbors(Position{Row: 0, Col: 0}))
}

func (s *BoardSuite) TestHasFilledNeighborIgnoresDiagonals() {
	b := NewBoard(3)
	b.Set(Position{Row: 1, Col: 1}, 'А')

	s.True(b.HasFilledNeighbor(Position{Row: 0, Col: 1}))
	s.True(b.HasFilledNeighbor(Position{Row: 1, Col: 0}))
	s.False(b.HasFilledNeighbor(Position{Row: 0, Col: 0}))
	s.False(b.HasFilledNeighbor(Position{Row: 2, Col: 2}))
}

func (s *BoardSuite) TestCloneIsIndependent() {
	b, err := NewBoardWithBaseWord(5, "БАЛДА")
	s.Require().NoError(err)

	clone := b.Clone()
	clone.Set(Position{Row: 0, Col: 0}, 'Х')

	s.True(b.IsEmpty(Position{Row: 0, Col: 0}))
	s.Equal('Х', clone.Get(Position{Row: 0, Col: 0}))
}

func (s *BoardSuite) TestIndexIsStableAndUnique() {
	b := NewBoard(4)

	seen := make(map[int]bool)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			idx := b.Index(Position{Row: row, Col: col})
			s.False(seen[idx])
			seen[idx] = true
		}
	}
	s.Len(seen, 16)
}

func (s *BoardSuite) TestCountLetter() {
	b, err := NewBoardWithBaseWord(5, "БАЛДА")
	s.Require().NoError(err)

	s.Equal(2, b.CountLetter('А'))
	s.Equal(1, b.CountLetter('Л'))
	s.Equal(0, b.CountLetter('О'))
}

func (s *BoardSuite) TestIsFull() {
	b := NewBoard(2)
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			b.Set(Position{Row: row, Col: col}, 'А')
		}
	}

	s.True(b.IsFull())
	s.Equal(0, b.EmptyCount())
}
