package response

import (
	"time"

	"github.com/nkarpov/balda-go/internal/model"
	"github.com/nkarpov/balda-go/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
	IsAI        bool   `json:"is_ai,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
		IsAI:        p.IsAI,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Move represents an applied move
type Move struct {
	PlayerID  string    `json:"player_id"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Letter    string    `json:"letter"`
	Word      string    `json:"word"`
	Score     int       `json:"score"`
	AppliedAt time.Time `json:"applied_at"`
}

// MoveFromModel converts model.AppliedMove
func MoveFromModel(m model.AppliedMove) Move {
	return Move{
		PlayerID:  string(m.PlayerID),
		Row:       m.Position.Row,
		Col:       m.Position.Col,
		Letter:    string(m.Letter),
		Word:      m.Word,
		Score:     m.Score,
		AppliedAt: m.AppliedAt,
	}
}

// Game represents a game snapshot in API responses.
// Empty board cells are empty strings.
type Game struct {
	ID            string            `json:"id"`
	Size          int               `json:"size"`
	BaseWord      string            `json:"base_word"`
	Status        string            `json:"status"`
	Board         [][]string        `json:"board"`
	Players       []string          `json:"players"`
	AIPlayers     map[string]string `json:"ai_players,omitempty"`
	CurrentPlayer string            `json:"current_player"`
	Moves         []Move            `json:"moves"`
	Scores        map[string]int    `json:"scores"`
	UsedWords     []string          `json:"used_words"`
	Version       int64             `json:"version"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	board := g.Board()
	cells := make([][]string, board.Size)
	for row := 0; row < board.Size; row++ {
		cells[row] = make([]string, board.Size)
		for col := 0; col < board.Size; col++ {
			if r := board.Cells[row][col]; r != 0 {
				cells[row][col] = string(r)
			}
		}
	}

	players := make([]string, len(g.Players))
	for i, p := range g.Players {
		players[i] = string(p)
	}

	aiPlayers := make(map[string]string, len(g.AIPlayers))
	for p, strategy := range g.AIPlayers {
		aiPlayers[string(p)] = strategy
	}

	moves := make([]Move, len(g.Moves))
	for i, m := range g.Moves {
		moves[i] = MoveFromModel(m)
	}

	scores := make(map[string]int, len(g.Scores))
	for p, score := range g.Scores {
		scores[string(p)] = score
	}

	usedWords := make([]string, len(g.UsedWords))
	copy(usedWords, g.UsedWords)

	return Game{
		ID:            string(g.ID),
		Size:          g.Size,
		BaseWord:      g.BaseWord,
		Status:        string(g.Status()),
		Board:         cells,
		Players:       players,
		AIPlayers:     aiPlayers,
		CurrentPlayer: string(g.CurrentPlayer()),
		Moves:         moves,
		Scores:        scores,
		UsedWords:     usedWords,
		Version:       g.Version,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// Suggestion represents a candidate move
type Suggestion struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
	Word   string `json:"word"`
	Score  int    `json:"score"`
}

// SuggestionsFromModel converts a ranked suggestion list
func SuggestionsFromModel(suggestions []model.Suggestion) []Suggestion {
	result := make([]Suggestion, len(suggestions))
	for i, s := range suggestions {
		result[i] = Suggestion{
			Row:    s.Position.Row,
			Col:    s.Position.Col,
			Letter: string(s.Letter),
			Word:   s.Word,
			Score:  s.Score,
		}
	}
	return result
}

// WordScore is the response for score previews
type WordScore struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}
