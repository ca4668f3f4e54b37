package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case GameState:
		o.printGameState(v)
	case SuggestionList:
		o.printSuggestions(v)
	case WordScore:
		o.printWordScore(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
	IsAI        bool   `json:"is_ai,omitempty"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Move response type
type Move struct {
	PlayerID  string    `json:"player_id"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Letter    string    `json:"letter"`
	Word      string    `json:"word"`
	Score     int       `json:"score"`
	AppliedAt time.Time `json:"applied_at"`
}

// GameState response type
type GameState struct {
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
}

// Suggestion response type
type Suggestion struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
	Word   string `json:"word"`
	Score  int    `json:"score"`
}

// SuggestionList wraps suggestions for typed printing
type SuggestionList []Suggestion

// WordScore response type
type WordScore struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	switch {
	case p.IsAI:
		fmt.Println("Type: AI")
	case p.IsGuest:
		fmt.Println("Type: guest")
	default:
		fmt.Println("Type: registered")
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Base Word: %s\n", g.BaseWord)
	fmt.Printf("Current Player: %s\n", g.CurrentPlayer)

	fmt.Println()
	o.printBoard(g.Board)

	if len(g.Scores) > 0 {
		fmt.Println("\nScores:")
		for _, pid := range g.Players {
			marker := ""
			if strategy, ok := g.AIPlayers[pid]; ok {
				marker = fmt.Sprintf(" [ai:%s]", strategy)
			}
			fmt.Printf("  %s: %d points%s\n", pid, g.Scores[pid], marker)
		}
	}

	if len(g.Moves) > 0 {
		fmt.Println("\nMoves:")
		for _, m := range g.Moves {
			fmt.Printf("  %s placed %s at (%d,%d) claiming %s (+%d)\n",
				m.PlayerID, m.Letter, m.Row, m.Col, m.Word, m.Score)
		}
	}

	if len(g.UsedWords) > 0 {
		fmt.Printf("\nUsed words: %s\n", strings.Join(g.UsedWords, ", "))
	}
}

func (o *Output) printBoard(cells [][]string) {
	size := len(cells)
	if size == 0 {
		return
	}

	// Print column headers
	fmt.Print("    ")
	for col := 0; col < size; col++ {
		fmt.Printf(" %d ", col)
	}
	fmt.Println()

	// Print top border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")

	// Print rows
	for row := 0; row < size; row++ {
		fmt.Printf(" %d |", row)
		for col := 0; col < size; col++ {
			cell := cells[row][col]
			if cell == "" {
				fmt.Print(" . ")
			} else {
				fmt.Printf(" %s ", cell)
			}
		}
		fmt.Println("|")
	}

	// Print bottom border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")
}

func (o *Output) printSuggestions(suggestions SuggestionList) {
	if len(suggestions) == 0 {
		fmt.Println("No legal moves found")
		return
	}

	fmt.Printf("Suggestions (%d):\n", len(suggestions))
	for i, s := range suggestions {
		fmt.Printf("  %2d. %s at (%d,%d) spelling %s (+%d)\n",
			i+1, s.Letter, s.Row, s.Col, s.Word, s.Score)
	}
}

func (o *Output) printWordScore(ws WordScore) {
	fmt.Printf("%s: %d points\n", ws.Word, ws.Score)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
