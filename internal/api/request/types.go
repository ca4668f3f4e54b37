package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateGameRequest is the request body for creating a game.
// The creator always plays; AIOpponents adds suggestion-driven players.
type CreateGameRequest struct {
	Size        int      `json:"size"`
	BaseWord    string   `json:"base_word"`
	AIOpponents []string `json:"ai_opponents,omitempty"` // strategy names
}

// MoveRequest is the request body for making a move
type MoveRequest struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
	Word   string `json:"word"`
}
