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

// CreateRoomRequest is the request body for creating a room. Zero
// values fall back to the server defaults.
type CreateRoomRequest struct {
	MaxPlayers           int     `json:"max_players,omitempty"`
	RoundDurationSeconds int     `json:"round_duration_seconds,omitempty"`
	TotalRounds          int     `json:"total_rounds,omitempty"`
	Category             string  `json:"category,omitempty"`
	BasePoints           int     `json:"base_points,omitempty"`
	MinMultiplier        float64 `json:"min_multiplier,omitempty"`
}

// JoinRoomRequest is the request body for joining a room by code
type JoinRoomRequest struct {
	Code string `json:"code"`
}

// TransferHostRequest is the request body for transferring host
type TransferHostRequest struct {
	NewHostID string `json:"new_host_id"`
}

// SubmitWordRequest is the request body for the word-giver's secret word
type SubmitWordRequest struct {
	Word string `json:"word"`
}

// SubmitGuessRequest is the request body for a guess
type SubmitGuessRequest struct {
	Guess string `json:"guess"`
}

// SendChatRequest is the request body for a chat message
type SendChatRequest struct {
	Text string `json:"text"`
}
