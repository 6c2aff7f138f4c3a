package domain

import "time"

// ReplyKind classifies a message produced by the engine.
type ReplyKind string

const (
	ReplyQuestion ReplyKind = "question" // a trait question
	ReplyGuess    ReplyKind = "guess"    // a guess awaiting yes/no
	ReplyClarify  ReplyKind = "clarify"  // the answer was not understood
	ReplyTerminal ReplyKind = "terminal" // the game just ended
	ReplyNotice   ReplyKind = "notice"   // nothing happened (no game, failed start)
)

// Reply is what the engine says back to the player.
type Reply struct {
	Text    string    `json:"text"`
	Kind    ReplyKind `json:"kind"`
	Outcome Outcome   `json:"outcome,omitempty"`
	Trait   string    `json:"trait,omitempty"`
	Guess   string    `json:"guess,omitempty"`
}

// Result summarises a finished game for the results ledger.
type Result struct {
	SessionID string        `json:"session_id"`
	Outcome   Outcome       `json:"outcome"`
	Character string        `json:"character,omitempty"`
	Questions int           `json:"questions"`
	Duration  time.Duration `json:"duration"`
	EndedAt   time.Time     `json:"ended_at"`
}

// Summary aggregates recorded results.
type Summary struct {
	Games        int             `json:"games"`
	ByOutcome    map[Outcome]int `json:"by_outcome"`
	AvgQuestions float64         `json:"avg_questions"`
}
