package domain

// Engine limits shared by the builder, the engine and configuration defaults.
const (
	// DefaultMaxDepth bounds the depth of the trained tree.
	DefaultMaxDepth = 15

	// DefaultQuestionBudget is the number of answered questions after which the engine must guess.
	DefaultQuestionBudget = 25

	// DefaultSessionID is used by transports that expose a single game.
	DefaultSessionID = "default"
)
