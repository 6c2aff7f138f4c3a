package runtime

// Player-facing messages.
const (
	msgQuestion     = "Is your character known for the trait '%s'?"
	msgResumePrefix = "My guess was wrong. Let's continue! "

	msgGuessSingle = "I think I've got it! Are you thinking of '%s'?"
	msgGuessBudget = "I've asked too many questions. My best guess is '%s'. Was I close?"
	msgGuessLeaf   = "I've run out of questions, so I'll take a guess: '%s'?"

	msgWon               = "Awesome! I knew it! Thanks for playing."
	msgStumped           = "You've stumped me! The character must not be in my database. Game over."
	msgStumpedAfterGuess = "You've stumped me! The character is not in my database. Game over."
	msgExhausted         = "I've run out of possibilities and questions. Game over."
	msgQuit              = "Thanks for playing! The game has been ended."

	msgClarifyQuestion = "I'm sorry, I don't understand that. Please answer with 'yes', 'no', or 'don't know'."
	msgClarifyGuess    = "I'm sorry, I don't understand that. Please answer 'yes' or 'no' to my guess."

	msgNoActiveGame = "Please start a new game by saying 'Start a new game' first."
	msgQuitNoGame   = "There's no active game to quit."

	msgStartUnavailable = "I am unable to start the game. The dataset or model could not be loaded. Please check the file and try again."
	msgStartMalformed   = "Sorry, something went wrong and I can't start the game. The model seems to be malformed."
	msgStartUnexpected  = "An unexpected error occurred while starting the game. Please try again."
	msgAnswerUnexpected = "An unexpected error occurred while processing your answer. Please try starting a new game."
)

// UnexpectedFailureMessage is shown when the game state could not be reached at all.
const UnexpectedFailureMessage = "An unexpected error occurred. Please try again."
