package model

// GuessKind discriminates the possible outcomes of a guess submission
type GuessKind string

const (
	// GuessInert means the guess produced no state change and nothing
	// needs to be broadcast (no active round, or the drawer guessing)
	GuessInert GuessKind = "inert"
	// GuessChat means the text did not match the word and should be
	// forwarded as an ordinary chat message
	GuessChat GuessKind = "chat"
	// GuessAlreadyGuessed means the player was already credited this round
	GuessAlreadyGuessed GuessKind = "already_guessed"
	// GuessCorrect means the player was credited for a correct guess
	GuessCorrect GuessKind = "correct"
)

// GuessOutcome is the arbitration result for a single guess submission
type GuessOutcome struct {
	Kind     GuessKind
	PlayerID ConnectionID
	Username string

	// Message carries the original untrimmed text for chat outcomes
	Message string

	// Set for correct outcomes
	NewScore  int
	RoundOver bool
	Word      string // revealed word, set when RoundOver is true
}
