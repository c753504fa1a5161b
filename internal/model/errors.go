package model

import "errors"

// Common errors used across the application
var (
	// Roster errors
	ErrEmptyUsername = errors.New("username is empty")
	ErrUsernameTaken = errors.New("username already taken")
	ErrAlreadyJoined = errors.New("connection already joined this session")
	ErrNotInSession  = errors.New("player is not in this session")
	ErrNotAdmin      = errors.New("player is not the session admin")

	// Round errors
	ErrInsufficientPlayers = errors.New("insufficient players to start a round")
	ErrRoundInProgress     = errors.New("a round is already in progress")

	// Registry errors
	ErrSessionNotFound = errors.New("session not found")

	// Word bank errors
	ErrWordsNotLoaded = errors.New("word bank not loaded")
)
