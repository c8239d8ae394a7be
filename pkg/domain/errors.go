package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyMessages    = errors.New("conversation request has no messages")
	ErrEmptyAccessToken = errors.New("access token is empty")
)

// NetworkError reports that the endpoint could not be reached or the exchange broke off.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ChallengeError reports that the bot-mitigation challenge could not be passed.
type ChallengeError struct {
	Err error
}

func (e *ChallengeError) Error() string {
	return fmt.Sprintf("challenge error: %v", e.Err)
}

func (e *ChallengeError) Unwrap() error { return e.Err }
