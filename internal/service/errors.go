package service

import "errors"

// Sentinel errors shared by the REST and realtime adapters. Handlers map
// them to status codes; the services themselves never see a transport.
var (
	// ErrNotFound: the conversation (or hire target) does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotParticipant: the caller is authenticated but not a member of the
	// conversation.
	ErrNotParticipant = errors.New("not a participant")
	// ErrEmptyBody: the message body is empty after trimming and sanitizing.
	ErrEmptyBody = errors.New("message body is empty")
	// ErrValidation: malformed input (empty participant set, bad role, ...).
	ErrValidation = errors.New("invalid input")
)
