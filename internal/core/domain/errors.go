package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidPollID      = errors.New("invalid poll id")
	ErrInvalidPollType    = errors.New("invalid poll type")
	ErrPollNotFound       = errors.New("poll not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidOption      = errors.New("invalid option index")
	ErrPollClosed         = errors.New("poll is closed")
	ErrPollAlreadyClosed  = errors.New("poll is already closed")
	ErrAlreadyVoted       = errors.New("user has already voted on this poll")
	ErrNotPollOwner       = errors.New("only the poll creator may perform this action")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username not available")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUpload             = errors.New("image upload failed")
	ErrInternal           = errors.New("internal server error")
)
