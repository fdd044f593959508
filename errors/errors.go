package errors

import "fmt"

var (
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrRoomNotFound       = fmt.Errorf("room not found")
	ErrInvalidLastSeenID  = fmt.Errorf("last seen id must be positive")
	ErrInvalidInput       = fmt.Errorf("invalid input")
	ErrEmptyWords         = fmt.Errorf("no words have been found")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
)
