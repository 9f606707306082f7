package upstream

import "fmt"

// AuthError means the short-lived streaming token could not be acquired.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("upstream auth: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// ConnectError means the streaming connection could not be established.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("upstream connect: %v", e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// SendError means one audio frame could not be forwarded.
type SendError struct {
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("upstream send: %v", e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }
