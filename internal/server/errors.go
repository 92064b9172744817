package server

import (
	"errors"
	"os"
	"syscall"

	"github.com/charmbracelet/ssh"
)

var (
	ErrRateLimited     = errors.New("rate limit exceeded")
	ErrTooManySessions = errors.New("max sessions exceeded")
)

// FriendlyError is a message safe to show a visitor or an operator, with
// the underlying cause kept for logs.
type FriendlyError struct {
	Code    string
	Message string
	Cause   error
}

func (e *FriendlyError) Error() string {
	return e.Message
}

func (e *FriendlyError) Unwrap() error { return e.Cause }

// refuse writes the visitor-facing line for err and ends the session.
func refuse(s ssh.Session, err error) {
	_, _ = s.Write([]byte(err.Error() + "\n"))
	_ = s.Exit(1)
}

// mapStartupError turns listener and host key failures into operator
// messages.
func mapStartupError(err error) error {
	if err == nil {
		return nil
	}
	var friendly *FriendlyError
	if errors.As(err, &friendly) {
		return err
	}
	switch {
	case errors.Is(err, syscall.EADDRINUSE):
		return &FriendlyError{Code: "SSH_ADDRESS_IN_USE", Message: "SSH listen address is already in use.", Cause: err}
	case errors.Is(err, syscall.EACCES), errors.Is(err, os.ErrPermission):
		return &FriendlyError{Code: "SSH_PERMISSION_DENIED", Message: "Permission denied opening the SSH listener or host key.", Cause: err}
	case errors.Is(err, os.ErrNotExist):
		return &FriendlyError{Code: "SSH_HOST_KEY_MISSING", Message: "SSH host key path does not exist and could not be created.", Cause: err}
	}
	return &FriendlyError{Code: "SSH_SERVE_FAILED", Message: "SSH server stopped unexpectedly.", Cause: err}
}
