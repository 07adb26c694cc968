package domain

import (
	"errors"
	"strings"
)

var (
	// ErrValidation means the caller omitted a required field.
	ErrValidation = errors.New("missing sessionId or userResponse")

	// ErrProvider is a generic failure of the remote provider.
	ErrProvider = errors.New("failed to get a response, please try again")

	// ErrHistorySync means the provider rejected the role ordering of the
	// history we built.
	ErrHistorySync = errors.New("internal chat history synchronization issue, please refresh and retry")
)

// The provider exposes no structured code for role ordering violations, so
// they are recognised by these fragments of its error message.
const (
	roleOrderFragment = "First content should be with role"
	roleUserFragment  = "user"
)

// ClassifyProviderError maps a raw provider error to ErrHistorySync or ErrProvider.
func ClassifyProviderError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, roleOrderFragment) && strings.Contains(msg, roleUserFragment) {
		return ErrHistorySync
	}
	return ErrProvider
}
