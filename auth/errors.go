package auth

import (
	"errors"
	"fmt"
)

// ErrNoCredentials is returned when neither a token nor a credentials file is given
var ErrNoCredentials = errors.New("no token or credentials json provided, see --help")

// CredentialsError indicates a credentials file that could not be used
type CredentialsError struct {
	Path   string
	Reason string
	Err    error
}

func (e *CredentialsError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("credentials file '%s': %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("credentials file '%s': %s", e.Path, e.Reason)
}

func (e *CredentialsError) Unwrap() error {
	return e.Err
}
