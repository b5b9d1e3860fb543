// Package auth turns a literal access token or a credentials file into the
// authorization header sent to The One API.
package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/s0up4200/onering/onering"
)

// TokenField is the credentials file field holding the access token
const TokenField = "access-token"

// Source describes where a header came from
type Source string

const (
	SourceNone  Source = ""
	SourceToken Source = "token"
	SourceFile  Source = "creds-json"
)

// credentialsFile is the layout of a credentials json file
type credentialsFile struct {
	AccessToken *string `json:"access-token"`
}

// Resolver resolves authorization headers
type Resolver struct {
	fs      afero.Fs
	homeDir func() (string, error)
}

// NewResolver creates a resolver reading credentials files from fs
func NewResolver(fs afero.Fs) *Resolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Resolver{fs: fs, homeDir: os.UserHomeDir}
}

// ResolveHeader resolves a header using the local filesystem
func ResolveHeader(token, credsFile string) (onering.Header, error) {
	header, _, err := NewResolver(nil).Resolve(token, credsFile)
	return header, err
}

// Resolve returns the bearer header for token, or for the token stored in
// credsFile when token is empty. The literal token wins when both are set.
func (r *Resolver) Resolve(token, credsFile string) (onering.Header, Source, error) {
	if token != "" {
		return onering.BearerHeader(token), SourceToken, nil
	}

	if credsFile != "" {
		fileToken, err := r.readToken(credsFile)
		if err != nil {
			return nil, SourceNone, err
		}
		return onering.BearerHeader(fileToken), SourceFile, nil
	}

	return nil, SourceNone, ErrNoCredentials
}

// readToken extracts the access token from a credentials file
func (r *Resolver) readToken(path string) (string, error) {
	expanded, err := r.expandHome(path)
	if err != nil {
		return "", &CredentialsError{Path: path, Reason: "failed to resolve home directory", Err: err}
	}

	data, err := afero.ReadFile(r.fs, expanded)
	if err != nil {
		return "", &CredentialsError{Path: path, Reason: "failed to read file", Err: err}
	}

	var creds credentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", &CredentialsError{Path: path, Reason: "invalid json", Err: err}
	}

	if creds.AccessToken == nil {
		return "", &CredentialsError{Path: path, Reason: "missing field " + TokenField}
	}
	if *creds.AccessToken == "" {
		return "", &CredentialsError{Path: path, Reason: "empty " + TokenField}
	}

	return *creds.AccessToken, nil
}

// expandHome replaces a leading "~/" with the user's home directory
func (r *Resolver) expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := r.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
