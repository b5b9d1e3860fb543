package cmd

import (
	"context"
	"errors"

	"github.com/s0up4200/onering/query"
)

// UsageError indicates a conflicting or incomplete flag combination
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

var (
	errMovieAndQuote  = &UsageError{Message: "both movie lookup and quote lookup flags found, please specify one or the other"}
	errQuoteNoMovieID = &UsageError{Message: "quote lookup requested but no movie id provided, please specify a movie id for quote lookup"}
)

// IsUsageError reports whether err was caused by bad flag usage
func IsUsageError(err error) bool {
	var usageErr *UsageError
	return errors.As(err, &usageErr)
}

// lookupOptions holds the root command flags
type lookupOptions struct {
	credsJSON   string
	accessToken string
	movie       bool
	movieID     string
	quote       bool
	search      string
	fields      string
	where       string
}

// validate checks the lookup flag combination
func (o lookupOptions) validate() error {
	if o.movie && o.quote {
		return errMovieAndQuote
	}
	if o.quote && o.movieID == "" {
		return errQuoteNoMovieID
	}
	return nil
}

func (o lookupOptions) queryOptions() query.Options {
	return query.Options{
		Search: o.search,
		Where:  o.where,
		Fields: o.fields,
	}
}

// lookup dispatches to the query selected by the flags. With neither
// movie nor quote lookup requested the result is nil.
func lookup(ctx context.Context, svc *query.Service, o lookupOptions) (any, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}

	switch {
	case o.movie && o.movieID != "":
		return svc.RetrieveMovie(ctx, o.movieID, o.fields)
	case o.movie:
		return svc.ListMovies(ctx, o.queryOptions())
	case o.quote:
		return svc.ListQuotes(ctx, o.movieID, o.queryOptions())
	}

	return nil, nil
}
