// Package query implements the movie and quote lookups: fetch records
// through a Requester, then narrow them with the search, where and field
// filters.
package query

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/onering/onering"
)

// Options holds the optional filters of a list query
type Options struct {
	// Search is a "key,value" substring filter
	Search string
	// Where is an expr-lang boolean expression over record fields
	Where string
	// Fields is a comma separated projection list
	Fields string
}

// plan is the parsed form of Options
type plan struct {
	search *Search
	where  *Where
	fields Fields
}

func (o Options) compile() (*plan, error) {
	p := &plan{fields: ParseFields(o.Fields)}

	if o.Search != "" {
		search, err := ParseSearch(o.Search)
		if err != nil {
			return nil, err
		}
		p.search = search
	}

	if o.Where != "" {
		where, err := CompileWhere(o.Where)
		if err != nil {
			return nil, err
		}
		p.where = where
	}

	return p, nil
}

// apply runs search, where and projection, in that order
func (p *plan) apply(recs []onering.Record) ([]onering.Record, error) {
	var err error
	if p.search != nil {
		if recs, err = p.search.Apply(recs); err != nil {
			return nil, err
		}
	}
	if p.where != nil {
		if recs, err = p.where.Apply(recs); err != nil {
			return nil, err
		}
	}
	if len(p.fields) > 0 {
		if recs, err = p.fields.Apply(recs); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

// Service runs queries against The One API
type Service struct {
	api    onering.Requester
	logger zerolog.Logger
}

// NewService creates a new query service
func NewService(api onering.Requester, logger zerolog.Logger) *Service {
	return &Service{
		api:    api,
		logger: logger,
	}
}

// ListMovies lists movies, optionally filtered and projected
func (s *Service) ListMovies(ctx context.Context, opts Options) ([]onering.Record, error) {
	return s.list(ctx, onering.MoviesEndpoint, opts)
}

// ListQuotes lists the quotes of a movie, optionally filtered and projected
func (s *Service) ListQuotes(ctx context.Context, movieID string, opts Options) ([]onering.Record, error) {
	return s.list(ctx, onering.QuotesEndpoint(movieID), opts)
}

// RetrieveMovie returns a single movie, optionally projected to fields
func (s *Service) RetrieveMovie(ctx context.Context, movieID, fields string) (onering.Record, error) {
	projection := ParseFields(fields)

	docs, err := s.api.Docs(ctx, onering.MovieEndpoint(movieID))
	if err != nil {
		return onering.Record{}, err
	}
	if len(docs) == 0 {
		return onering.Record{}, fmt.Errorf("movie %s: %w", movieID, ErrEmptyResult)
	}

	movie := docs[0]
	if len(projection) == 0 {
		return movie, nil
	}
	return projection.Project(movie)
}

func (s *Service) list(ctx context.Context, endpoint string, opts Options) ([]onering.Record, error) {
	p, err := opts.compile()
	if err != nil {
		return nil, err
	}

	docs, err := s.api.Docs(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	result, err := p.apply(docs)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("endpoint", endpoint).
		Int("fetched", len(docs)).
		Int("matched", len(result)).
		Msg("Applied filters")

	return result, nil
}
