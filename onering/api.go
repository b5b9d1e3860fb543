package onering

import (
	"context"
	"net/url"
)

// Endpoint suffixes appended to the base URL
const (
	MoviesEndpoint = "/movie/"
)

// MovieEndpoint returns the endpoint for a single movie
func MovieEndpoint(id string) string {
	return "/movie/" + url.PathEscape(id) + "/"
}

// QuotesEndpoint returns the endpoint listing the quotes of a movie
func QuotesEndpoint(id string) string {
	return "/movie/" + url.PathEscape(id) + "/quote/"
}

// Requester fetches the docs array of an endpoint
type Requester interface {
	// Docs performs a GET on endpoint and returns the records under "docs"
	Docs(ctx context.Context, endpoint string) ([]Record, error)
}
