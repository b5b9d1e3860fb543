// Package onering provides a client for the movie endpoints of The One API
// (https://the-one-api.dev).
//
// The API is read-only. Every successful response is a JSON object whose
// records live under the "docs" key; the client unwraps that envelope and
// returns the records in upstream order.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := onering.NewClient(onering.DefaultBaseURL, onering.BearerHeader(token), logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	movies, err := client.Docs(ctx, onering.MoviesEndpoint)
//
// # Records
//
// The upstream schema is not fixed, so records are kept as ordered JSON
// objects (Record) rather than typed structs. Key order survives decoding
// and encoding.
//
// # Error Handling
//
// Any non-200 response is returned as an *APIError carrying the status code
// and the response body:
//
//	var apiErr *onering.APIError
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// Handle auth failure
//	}
package onering
