package onering

// Header holds the HTTP headers attached to every request
type Header map[string]string

// BearerHeader builds the authorization header for an access token
func BearerHeader(token string) Header {
	return Header{"Authorization": "Bearer " + token}
}

// docsEnvelope is the wrapper around every successful response
type docsEnvelope struct {
	Docs   *[]Record `json:"docs"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
	Page   int       `json:"page"`
	Pages  int       `json:"pages"`
}
