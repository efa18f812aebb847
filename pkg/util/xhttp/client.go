package xhttp

import "net/http"

// Client is the interface of a http client.
type Client interface {
	Do(*http.Request) (*http.Response, error)
}

// Default returns c, or http.DefaultClient when c is nil.
func Default(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return http.DefaultClient
}
