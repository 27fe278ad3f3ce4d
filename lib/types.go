package lib

import "net/http"

// HttpClient is satisfied by *http.Client. Outbound calls go through this
// interface so that tests can substitute a mock transport.
type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}
