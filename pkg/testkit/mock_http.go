// Package testkit provides test doubles for outgoing HTTP calls.
//
// MockTransport implements http.RoundTripper: it matches requests against
// stubbed routes and returns synthetic responses instead of touching the
// network. Install it on the shared client before the test:
//
//	mt := testkit.NewMockTransport()
//	mt.On("POST", "/api/farmers/signup", 201, `{"id":1,"name":"Abel"}`)
//	defer mt.Install()()
//	// ... run code under test ...
//	require.Equal(t, 1, mt.Calls("POST", "/api/farmers/signup"))
package testkit

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"sync"

	gebhttp "github.com/ethioagri/gebeya/pkg/http"
)

type route struct {
	method  string
	path    string // matched as a substring of the request URL
	status  int
	body    string
	headers http.Header
	err     error
}

// Call records one intercepted request.
type Call struct {
	Method string
	URL    string
	Body   []byte
}

// MockTransport is an http.RoundTripper serving stubbed routes.
type MockTransport struct {
	mu     sync.Mutex
	routes []route
	calls  []Call
}

// NewMockTransport returns an empty transport. Unmatched requests get a
// 404 with an explanatory body.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// On stubs a response for requests whose URL contains path.
func (mt *MockTransport) On(method, path string, status int, body string) *MockTransport {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.routes = append(mt.routes, route{method: method, path: path, status: status, body: body})
	return mt
}

// OnError stubs a transport-level failure (no response at all) for
// requests whose URL contains path.
func (mt *MockTransport) OnError(method, path string, err error) *MockTransport {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.routes = append(mt.routes, route{method: method, path: path, err: err})
	return mt
}

// Install swaps this transport onto the shared HTTP client and returns
// the restore func:
//
//	defer mt.Install()()
func (mt *MockTransport) Install() func() {
	gebhttp.DefaultClient.Transport = mt
	return gebhttp.ResetTransport
}

// RoundTrip intercepts the outgoing request.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}

	mt.mu.Lock()
	mt.calls = append(mt.calls, Call{Method: req.Method, URL: req.URL.String(), Body: body})

	var match *route
	for i := range mt.routes {
		r := &mt.routes[i]
		if r.method == req.Method && strings.Contains(req.URL.String(), r.path) {
			match = r
			break
		}
	}
	mt.mu.Unlock()

	if match == nil {
		return synthetic(req, http.StatusNotFound, `{"error":"no mock configured"}`), nil
	}
	if match.err != nil {
		return nil, match.err
	}
	return synthetic(req, match.status, match.body), nil
}

// Calls counts intercepted requests matching method and a URL substring.
// Empty arguments match everything.
func (mt *MockTransport) Calls(method, path string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	n := 0
	for _, c := range mt.calls {
		if (method == "" || c.Method == method) && strings.Contains(c.URL, path) {
			n++
		}
	}
	return n
}

// LastBody returns the body of the most recent intercepted request, or
// nil when nothing was captured.
func (mt *MockTransport) LastBody() []byte {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if len(mt.calls) == 0 {
		return nil
	}
	return mt.calls[len(mt.calls)-1].Body
}

func synthetic(req *http.Request, status int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Request:    req,
	}
}
