package httpposttest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Server records every request it receives and answers with a fixed status.
type Server struct {
	ts     *httptest.Server
	URL    string
	mu     sync.Mutex
	data   []Request
	closed bool
}

type Request struct {
	Method  string
	Path    string
	Headers http.Header
	Raw     []byte
}

// NewServer starts a server answering status with body.
func NewServer(status int, body string) *Server {
	s := new(Server)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := Request{
			Method:  r.Method,
			Path:    r.URL.Path,
			Headers: r.Header.Clone(),
		}
		req.Raw, _ = io.ReadAll(r.Body)
		s.mu.Lock()
		s.data = append(s.data, req)
		s.mu.Unlock()
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	s.ts = ts
	s.URL = ts.URL
	return s
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.data...)
}

func (s *Server) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.ts.Close()
}
