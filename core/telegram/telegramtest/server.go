// Package telegramtest provides a fake Bot API server for handler tests.
//
// Point tele.Settings.URL at Server.URL and every API call is recorded and
// answered with a minimal successful result unless a failure was injected.
package telegramtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// Token is a syntactically valid bot token accepted by the fake server.
const Token = "123456:TEST-token_value"

// BotUsername is returned by getMe.
const BotUsername = "counter_test_bot"

// Call is one recorded Bot API request.
type Call struct {
	Method string
	Params map[string]string
}

// Failure is the error answer injected for a method.
type Failure struct {
	Code        int
	Description string
	// Times limits how many calls fail; 0 fails every call.
	Times int
}

// Server is a recording fake of the Telegram Bot API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	calls    []Call
	failures map[string]*Failure
	nextID   int
}

// NewServer starts a fake Bot API server closed at test cleanup.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{failures: make(map[string]*Failure), nextID: 100}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Fail makes subsequent calls to method return an API error.
func (s *Server) Fail(method string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = &f
}

// Calls returns the recorded calls, optionally filtered by method names.
// Polling calls (getUpdates) are never recorded.
func (s *Server) Calls(methods ...string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, 0, len(s.calls))
	for _, c := range s.calls {
		if len(methods) == 0 || contains(methods, c.Method) {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls and injected failures.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
	s.failures = make(map[string]*Failure)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	params := decodeParams(r)

	if method == "getUpdates" {
		// Hold the poll briefly so a running bot does not spin.
		select {
		case <-r.Context().Done():
		case <-time.After(20 * time.Millisecond):
		}
		writeJSON(w, map[string]any{"ok": true, "result": []any{}})
		return
	}

	s.mu.Lock()
	s.calls = append(s.calls, Call{Method: method, Params: params})
	f := s.failures[method]
	if f != nil && f.Times > 0 {
		f.Times--
		if f.Times == 0 {
			delete(s.failures, method)
		}
	}
	s.nextID++
	id := s.nextID
	s.mu.Unlock()

	if f != nil {
		w.WriteHeader(f.Code)
		writeJSON(w, map[string]any{"ok": false, "error_code": f.Code, "description": f.Description})
		return
	}
	writeJSON(w, map[string]any{"ok": true, "result": result(method, params, id)})
}

func result(method string, params map[string]string, id int) any {
	switch method {
	case "getMe":
		return map[string]any{"id": 1, "is_bot": true, "first_name": "Counter", "username": BotUsername}
	case "sendMessage":
		return message(id, params)
	case "editMessageText":
		if params["inline_message_id"] != "" {
			return true
		}
		msgID, _ := strconv.Atoi(params["message_id"])
		return message(msgID, params)
	default:
		return true
	}
}

func message(id int, params map[string]string) map[string]any {
	chatID, _ := strconv.ParseInt(params["chat_id"], 10, 64)
	return map[string]any{
		"message_id": id,
		"date":       time.Now().Unix(),
		"chat":       map[string]any{"id": chatID, "type": "private"},
		"text":       params["text"],
	}
}

func decodeParams(r *http.Request) map[string]string {
	params := make(map[string]string)
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		return params
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return params
	}
	for k, v := range raw {
		switch x := v.(type) {
		case string:
			params[k] = x
		case nil:
		default:
			b, _ := json.Marshal(x)
			params[k] = string(b)
		}
	}
	return params
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("encode: %v", err), http.StatusInternalServerError)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
