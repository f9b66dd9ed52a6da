package request

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestJoinURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		paths    []string
		expected string
	}{
		{
			name:     "simple join",
			base:     "https://example.com",
			paths:    []string{"api", "folder"},
			expected: "https://example.com/api/folder",
		},
		{
			name:     "preserves query parameters",
			base:     "https://example.com",
			paths:    []string{"api", "folder?access_token=tok"},
			expected: "https://example.com/api/folder?access_token=tok",
		},
		{
			name:     "trailing slash on base",
			base:     "https://example.com/",
			paths:    []string{"api"},
			expected: "https://example.com/api",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JoinURL(tt.base, tt.paths...)
			if err != nil {
				t.Fatalf("JoinURL() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("JoinURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseRateLimit(t *testing.T) {
	tests := []struct {
		name    string
		rateStr string
		wantNil bool
	}{
		{name: "per minute", rateStr: "60/minute", wantNil: false},
		{name: "per second", rateStr: "5/second", wantNil: false},
		{name: "empty", rateStr: "", wantNil: true},
		{name: "garbage", rateStr: "lots", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := ParseRateLimit(tt.rateStr)
			if (rl == nil) != tt.wantNil {
				t.Errorf("ParseRateLimit(%q) nil = %v, want %v", tt.rateStr, rl == nil, tt.wantNil)
			}
		})
	}
}

func TestMakeRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Test") != "yes" {
			t.Errorf("default header not applied")
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := New(
		WithTimeout(5*time.Second),
		WithHeaders(map[string]string{"X-Test": "yes"}),
	)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	body, err := client.MakeRequest(req)
	if err != nil {
		t.Fatalf("MakeRequest() error = %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("MakeRequest() body = %q", string(body))
	}
}

func TestMakeRequestHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "pending", http.StatusBadRequest)
	}))
	defer server.Close()

	client := New()
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	_, err := client.MakeRequest(req)
	if err == nil {
		t.Fatal("expected error for 400 response")
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T", err)
	}
	if httpErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want %d", httpErr.StatusCode, http.StatusBadRequest)
	}
	if !IsStatus(err, http.StatusBadRequest) {
		t.Error("IsStatus() = false, want true")
	}
	if IsStatus(err, http.StatusInternalServerError) {
		t.Error("IsStatus() matched the wrong status")
	}
}
