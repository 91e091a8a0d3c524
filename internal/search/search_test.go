package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sant0-9/postcraft/internal/config"
)

const ddgPage = `<html><body>
<div class="result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fchianti&rut=x">Chianti   Classico
    guide</a>
  <a class="result__snippet">Sangiovese from <b>Tuscany</b>.</a>
</div>
<div class="result">
  <a class="result__a" href="https://example.org/cheese">Aged cheese</a>
  <div class="result__snippet">Pecorino and Parmigiano.</div>
</div>
<div class="result"><a class="result__a" href="https://example.net">Third</a></div>
</body></html>`

func TestDuckDuckGoSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "chianti pairing" {
			t.Errorf("q = %q", got)
		}
		w.Write([]byte(ddgPage))
	}))
	defer srv.Close()

	d := NewDuckDuckGo()
	d.baseURL = srv.URL

	results, err := d.Search(context.Background(), "chianti pairing", 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	want := Result{Title: "Chianti Classico guide", URL: "https://example.com/chianti", Snippet: "Sangiovese from Tuscany."}
	if results[0] != want {
		t.Errorf("results[0] = %+v, want %+v", results[0], want)
	}
	if results[1].URL != "https://example.org/cheese" {
		t.Errorf("results[1].URL = %q", results[1].URL)
	}
}

func TestDuckDuckGoStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	d := NewDuckDuckGo()
	d.baseURL = srv.URL
	if _, err := d.Search(context.Background(), "x", 3); err == nil {
		t.Error("Search() error = nil, want error")
	}
}

func TestTavilySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req tavilyRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.APIKey != "tv" || req.MaxResults != 5 {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte(`{"results":[{"title":"Rosé","url":"https://example.com/rose","content":"Dry  Provence\nrosé","score":0.9}]}`))
	}))
	defer srv.Close()

	tv := NewTavily("tv")
	tv.baseURL = srv.URL

	results, err := tv.Search(context.Background(), "summer rosé", 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Snippet != "Dry Provence rosé" {
		t.Errorf("results = %+v", results)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		cfg      config.SearchConfig
		wantName string
		wantErr  bool
	}{
		{config.SearchConfig{Provider: "duckduckgo"}, "duckduckgo", false},
		{config.SearchConfig{Provider: "tavily", APIKey: "k"}, "tavily", false},
		{config.SearchConfig{Provider: "tavily"}, "", true},
		{config.SearchConfig{Provider: "none"}, "", false},
		{config.SearchConfig{Provider: "bing"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.cfg.Provider, func(t *testing.T) {
			s, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			name := ""
			if s != nil {
				name = s.Name()
			}
			if name != tt.wantName {
				t.Errorf("Name() = %q, want %q", name, tt.wantName)
			}
		})
	}
}

func TestFormatResults(t *testing.T) {
	if got := FormatResults(nil); got != "" {
		t.Errorf("FormatResults(nil) = %q, want empty", got)
	}

	got := FormatResults([]Result{
		{Title: "A", URL: "https://a", Snippet: "first"},
		{Title: "B"},
	})
	if !strings.HasPrefix(got, "1. A\n   https://a\n   first\n2. B") {
		t.Errorf("FormatResults() = %q", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("FormatResults() has trailing newline")
	}
}
