package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sant0-9/postcraft/internal/config"
	"github.com/sant0-9/postcraft/internal/history"
)

func TestReadInstruction(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"until eof", "line one\nline two\n", "line one\nline two"},
		{"stops at END", "Create a fun post\nAdd a CTA\nEND\nignored", "Create a fun post\nAdd a CTA"},
		{"lowercase end with spaces", "Rioja\n  end  \n", "Rioja"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readInstruction(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("readInstruction() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("readInstruction() = %q, want %q", got, tt.want)
			}
		})
	}
}

type parsedJSON struct {
	Topic    string   `json:"topic"`
	Style    string   `json:"style"`
	Length   string   `json:"length"`
	Audience string   `json:"audience"`
	Flags    []string `json:"flags"`
	SaveFile bool     `json:"save_file"`
}

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"postcraft"}, args...))
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := runApp(t, "", "parse", "Write an elegant and sophisticated post about summer rosé wines. No emojis please.")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}

	var got parsedJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Topic != "summer rosé wines" || got.Style != "elegant" || !got.SaveFile {
		t.Errorf("parsed = %+v", got)
	}
	if len(got.Flags) != 1 || got.Flags[0] != "no_emojis" {
		t.Errorf("flags = %v, want [no_emojis]", got.Flags)
	}
	if !strings.Contains(out, "rosé") {
		t.Error("non-ASCII text was escaped")
	}
}

func TestParseCommandStdin(t *testing.T) {
	stdin := "Create a fun post about Italian Chianti wine\nMake it educational but casual\nAdd a call to action\nEND\nfor experts\n"
	out, err := runApp(t, stdin, "parse", "-")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}

	var got parsedJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Style != "fun" || got.Audience != "" {
		t.Errorf("parsed = %+v, want fun with no audience", got)
	}
	if len(got.Flags) != 1 || got.Flags[0] != "include_cta" {
		t.Errorf("flags = %v", got.Flags)
	}
}

func TestParseCommandNeedsInstruction(t *testing.T) {
	for _, args := range [][]string{{"parse"}, {"parse", "   "}, {"generate"}} {
		if _, err := runApp(t, "", args...); !errors.Is(err, errNoInstruction) {
			t.Errorf("%v error = %v, want errNoInstruction", args, err)
		}
	}
}

func TestGenerateRequiresAPIKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("POSTCRAFT_API_KEY", "")
	t.Setenv("POSTCRAFT_PROVIDER", "")

	_, err := runApp(t, "", "--output-dir", t.TempDir(), "generate", "A post about Barolo")
	if !errors.Is(err, config.ErrMissingAPIKey) {
		t.Errorf("generate error = %v, want ErrMissingAPIKey", err)
	}
}

func TestHistoryCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	log := history.NewJSONLog(history.JSONPath(dir))
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		e := history.Entry{ID: fmt.Sprint(i), Timestamp: base.Add(time.Duration(i) * time.Minute), Topic: fmt.Sprintf("topic %02d", i)}
		if err := log.Append(context.Background(), e); err != nil {
			t.Fatal(err)
		}
	}

	out, err := runApp(t, "", "--output-dir", dir, "history", "--limit", "3")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if !strings.Contains(out, "Content history (12 entries)") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, " 3. 2024-03-01T09:11:00 - topic 11") {
		t.Errorf("missing newest entry:\n%s", out)
	}
	if strings.Contains(out, "topic 08") {
		t.Errorf("limit not applied:\n%s", out)
	}
}

func TestHistoryCommandEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runApp(t, "", "--output-dir", filepath.Join(t.TempDir(), "none"), "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if strings.TrimSpace(out) != "No content history found." {
		t.Errorf("output = %q", out)
	}
}
