package intent

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		instruction  string
		wantTopic    string
		wantStyle    Style
		wantLength   Length
		wantAudience string
		wantFormat   Format
		wantFlags    Flags
	}{
		{
			name:        "bare topic",
			instruction: "Summer rosé and seafood pairings",
			wantTopic:   "Summer rosé and seafood pairings",
		},
		{
			name:        "earliest style wins",
			instruction: "elegant and casual wine post",
			wantTopic:   "elegant and casual wine post",
			wantStyle:   StyleElegant,
		},
		{
			name:        "trailing requirement clause",
			instruction: "wine post, no emojis",
			wantTopic:   "wine post",
			wantFlags:   FlagNoEmojis,
		},
		{
			name:        "fun and casual with cta",
			instruction: "Create a fun and casual Instagram post about pairing Italian Chianti with aged cheese. Make it educational but keep it light and include a call to action.",
			wantTopic:   "pairing Italian Chianti with aged cheese",
			wantStyle:   StyleFun,
			wantFlags:   FlagIncludeCTA,
		},
		{
			name:        "elegant without emojis",
			instruction: "Write an elegant and sophisticated post about summer rosé wines. No emojis please.",
			wantTopic:   "summer rosé wines",
			wantStyle:   StyleElegant,
			wantFlags:   FlagNoEmojis,
		},
		{
			name:         "short for beginners with hashtags",
			instruction:  "Generate a short and concise post about artisanal chocolate and wine pairings for beginners. Make it approachable and include hashtags.",
			wantTopic:    "artisanal chocolate and wine pairings for beginners",
			wantLength:   LengthShort,
			wantAudience: "beginners",
			wantFlags:    FlagIncludeHashtags,
		},
		{
			name:        "story format",
			instruction: "Tell the story of a Napa harvest",
			wantTopic:   "Tell the story of a Napa harvest",
			wantFormat:  FormatStory,
		},
		{
			name:         "detailed for experts",
			instruction:  "Write about Barolo vintages, detailed, for experts",
			wantTopic:    "Barolo vintages",
			wantLength:   LengthDetailed,
			wantAudience: "experts",
		},
		{
			name:        "directive-only first line is skipped",
			instruction: "Make it casual\nItalian Chianti wine",
			wantTopic:   "Italian Chianti wine",
			wantStyle:   StyleCasual,
		},
		{
			name:        "tags asks for hashtags",
			instruction: "Write a post about Barolo, add tags",
			wantTopic:   "Barolo",
			wantFlags:   FlagIncludeHashtags,
		},
		{
			name:        "leading connector is part of the topic",
			instruction: "On the rocks: summer spritz pairings",
			wantTopic:   "On the rocks: summer spritz pairings",
		},
		{
			name:        "list format",
			instruction: "Five tips for pairing Port with Stilton",
			wantTopic:   "Five tips for pairing Port with Stilton",
			wantFormat:  FormatList,
		},
		{
			name:        "question format",
			instruction: "A quiz on Champagne houses",
			wantTopic:   "A quiz on Champagne houses",
			wantFormat:  FormatQuestion,
		},
		{
			name:         "earliest audience wins",
			instruction:  "Sherry styles for experts and beginners",
			wantTopic:    "Sherry styles for experts and beginners",
			wantAudience: "experts",
		},
		{
			name:        "emoji in input",
			instruction: "🍷 Professional post about Rioja 🧀, with CTA",
			wantTopic:   "🍷 Professional post about Rioja 🧀",
			wantStyle:   StyleProfessional,
			wantFlags:   FlagIncludeCTA,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.instruction)
			if got.Topic != tt.wantTopic {
				t.Errorf("Topic = %q, want %q", got.Topic, tt.wantTopic)
			}
			if got.Style != tt.wantStyle {
				t.Errorf("Style = %v, want %v", got.Style, tt.wantStyle)
			}
			if got.Length != tt.wantLength {
				t.Errorf("Length = %v, want %v", got.Length, tt.wantLength)
			}
			if got.Audience != tt.wantAudience {
				t.Errorf("Audience = %q, want %q", got.Audience, tt.wantAudience)
			}
			if got.Format != tt.wantFormat {
				t.Errorf("Format = %v, want %v", got.Format, tt.wantFormat)
			}
			if got.Flags != tt.wantFlags {
				t.Errorf("Flags = %v, want %v", got.Flags, tt.wantFlags)
			}
		})
	}
}

func TestParseMultiLineScenario(t *testing.T) {
	prompt := `
    Create a fun post about Italian Chianti wine
    Make it educational but casual
    Include food pairing suggestions
    Add a call to action
    `

	got := Parse(prompt)
	if got.Style != StyleFun {
		t.Errorf("Style = %v, want fun", got.Style)
	}
	if !got.Flags.Has(FlagIncludeCTA) {
		t.Errorf("Flags = %v, want include_cta set", got.Flags)
	}
	if !strings.Contains(got.Topic, "Italian Chianti wine") {
		t.Errorf("Topic = %q, want it to contain %q", got.Topic, "Italian Chianti wine")
	}
	if !got.SaveFile {
		t.Error("SaveFile = false, want true")
	}
}

func TestParseIsDeterministic(t *testing.T) {
	inputs := []string{
		"",
		"elegant and casual wine post",
		"Create a fun post about Italian Chianti wine\nAdd a call to action",
		"no emojis, #hashtags, quiz for foodies",
	}
	for _, in := range inputs {
		first := Parse(in)
		for i := 0; i < 5; i++ {
			if got := Parse(in); !reflect.DeepEqual(got, first) {
				t.Fatalf("Parse(%q) changed between calls: %+v vs %+v", in, got, first)
			}
		}
	}
}

func TestParseDefaults(t *testing.T) {
	got := Parse("A post about Tuscan olive oil")
	if got.Style != StyleDefault {
		t.Errorf("Style = %v, want default", got.Style)
	}
	if got.Length != LengthDefault || got.Format != FormatDefault {
		t.Errorf("Length/Format = %v/%v, want defaults", got.Length, got.Format)
	}
	if got.Flags != 0 {
		t.Errorf("Flags = %v, want none", got.Flags)
	}
	if got.Audience != "" {
		t.Errorf("Audience = %q, want empty", got.Audience)
	}
}

func TestParseFlagsAreAdditive(t *testing.T) {
	if got := Parse("wine post").Flags; got != 0 {
		t.Errorf("Flags = %v, want none", got)
	}
	got := Parse("wine post, no emojis, add a CTA and some hashtags")
	want := FlagNoEmojis | FlagIncludeCTA | FlagIncludeHashtags
	if got.Flags != want {
		t.Errorf("Flags = %v, want %v", got.Flags, want)
	}
}

func TestParseWordBoundaries(t *testing.T) {
	got := Parse("funky natural wines from the Loire")
	if got.Style != StyleDefault {
		t.Errorf("Style = %v, want default (fun must not match funky)", got.Style)
	}
}

func TestParseNoSave(t *testing.T) {
	if Parse("Port and Stilton, don't save").SaveFile {
		t.Error("SaveFile = true, want false")
	}
	if got := Parse("Port and Stilton, don't save").Topic; got != "Port and Stilton" {
		t.Errorf("Topic = %q, want %q", got, "Port and Stilton")
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t\n"} {
		got := Parse(in)
		if got.Topic != "" {
			t.Errorf("Parse(%q).Topic = %q, want empty", in, got.Topic)
		}
		if err := got.Validate(); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Validate() error = %v, want ErrInvalidInput", err)
		}
	}
}

func TestFlagsNames(t *testing.T) {
	f := FlagIncludeHashtags | FlagNoEmojis
	if got := f.String(); got != "no_emojis,include_hashtags" {
		t.Errorf("String() = %q", got)
	}
	if got := Flags(0).Names(); len(got) != 0 {
		t.Errorf("Names() = %v, want empty", got)
	}
}

func TestEarliestTieBreak(t *testing.T) {
	rules := []rule[string]{
		{"short", []string{"wine"}},
		{"long", []string{"wine lovers"}},
		{"first", []string{"cheese"}},
		{"second", []string{"cheese"}},
	}
	tests := []struct {
		text string
		want string
	}{
		{"wine lovers unite", "long"},
		{"red wine for lovers", "short"},
		{"cheese board", "first"},
		{"no match here", ""},
	}
	for _, tt := range tests {
		got, ok := earliest(tt.text, rules)
		if got != tt.want || ok != (tt.want != "") {
			t.Errorf("earliest(%q) = %q, %v, want %q", tt.text, got, ok, tt.want)
		}
	}
}
