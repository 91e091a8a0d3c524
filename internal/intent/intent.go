package intent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is returned by Validate when a request cannot be generated.
var ErrInvalidInput = errors.New("invalid input")

// Style is the voice requested for a post
type Style int

const (
	StyleDefault Style = iota
	StyleCasual
	StyleProfessional
	StyleFun
	StyleElegant
	StyleEducational
)

var styleNames = [...]string{"default", "casual", "professional", "fun", "elegant", "educational"}

func (s Style) String() string {
	if int(s) < 0 || int(s) >= len(styleNames) {
		return "unknown"
	}
	return styleNames[s]
}

func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Describe returns the writing instruction for the style
func (s Style) Describe() string {
	switch s {
	case StyleCasual:
		return "a casual, relaxed and informal"
	case StyleProfessional:
		return "a professional and polished"
	case StyleFun:
		return "a fun, playful and energetic"
	case StyleElegant:
		return "an elegant and sophisticated"
	case StyleEducational:
		return "an educational and informative"
	default:
		return "a neutral to fun and conversational"
	}
}

// Length is the requested caption length
type Length int

const (
	LengthDefault Length = iota
	LengthShort
	LengthDetailed
)

var lengthNames = [...]string{"default", "short", "detailed"}

func (l Length) String() string {
	if int(l) < 0 || int(l) >= len(lengthNames) {
		return "unknown"
	}
	return lengthNames[l]
}

func (l Length) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Format is a structural hint for the caption
type Format int

const (
	FormatDefault Format = iota
	FormatStory
	FormatList
	FormatQuestion
)

var formatNames = [...]string{"default", "story", "list", "question"}

func (f Format) String() string {
	if int(f) < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Flags is a set of additive requirements. The zero value has nothing set.
type Flags uint8

const (
	FlagNoEmojis Flags = 1 << iota
	FlagIncludeCTA
	FlagIncludeHashtags
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagNoEmojis, "no_emojis"},
	{FlagIncludeCTA, "include_cta"},
	{FlagIncludeHashtags, "include_hashtags"},
}

// Has reports whether every flag in f is set
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

// Names returns the set flags in a fixed order
func (fl Flags) Names() []string {
	names := []string{}
	for _, n := range flagNames {
		if fl.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return names
}

func (fl Flags) String() string {
	return strings.Join(fl.Names(), ",")
}

func (fl Flags) MarshalJSON() ([]byte, error) {
	return json.Marshal(fl.Names())
}

// Request is the structured form of a user's instruction.
// It holds no reference to the raw text it was parsed from.
type Request struct {
	Topic    string `json:"topic"`
	Style    Style  `json:"style"`
	Length   Length `json:"length"`
	Audience string `json:"audience,omitempty"`
	Format   Format `json:"format_hint"`
	Flags    Flags  `json:"flags"`
	SaveFile bool   `json:"save_file"`
}

// NewRequest creates a request for a bare topic with every option at its default
func NewRequest(topic string) Request {
	return Request{
		Topic:    strings.TrimSpace(topic),
		SaveFile: true,
	}
}

// Validate reports an ErrInvalidInput when the request has no topic
func (r Request) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("%w: topic is empty", ErrInvalidInput)
	}
	return nil
}

// Requirements lists the requirement names shown to the user
func (r Request) Requirements() []string {
	reqs := r.Flags.Names()
	if r.Length != LengthDefault {
		reqs = append(reqs, r.Length.String()+"_format")
	}
	if r.Format != FormatDefault {
		reqs = append(reqs, r.Format.String()+"_format")
	}
	return reqs
}
