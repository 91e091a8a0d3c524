package intent

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type rule[T any] struct {
	value    T
	keywords []string
}

var styleRules = []rule[Style]{
	{StyleCasual, []string{"casual", "relaxed", "laid-back", "informal"}},
	{StyleProfessional, []string{"professional", "formal", "business", "corporate"}},
	{StyleFun, []string{"fun", "playful", "energetic", "vibrant", "exciting"}},
	{StyleElegant, []string{"elegant", "sophisticated", "classy", "refined"}},
	{StyleEducational, []string{"educational", "informative", "teaching", "learning"}},
}

var lengthRules = []rule[Length]{
	{LengthShort, []string{"short", "brief", "concise", "quick"}},
	{LengthDetailed, []string{"detailed", "long", "comprehensive", "in-depth"}},
}

var formatRules = []rule[Format]{
	{FormatStory, []string{"story", "narrative", "storytelling"}},
	{FormatList, []string{"list", "bullet", "bullets", "tips"}},
	{FormatQuestion, []string{"question", "quiz", "poll"}},
}

var audienceRules = []rule[string]{
	{"beginners", []string{"beginners", "beginner", "novices", "newbies"}},
	{"experts", []string{"experts", "expert", "connoisseurs"}},
	{"wine enthusiasts", []string{"wine enthusiasts", "wine lovers"}},
	{"foodies", []string{"foodies", "food lovers"}},
	{"sommeliers", []string{"sommeliers"}},
	{"families", []string{"families"}},
	{"students", []string{"students"}},
	{"professionals", []string{"professionals"}},
	{"general audience", []string{"general audience", "everyone"}},
}

var flagRules = []rule[Flags]{
	{FlagNoEmojis, []string{"no emoji", "no emojis", "without emoji", "without emojis"}},
	{FlagIncludeCTA, []string{"call to action", "call-to-action", "cta"}},
	{FlagIncludeHashtags, []string{"hashtag", "hashtags", "tags", "#"}},
}

var noSaveKeywords = []string{"no save", "don't save", "don’t save", "dont save", "do not save"}

// Parse turns a free-text instruction into a Request.
//
// Every category is matched case-insensitively against the whole text and
// the keyword found at the smallest offset wins. Parse never fails: an empty
// or blank instruction yields a Request with an empty Topic, which Validate
// rejects.
func Parse(raw string) Request {
	lower := strings.ToLower(raw)

	req := Request{
		Topic:    extractTopic(raw),
		SaveFile: true,
	}
	req.Style, _ = earliest(lower, styleRules)
	req.Length, _ = earliest(lower, lengthRules)
	req.Format, _ = earliest(lower, formatRules)
	req.Audience, _ = earliest(lower, audienceRules)

	for _, r := range flagRules {
		if containsAny(lower, r.keywords) {
			req.Flags |= r.value
		}
	}
	if containsAny(lower, noSaveKeywords) {
		req.SaveFile = false
	}

	return req
}

// earliest returns the value of the keyword found first in text. Ties on
// offset go to the longer keyword, then to table order.
func earliest[T any](text string, rules []rule[T]) (T, bool) {
	var best T
	bestPos, bestLen := -1, 0
	for _, r := range rules {
		for _, kw := range r.keywords {
			pos := indexKeyword(text, kw)
			if pos < 0 {
				continue
			}
			if bestPos < 0 || pos < bestPos || (pos == bestPos && len(kw) > bestLen) {
				best, bestPos, bestLen = r.value, pos, len(kw)
			}
		}
	}
	return best, bestPos >= 0
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if indexKeyword(text, kw) >= 0 {
			return true
		}
	}
	return false
}

// indexKeyword finds kw in text. Keywords that start or end with a letter or
// digit only match on word boundaries, so "fun" is not found in "funky".
func indexKeyword(text, kw string) int {
	if kw == "" {
		return -1
	}
	start := 0
	for start <= len(text)-len(kw) {
		i := strings.Index(text[start:], kw)
		if i < 0 {
			return -1
		}
		i += start
		if boundaryBefore(text, i, kw) && boundaryAfter(text, i+len(kw), kw) {
			return i
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		start = i + size
	}
	return -1
}

func boundaryBefore(text string, i int, kw string) bool {
	first, _ := utf8.DecodeRuneInString(kw)
	if i == 0 || !isWordRune(first) {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(prev)
}

func boundaryAfter(text string, j int, kw string) bool {
	last, _ := utf8.DecodeLastRuneInString(kw)
	if j >= len(text) || !isWordRune(last) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(text[j:])
	return !isWordRune(next)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
