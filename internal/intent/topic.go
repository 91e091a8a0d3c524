package intent

import (
	"strings"
	"unicode"
)

// Topic extraction policy:
//   - the first non-empty line that is not only directives ("Make it casual")
//     is the topic line, falling back to the first non-empty line
//   - trailing clauses made only of directive words (", no emojis") are dropped
//   - a leading "Create a fun post about" style preamble is dropped
//   - if nothing is left, the trimmed topic line is used as is

var leadVerbs = wordSet("create", "write", "generate", "make", "build", "craft", "compose", "draft", "give", "prepare")

var articles = wordSet("a", "an", "the", "some", "me", "us", "one", "and", "instagram", "engaging", "new", "short-form")

var postNouns = wordSet("post", "posts", "caption", "captions", "content")

var connectors = wordSet("about", "on", "featuring", "covering", "regarding")

var fillerWords = wordSet(
	"a", "an", "the", "and", "but", "or", "it", "its", "make", "keep", "please", "with", "include",
	"including", "add", "use", "using", "for", "be", "in", "at", "of", "to", "me", "us", "some",
	"few", "also", "very", "light", "approachable", "tone", "voice", "style", "format", "end",
	"emoji", "emojis", "tags", "call", "action", "no", "without", "save", "don't", "don’t",
	"dont", "do", "not", "format", "post", "caption",
)

var (
	prefixWords    = map[string]bool{}
	directiveWords = map[string]bool{}
)

func init() {
	for w := range leadVerbs {
		prefixWords[w] = true
	}
	for w := range articles {
		prefixWords[w] = true
	}
	for w := range fillerWords {
		directiveWords[w] = true
	}

	addWords := func(kws []string, dst ...map[string]bool) {
		for _, kw := range kws {
			for _, w := range strings.Fields(kw) {
				for _, m := range dst {
					m[w] = true
				}
			}
		}
	}
	for _, r := range styleRules {
		addWords(r.keywords, prefixWords, directiveWords)
	}
	for _, r := range lengthRules {
		addWords(r.keywords, prefixWords, directiveWords)
	}
	for _, r := range formatRules {
		addWords(r.keywords, directiveWords)
	}
	for _, r := range audienceRules {
		addWords(r.keywords, directiveWords)
	}
	for _, r := range flagRules {
		addWords(r.keywords, directiveWords)
	}
}

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

type span struct {
	start, end int
}

func extractTopic(raw string) string {
	line := topicLine(raw)
	if line == "" {
		return ""
	}

	topic := stripTrailingDirectives(line)
	topic = stripPreamble(topic)
	topic = strings.TrimSpace(strings.TrimRight(topic, " \t,.;:!-"))
	if topic == "" {
		return line
	}
	return topic
}

func topicLine(raw string) string {
	first := ""
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if !directiveOnly(line) {
			return line
		}
		if first == "" {
			first = line
		}
	}
	return first
}

// stripTrailingDirectives drops clauses at the end of s that only carry
// directives. The first clause is always kept.
func stripTrailingDirectives(s string) string {
	var clauses []span
	start := 0
	for i, r := range s {
		if isClauseBreak(r) {
			clauses = append(clauses, span{start, i})
			start = i + len(string(r))
		}
	}
	clauses = append(clauses, span{start, len(s)})

	cut := len(s)
	for k := len(clauses) - 1; k > 0; k-- {
		if !directiveOnly(s[clauses[k].start:clauses[k].end]) {
			break
		}
		cut = clauses[k-1].end
	}
	return s[:cut]
}

func isClauseBreak(r rune) bool {
	switch r {
	case ',', '.', ';', '!', '?':
		return true
	}
	return false
}

func directiveOnly(clause string) bool {
	for _, w := range strings.Fields(clause) {
		if !directiveWords[normalizeWord(w)] {
			return false
		}
	}
	return true
}

// stripPreamble removes a leading "Write an elegant post about" run. The run
// must end in a post noun or a connector, either one introduced by a verb or
// article, so "On the rocks" keeps its "On".
func stripPreamble(s string) string {
	spans := fields(s)
	anchor := -1
	seenLead := false

loop:
	for i, sp := range spans {
		w := normalizeWord(s[sp.start:sp.end])
		switch {
		case connectors[w] && seenLead:
			anchor = i
			break loop
		case postNouns[w] && seenLead:
			anchor = i
		case prefixWords[w]:
			seenLead = true
		default:
			break loop
		}
	}

	if anchor < 0 {
		return s
	}
	if anchor+1 >= len(spans) {
		return ""
	}
	return s[spans[anchor+1].start:]
}

func fields(s string) []span {
	var spans []span
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, span{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, span{start, len(s)})
	}
	return spans
}

func normalizeWord(w string) string {
	w = strings.ToLower(w)
	return strings.TrimFunc(w, func(r rune) bool {
		return !isWordRune(r) && r != '#'
	})
}
