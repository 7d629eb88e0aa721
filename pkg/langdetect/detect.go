// Package langdetect names the language of fenced code blocks, either from
// the fence info string or, when there is none, from the code itself.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// candidates limits the classifier to languages commonly fenced in docs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// aliases covers the short fence tags go-enry does not know, or resolves to
// a different language than the one people mean in docs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var aliases = map[string]string{
	"py":     "python",
	"py3":    "python",
	"golang": "go",
	"rb":     "ruby",
	"rs":     "rust",
	"js":     "javascript",
	"mjs":    "javascript",
	"ts":     "typescript",
	"yml":    "yaml",
	"sh":     "bash",
	"zsh":    "bash",
	"shell":  "bash",
}

// rule recognises a language from a highly indicative pattern.
type rule struct {
	lang  string
	match func(content, trimmed []byte, s string) bool
}

//nolint:gochecknoglobals // Read-only lookup table, checked in order.
var rules = []rule{
	{"go", func(_, trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", func(_, _ []byte, s string) bool {
		switch {
		case strings.Contains(s, "def ") && strings.Contains(s, "):"):
			return true
		case strings.Contains(s, "__name__"), strings.Contains(s, "__main__"):
			return true
		case strings.Contains(s, "import ") && !strings.Contains(s, "import ("):
			return strings.Contains(s, "from ") || strings.HasPrefix(strings.TrimSpace(s), "import ")
		}
		return false
	}},
	{"html", func(_, trimmed []byte, _ string) bool {
		lower := bytes.ToLower(trimmed)
		for _, tag := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
			if bytes.Contains(lower, []byte(tag)) {
				return true
			}
		}
		return false
	}},
	{"json", func(_, trimmed []byte, _ string) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"dockerfile", func(content, trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
			(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
			(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY ")))
	}},
	{"sql", func(_, _ []byte, s string) bool {
		upper := strings.ToUpper(strings.TrimSpace(s))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(_, _ []byte, s string) bool {
		return strings.Contains(s, "fn main()") || strings.Contains(s, "println!") || strings.Contains(s, "let mut ")
	}},
	{"javascript", func(_, _ []byte, s string) bool {
		return strings.Contains(s, "=>") || strings.Contains(s, "const ") ||
			strings.Contains(s, "let ") || strings.Contains(s, "console.log")
	}},
	{"yaml", func(content, _ []byte, _ string) bool {
		return yamlPairs(content) >= 2
	}},
}

// Detect guesses the language of code. It returns Text when unsure.
func Detect(code []byte) string {
	if len(bytes.TrimSpace(code)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(code); safe {
		return tag(lang)
	}

	trimmed := bytes.TrimSpace(code)
	s := string(code)
	for _, r := range rules {
		if r.match(code, trimmed, s) {
			return r.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(code, candidates); safe && lang != "" {
		return tag(lang)
	}
	return Text
}

// Normalize maps a fence info string such as "golang {.numberLines}" or
// "Shell" to a canonical lower-case tag. Unknown languages are returned
// lower-cased; an empty info string yields "".
func Normalize(info string) string {
	word, _, _ := strings.Cut(strings.TrimSpace(info), " ")
	word = strings.Trim(word, "{}.")
	if word == "" {
		return ""
	}
	if lang, ok := aliases[strings.ToLower(word)]; ok {
		return lang
	}
	if lang, ok := enry.GetLanguageByAlias(word); ok {
		return tag(lang)
	}
	return strings.ToLower(word)
}

// tag converts a go-enry language name to a fence tag.
func tag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}

// yamlPairs counts lines that look like "key: value" or "- item".
func yamlPairs(content []byte) int {
	n := 0
	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") && line[0] != '"' {
			n++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			n++
		}
	}
	return n
}
