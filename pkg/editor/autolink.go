package editor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gojot/pkg/textcol"
)

// minURLLength is the shortest word considered for auto-linking.
const minURLLength = 4

//nolint:gochecknoglobals // Compiled patterns and lookup tables are read-only.
var (
	schemeURLPattern = regexp.MustCompile(`(?i)^(https?|ftp)://[^\s/?#]+\S*$`)
	wwwURLPattern    = regexp.MustCompile(`(?i)^www\.[a-z0-9-]+(\.[a-z0-9-]+)+(:\d+)?([/?#]\S*)?$`)
	bareURLPattern   = regexp.MustCompile(
		`(?i)^([a-z0-9]([a-z0-9-]*[a-z0-9])?\.)+([a-z]{2,})(:\d+)?([/?#]\S*)?$`)

	knownTLDs = setOf(
		"com", "org", "net", "io", "dev", "app", "co", "ai", "edu", "gov", "mil",
		"info", "biz", "me", "tv", "us", "uk", "ca", "de", "fr", "nl", "se", "no",
		"fi", "dk", "ch", "at", "be", "es", "it", "pl", "cz", "ru", "jp", "cn",
		"kr", "in", "au", "nz", "br", "mx", "ar", "za", "eu", "xyz", "site",
		"online", "tech", "blog", "news", "page", "cloud", "so", "gg", "fm", "ly",
	)

	fileExtensions = setOf(
		"md", "txt", "go", "js", "ts", "tsx", "jsx", "py", "rb", "rs", "java",
		"json", "yaml", "yml", "toml", "html", "css", "png", "jpg", "jpeg", "gif",
		"svg", "pdf", "zip", "tar", "gz", "sh", "exe", "doc", "docx", "csv", "log",
	)
)

func setOf(items ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		out[item] = struct{}{}
	}
	return out
}

// LooksLikeURL reports whether word is a URL or a bare domain worth linking.
func LooksLikeURL(word string) bool {
	if len(word) < minURLLength {
		return false
	}
	if schemeURLPattern.MatchString(word) || wwwURLPattern.MatchString(word) {
		return true
	}
	match := bareURLPattern.FindStringSubmatch(word)
	if match == nil {
		return false
	}
	tld := strings.ToLower(match[3])
	if _, ext := fileExtensions[tld]; ext {
		return false
	}
	_, known := knownTLDs[tld]
	return known
}

// splitTrailingPunct separates sentence punctuation from the end of word.
// A closing parenthesis is kept when the word contains a matching opener.
func splitTrailingPunct(word string) (string, string) {
	end := len(word)
	for end > 0 {
		r, size := utf8.DecodeLastRuneInString(word[:end])
		if r == ')' && strings.Count(word[:end], "(") >= strings.Count(word[:end], ")") {
			break
		}
		if !strings.ContainsRune(".,;:!?)'\"", r) {
			break
		}
		end -= size
	}
	return word[:end], word[end:]
}

// linkWordAt rewrites the word ending at byte offset end of line as a
// markdown link. It returns the new line and the number of UTF-16 units
// added, or ok=false when the word is not a URL.
func linkWordAt(line string, end int) (string, int, bool) {
	start := end
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:start])
		if unicode.IsSpace(r) {
			break
		}
		start -= size
	}
	word := line[start:end]
	if word == "" || strings.HasPrefix(word, "(") || strings.HasPrefix(word, "[") ||
		strings.HasPrefix(word, "<") || strings.Contains(word, "](") {
		return line, 0, false
	}

	url, trailing := splitTrailingPunct(word)
	if !LooksLikeURL(url) {
		return line, 0, false
	}

	link := "[" + url + "](" + url + ")"
	added := textcol.Len(link) - textcol.Len(url)
	return line[:start] + link + trailing + line[end:], added, true
}

// TryFormatURLBeforeSpace links the word before a space just typed at the
// cursor. It returns nil when there is nothing to link.
func TryFormatURLBeforeSpace(s *State) *State {
	if HasSelection(s) {
		return nil
	}
	cur := s.ClampPosition(s.Cursor)
	line := s.Lines[cur.Line]
	off := textcol.ByteOffset(line, cur.Col)
	if off == 0 || line[off-1] != ' ' {
		return nil
	}

	text, added, ok := linkWordAt(line, off-1)
	if !ok {
		return nil
	}
	lines := replaceLines(s.Lines, cur.Line, cur.Line+1, text)
	return s.withLines(lines, Position{Line: cur.Line, Col: cur.Col + added})
}

// TryFormatURLBeforeNewline links the last word of the line above the cursor
// after a newline was inserted. It returns nil when there is nothing to link.
func TryFormatURLBeforeNewline(s *State) *State {
	if HasSelection(s) {
		return nil
	}
	cur := s.ClampPosition(s.Cursor)
	if cur.Line == 0 {
		return nil
	}
	prev := s.Lines[cur.Line-1]

	text, _, ok := linkWordAt(prev, len(prev))
	if !ok {
		return nil
	}
	lines := replaceLines(s.Lines, cur.Line-1, cur.Line, text)
	return s.withLines(lines, cur)
}
