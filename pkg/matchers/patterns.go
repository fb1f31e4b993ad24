package matchers

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/arthur-debert/speculate/pkg/logging"
)

// Filter holds the include and exclude glob lists of an install run.
// An empty Include list lets every name through the include stage.
type Filter struct {
	Include []string
	Exclude []string
}

// Matches reports whether name passes the filter
func (f Filter) Matches(name string) bool {
	return Matches(name, f.Include, f.Exclude)
}

// Matches reports whether filename matches at least one include pattern
// (or includes is empty) and no exclude pattern.
func Matches(filename string, includes, excludes []string) bool {
	if len(includes) > 0 && !matchAny(filename, includes) {
		return false
	}
	return !matchAny(filename, excludes)
}

func matchAny(filename string, patterns []string) bool {
	for _, p := range patterns {
		if Match(p, filename) {
			return true
		}
	}
	return false
}

// Match reports whether filename matches a single glob pattern
func Match(pattern, filename string) bool {
	re, err := regexp.Compile(Translate(pattern))
	if err != nil {
		logger := logging.GetLogger("matchers")
		logger.Debug().
			Err(err).
			Str("pattern", pattern).
			Str("filename", filename).
			Msg("error compiling glob pattern")
		return false
	}
	return re.MatchString(filename)
}

// Normalize collapses every run of "*" into a single "*"
func Normalize(pattern string) string {
	for strings.Contains(pattern, "**") {
		pattern = strings.ReplaceAll(pattern, "**", "*")
	}
	return pattern
}

// Translate converts a glob pattern into an anchored regular expression
func Translate(pattern string) string {
	pat := []rune(Normalize(pattern))
	n := len(pat)

	var b strings.Builder
	b.WriteString(`\A(?s:`)
	for i := 0; i < n; {
		c := pat[i]
		i++
		switch c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			j := i
			if j < n && pat[j] == '!' {
				j++
			}
			if j < n && pat[j] == ']' {
				j++
			}
			for j < n && pat[j] != ']' {
				j++
			}
			if j >= n {
				b.WriteString(`\[`)
				continue
			}
			b.WriteString(class(pat[i:j]))
			i = j + 1
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString(`)\z`)
	return b.String()
}

// class translates the body of a bracket expression. Ranges whose bounds
// are reversed are dropped; a class left empty never matches.
func class(body []rune) string {
	negate := len(body) > 0 && body[0] == '!'
	if negate {
		body = body[1:]
	}

	var items strings.Builder
	for p := 0; p < len(body); {
		lo := body[p]
		if p+2 < len(body) && body[p+1] == '-' {
			hi := body[p+2]
			p += 3
			if lo <= hi {
				items.WriteString(classRune(lo) + "-" + classRune(hi))
			}
			continue
		}
		items.WriteString(classRune(lo))
		p++
	}

	switch {
	case items.Len() == 0 && negate:
		return "."
	case items.Len() == 0:
		return `[^\x{0}-\x{10FFFF}]`
	case negate:
		return "[^" + items.String() + "]"
	default:
		return "[" + items.String() + "]"
	}
}

func classRune(r rune) string {
	if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
		return string(r)
	}
	return fmt.Sprintf(`\x{%X}`, r)
}
