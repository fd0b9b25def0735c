package shortcode

import (
	"strings"
)

// maxDepth bounds recursion into wrapped content.
const maxDepth = 16

var paragraphReplacer = strings.NewReplacer(
	"<p>[", "[",
	"]</p>", "]",
	"]<br />", "]",
)

// StripParagraphs removes the paragraph and line break markup editors put
// directly around shortcode tags.
func StripParagraphs(content string) string {
	return paragraphReplacer.Replace(content)
}

type tag struct {
	name        string
	atts        string
	selfClosing bool
	end         int // index after the closing ']'
}

// parseTag parses an opening tag starting at s[pos] == '['.
func parseTag(s string, pos int) (tag, bool) {
	j := pos + 1

	for j < len(s) && isNameRune(rune(s[j])) {
		j++
	}

	if j == pos+1 || j >= len(s) {
		return tag{}, false
	}

	if c := s[j]; c != ']' && c != '/' && !isSpace(c) {
		return tag{}, false
	}

	var quote byte

	k := j
	for ; k < len(s); k++ {
		c := s[k]

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			return tag{}, false
		}

		if quote == 0 && c == ']' {
			break
		}
	}

	if k >= len(s) {
		return tag{}, false
	}

	t := tag{name: s[pos+1 : j], end: k + 1}

	atts := strings.TrimSpace(s[j:k])
	if strings.HasSuffix(atts, "/") {
		t.selfClosing = true
		atts = strings.TrimSpace(strings.TrimSuffix(atts, "/"))
	}

	t.atts = atts

	return t, true
}

// Expand replaces every registered shortcode in content with its output.
// Unknown codes are left as they are. [[code]] escapes a tag and yields [code].
func (r *Registry) Expand(ctx *Context, content string) string {
	return r.expand(ctx, content, 0)
}

func (r *Registry) expand(ctx *Context, content string, depth int) string {
	if depth > maxDepth || !strings.Contains(content, "[") {
		return content
	}

	var (
		b strings.Builder
		i int
	)

	b.Grow(len(content))

	for i < len(content) {
		open := strings.IndexByte(content[i:], '[')
		if open < 0 {
			b.WriteString(content[i:])
			break
		}

		open += i
		b.WriteString(content[i:open])

		// escaped tag
		if open+1 < len(content) && content[open+1] == '[' {
			if t, ok := parseTag(content, open+1); ok && t.end < len(content) && content[t.end] == ']' {
				b.WriteString(content[open+1 : t.end])
				i = t.end + 1

				continue
			}
		}

		t, ok := parseTag(content, open)
		if !ok {
			b.WriteByte('[')
			i = open + 1

			continue
		}

		sc, found := r.Get(t.name)
		if !found {
			b.WriteString(content[open:t.end])
			i = t.end

			continue
		}

		var inner string

		next := t.end

		if sc.Wrapping && !t.selfClosing {
			closing := "[/" + t.name + "]"
			if idx := strings.Index(content[t.end:], closing); idx >= 0 {
				inner = r.expand(ctx, content[t.end:t.end+idx], depth+1)
				next = t.end + idx + len(closing)
			}
		}

		b.WriteString(sc.Func(ctx, ParseAtts(t.atts).withDefaults(sc), inner))
		i = next
	}

	return b.String()
}
