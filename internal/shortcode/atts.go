package shortcode

import (
	"strconv"
	"strings"
)

// FlagValue is the value of an attribute given without "=".
const FlagValue = "true"

// Atts are the attributes of one shortcode occurrence, keyed by lower case name.
type Atts map[string]string

// Get returns the value of name or def when it is missing or empty.
func (a Atts) Get(name, def string) string {
	if v, ok := a[name]; ok && v != "" {
		return v
	}

	return def
}

// Bool interprets the attribute as a boolean.
func (a Atts) Bool(name string, def bool) bool {
	v, ok := a[name]
	if !ok || v == "" {
		return def
	}

	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}

	return def
}

// Int interprets the attribute as an integer.
func (a Atts) Int(name string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(a[name]))
	if err != nil {
		return def
	}

	return v
}

// withDefaults returns a copy of a with the attribute defaults of sc filled in.
func (a Atts) withDefaults(sc Shortcode) Atts {
	out := make(Atts, len(a)+len(sc.Atts))

	for _, att := range sc.Atts {
		if att.Default != "" {
			out[strings.ToLower(att.Name)] = att.Default
		}
	}

	for k, v := range a {
		out[k] = v
	}

	return out
}

func isNameRune(r rune) bool {
	return r == '_' || r == '-' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

// ParseAtts parses the attribute text of an opening tag:
// name="v", name='v', name=v and bare flags.
func ParseAtts(text string) Atts {
	atts := make(Atts)
	i := 0

	for i < len(text) {
		for i < len(text) && isSpace(text[i]) {
			i++
		}

		if i >= len(text) {
			break
		}

		start := i
		for i < len(text) && !isSpace(text[i]) && text[i] != '=' {
			i++
		}

		name := strings.ToLower(strings.Trim(text[start:i], `"'`))

		for i < len(text) && isSpace(text[i]) {
			i++
		}

		if i >= len(text) || text[i] != '=' {
			if name != "" {
				atts[name] = FlagValue
			}

			continue
		}

		i++ // '='

		for i < len(text) && isSpace(text[i]) {
			i++
		}

		var value string

		if i < len(text) && (text[i] == '"' || text[i] == '\'') {
			quote := text[i]
			i++
			end := strings.IndexByte(text[i:], quote)

			if end < 0 {
				value = text[i:]
				i = len(text)
			} else {
				value = text[i : i+end]
				i += end + 1
			}
		} else {
			start = i
			for i < len(text) && !isSpace(text[i]) {
				i++
			}

			value = text[start:i]
		}

		if name != "" {
			atts[name] = value
		}
	}

	return atts
}
