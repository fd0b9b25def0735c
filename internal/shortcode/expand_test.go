package shortcode

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(
		Shortcode{
			Code: "hello",
			Func: func(_ *Context, atts Atts, _ string) string {
				return "Hello " + atts.Get("name", "nobody")
			},
			Atts: []Attribute{{Name: "name", Label: "Name", Default: "world"}},
		},
		Shortcode{
			Code:     "bold",
			Wrapping: true,
			Func: func(_ *Context, _ Atts, content string) string {
				return "<b>" + content + "</b>"
			},
		},
		Shortcode{
			Code: "dump",
			Func: func(_ *Context, atts Atts, _ string) string {
				keys := make([]string, 0, len(atts))
				for k, v := range atts {
					keys = append(keys, k+"="+v)
				}

				sort.Strings(keys)

				return strings.Join(keys, ";")
			},
		},
		Shortcode{
			Code: "user",
			Func: func(ctx *Context, _ Atts, _ string) string {
				if !ctx.LoggedIn() {
					return "guest"
				}

				return ctx.User.DisplayName
			},
		},
	)

	return r
}

func TestExpand(t *testing.T) {
	r := testRegistry()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no shortcodes", content: "plain text", want: "plain text"},
		{name: "default attribute", content: "[hello]", want: "Hello world"},
		{name: "double quoted", content: `a [hello name="Ann"] b`, want: "a Hello Ann b"},
		{name: "single quoted", content: `[hello name='Bo B']`, want: "Hello Bo B"},
		{name: "unquoted", content: `[hello name=Cy]`, want: "Hello Cy"},
		{name: "self closing", content: `[hello name="D" /]`, want: "Hello D"},
		{name: "wrapping", content: "[bold]x[/bold]", want: "<b>x</b>"},
		{name: "nested", content: "[bold]a [hello] b[/bold]", want: "<b>a Hello world b</b>"},
		{name: "wrapping without close", content: "[bold] rest", want: "<b></b> rest"},
		{name: "unknown code", content: "[nope a=1]x[/nope]", want: "[nope a=1]x[/nope]"},
		{name: "escaped", content: "[[hello]]", want: "[hello]"},
		{name: "flag and case", content: `[dump Flag size="2"]`, want: "flag=true;size=2"},
		{name: "bracket text", content: "array[0] and [ space]", want: "array[0] and [ space]"},
		{name: "prefix is not a match", content: "[hellothere]", want: "[hellothere]"},
		{name: "unterminated", content: "[hello name=", want: "[hello name="},
		{name: "quoted bracket", content: `[hello name="a]b"]`, want: "Hello a]b"},
		{name: "context user", content: "[user]", want: "guest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Expand(&Context{}, tt.content))
		})
	}
}

func TestExpandSkipsDisabled(t *testing.T) {
	r := testRegistry().Without(map[string]bool{"hello": true})

	assert.Equal(t, "[hello] <b>[hello]</b>", r.Expand(nil, "[hello] [bold][hello][/bold]"))
}

func TestExpandWithUser(t *testing.T) {
	r := testRegistry()

	out := r.Expand(&Context{User: &User{ID: 3, DisplayName: "Ann"}}, "hi [user]")
	assert.Equal(t, "hi Ann", out)
}

func TestStripParagraphs(t *testing.T) {
	assert.Equal(t, "[hello]", StripParagraphs("<p>[hello]</p>"))
	assert.Equal(t, "[hello]\ntext", StripParagraphs("[hello]<br />\ntext"))
	assert.Equal(t, "<p>text</p>", StripParagraphs("<p>text</p>"))
}

func TestParseAtts(t *testing.T) {
	atts := ParseAtts(`a="1" B='two words' c=3 flag  d = "spaced"`)

	assert.Equal(t, Atts{"a": "1", "b": "two words", "c": "3", "flag": FlagValue, "d": "spaced"}, atts)
	assert.Equal(t, 3, atts.Int("c", 0))
	assert.Equal(t, 7, atts.Int("missing", 7))
	assert.True(t, atts.Bool("flag", false))
	assert.True(t, atts.Bool("missing", true))
	assert.Equal(t, "def", atts.Get("missing", "def"))
}

func TestContextTime(t *testing.T) {
	var ctx *Context

	assert.False(t, ctx.LoggedIn())
	assert.False(t, ctx.Time().IsZero())
}
