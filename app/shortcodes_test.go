package app

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/render-shortcodes/render/internal/db/controller/disabled"
	"github.com/render-shortcodes/render/internal/render"
)

func TestPrintShortcodes(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	registry, err := render.BuildRegistry(render.Extensions)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printShortcodes(&buf, registry.All(), disabled.Set{"render_box"}, "design", false))

	out := buf.String()
	assert.Contains(t, out, "render_button")
	assert.Contains(t, out, "render_box")
	assert.NotContains(t, out, "render_post_title")
	assert.Contains(t, out, "disabled")

	buf.Reset()
	require.NoError(t, printShortcodes(&buf, registry.All(), disabled.Set{"render_box"}, "", true))

	out = buf.String()
	assert.Contains(t, out, "render_box")
	assert.NotContains(t, out, "render_button")
}

func TestCheckCodes(t *testing.T) {
	registry, err := render.BuildRegistry(render.Extensions)
	require.NoError(t, err)

	require.NoError(t, checkCodes(registry, []string{"render_box", "caption"}))

	err = checkCodes(registry, []string{"render_box", "nope", "nada"})
	require.Error(t, err)
	assert.Equal(t, "unknown shortcode(s): nope, nada", err.Error())
}
