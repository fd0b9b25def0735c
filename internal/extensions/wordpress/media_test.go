package wordpress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/render-shortcodes/render/internal/shortcode"
)

func TestMedia(t *testing.T) {
	r := shortcode.NewRegistry()
	for _, sc := range Media() {
		require.NoError(t, r.Register(sc))
	}

	assert.Equal(t, []string{"media"}, r.Categories())

	tests := []struct {
		content string
		want    string
	}{
		{
			`[caption id="c1" width="300" caption="A cat"]<img src="cat.jpg">[/caption]`,
			`<figure id="c1" class="wp-caption alignnone" style="width: 300px"><img src="cat.jpg"><figcaption class="wp-caption-text">A cat</figcaption></figure>`,
		},
		{`[audio src="a.mp3" loop]`, `<audio class="wp-audio-shortcode" controls loop src="a.mp3"></audio>`},
		{`[video src="v.mp4"]`, `<video class="wp-video-shortcode" controls width="640" height="360" src="v.mp4"></video>`},
		{`[embed width="500"]https://example.com/v[/embed]`, `<iframe class="wp-embedded-content" src="https://example.com/v" width="500"></iframe>`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Expand(nil, tt.content), tt.content)
	}
}
