package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		md       string
		contains []string
		absent   []string
	}{
		{
			name:     "heading gets id",
			md:       "## The Vig\n",
			contains: []string{`<h2 id="the-vig">The Vig</h2>`},
		},
		{
			name:     "blockquote is a callout",
			md:       "> Never risk more than 10%.\n",
			contains: []string{`<blockquote class="callout">`, "Never risk more than 10%."},
		},
		{
			name:     "gfm table",
			md:       "| Price | Prob |\n|---|---|\n| 0.60 | 60% |\n",
			contains: []string{`<table class="lesson-table">`, "<th>Price</th>", "<td>0.60</td>"},
		},
		{
			name:     "strikethrough",
			md:       "~~gamble~~ trade\n",
			contains: []string{"<del>gamble</del>"},
		},
		{
			name:     "raw html is stripped",
			md:       "Hello <script>alert(1)</script>\n\n<div onclick=\"x()\">hi</div>\n",
			absent:   []string{"<script", "onclick"},
		},
		{
			name:     "links are nofollow",
			md:       "[Kalshi](https://kalshi.com)\n",
			contains: []string{`href="https://kalshi.com"`, "nofollow", `target="_blank"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := r.Render([]byte(tt.md))
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, html, want)
			}
			for _, bad := range tt.absent {
				assert.NotContains(t, html, bad)
			}
		})
	}
}

func TestRenderer_Fallback(t *testing.T) {
	html, err := NewRenderer().Render([]byte(FallbackMarkdown))
	require.NoError(t, err)
	assert.Contains(t, html, `<h1 id="error">Error</h1>`)
	assert.Contains(t, html, "Failed to load content.")
}
