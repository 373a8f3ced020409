package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_StripsExecutableContent(t *testing.T) {
	s := New()

	out := s.Sanitize(`<p onclick="steal()">Sweet children<script>alert(1)</script></p>` +
		`<a href="javascript:alert(1)">x</a><iframe src="https://evil.example"></iframe>`)

	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "javascript:")
	assert.NotContains(t, out, "iframe")
	assert.Contains(t, out, "<p>Sweet children</p>")
}

func TestSanitize_KeepsFormatting(t *testing.T) {
	s := New()

	out := s.Sanitize(`<h2 class="murli-title">Essence</h2><p><b>Question:</b> <i>answer</i></p>`)

	assert.Contains(t, out, `<h2 class="murli-title">Essence</h2>`)
	assert.Contains(t, out, `<b>Question:</b> <i>answer</i>`)
}

func TestSanitize_Links(t *testing.T) {
	s := New()

	out := s.Sanitize(`<a href="https://madhubanmurli.org">site</a>`)

	assert.Contains(t, out, `href="https://madhubanmurli.org"`)
	assert.Contains(t, out, "nofollow")
	assert.Contains(t, out, "noopener")
	assert.Contains(t, out, `target="_blank"`)
}

func TestPlainText(t *testing.T) {
	in := `<html><head><style>p{color:red}</style></head><body>` +
		`<h2>Essence</h2><p>Sweet   children,<br>remember the Father.</p>` +
		`<script>var x = 1;</script><p>Om shanti</p></body></html>`

	assert.Equal(t, "Essence\n\nSweet children,\nremember the Father.\n\nOm shanti", PlainText(in))
}
