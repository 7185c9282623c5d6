package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "Rina", Text("  <b>Rina</b> "))
	assert.Equal(t, "late & tired", Text("late & tired<script>alert(1)</script>"))
	assert.Equal(t, "", Text("<img src=x>"))
	assert.Equal(t, `Rina's "desk"`, Text(`Rina's "desk"`))
}

func TestText_EncodedMarkupStaysEscaped(t *testing.T) {
	for _, in := range []string{
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;",
		"&#60;img src=x onerror=alert(1)&#62;",
		"a < b",
	} {
		got := Text(in)
		assert.NotContains(t, got, "<", in)
		assert.NotContains(t, got, ">", in)
	}
	assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", Text("&lt;script&gt;alert(1)&lt;/script&gt;"))
}

func TestOptionalText(t *testing.T) {
	assert.Nil(t, OptionalText(nil))

	blank := "<br>"
	assert.Nil(t, OptionalText(&blank))

	note := "left early"
	got := OptionalText(&note)
	if assert.NotNil(t, got) {
		assert.Equal(t, "left early", *got)
	}
}
