package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerptStripsMarkup(t *testing.T) {
	in := "<p>Rinse <strong>containers</strong> before recycling.</p><p>Labels can stay on.</p>"
	assert.Equal(t, "Rinse containers before recycling.Labels can stay on.", Excerpt(in, 200))
}

func TestExcerptCollapsesWhitespace(t *testing.T) {
	in := "Compost  keeps\n\nfood   waste\tout of landfills."
	assert.Equal(t, "Compost keeps food waste out of landfills.", Excerpt(in, 200))
}

func TestExcerptTruncates(t *testing.T) {
	in := strings.Repeat("a", 50)
	got := Excerpt(in, 10)
	assert.Equal(t, strings.Repeat("a", 10)+"…", got)
}

func TestExcerptShortPlainText(t *testing.T) {
	assert.Equal(t, "Short tip", Excerpt("Short tip", 200))
}
