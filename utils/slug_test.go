package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Wooden Coffee Table":       "wooden-coffee-table",
		"  IKEA  Shelf!! (white) ":  "ikea-shelf-white",
		"Montréal Café Chairs":      "montreal-cafe-chairs",
		"Québec-Dépôt":              "quebec-depot",
		"UPPERCASE_and_underscores": "uppercase-and-underscores",
		"---":                       "entry",
		"":                          "entry",
		"日本語のみ":                     "entry",
		"50% off!":                  "50-off",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestSlugifyNoLeadingOrTrailingHyphens(t *testing.T) {
	got := Slugify("!!hello world!!")
	assert.Equal(t, "hello-world", got)
}
