package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// asciiFold maps the accented characters that show up in Canadian place
// and item names to plain ASCII. Anything else non-ASCII is dropped.
var asciiFold = map[rune]string{
	'à': "a", 'â': "a", 'ä': "a", 'á': "a", 'ã': "a", 'å': "a",
	'ç': "c",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'î': "i", 'ï': "i", 'í': "i",
	'ñ': "n",
	'ò': "o", 'ô': "o", 'ö': "o", 'ó': "o", 'õ': "o",
	'ù': "u", 'û': "u", 'ü': "u", 'ú': "u",
	'ý': "y", 'ÿ': "y",
	'æ': "ae", 'œ': "oe", 'ß': "ss",
}

// Slugify turns a display name into a URL-safe lowercase slug.
// Empty input (or input with no usable characters) falls back to "entry".
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
			continue
		}
		if m, ok := asciiFold[r]; ok {
			b.WriteString(m)
			continue
		}
		if unicode.IsSpace(r) {
			b.WriteRune(' ')
		}
	}
	slug := nonAlnum.ReplaceAllString(b.String(), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "entry"
	}
	return slug
}

// UniqueSlug resolves slug collisions for any model with a unique "slug"
// column: it tries base, then base-1, base-2, ... until a free slug is
// found. excludeID lets an update keep its current slug. The check is not
// atomic; callers retry on a unique violation at insert time.
func UniqueSlug(db *gorm.DB, model interface{}, base string, excludeID uint) (string, error) {
	slug := base
	for i := 1; ; i++ {
		var count int64
		q := db.Model(model).Where("slug = ?", slug)
		if excludeID > 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
