package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecentListTouchMovesToFront(t *testing.T) {
	var l RecentList
	for _, id := range []uint{1, 2, 1, 3} {
		l = l.Touch(id)
	}
	assert.Equal(t, RecentList{3, 1, 2}, l)
}

func TestRecentListTouchDeduplicates(t *testing.T) {
	l := RecentList{5, 4, 3}
	l = l.Touch(4)
	assert.Equal(t, RecentList{4, 5, 3}, l)
	l = l.Touch(4)
	assert.Equal(t, RecentList{4, 5, 3}, l)
}

func TestRecentListBounded(t *testing.T) {
	var l RecentList
	for id := uint(1); id <= 25; id++ {
		l = l.Touch(id)
	}
	assert.Len(t, l, RecentLimit)
	assert.Equal(t, uint(25), l[0])
	assert.Equal(t, uint(16), l[len(l)-1])
}

func TestRecentListHead(t *testing.T) {
	l := RecentList{9, 8, 7}
	assert.Equal(t, RecentList{9, 8}, l.Head(2))
	assert.Equal(t, l, l.Head(10))
	assert.Empty(t, RecentList{}.Head(5))
}
