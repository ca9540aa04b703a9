package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCondition(t *testing.T) {
	for _, c := range ConditionChoices {
		assert.True(t, ValidCondition(c))
	}
	assert.False(t, ValidCondition("mint"))
	assert.False(t, ValidCondition(""))
}

func TestValidStatus(t *testing.T) {
	for _, s := range StatusChoices {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("gone"))
	assert.False(t, ValidStatus(""))
}
