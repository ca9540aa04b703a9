package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidMaterial(t *testing.T) {
	assert.True(t, ValidMaterial("glass"))
	assert.True(t, ValidMaterial("hazardous"))
	assert.False(t, ValidMaterial("Glass"))
	assert.False(t, ValidMaterial("uranium"))
	assert.False(t, ValidMaterial(""))
}

func TestCenterFullAddress(t *testing.T) {
	rc := RecyclingCenter{
		Address: "12 Main St",
		City:    "Halifax",
		State:   "NS",
		Zipcode: "B3H 1A1",
	}
	assert.Equal(t, "12 Main St, Halifax, NS B3H 1A1", rc.FullAddress())
}

func TestCenterOperatingHours(t *testing.T) {
	rc := RecyclingCenter{MondayHours: "9-5", SundayHours: "Closed"}
	hours := rc.OperatingHours()
	assert.Len(t, hours, 7)
	assert.Equal(t, [2]string{"Monday", "9-5"}, hours[0])
	assert.Equal(t, [2]string{"Sunday", "Closed"}, hours[6])
}
