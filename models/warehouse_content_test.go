package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackingSlug(t *testing.T) {
	assert.Equal(t, "harborline-north", LocationAddress{Name: "Harborline North"}.TrackingSlug())
	assert.Equal(t, "bay-area-dc-2", LocationAddress{Name: "Bay  Area DC 2"}.TrackingSlug())
}

func TestDialablePhone(t *testing.T) {
	assert.Equal(t, "+15550142290", ContactInfo{PhoneNumber: "+1 (555) 014-2290"}.DialablePhone())
}

func TestFormFieldLayout(t *testing.T) {
	assert.True(t, FormField{Name: "notes", Type: FieldTypeTextarea}.IsFullWidth())
	assert.True(t, FormField{Name: "additionalNotes", Type: FieldTypeText}.IsFullWidth())
	assert.False(t, FormField{Name: "email", Type: FieldTypeEmail}.IsFullWidth())

	f := FormField{Options: []string{"North", "South"}}
	assert.True(t, f.HasOption("South"))
	assert.False(t, f.HasOption("East"))
}
