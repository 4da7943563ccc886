package formdata

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIndexedFields(t *testing.T) {
	values := map[string][]string{
		"portfolio[0][title]":       {"Kitchen Remodel"},
		"portfolio[0][description]": {"Full renovation"},
		"portfolio[0][completedOn]": {"2023-05-01"},
		"portfolio[0][location]":    {"Pune"},
		"portfolio[2][title]":       {"Bathroom"},
		"name":                      {"ACME Contractors"}, // unrelated field
		"portfolio[x][title]":       {"bad index"},        // malformed, ignored
		"portfolio[1][unknown]":     {"not a field"},      // unknown field, ignored
	}

	entries := ParseIndexedFields(values)

	assert.Len(t, entries, 2)
	assert.Equal(t, "Kitchen Remodel", entries[0].Title)
	assert.Equal(t, "Full renovation", entries[0].Description)
	assert.Equal(t, "2023-05-01", entries[0].CompletedOn)
	assert.Equal(t, "Pune", entries[0].Location)

	// index 2 has only a title; the rest stay empty
	assert.Equal(t, "Bathroom", entries[2].Title)
	assert.Empty(t, entries[2].Description)

	// index 1 only appeared with an unknown field, so no record is fabricated
	_, ok := entries[1]
	assert.False(t, ok)
}

func TestParseIndexedFieldsLastValueWins(t *testing.T) {
	values := map[string][]string{
		"portfolio[0][title]": {"first", "second", "final"},
	}

	entries := ParseIndexedFields(values)
	assert.Equal(t, "final", entries[0].Title)
}

func TestParseIndexedFieldsEmptyValuesPassThrough(t *testing.T) {
	values := map[string][]string{
		"portfolio[3][title]":       {""},
		"portfolio[3][description]": {"desc"},
	}

	entries := ParseIndexedFields(values)
	assert.Len(t, entries, 1)
	assert.Equal(t, "", entries[3].Title)
	assert.Equal(t, "desc", entries[3].Description)
}

func TestGroupFilesByIndex(t *testing.T) {
	fh := func(name string) *multipart.FileHeader {
		return &multipart.FileHeader{Filename: name}
	}

	forms := map[string][]*multipart.FileHeader{
		"portfolio[0][images]": {fh("a.jpg"), fh("b.jpg")},
		"portfolio[5][images]": {fh("c.png")},
		"profilePhoto":         {fh("me.jpg")},            // other form field, skipped
		"portfolio[0][title]":  {fh("not-an-image.bin")},  // wrong subfield, skipped
	}

	groups := GroupFilesByIndex(forms)

	assert.Len(t, groups, 2)
	assert.Len(t, groups[0], 2)
	assert.Equal(t, "a.jpg", groups[0][0].Filename)
	assert.Equal(t, "b.jpg", groups[0][1].Filename)
	assert.Len(t, groups[5], 1)
	assert.Equal(t, "c.png", groups[5][0].Filename)
}

func TestParseExistingImages(t *testing.T) {
	values := map[string][]string{
		"existingImages[0]":   {"https://host/a.jpg", "https://host/b.jpg"},
		"existingImages[2][]": {"https://host/c.jpg"},
		"existingImages[3]":   {""}, // empty URLs dropped
		"portfolio[0][title]": {"unrelated"},
	}

	retained := ParseExistingImages(values)

	assert.Equal(t, []string{"https://host/a.jpg", "https://host/b.jpg"}, retained[0])
	assert.Equal(t, []string{"https://host/c.jpg"}, retained[2])
	_, ok := retained[3]
	assert.False(t, ok)
}
