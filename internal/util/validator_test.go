package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImageSize(t *testing.T) {
	assert.NoError(t, ValidateImageSize(2*1024*1024, 3))
	assert.NoError(t, ValidateImageSize(3*1024*1024, 3))

	err := ValidateImageSize(4*1024*1024, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 MB")
}

func TestValidateMimeTypeSniffsContent(t *testing.T) {
	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
	mime, err := ValidateMimeType(bytes.NewReader(png), []string{MimeImage})
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.True(t, IsImage(mime))

	// A renamed text file must not pass as an image.
	_, err = ValidateMimeType(bytes.NewReader([]byte("definitely not an image")), []string{MimeImage})
	assert.Error(t, err)
}

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		ok   bool
	}{
		{"philosophers-stone", true},
		{"year_one", true},
		{"OWLs2024", true},
		{"", false},
		{"has spaces", false},
		{"bad/slug", false},
		{"ümlaut", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, ValidSlug(tt.slug), "slug %q", tt.slug)
	}
}
