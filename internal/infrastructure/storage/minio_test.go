package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeyFromURL(t *testing.T) {
	s := &MinIOStorage{bucket: "cupid"}

	t.Run("locator maps back to object key", func(t *testing.T) {
		key, err := s.extractKeyFromURL("http://localhost:9000/cupid/loves/photo/3f2a.jpg")
		require.NoError(t, err)
		assert.Equal(t, "loves/photo/3f2a.jpg", key)
	})

	t.Run("foreign bucket rejected", func(t *testing.T) {
		_, err := s.extractKeyFromURL("http://localhost:9000/other/loves/photo/3f2a.jpg")
		assert.Error(t, err)
	})

	t.Run("bare url rejected", func(t *testing.T) {
		_, err := s.extractKeyFromURL("http://localhost:9000/cupid")
		assert.Error(t, err)
	})
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, ".jpg", fileExtension("us.jpg", nil))
	assert.Equal(t, ".mp3", fileExtension("Song Name.MP3", nil))
	assert.Equal(t, ".png", fileExtension("photo", pngBytes))
}
