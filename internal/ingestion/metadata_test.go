package ingestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	meta := NewMetadata("héllo")

	_, err := time.Parse(time.RFC3339, meta.Timestamp)
	require.NoError(t, err)
	assert.Len(t, meta.Hash, 64)
	assert.Equal(t, 5, meta.Chars)
	assert.Equal(t, ContentHash("héllo"), meta.Hash)
	assert.NotEqual(t, ContentHash("hello"), meta.Hash)
}

func TestMetadata_SourceMeta(t *testing.T) {
	meta := &Metadata{Filename: "cv.pdf", Format: "pdf", Timestamp: "t", Hash: "h"}
	assert.Equal(t, map[string]any{
		"filename":  "cv.pdf",
		"format":    "pdf",
		"timestamp": "t",
		"hash":      "h",
	}, meta.SourceMeta())
}
