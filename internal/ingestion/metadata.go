package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes where a piece of ingested text came from
type Metadata struct {
	Filename  string `json:"filename,omitempty"`
	URL       string `json:"url,omitempty"`
	Platform  string `json:"platform,omitempty"` // job board detected from the URL
	Format    string `json:"format,omitempty"`
	Timestamp string `json:"timestamp"` // RFC3339, UTC
	Hash      string `json:"hash"`      // SHA-256 of the normalized text
	Chars     int    `json:"chars"`
}

// NewMetadata stamps content with the current time and its hash
func NewMetadata(content string) *Metadata {
	return &Metadata{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      ContentHash(content),
		Chars:     len([]rune(content)),
	}
}

// ContentHash is the hex SHA-256 digest of content
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// SourceMeta flattens m into the free-form source_meta map carried on
// resumes and job descriptions. Empty fields are omitted.
func (m *Metadata) SourceMeta() map[string]any {
	out := map[string]any{
		"timestamp": m.Timestamp,
		"hash":      m.Hash,
	}
	for k, v := range map[string]string{
		"filename": m.Filename,
		"url":      m.URL,
		"platform": m.Platform,
		"format":   m.Format,
	} {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
