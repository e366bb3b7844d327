package parsing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobDescription_Text(t *testing.T) {
	jd, err := ParseJobDescription(context.Background(), JobSource{Text: "Need Python  and\nSQL, ISO27001."}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Need Python and SQL, ISO27001.", jd.RawText)
	assert.Equal(t, []string{"Python"}, jd.Entities.RequiredSkills)
	assert.Equal(t, []string{"ISO27001"}, jd.Entities.Keywords)
	assert.Equal(t, DefaultJobFilename, jd.SourceMeta["filename"])
	assert.NotNil(t, jd.Entities.Tools)
}

func TestParseJobDescription_SourcePriority(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<main>Kubernetes docker</main>"))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "posting.txt")
	require.NoError(t, os.WriteFile(path, []byte("terraform"), 0644))

	tests := []struct {
		name     string
		src      JobSource
		required []string
	}{
		{"url beats file and text", JobSource{URL: server.URL, Path: path, Filename: "jd.txt", Content: []byte("aws"), Text: "gcp"}, []string{"Kubernetes", "docker"}},
		{"path beats upload", JobSource{Path: path, Filename: "jd.txt", Content: []byte("aws"), Text: "gcp"}, []string{"terraform"}},
		{"file beats text", JobSource{Filename: "jd.txt", Content: []byte("aws"), Text: "gcp"}, []string{"aws"}},
		{"text last", JobSource{Text: "gcp"}, []string{"gcp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jd, err := ParseJobDescription(context.Background(), tt.src, HeuristicExtractor{})
			require.NoError(t, err)
			assert.Equal(t, tt.required, jd.Entities.RequiredSkills)
		})
	}
}

func TestParseJobDescription_URLFailureDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	jd, err := ParseJobDescription(context.Background(), JobSource{URL: server.URL, Text: "python"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "", jd.RawText)
	assert.Empty(t, jd.Entities.RequiredSkills)
	assert.Equal(t, server.URL, jd.SourceMeta["url"])
}

func TestParseJobDescription_MissingPath(t *testing.T) {
	_, err := ParseJobDescription(context.Background(), JobSource{Path: filepath.Join(t.TempDir(), "gone.txt"), Text: "python"}, nil)
	assert.ErrorContains(t, err, "file not found")
}

func TestParseJobDescription_BadUpload(t *testing.T) {
	_, err := ParseJobDescription(context.Background(), JobSource{Filename: "jd.docx", Content: []byte("nope")}, nil)
	assert.Error(t, err)
}

func TestJobParser_UsesExtractor(t *testing.T) {
	p := &JobParser{Extractor: NewLLMExtractor(&fakeClient{resp: `{"title":"SRE","required_skills":["Go"]}`}, nil)}
	jd, err := p.Parse(context.Background(), JobSource{Text: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "SRE", jd.Title)
	assert.Equal(t, []string{"Go"}, jd.Entities.RequiredSkills)
	assert.Equal(t, []string{}, jd.Entities.PreferredSkills)
}
