package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"report_1.html", true},
		{"profile.json", true},
		{"", false},
		{"..", false},
		{"../etc/passwd", false},
		{"a/b.txt", false},
		{`a\b.txt`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidName)
			}
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", ContentType("profile.json"))
	assert.Equal(t, "application/pdf", ContentType("resume.pdf"))
	assert.Contains(t, ContentType("report.html"), "text/html")
	assert.Equal(t, "application/octet-stream", ContentType("blob"))
}

func TestLocalStore_PutGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "files")
	s, err := NewLocalStore(dir)
	require.NoError(t, err)

	url, err := s.Put(context.Background(), "cover_letter.txt", "", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "/files/cover_letter.txt", url)

	onDisk, err := os.ReadFile(filepath.Join(dir, "cover_letter.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(onDisk))

	data, err := s.Get(context.Background(), "cover_letter.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = s.Get(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Put(context.Background(), "../escape.txt", "", nil)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestNew_LocalByDefault(t *testing.T) {
	s, err := New(context.Background(), Config{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, s)
}

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3Store_PutGet(t *testing.T) {
	fake := newFakeS3()
	s := newS3Store(fake, "artifacts", "")

	url, err := s.Put(context.Background(), "report_1.html", "", []byte("<p>hi</p>"))
	require.NoError(t, err)
	assert.Equal(t, "/files/report_1.html", url)
	assert.Equal(t, "text/html; charset=utf-8", fake.types["report_1.html"])

	data, err := s.Get(context.Background(), "report_1.html")
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(data))

	_, err = s.Get(context.Background(), "nope.html")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestS3Store_PublicURL(t *testing.T) {
	s := newS3Store(newFakeS3(), "artifacts", "https://cdn.example.com/")
	url, err := s.Put(context.Background(), "profile.json", "application/json", []byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/profile.json", url)
}
