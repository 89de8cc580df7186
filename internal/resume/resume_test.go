package resume

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	saved json.RawMessage
	err   error
}

func (f *fakeBackend) SaveResume(_ context.Context, doc json.RawMessage) error {
	f.saved = doc
	return f.err
}

func (f *fakeBackend) Resume(context.Context) (json.RawMessage, error) {
	return f.saved, f.err
}

func writeFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o600))
	return path
}

func TestUploadParsesAndSaves(t *testing.T) {
	var gotField, gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if assert.NoError(t, err) {
			defer f.Close()
			_, _ = io.Copy(io.Discard, f)
			gotField = "file"
			gotName = hdr.Filename
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Asha","skills":["go"]}`))
	}))
	defer srv.Close()

	backend := &fakeBackend{}
	u := NewUploader(srv.URL, 5*time.Second, backend)

	require.NoError(t, u.Upload(context.Background(), writeFile(t, "cv.pdf", 1024)))
	assert.Equal(t, "file", gotField)
	assert.Equal(t, "cv.pdf", gotName)
	assert.JSONEq(t, `{"name":"Asha","skills":["go"]}`, string(backend.saved))

	doc, err := u.View(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Asha","skills":["go"]}`, string(doc))
}

func TestUploadRejectsLargeFileWithoutNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	u := NewUploader(srv.URL, 5*time.Second, &fakeBackend{})
	err := u.Upload(context.Background(), writeFile(t, "big.pdf", MaxSize+1))
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Zero(t, calls)
}

func TestUploadParserFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	backend := &fakeBackend{}
	u := NewUploader(srv.URL, 5*time.Second, backend)
	err := u.Upload(context.Background(), writeFile(t, "cv.pdf", 10))
	require.Error(t, err)
	assert.Nil(t, backend.saved)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("cv.pdf"))
	assert.Equal(t, "application/pdf", ContentType("cv.unknown"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ContentType("cv.docx"))
}
