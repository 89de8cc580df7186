// Package resume uploads a resume file to the external parser and stores the
// parsed document with the backend.
package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"code.sajari.com/docconv"
	"github.com/go-resty/resty/v2"
)

const MaxSize = 5 << 20

var ErrTooLarge = errors.New("resume file exceeds 5 MB")

// Backend is the part of the gateway the uploader needs.
type Backend interface {
	SaveResume(ctx context.Context, doc json.RawMessage) error
	Resume(ctx context.Context) (json.RawMessage, error)
}

type Uploader struct {
	parser    *resty.Client
	parserURL string
	backend   Backend
}

func NewUploader(parserURL string, timeout time.Duration, backend Backend) *Uploader {
	return &Uploader{
		parser:    resty.New().SetTimeout(timeout),
		parserURL: parserURL,
		backend:   backend,
	}
}

// ContentType picks the upload content type from the file name. Unknown
// extensions are sent as PDF, the parser's default format.
func ContentType(name string) string {
	ct := docconv.MimeTypeByExtension(name)
	if ct == "" || ct == "application/octet-stream" {
		return "application/pdf"
	}
	return ct
}

// Upload parses the file at path and saves the result.
func (u *Uploader) Upload(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	if info.Size() > MaxSize {
		return ErrTooLarge
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	defer f.Close()

	name := filepath.Base(path)
	resp, err := u.parser.R().
		SetContext(ctx).
		SetMultipartField("file", name, ContentType(name), f).
		Post(u.parserURL)
	if err != nil {
		return fmt.Errorf("resume parser: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("resume parser: status %d", resp.StatusCode())
	}

	doc := json.RawMessage(resp.Body())
	if !json.Valid(doc) {
		return errors.New("resume parser: response is not JSON")
	}
	log.Printf("[resume] parsed %s (%d bytes)", name, info.Size())

	if err := u.backend.SaveResume(ctx, doc); err != nil {
		return fmt.Errorf("save resume: %w", err)
	}
	return nil
}

func (u *Uploader) View(ctx context.Context) (json.RawMessage, error) {
	return u.backend.Resume(ctx)
}
