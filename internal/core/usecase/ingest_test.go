package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
)

type repoFake struct {
	docs    map[string]*domain.Document
	created []*domain.Document
	getErr  error
}

func newRepoFake() *repoFake {
	return &repoFake{docs: map[string]*domain.Document{}}
}

func (f *repoFake) Create(_ context.Context, doc *domain.Document) error {
	f.created = append(f.created, doc)
	f.docs[doc.ID] = doc
	return nil
}

func (f *repoFake) GetByID(_ context.Context, id string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	doc, ok := f.docs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", errors.New(id))
	}
	return doc, nil
}

func (f *repoFake) UpdateStatus(_ context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	doc, ok := f.docs[id]
	if !ok {
		return domain.WrapError(domain.ErrDocumentNotFound, "update status", errors.New(id))
	}
	doc.Status = status
	doc.Error = errMessage
	return nil
}

type storageFake struct {
	saved   map[string][]byte
	saveErr error
}

func newStorageFake() *storageFake {
	return &storageFake{saved: map[string][]byte{}}
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.saved[key] = raw
	return nil
}

func (f *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	raw, ok := f.saved[key]
	if !ok {
		return nil, errors.New("missing key " + key)
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

type queueFake struct {
	published []string
	err       error
}

func (f *queueFake) PublishDocumentIngested(_ context.Context, documentID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, documentID)
	return nil
}

func (f *queueFake) SubscribeDocumentIngested(context.Context, func(context.Context, string) error) error {
	return nil
}

func TestUploadAssignsContentHashID(t *testing.T) {
	repo := newRepoFake()
	queue := &queueFake{}
	uc := NewIngestDocumentUseCase(repo, newStorageFake(), queue)

	doc, err := uc.Upload(context.Background(), "report.pdf", "application/pdf", strings.NewReader("file-bytes"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if len(doc.ID) != 64 {
		t.Fatalf("expected sha256 hex id, got %q", doc.ID)
	}
	if doc.Status != domain.StatusUploaded {
		t.Fatalf("unexpected status %q", doc.Status)
	}
	if len(queue.published) != 1 || queue.published[0] != doc.ID {
		t.Fatalf("expected one published event for %s, got %v", doc.ID, queue.published)
	}
}

func TestUploadIsIdempotentOnIdenticalContent(t *testing.T) {
	repo := newRepoFake()
	queue := &queueFake{}
	uc := NewIngestDocumentUseCase(repo, newStorageFake(), queue)

	first, err := uc.Upload(context.Background(), "report.pdf", "application/pdf", strings.NewReader("same-bytes"))
	if err != nil {
		t.Fatalf("first Upload() error = %v", err)
	}
	second, err := uc.Upload(context.Background(), "renamed.pdf", "application/pdf", strings.NewReader("same-bytes"))
	if err != nil {
		t.Fatalf("second Upload() error = %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("identical content produced different ids: %s vs %s", first.ID, second.ID)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected single metadata insert, got %d", len(repo.created))
	}
	if len(queue.published) != 1 {
		t.Fatalf("re-upload must not republish, got %v", queue.published)
	}
}

func TestUploadDifferentContentDifferentIDs(t *testing.T) {
	repo := newRepoFake()
	uc := NewIngestDocumentUseCase(repo, newStorageFake(), &queueFake{})

	first, _ := uc.Upload(context.Background(), "a.pdf", "application/pdf", strings.NewReader("aaa"))
	second, _ := uc.Upload(context.Background(), "a.pdf", "application/pdf", strings.NewReader("bbb"))
	if first.ID == second.ID {
		t.Fatalf("different content must produce different ids")
	}
}

func TestUploadEmptyBodyIsInvalidInput(t *testing.T) {
	uc := NewIngestDocumentUseCase(newRepoFake(), newStorageFake(), &queueFake{})

	_, err := uc.Upload(context.Background(), "a.pdf", "application/pdf", strings.NewReader(""))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUploadStorageErrorPropagates(t *testing.T) {
	storage := newStorageFake()
	storage.saveErr = errors.New("disk full")
	uc := NewIngestDocumentUseCase(newRepoFake(), storage, &queueFake{})

	_, err := uc.Upload(context.Background(), "a.pdf", "application/pdf", strings.NewReader("abc"))
	if err == nil {
		t.Fatalf("expected error")
	}
}
