package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/storage"
)

// presignTTL bounds how long a download link stays usable.
const presignTTL = 15 * time.Minute

// AttachmentService manages files attached to tasks. Ownership is inherited
// from the task: every operation re-runs the task ownership guard first.
type AttachmentService interface {
	Attach(ctx context.Context, ownerID, taskID, name, contentType string, size int64, body io.Reader) (*domain.Attachment, error)
	List(ctx context.Context, ownerID, taskID string) ([]domain.Attachment, error)
	URL(ctx context.Context, ownerID, taskID, attachmentID string) (string, error)
	Remove(ctx context.Context, ownerID, taskID, attachmentID string) error
	CleanupObjects(ctx context.Context, ownerID, taskID string) []string
}

type attachmentService struct {
	tasks       TaskService
	attachments repository.AttachmentRepository
	store       storage.Service
	bucket      string
	keyPrefix   string
}

func NewAttachmentService(tasks TaskService, attachments repository.AttachmentRepository, store storage.Service, bucket, keyPrefix string) AttachmentService {
	return &attachmentService{
		tasks:       tasks,
		attachments: attachments,
		store:       store,
		bucket:      bucket,
		keyPrefix:   strings.Trim(keyPrefix, "/"),
	}
}

func (s *attachmentService) enabled() bool {
	return s.store != nil && s.bucket != ""
}

func errStorageUnavailable() error {
	return domain.NewError(domain.KindUnavailable, "Attachment storage is not configured")
}

func (s *attachmentService) Attach(ctx context.Context, ownerID, taskID, name, contentType string, size int64, body io.Reader) (*domain.Attachment, error) {
	if !s.enabled() {
		return nil, errStorageUnavailable()
	}

	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, domain.NewError(domain.KindValidation, "Attachment name is required")
	}

	task, err := s.tasks.Get(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	key := path.Join(s.keyPrefix, task.ID, uuid.NewString(), name)
	if err := s.store.Upload(ctx, s.bucket, key, body, contentType); err != nil {
		return nil, fmt.Errorf("store attachment: %w", err)
	}

	att := &domain.Attachment{
		TaskID:      task.ID,
		Name:        name,
		Size:        size,
		ContentType: contentType,
		Key:         key,
	}
	if err := s.attachments.Create(ctx, att); err != nil {
		// the row is authoritative; don't leave an orphan object behind
		_ = s.store.Delete(ctx, s.bucket, key)
		return nil, err
	}

	return att, nil
}

func (s *attachmentService) List(ctx context.Context, ownerID, taskID string) ([]domain.Attachment, error) {
	task, err := s.tasks.Get(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	return s.attachments.ListByTask(ctx, task.ID)
}

func (s *attachmentService) URL(ctx context.Context, ownerID, taskID, attachmentID string) (string, error) {
	if !s.enabled() {
		return "", errStorageUnavailable()
	}

	att, err := s.getOwned(ctx, ownerID, taskID, attachmentID)
	if err != nil {
		return "", err
	}

	url, err := s.store.PresignGet(ctx, s.bucket, att.Key, presignTTL)
	if err != nil {
		return "", fmt.Errorf("presign attachment: %w", err)
	}
	return url, nil
}

func (s *attachmentService) Remove(ctx context.Context, ownerID, taskID, attachmentID string) error {
	if !s.enabled() {
		return errStorageUnavailable()
	}

	att, err := s.getOwned(ctx, ownerID, taskID, attachmentID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, s.bucket, att.Key); err != nil {
		return fmt.Errorf("delete attachment object: %w", err)
	}
	return s.attachments.Delete(ctx, att.ID)
}

// CleanupObjects removes the stored objects for every attachment of a task,
// collecting warnings instead of failing. Metadata rows are left to the task
// delete transaction.
func (s *attachmentService) CleanupObjects(ctx context.Context, ownerID, taskID string) []string {
	if !s.enabled() {
		return nil
	}

	atts, err := s.List(ctx, ownerID, taskID)
	if err != nil {
		return []string{fmt.Sprintf("list attachments: %v", err)}
	}

	var warnings []string
	for _, att := range atts {
		if err := s.store.Delete(ctx, s.bucket, att.Key); err != nil {
			warnings = append(warnings, fmt.Sprintf("delete attachment object %s: %v", att.Key, err))
		}
	}
	return warnings
}

func (s *attachmentService) getOwned(ctx context.Context, ownerID, taskID, attachmentID string) (*domain.Attachment, error) {
	task, err := s.tasks.Get(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	att, err := s.attachments.Get(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	if att.TaskID != task.ID {
		return nil, domain.NewError(domain.KindNotFound, "Attachment not found")
	}
	return att, nil
}
