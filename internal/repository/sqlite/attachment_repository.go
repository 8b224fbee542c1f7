package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

const createAttachmentsTable = `
CREATE TABLE IF NOT EXISTS attachments (
	id TEXT PRIMARY KEY,
	task_id TEXT NOT NULL,
	name TEXT NOT NULL,
	size INTEGER NOT NULL DEFAULT 0,
	content_type TEXT NOT NULL DEFAULT '',
	object_key TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY(task_id) REFERENCES tasks(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_attachments_task_id ON attachments(task_id);
`

type AttachmentRepository struct {
	db *sql.DB
}

func NewAttachmentRepository(db *sql.DB) repository.AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAttachmentsTable); err != nil {
		return fmt.Errorf("create attachments table: %w", err)
	}
	return nil
}

func (r *AttachmentRepository) Create(ctx context.Context, att *domain.Attachment) error {
	att.ID = uuid.NewString()
	att.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
INSERT INTO attachments (id, task_id, name, size, content_type, object_key, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		att.ID,
		att.TaskID,
		att.Name,
		att.Size,
		att.ContentType,
		att.Key,
		att.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attachment: %w", err)
	}
	return nil
}

func (r *AttachmentRepository) Get(ctx context.Context, id string) (*domain.Attachment, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, task_id, name, size, content_type, object_key, created_at
FROM attachments
WHERE id=?`,
		id,
	)

	var att domain.Attachment
	if err := row.Scan(&att.ID, &att.TaskID, &att.Name, &att.Size, &att.ContentType, &att.Key, &att.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(domain.KindNotFound, "Attachment not found")
		}
		return nil, fmt.Errorf("scan attachment: %w", err)
	}
	return &att, nil
}

func (r *AttachmentRepository) ListByTask(ctx context.Context, taskID string) ([]domain.Attachment, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, task_id, name, size, content_type, object_key, created_at
FROM attachments
WHERE task_id=?
ORDER BY created_at ASC, id ASC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("query attachments: %w", err)
	}
	defer rows.Close()

	var atts []domain.Attachment
	for rows.Next() {
		var att domain.Attachment
		if err := rows.Scan(&att.ID, &att.TaskID, &att.Name, &att.Size, &att.ContentType, &att.Key, &att.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		atts = append(atts, att)
	}

	return atts, rows.Err()
}

func (r *AttachmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attachments WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("attachment delete rows affected: %w", err)
	}
	if aff == 0 {
		return domain.NewError(domain.KindNotFound, "Attachment not found")
	}
	return nil
}

func (r *AttachmentRepository) DeleteByTask(ctx context.Context, taskID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM attachments WHERE task_id=?`, taskID); err != nil {
		return fmt.Errorf("delete attachments for task: %w", err)
	}
	return nil
}
