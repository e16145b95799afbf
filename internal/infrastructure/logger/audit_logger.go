package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// AuditEntry is one append-only audit log row. The sink is fire-and-forget:
// a failed insert is logged by the caller, never surfaced to the business
// operation.
type AuditEntry struct {
	ID        uint   `gorm:"primaryKey"`
	Action    string `gorm:"not null;index"`
	Details   string
	Actor     string
	Timestamp time.Time `gorm:"autoCreateTime;index"`
}

func (AuditEntry) TableName() string {
	return "audit_logs"
}

type AuditLogger interface {
	LogAction(ctx context.Context, action, details, actor string) error
	ListRecent(ctx context.Context, limit int) ([]AuditEntry, error)
}

type PGAuditLogger struct {
	db *gorm.DB
}

func NewPGAuditLogger(db *gorm.DB) *PGAuditLogger {
	return &PGAuditLogger{db: db}
}

func (l *PGAuditLogger) LogAction(ctx context.Context, action, details, actor string) error {
	return l.db.WithContext(ctx).Create(&AuditEntry{
		Action:  action,
		Details: details,
		Actor:   actor,
	}).Error
}

func (l *PGAuditLogger) ListRecent(ctx context.Context, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []AuditEntry
	if err := l.db.WithContext(ctx).Order("timestamp DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
