package mysql

import (
	"context"

	"gorm.io/gorm"

	auditDomain "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/audit"
)

type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Record(ctx context.Context, a *auditDomain.DownloadAccess) error {
	return r.db.WithContext(ctx).Create(a).Error
}
