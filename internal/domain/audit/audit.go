package audit

import (
	"context"
	"time"
)

// DownloadAccess records one artifact redemption: who fetched what, from
// where. Access pattern only, never content.
type DownloadAccess struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	RecordID          string    `gorm:"column:record_id;size:36;not null;uniqueIndex:ux_download_audit_record"`
	ApplicationNumber string    `gorm:"column:application_number;size:32;not null;index"`
	Artifact          string    `gorm:"column:artifact;size:32;not null"`
	IPAddress         string    `gorm:"column:ip_address;size:64"`
	UserAgent         string    `gorm:"column:user_agent;size:255"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (DownloadAccess) TableName() string { return "download_audit" }

// Recorder persists access records. Failures are logged by callers, never
// allowed to block a download.
type Recorder interface {
	Record(ctx context.Context, a *DownloadAccess) error
}
