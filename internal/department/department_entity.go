package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name               string         `gorm:"size:255;not null"`
	CompanyID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	FallbackApproverID *uuid.UUID     `gorm:"type:uuid"` // used when a member has no supervisor
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}
