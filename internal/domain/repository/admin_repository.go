package repository

import (
	"smart-clinic-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type AdminRepository interface {
	// FindByUsername returns (nil, nil) when no admin matches.
	FindByUsername(db *gorm.DB, username string) (*entity.Admin, error)
}
