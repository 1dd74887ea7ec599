package repository

import (
	"context"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/models"
)

type AuditRepository struct {
	db *DB
}

func NewAuditRepo(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog creates a new audit log entry
func (r *AuditRepository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	db, cancel := r.db.session(ctx)
	defer cancel()

	if err := db.Create(entry).Error; err != nil {
		return apperror.Store("create audit log", err)
	}
	return nil
}

// GetAuditLogs lists the entries recorded for one resource, newest first
func (r *AuditRepository) GetAuditLogs(ctx context.Context, resource string, resourceID uint) ([]models.AuditLog, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	var entries []models.AuditLog
	err := db.Where("resource = ? AND resource_id = ?", resource, resourceID).
		Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, apperror.Store("find audit logs", err)
	}
	return entries, nil
}
