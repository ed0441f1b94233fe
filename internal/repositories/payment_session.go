package repositories

import (
	"context"

	"hairven/internal/models"

	"gorm.io/gorm"
)

type PaymentSessionRepository interface {
	Create(ctx context.Context, session *models.PaymentSession) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.PaymentSession, error)
	Update(ctx context.Context, session *models.PaymentSession) error
	Delete(ctx context.Context, sessionID string) error
}

type paymentSessionRepository struct {
	db *gorm.DB
}

func NewPaymentSessionRepository(db *gorm.DB) PaymentSessionRepository {
	return &paymentSessionRepository{db: db}
}

func (r *paymentSessionRepository) Create(ctx context.Context, session *models.PaymentSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *paymentSessionRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	var session models.PaymentSession
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *paymentSessionRepository) Update(ctx context.Context, session *models.PaymentSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *paymentSessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&models.PaymentSession{}).Error
}
