package repositories

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// DBSession represents the database model for Session. Sessions are durable
// rows; the session:{id} cache key only holds a best-effort snapshot.
type DBSession struct {
	ID        string `gorm:"primaryKey;size:64"`
	AccountID uint   `gorm:"index"`
	UserAgent string `gorm:"size:512"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}

func (DBSession) TableName() string { return "sessions" }

// SessionRepositoryImpl implements domain.SessionRepository using GORM
type SessionRepositoryImpl struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Create(sessionToDB(session)).Error
}

// FindByID implements domain.SessionRepository. An expired row is deleted
// and reported as expired rather than returned.
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	var dbSession DBSession
	err := r.db.WithContext(ctx).Where("id = ?", sessionID).First(&dbSession).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	if dbSession.ExpiresAt.Before(time.Now()) {
		if err := r.db.WithContext(ctx).Delete(&DBSession{}, "id = ?", sessionID).Error; err != nil {
			log.Printf("expired session cleanup failed for %s: %v", sessionID, err)
		}
		return nil, domain.ErrSessionExpired
	}

	return sessionToDomain(&dbSession), nil
}

// FindByAccount implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByAccount(ctx context.Context, accountID uint) ([]domain.Session, error) {
	var dbSessions []DBSession
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Find(&dbSessions).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.Session, 0, len(dbSessions))
	for i := range dbSessions {
		sessions = append(sessions, *sessionToDomain(&dbSessions[i]))
	}
	return sessions, nil
}

// ExtendExpiry implements domain.SessionRepository
func (r *SessionRepositoryImpl) ExtendExpiry(ctx context.Context, sessionID string, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&DBSession{}).
		Where("id = ?", sessionID).
		Update("expires_at", expiresAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Delete implements domain.SessionRepository
func (r *SessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Delete(&DBSession{}, "id = ?", sessionID).Error
}

// DeleteByAccount implements domain.SessionRepository. Returns the deleted
// session ids so the caller can drop the matching cache snapshots.
func (r *SessionRepositoryImpl) DeleteByAccount(ctx context.Context, accountID uint) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&DBSession{}).
		Where("account_id = ?", accountID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if err := r.db.WithContext(ctx).Delete(&DBSession{}, "id IN ?", ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteExpired implements domain.SessionRepository
func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&DBSession{}, "expires_at < ?", time.Now())
	return result.RowsAffected, result.Error
}

func sessionToDB(session *domain.Session) *DBSession {
	return &DBSession{
		ID:        session.ID,
		AccountID: session.AccountID,
		UserAgent: session.UserAgent,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
}

func sessionToDomain(dbSession *DBSession) *domain.Session {
	return &domain.Session{
		ID:        dbSession.ID,
		AccountID: dbSession.AccountID,
		UserAgent: dbSession.UserAgent,
		CreatedAt: dbSession.CreatedAt,
		ExpiresAt: dbSession.ExpiresAt,
	}
}
