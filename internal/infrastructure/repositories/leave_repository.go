package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// DBLeavePeriod represents the database model for LeavePeriod
type DBLeavePeriod struct {
	ID        uint      `gorm:"primaryKey"`
	AccountID uint      `gorm:"index"`
	StartDate time.Time `gorm:"index"`
	EndDate   time.Time `gorm:"index"`
	Processed bool      `gorm:"index"`
	CreatedAt time.Time
}

func (DBLeavePeriod) TableName() string { return "leave_periods" }

// LeaveRepositoryImpl implements domain.LeaveRepository using GORM
type LeaveRepositoryImpl struct {
	db *gorm.DB
}

// NewLeaveRepository creates a new leave repository
func NewLeaveRepository(db *gorm.DB) domain.LeaveRepository {
	return &LeaveRepositoryImpl{db: db}
}

// FindStarting implements domain.LeaveRepository: unprocessed periods whose
// window is active now, for accounts not already on leave.
func (r *LeaveRepositoryImpl) FindStarting(ctx context.Context, now time.Time) ([]domain.LeavePeriod, error) {
	var rows []DBLeavePeriod
	err := r.db.WithContext(ctx).
		Joins("JOIN availability_records ON availability_records.account_id = leave_periods.account_id").
		Where("leave_periods.start_date <= ? AND leave_periods.end_date > ?", now, now).
		Where("leave_periods.processed = ?", false).
		Where("availability_records.is_on_leave = ?", false).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return leavePeriodsToDomain(rows), nil
}

// FindEnding implements domain.LeaveRepository: unprocessed periods already
// past their end date, for accounts currently on leave.
func (r *LeaveRepositoryImpl) FindEnding(ctx context.Context, now time.Time) ([]domain.LeavePeriod, error) {
	var rows []DBLeavePeriod
	err := r.db.WithContext(ctx).
		Joins("JOIN availability_records ON availability_records.account_id = leave_periods.account_id").
		Where("leave_periods.end_date < ?", now).
		Where("leave_periods.processed = ?", false).
		Where("availability_records.is_on_leave = ?", true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return leavePeriodsToDomain(rows), nil
}

// StartLeave implements domain.LeaveRepository. Flips the availability
// record onto leave and marks the period processed as one unit so a
// repeated tick is a no-op.
func (r *LeaveRepositoryImpl) StartLeave(ctx context.Context, period *domain.LeavePeriod) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&DBAvailabilityRecord{}).
			Where("account_id = ?", period.AccountID).
			Updates(map[string]interface{}{
				"is_available": false,
				"is_on_leave":  true,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&DBLeavePeriod{}).
			Where("id = ?", period.ID).
			Update("processed", true).Error; err != nil {
			return err
		}
		period.Processed = true
		return nil
	})
}

// EndLeave implements domain.LeaveRepository. Restores availability and
// marks the period processed as one unit so a repeated tick is a no-op.
func (r *LeaveRepositoryImpl) EndLeave(ctx context.Context, period *domain.LeavePeriod) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&DBAvailabilityRecord{}).
			Where("account_id = ?", period.AccountID).
			Updates(map[string]interface{}{
				"is_available": true,
				"is_on_leave":  false,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&DBLeavePeriod{}).
			Where("id = ?", period.ID).
			Update("processed", true).Error; err != nil {
			return err
		}
		period.Processed = true
		return nil
	})
}

func leavePeriodsToDomain(rows []DBLeavePeriod) []domain.LeavePeriod {
	periods := make([]domain.LeavePeriod, 0, len(rows))
	for _, row := range rows {
		periods = append(periods, domain.LeavePeriod{
			ID:        row.ID,
			AccountID: row.AccountID,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
			Processed: row.Processed,
			CreatedAt: row.CreatedAt,
		})
	}
	return periods
}
