package repositoryImp

import (
	"fmt"

	"gorm.io/gorm"

	"fertiplan/entities"
	"fertiplan/pkg/tracking/repository"
)

type trackingRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TrackingRepository { return &trackingRepo{db: db} }

func (r *trackingRepo) Count() (int64, error) {
	var n int64
	return n, r.db.Model(&entities.Application{}).Count(&n).Error
}

func (r *trackingRepo) List() ([]entities.Application, error) {
	var out []entities.Application
	if err := r.db.Order("date ASC, valve ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *trackingRepo) FindByID(id uint) (*entities.Application, error) {
	var out entities.Application
	if err := r.db.First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *trackingRepo) Update(a *entities.Application) error { return r.db.Save(a).Error }

func (r *trackingRepo) MaxID() (uint, error) {
	var id int64
	if err := r.db.Model(&entities.Application{}).Select("COALESCE(MAX(id), 0)").Row().Scan(&id); err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (r *trackingRepo) ReplaceAll(rows []entities.Application, adjustments []entities.Adjustment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entities.Application{}).Error; err != nil {
			return fmt.Errorf("clear applications: %w", err)
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(&rows, 200).Error; err != nil {
				return fmt.Errorf("save applications: %w", err)
			}
		}
		if len(adjustments) > 0 {
			if err := tx.Create(&adjustments).Error; err != nil {
				return fmt.Errorf("save adjustments: %w", err)
			}
		}
		return nil
	})
}

func (r *trackingRepo) ListAdjustments(runID string) ([]entities.Adjustment, error) {
	var out []entities.Adjustment
	if err := r.db.Where("run_id = ?", runID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
