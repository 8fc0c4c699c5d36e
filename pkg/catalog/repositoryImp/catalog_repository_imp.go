package repositoryImp

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"fertiplan/entities"
	"fertiplan/pkg/catalog"
	"fertiplan/pkg/catalog/repository"
	"fertiplan/pkg/plan/types"
)

type catalogRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CatalogRepository { return &catalogRepo{db} }

func (r *catalogRepo) Load() (*catalog.Snapshot, error) {
	s := &catalog.Snapshot{}
	if err := r.db.Order("id ASC").Find(&s.Requirements).Error; err != nil {
		return nil, fmt.Errorf("load requirements: %w", err)
	}
	if err := r.db.Order("id ASC").Find(&s.Products).Error; err != nil {
		return nil, fmt.Errorf("load fertilizers: %w", err)
	}
	if err := r.db.Where("curve = ?", entities.CurveEarly).Order("id ASC").Find(&s.EarlyCurve).Error; err != nil {
		return nil, fmt.Errorf("load early curve: %w", err)
	}
	if err := r.db.Where("curve = ?", entities.CurveLate).Order("id ASC").Find(&s.LateCurve).Error; err != nil {
		return nil, fmt.Errorf("load late curve: %w", err)
	}
	if err := r.db.Order("id ASC").Find(&s.Valves).Error; err != nil {
		return nil, fmt.Errorf("load valves: %w", err)
	}
	if err := r.db.Find(&s.Limits).Error; err != nil {
		return nil, fmt.Errorf("load limits: %w", err)
	}
	sort.SliceStable(s.Limits, func(i, j int) bool {
		return nutrientRank(s.Limits[i].Nutrient) < nutrientRank(s.Limits[j].Nutrient)
	})

	var settings []entities.Setting
	if err := r.db.Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	for _, st := range settings {
		switch st.Key {
		case entities.SettingPlanStartDate:
			s.StartDate = st.Value
		case entities.SettingEarlyVintages:
			s.EarlyVintages = catalog.ParseVintages(st.Value)
			if s.EarlyVintages == nil {
				s.EarlyVintages = []int{}
			}
		}
	}
	return s, nil
}

func (r *catalogRepo) ReplaceAll(s *catalog.Snapshot) error {
	if s == nil {
		return errors.New("nil snapshot")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := wipe(tx,
			&entities.SectorRequirement{},
			&entities.FertilizerProduct{},
			&entities.DistributionRow{},
			&entities.ValveCoverage{},
			&entities.NutrientLimit{},
		); err != nil {
			return err
		}

		reqs := make([]entities.SectorRequirement, len(s.Requirements))
		for i, v := range s.Requirements {
			v.ID = 0
			reqs[i] = v
		}
		if err := insert(tx, reqs); err != nil {
			return fmt.Errorf("save requirements: %w", err)
		}

		seen := map[string]bool{}
		var prods []entities.FertilizerProduct
		for _, v := range s.Products {
			if v.Name == "" || seen[v.Name] {
				continue
			}
			seen[v.Name] = true
			v.ID = 0
			prods = append(prods, v)
		}
		if err := insert(tx, prods); err != nil {
			return fmt.Errorf("save fertilizers: %w", err)
		}

		var dist []entities.DistributionRow
		for _, v := range s.EarlyCurve {
			v.ID, v.Curve = 0, entities.CurveEarly
			dist = append(dist, v)
		}
		for _, v := range s.LateCurve {
			v.ID, v.Curve = 0, entities.CurveLate
			dist = append(dist, v)
		}
		if err := insert(tx, dist); err != nil {
			return fmt.Errorf("save curves: %w", err)
		}

		valves := make([]entities.ValveCoverage, len(s.Valves))
		for i, v := range s.Valves {
			v.ID = 0
			valves[i] = v
		}
		if err := insert(tx, valves); err != nil {
			return fmt.Errorf("save valves: %w", err)
		}

		seenLimit := map[string]bool{}
		var limits []entities.NutrientLimit
		for _, l := range s.Limits {
			if l.Nutrient == "" || seenLimit[l.Nutrient] {
				continue
			}
			seenLimit[l.Nutrient] = true
			limits = append(limits, l)
		}
		if err := insert(tx, limits); err != nil {
			return fmt.Errorf("save limits: %w", err)
		}

		settings := []entities.Setting{
			{Key: entities.SettingPlanStartDate, Value: s.StartDate},
			{Key: entities.SettingEarlyVintages, Value: catalog.FormatVintages(s.EarlyVintages)},
		}
		for i := range settings {
			if err := tx.Save(&settings[i]).Error; err != nil {
				return fmt.Errorf("save setting %s: %w", settings[i].Key, err)
			}
		}
		return nil
	})
}

func (r *catalogRepo) Reset() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return wipe(tx,
			&entities.SectorRequirement{},
			&entities.FertilizerProduct{},
			&entities.DistributionRow{},
			&entities.ValveCoverage{},
			&entities.NutrientLimit{},
			&entities.Setting{},
			&entities.MonthlyPlanRow{},
			&entities.ScheduleEvent{},
			&entities.Application{},
			&entities.Adjustment{},
			&entities.PlanRun{},
		)
	})
}

func wipe(tx *gorm.DB, models ...any) error {
	for _, m := range models {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return fmt.Errorf("wipe %T: %w", m, err)
		}
	}
	return nil
}

func insert[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(&rows, 200).Error
}

func nutrientRank(s string) int {
	n, err := types.ParseNutrient(s)
	if err != nil {
		return len(types.Nutrients)
	}
	for i, v := range types.Nutrients {
		if v == n {
			return i
		}
	}
	return len(types.Nutrients)
}
