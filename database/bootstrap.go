// database/bootstrap.go
package database

import (
	"fmt"
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fertiplan/entities"
)

// Models is every table the planner owns, in migration order.
var Models = []any{
	&entities.SectorRequirement{},
	&entities.FertilizerProduct{},
	&entities.DistributionRow{},
	&entities.ValveCoverage{},
	&entities.NutrientLimit{},
	&entities.Setting{},
	&entities.PlanRun{},
	&entities.MonthlyPlanRow{},
	&entities.ScheduleEvent{},
	&entities.Application{},
	&entities.Adjustment{},
}

func OpenSQLite(path string) *gorm.DB {
	db, err := Open(path)
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	return db
}

// Open opens (or creates) the store at path and migrates it.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenMemory returns a private, migrated in-memory store.
func OpenMemory() (*gorm.DB, error) {
	return Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

func Migrate(db *gorm.DB) error {
	if err := migrateNutrientLimitsKey(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// migrateNutrientLimitsKey rebuilds nutrient_limits when it was created without the
// nutrient primary key, keeping the first limit seen per nutrient.
func migrateNutrientLimitsKey(db *gorm.DB) error {
	var tbl string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name='nutrient_limits'`).Scan(&tbl).Error; err != nil {
		return fmt.Errorf("check table exist: %w", err)
	}
	if tbl == "" {
		return nil
	}

	type colInfo struct {
		Cid  int
		Name string
		Pk   int
	}
	var cols []colInfo
	if err := db.Raw(`PRAGMA table_info(nutrient_limits)`).Scan(&cols).Error; err != nil {
		return fmt.Errorf("table_info: %w", err)
	}
	for _, c := range cols {
		if c.Name == "nutrient" && c.Pk == 1 {
			return nil
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		stmts := []string{
			`CREATE TABLE nutrient_limits_new (nutrient TEXT PRIMARY KEY, limit_kg_ha REAL)`,
			`INSERT OR IGNORE INTO nutrient_limits_new (nutrient, limit_kg_ha)
			 SELECT nutrient, limit_kg_ha FROM nutrient_limits WHERE nutrient IS NOT NULL AND nutrient <> ''`,
			`DROP TABLE nutrient_limits`,
			`ALTER TABLE nutrient_limits_new RENAME TO nutrient_limits`,
		}
		for _, s := range stmts {
			if err := tx.Exec(s).Error; err != nil {
				return err
			}
		}
		log.Printf("[db] rebuilt nutrient_limits with nutrient primary key")
		return nil
	})
}
