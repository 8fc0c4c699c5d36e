package serviceImp

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fertiplan/pkg/catalog"
	"fertiplan/pkg/catalog/repository"
	"fertiplan/pkg/tabular"
)

const dateLayout = "2006-01-02"

var ErrInvalidStartDate = errors.New("invalid plan start date")

type CatalogSvc struct {
	repo    repository.CatalogRepository
	seedDir string
	now     func() time.Time
}

func NewCatalogService(r repository.CatalogRepository, seedDir string) *CatalogSvc {
	return &CatalogSvc{repo: r, seedDir: seedDir, now: time.Now}
}

// WithClock replaces the wall clock used for the default start date.
func (s *CatalogSvc) WithClock(now func() time.Time) *CatalogSvc {
	s.now = now
	return s
}

func (s *CatalogSvc) Get() (*catalog.Snapshot, error) {
	cur, err := s.repo.Load()
	if err != nil {
		return nil, err
	}

	var seeds *catalog.Snapshot
	seed := func() *catalog.Snapshot {
		if seeds == nil {
			v := catalog.LoadSeeds(s.seedDir)
			seeds = &v
		}
		return seeds
	}
	var filled []string
	if len(cur.Requirements) == 0 {
		cur.Requirements = seed().Requirements
		filled = append(filled, "requirements")
	}
	if len(cur.Products) == 0 {
		cur.Products = seed().Products
		filled = append(filled, "fertilizers")
	}
	if len(cur.EarlyCurve) == 0 {
		cur.EarlyCurve = seed().EarlyCurve
		filled = append(filled, "early curve")
	}
	if len(cur.LateCurve) == 0 {
		cur.LateCurve = seed().LateCurve
		filled = append(filled, "late curve")
	}
	if len(cur.Valves) == 0 {
		cur.Valves = seed().Valves
		filled = append(filled, "valves")
	}
	if len(cur.Limits) == 0 {
		cur.Limits = seed().Limits
		filled = append(filled, "limits")
	}
	if cur.EarlyVintages == nil {
		cur.EarlyVintages = seed().EarlyVintages
		filled = append(filled, "early vintages")
	}
	if cur.StartDate == "" && seed().StartDate != "" {
		cur.StartDate = seed().StartDate
		filled = append(filled, "start date")
	}

	if len(filled) > 0 {
		if err := s.repo.ReplaceAll(cur); err != nil {
			return nil, fmt.Errorf("materialize defaults: %w", err)
		}
		log.Printf("[cfg] materialized defaults: %s", strings.Join(filled, ", "))
		if cur, err = s.repo.Load(); err != nil {
			return nil, err
		}
	}

	if _, err := time.Parse(dateLayout, cur.StartDate); err != nil {
		cur.StartDate = s.now().Format(dateLayout)
	}
	cur.CurveWarnings = catalog.CurveWarnings(*cur)
	return cur, nil
}

func (s *CatalogSvc) Replace(in *catalog.Snapshot) (*catalog.Snapshot, error) {
	if in == nil {
		return nil, errors.New("nil configuration")
	}
	next := *in
	if strings.TrimSpace(next.StartDate) != "" {
		d := tabular.ParseOptionalDate(next.StartDate)
		if d == nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStartDate, next.StartDate)
		}
		next.StartDate = d.Format(dateLayout)
	}
	if next.EarlyVintages == nil {
		next.EarlyVintages = append([]int(nil), catalog.DefaultEarlyVintages...)
	}
	next.CurveWarnings = nil
	if err := s.repo.ReplaceAll(&next); err != nil {
		return nil, err
	}
	return s.Get()
}

func (s *CatalogSvc) Reset() error {
	if err := s.repo.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	log.Printf("[cfg] configuration, plans and tracking cleared")
	return nil
}
