package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/aacdash/internal/aggregate"
	"github.com/MrJamesThe3rd/aacdash/internal/category"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
)

const defaultTopCities = 5

type Options struct {
	// Years are the calendar years of the monthly series.
	Years []int
	// TopCities bounds the city distribution chart.
	TopCities int
	// RawPreview is the head of the uncleaned extract, shown on the
	// Methodology page when set.
	RawPreview *Table
}

// Service renders pages from one immutable snapshot. Every call recomputes
// its aggregates; nothing is cached between renders.
type Service struct {
	snap *dataset.Snapshot
	opts Options
}

func NewService(snap *dataset.Snapshot, opts Options) *Service {
	if len(opts.Years) == 0 {
		opts.Years = aggregate.DefaultYears()
	}

	if opts.TopCities <= 0 {
		opts.TopCities = defaultTopCities
	}

	return &Service{snap: snap, opts: opts}
}

// Load checks the static category tables, loads a snapshot through loader
// and builds a service over it.
func Load(ctx context.Context, loader dataset.Loader, opts Options) (*Service, error) {
	if err := category.Validate(); err != nil {
		return nil, fmt.Errorf("validating categories: %w", err)
	}

	snap, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("validating snapshot: %w", err)
	}

	svc := NewService(snap, opts)

	slog.Info("report service ready", "snapshot", snap.ID, "years", svc.Years())

	return svc, nil
}

func (s *Service) Snapshot() *dataset.Snapshot {
	return s.snap
}

func (s *Service) Years() []int {
	return s.opts.Years
}

// Page renders one navigation page.
func (s *Service) Page(p Page) (*Content, error) {
	var (
		sections []Section
		err      error
	)

	switch p {
	case PageAbout:
		sections = s.aboutSections()
	case PageMethodology:
		sections, err = s.methodologySections()
	case PageResults:
		sections, err = s.resultsSections()
	case PageSummary:
		sections, err = s.summarySections()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, p)
	}

	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", p, err)
	}

	return &Content{Page: p, Title: p.Title(), Sections: sections}, nil
}

func (s *Service) SpendingByType() aggregate.Pivot {
	return aggregate.SpendingByTypeAndGeneration(s.snap.Transactions())
}

func (s *Service) SpendingByCategory() aggregate.Pivot {
	return aggregate.SpendingByCategoryAndGeneration(s.snap.Transactions())
}

func (s *Service) MonthlySpending() []aggregate.MonthlyPoint {
	return aggregate.MonthlySpending(s.snap.Transactions(), s.opts.Years...)
}

func (s *Service) Clusters() []aggregate.ClusterSummary {
	return aggregate.ClusterSummaries(s.snap.Customers(), s.snap.Transactions())
}

// Cluster renders the detail section of one cluster.
func (s *Service) Cluster(id int) (*Section, error) {
	for _, c := range s.Clusters() {
		if c.Cluster == id {
			return clusterSection(c)
		}
	}

	return nil, fmt.Errorf("%w: %d", ErrClusterNotFound, id)
}
