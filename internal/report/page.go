package report

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPage     = errors.New("unknown page")
	ErrClusterNotFound = errors.New("cluster not found")
)

// Page is one navigation entry of the dashboard.
type Page string

const (
	PageAbout       Page = "about"
	PageMethodology Page = "methodology"
	PageResults     Page = "results"
	PageSummary     Page = "summary"
)

// Pages returns the navigation entries in order.
func Pages() []Page {
	return []Page{PageAbout, PageMethodology, PageResults, PageSummary}
}

func (p Page) Title() string {
	switch p {
	case PageAbout:
		return "About the Project"
	case PageMethodology:
		return "Methodology"
	case PageResults:
		return "Results"
	case PageSummary:
		return "Summary"
	}

	return "Unknown"
}

// ParsePage resolves a page slug.
func ParsePage(slug string) (Page, error) {
	for _, p := range Pages() {
		if string(p) == slug {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownPage, slug)
}
