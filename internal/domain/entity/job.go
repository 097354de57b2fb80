package entity

import (
	"time"

	"github.com/google/uuid"
)

// Job is a posting published under a company.
type Job struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Requirements string
	Location     string
	Salary       *float64
	CompanyID    uuid.UUID
	PostedAt     time.Time

	Company *Company
}

// JobSearchCriteria filters and pages job listings.
type JobSearchCriteria struct {
	Keyword string
	Page    int
	Size    int
}

// Offset returns the row offset of the requested page.
func (c JobSearchCriteria) Offset() int {
	return c.Page * c.Size
}

// JobPage is one page of a job search.
type JobPage struct {
	Jobs       []*Job
	Page       int
	Size       int
	TotalItems int64
}

// TotalPages returns the number of pages for the search.
func (p *JobPage) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}

	return int((p.TotalItems + int64(p.Size) - 1) / int64(p.Size))
}
