package taskquery

import (
	"slices"
	"strings"

	"github.com/workviyo/taskboard-api/internal/models"
)

// Request holds the raw facets of a task listing after name decompression.
// A zero value field means the facet was not requested. A non-nil empty
// Owners or Tags list was requested without any usable name.
type Request struct {
	Owners  []string
	Tags    []string
	Team    string
	Project string
	Status  string
}

// ParseRequest normalizes the query string values of GET /tasks.
func ParseRequest(owners, tags, team, project, status string) Request {
	return Request{
		Owners:  SplitCompact(owners),
		Tags:    SplitCompact(tags),
		Team:    strings.TrimSpace(team),
		Project: strings.TrimSpace(project),
		Status:  Decompress(status),
	}
}

// Resolved carries the identifiers found for the name based facets of a
// Request.
type Resolved struct {
	OwnerIDs     []string
	TagIDs       []string
	TeamID       string
	TeamFound    bool
	ProjectID    string
	ProjectFound bool
}

// Filter is a store independent task predicate. Nil fields are not part of
// the predicate. Facets are combined with AND; the values of a list facet
// are combined with OR.
type Filter struct {
	OwnerIDs  []string
	TagIDs    []string
	TeamID    *string
	ProjectID *string
	Status    *models.TaskStatus

	// NoMatch is set when a requested facet could not be resolved. Such a
	// filter matches no task and stores must not be queried with it.
	NoMatch bool
}

// Build assembles the filter for req from the resolved references.
func Build(req Request, res Resolved) Filter {
	var f Filter

	if req.Owners != nil {
		if len(res.OwnerIDs) == 0 {
			f.NoMatch = true
		}
		f.OwnerIDs = slices.Clone(res.OwnerIDs)
	}
	if req.Tags != nil {
		if len(res.TagIDs) == 0 {
			f.NoMatch = true
		}
		f.TagIDs = slices.Clone(res.TagIDs)
	}
	if req.Team != "" {
		if !res.TeamFound {
			f.NoMatch = true
		}
		id := res.TeamID
		f.TeamID = &id
	}
	if req.Project != "" {
		if !res.ProjectFound {
			f.NoMatch = true
		}
		id := res.ProjectID
		f.ProjectID = &id
	}
	if req.Status != "" {
		status := models.TaskStatus(req.Status)
		f.Status = &status
	}

	return f
}

// Matches evaluates the filter against a task in memory. Owner and tag
// facets read OwnerIDs and TagIDs.
func (f Filter) Matches(task models.Task) bool {
	if f.NoMatch {
		return false
	}
	if f.OwnerIDs != nil && !intersects(task.OwnerIDs, f.OwnerIDs) {
		return false
	}
	if f.TagIDs != nil && !intersects(task.TagIDs, f.TagIDs) {
		return false
	}
	if f.TeamID != nil && task.TeamID != *f.TeamID {
		return false
	}
	if f.ProjectID != nil && task.ProjectID != *f.ProjectID {
		return false
	}
	if f.Status != nil && task.Status != *f.Status {
		return false
	}
	return true
}

// Apply returns the tasks matching f, in input order.
func (f Filter) Apply(tasks []models.Task) []models.Task {
	matched := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Matches(task) {
			matched = append(matched, task)
		}
	}
	return matched
}

func intersects(values, wanted []string) bool {
	for _, v := range values {
		if slices.Contains(wanted, v) {
			return true
		}
	}
	return false
}
