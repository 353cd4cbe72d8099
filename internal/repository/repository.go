package repository

import (
	"context"
	"errors"
	"time"

	"github.com/workviyo/taskboard-api/internal/models"
	"github.com/workviyo/taskboard-api/internal/taskquery"
)

// ErrNotFound is returned when a lookup by identifier or unique name finds
// nothing.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned by Create when a unique field such as a name or
// an email is already taken.
var ErrDuplicate = errors.New("record already exists")

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByIDs returns the users with the given IDs; unknown IDs are skipped
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)

	// FindByNames returns every user whose name is in names
	FindByNames(ctx context.Context, names []string) ([]models.User, error)

	// List returns all users
	List(ctx context.Context) ([]models.User, error)
}

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByIDs(ctx context.Context, ids []string) ([]models.Member, error)
	List(ctx context.Context) ([]models.Member, error)
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// Create creates a team together with its initial members
	Create(ctx context.Context, team *models.Team) error

	// FindByID finds a team by ID with members expanded
	FindByID(ctx context.Context, id string) (*models.Team, error)

	// FindByName finds a team by its unique name
	FindByName(ctx context.Context, name string) (*models.Team, error)

	// FindByIDs returns the teams with the given IDs; unknown IDs are skipped
	FindByIDs(ctx context.Context, ids []string) ([]models.Team, error)

	// List returns all teams with members expanded
	List(ctx context.Context) ([]models.Team, error)

	// AddMember adds a member to a team; adding an existing member is a no-op
	AddMember(ctx context.Context, teamID, memberID string) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id string) (*models.Project, error)
	FindByName(ctx context.Context, name string) (*models.Project, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Project, error)

	// List returns all projects, or only the project named name when it is
	// not empty
	List(ctx context.Context, name string) ([]models.Project, error)
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	FindByName(ctx context.Context, name string) (*models.Tag, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Tag, error)
	FindByNames(ctx context.Context, names []string) ([]models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
}

// TaskRepository defines the interface for task data access. Returned
// tasks have Project, Team, Owners and Tags expanded and OwnerIDs and TagIDs
// populated.
type TaskRepository interface {
	// Create creates a new task and its owner and tag references
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// Find returns the tasks matching filter in insertion order
	Find(ctx context.Context, filter taskquery.Filter) ([]models.Task, error)

	// Update stores scalar fields and replaces owner and tag references with
	// task.OwnerIDs and task.TagIDs
	Update(ctx context.Context, task *models.Task) error

	// AddOwners adds owners to a task, ignoring ones already present
	AddOwners(ctx context.Context, taskID string, userIDs []string) error

	// Delete removes a task and its references
	Delete(ctx context.Context, id string) error
}

// GroupField selects the key of a closed-task breakdown.
type GroupField string

const (
	GroupByProject GroupField = "project"
	GroupByTeam    GroupField = "team"
	GroupByOwner   GroupField = "owner"
)

// GroupCount is one row of a group-by-count aggregation.
type GroupCount struct {
	Key   string
	Count int64
}

// PendingItem is the projection of a task that is not completed.
type PendingItem struct {
	Name           string
	TimeToComplete float64
}

// ReportRepository runs read-only aggregations over tasks.
type ReportRepository interface {
	// CompletedByDay counts completed tasks per UTC day of their last
	// update, for updates within [since, until]. Days are in ascending order.
	CompletedByDay(ctx context.Context, since, until time.Time) ([]taskquery.DayCount, error)

	// Pending lists every task whose status is not Completed
	Pending(ctx context.Context) ([]PendingItem, error)

	// CompletedCountBy counts completed tasks per group key. Grouping by
	// owner counts one row per owner of each task.
	CompletedCountBy(ctx context.Context, field GroupField) ([]GroupCount, error)
}

// Repositories bundles the repositories of one store.
type Repositories struct {
	Users    UserRepository
	Members  MemberRepository
	Teams    TeamRepository
	Projects ProjectRepository
	Tags     TagRepository
	Tasks    TaskRepository
	Reports  ReportRepository
}
