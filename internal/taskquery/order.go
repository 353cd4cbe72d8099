package taskquery

import (
	"errors"
	"sort"
	"time"

	"github.com/workviyo/taskboard-api/internal/constants"
	"github.com/workviyo/taskboard-api/internal/models"
)

var (
	ErrInvalidPrioritySort = errors.New("prioritySort must be Low-High or High-Low")
	ErrInvalidDateSort     = errors.New("dateSort must be Newest-Oldest or Oldest-Newest")
)

type SortKey int

const (
	KeyPriority SortKey = iota
	KeyCreatedAt
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

// SortSpec is one (key, direction) pair of a lexicographic ordering.
type SortSpec struct {
	Key SortKey
	Dir Direction
}

// ParseSort converts the prioritySort and dateSort directives into an
// ordering. Priority comes first when both are present and creation date
// breaks priority ties. Empty directives are skipped.
func ParseSort(prioritySort, dateSort string) ([]SortSpec, error) {
	var specs []SortSpec

	switch prioritySort {
	case "":
	case constants.PrioritySortLowHigh:
		specs = append(specs, SortSpec{Key: KeyPriority, Dir: Ascending})
	case constants.PrioritySortHighLow:
		specs = append(specs, SortSpec{Key: KeyPriority, Dir: Descending})
	default:
		return nil, ErrInvalidPrioritySort
	}

	switch dateSort {
	case "":
	case constants.DateSortOldestFirst:
		specs = append(specs, SortSpec{Key: KeyCreatedAt, Dir: Ascending})
	case constants.DateSortNewestFirst:
		specs = append(specs, SortSpec{Key: KeyCreatedAt, Dir: Descending})
	default:
		return nil, ErrInvalidDateSort
	}

	return specs, nil
}

// Order sorts tasks in place by specs applied lexicographically. Tasks equal
// on every key keep their input order.
func Order(tasks []models.Task, specs []SortSpec) {
	if len(specs) == 0 {
		return
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		for _, spec := range specs {
			c := compare(tasks[i], tasks[j], spec.Key)
			if c == 0 {
				continue
			}
			if spec.Dir == Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compare(a, b models.Task, key SortKey) int {
	switch key {
	case KeyPriority:
		return a.Priority.Rank() - b.Priority.Rank()
	case KeyCreatedAt:
		return createdAt(a).Compare(createdAt(b))
	}
	return 0
}

// createdAt treats a missing timestamp as the Unix epoch.
func createdAt(t models.Task) time.Time {
	if t.CreatedAt.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return t.CreatedAt
}
