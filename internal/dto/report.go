package dto

// DayCountDTO is one row of the last-week completion report
type DayCountDTO struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// PendingTaskDTO is one row of the pending report
type PendingTaskDTO struct {
	Name           string  `json:"name"`
	TimeToComplete float64 `json:"timeToComplete"`
}

// GroupCountDTO is one row of a closed-task breakdown. Name holds the
// display name of the group, or its identifier when the entity no longer
// exists.
type GroupCountDTO struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// ClosedTasksDTO is the closed-task breakdown report
type ClosedTasksDTO struct {
	ByOwners  []GroupCountDTO `json:"byOwners"`
	ByTeam    []GroupCountDTO `json:"byTeam"`
	ByProject []GroupCountDTO `json:"byProject"`
}
