package taskquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/workviyo/taskboard-api/internal/models"
)

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: "t1", TeamID: "team-a", ProjectID: "p1", Status: models.TaskStatusTodo, OwnerIDs: []string{"u1"}, TagIDs: []string{"bug"}},
		{ID: "t2", TeamID: "team-a", ProjectID: "p2", Status: models.TaskStatusCompleted, OwnerIDs: []string{"u2", "u3"}},
		{ID: "t3", TeamID: "team-b", ProjectID: "p1", Status: models.TaskStatusInProgress, OwnerIDs: []string{"u3"}, TagIDs: []string{"ui", "bug"}},
		{ID: "t4", TeamID: "team-b", ProjectID: "p2", Status: models.TaskStatusBlocked, OwnerIDs: []string{"u1", "u2"}, TagIDs: []string{"ui"}},
	}
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}

func TestParseRequest(t *testing.T) {
	req := ParseRequest("RaniKawale,AmitShah", "FrontEnd", " Design ", "Workviyo", "InProgress")

	assert.Equal(t, []string{"Rani Kawale", "Amit Shah"}, req.Owners)
	assert.Equal(t, []string{"Front End"}, req.Tags)
	assert.Equal(t, "Design", req.Team)
	assert.Equal(t, "Workviyo", req.Project)
	assert.Equal(t, "In Progress", req.Status)
}

func TestBuild_OmitsAbsentFacets(t *testing.T) {
	f := Build(Request{}, Resolved{})

	assert.False(t, f.NoMatch)
	assert.Nil(t, f.OwnerIDs)
	assert.Nil(t, f.TagIDs)
	assert.Nil(t, f.TeamID)
	assert.Nil(t, f.ProjectID)
	assert.Nil(t, f.Status)
	assert.Equal(t, []string{"t1", "t2", "t3", "t4"}, ids(f.Apply(sampleTasks())))
}

func TestBuild_UnresolvedFacetMatchesNothing(t *testing.T) {
	cases := map[string]struct {
		req Request
		res Resolved
	}{
		"owners":          {Request{Owners: []string{"Nobody"}}, Resolved{}},
		"tags":            {Request{Tags: []string{"missing"}}, Resolved{}},
		"team":            {Request{Team: "Ghosts"}, Resolved{}},
		"separators only": {ParseRequest(",", ",", "", "", ""), Resolved{}},
		"project": {
			Request{Project: "Nope", Team: "A"},
			Resolved{TeamID: "team-a", TeamFound: true},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := Build(tc.req, tc.res)
			assert.True(t, f.NoMatch)
			assert.Empty(t, f.Apply(sampleTasks()))
		})
	}
}

func TestBuild_OwnersIntersect(t *testing.T) {
	f := Build(
		Request{Owners: []string{"A", "B"}},
		Resolved{OwnerIDs: []string{"u1", "u2"}},
	)

	assert.Equal(t, []string{"t1", "t2", "t4"}, ids(f.Apply(sampleTasks())))
}

func TestBuild_FacetsAreANDed(t *testing.T) {
	f := Build(
		Request{Tags: []string{"ui"}, Team: "B", Status: "Blocked"},
		Resolved{TagIDs: []string{"ui"}, TeamID: "team-b", TeamFound: true},
	)

	assert.Equal(t, []string{"t4"}, ids(f.Apply(sampleTasks())))
}

func TestBuild_StatusLiteral(t *testing.T) {
	f := Build(ParseRequest("", "", "", "", "InProgress"), Resolved{})

	assert.Equal(t, []string{"t3"}, ids(f.Apply(sampleTasks())))
}

// Adding a facet can only narrow the result; leaving it out never shrinks it.
func TestBuild_OmittingFacetNeverShrinks(t *testing.T) {
	tasks := sampleTasks()
	full := Build(
		Request{Owners: []string{"A"}, Project: "P1"},
		Resolved{OwnerIDs: []string{"u1"}, ProjectID: "p1", ProjectFound: true},
	)
	withoutProject := Build(
		Request{Owners: []string{"A"}},
		Resolved{OwnerIDs: []string{"u1"}},
	)

	narrow := ids(full.Apply(tasks))
	wide := ids(withoutProject.Apply(tasks))
	assert.Subset(t, wide, narrow)
	assert.GreaterOrEqual(t, len(wide), len(narrow))
}

func TestFilterScenario_OwnerFilter(t *testing.T) {
	tasks := []models.Task{
		{ID: "first", Priority: models.PriorityHigh, OwnerIDs: []string{"A"}},
		{ID: "second", Priority: models.PriorityLow, OwnerIDs: []string{"B"}},
	}
	f := Build(Request{Owners: []string{"A"}}, Resolved{OwnerIDs: []string{"A"}})

	assert.Equal(t, []string{"first"}, ids(f.Apply(tasks)))
}
