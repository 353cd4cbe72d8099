package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/workviyo/taskboard-api/internal/auth"
	"github.com/workviyo/taskboard-api/internal/config"
	"github.com/workviyo/taskboard-api/internal/database"
	"github.com/workviyo/taskboard-api/internal/dto"
	apierrors "github.com/workviyo/taskboard-api/internal/errors"
	"github.com/workviyo/taskboard-api/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RouterTestSuite exercises the HTTP surface end to end over SQLite
type RouterTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	token  string
	userID string
}

func (suite *RouterTestSuite) SetupTest() {
	var err error
	gin.SetMode(gin.TestMode)

	suite.db, err = database.OpenSQLite(":memory:", logger.Default.LogMode(logger.Silent))
	suite.Require().NoError(err)

	suite.router = SetupRouter(Dependencies{
		Repos:    repository.NewGormRepositories(suite.db),
		Store:    database.NewGormConnection(config.DriverSQLite, suite.db),
		Tokens:   auth.NewTokenService("test-secret", time.Hour),
		Sessions: cookie.NewStore([]byte("test-secret")),
	})

	w := suite.do(http.MethodPost, "/auth/signup", gin.H{
		"name": "Rani Kawale", "email": "rani@example.com", "password": "secret1",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodPost, "/auth/login", gin.H{"email": "rani@example.com", "password": "secret1"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Token string      `json:"token"`
		User  dto.UserDTO `json:"user"`
	}
	suite.decode(w, &login)
	suite.token = login.Token
	suite.userID = login.User.ID
}

func (suite *RouterTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RouterTestSuite) request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RouterTestSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	return suite.request(method, path, body, "")
}

func (suite *RouterTestSuite) authed(method, path string, body interface{}) *httptest.ResponseRecorder {
	return suite.request(method, path, body, suite.token)
}

func (suite *RouterTestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (suite *RouterTestSuite) createNamed(path, key, name string) string {
	w := suite.do(http.MethodPost, path, gin.H{"name": name})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]json.RawMessage
	suite.decode(w, &resp)
	var ref dto.RefDTO
	suite.Require().NoError(json.Unmarshal(resp[key], &ref))
	return ref.ID
}

func (suite *RouterTestSuite) createTask(body gin.H) dto.TaskDTO {
	w := suite.authed(http.MethodPost, "/tasks", body)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Task dto.TaskDTO `json:"task"`
	}
	suite.decode(w, &resp)
	return resp.Task
}

func (suite *RouterTestSuite) listTasks(query string) []dto.TaskDTO {
	w := suite.do(http.MethodGet, "/tasks"+query, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var tasks []dto.TaskDTO
	suite.decode(w, &tasks)
	return tasks
}

func (suite *RouterTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "running")
}

func (suite *RouterTestSuite) TestTaskLifecycle() {
	projectID := suite.createNamed("/projects", "project", "Task Board")
	teamID := suite.createNamed("/teams", "team", "Platform")
	tagID := suite.createNamed("/tags", "tag", "Backend")

	task := suite.createTask(gin.H{
		"name":           "Write API",
		"project":        projectID,
		"team":           teamID,
		"owners":         []string{suite.userID},
		"timeToComplete": 3.5,
		"priority":       "High",
		"tags":           []string{tagID},
	})
	suite.Equal(dto.RefDTO{ID: projectID, Name: "Task Board"}, task.Project)
	suite.Equal(dto.RefDTO{ID: teamID, Name: "Platform"}, task.Team)
	suite.Equal([]dto.RefDTO{{ID: suite.userID, Name: "Rani Kawale"}}, task.Owners)
	suite.Equal("To Do", string(task.Status))

	w := suite.do(http.MethodGet, "/tasks/"+task.ID, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.authed(http.MethodPatch, "/tasks/"+task.ID, gin.H{"status": "Completed"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	closed := suite.closedTasks()
	suite.Equal([]dto.GroupCountDTO{{Name: "Rani Kawale", Count: 1}}, closed.ByOwners)
	suite.Equal([]dto.GroupCountDTO{{Name: "Platform", Count: 1}}, closed.ByTeam)
	suite.Equal([]dto.GroupCountDTO{{Name: "Task Board", Count: 1}}, closed.ByProject)

	w = suite.do(http.MethodGet, "/report/last-week", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var days []dto.DayCountDTO
	suite.decode(w, &days)
	suite.Require().Len(days, 1)
	suite.Equal(time.Now().UTC().Format("02-01-2006"), days[0].Date)
	suite.Equal(int64(1), days[0].Count)

	w = suite.authed(http.MethodDelete, "/tasks/"+task.ID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "deletedTask")

	w = suite.do(http.MethodGet, "/tasks/"+task.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RouterTestSuite) closedTasks() dto.ClosedTasksDTO {
	w := suite.do(http.MethodGet, "/report/closed-tasks", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var report dto.ClosedTasksDTO
	suite.decode(w, &report)
	return report
}

func (suite *RouterTestSuite) TestListTasks_FiltersAndSorts() {
	projectID := suite.createNamed("/projects", "project", "Task Board")
	teamID := suite.createNamed("/teams", "team", "Platform")

	w := suite.do(http.MethodPost, "/auth/signup", gin.H{
		"name": "Amit Shah", "email": "amit@example.com", "password": "secret1",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var signup struct {
		User dto.UserDTO `json:"user"`
	}
	suite.decode(w, &signup)

	suite.createTask(gin.H{
		"name": "High", "project": projectID, "team": teamID,
		"owners": []string{suite.userID}, "timeToComplete": 1, "priority": "High",
	})
	suite.createTask(gin.H{
		"name": "Low", "project": projectID, "team": teamID,
		"owners": []string{signup.User.ID}, "timeToComplete": 1, "priority": "Low",
	})

	names := func(tasks []dto.TaskDTO) []string {
		out := make([]string, len(tasks))
		for i, t := range tasks {
			out[i] = t.Name
		}
		return out
	}

	suite.Equal([]string{"High"}, names(suite.listTasks("?owners=RaniKawale")))
	suite.Equal([]string{"Low", "High"}, names(suite.listTasks("?prioritySort=Low-High")))
	suite.Equal([]string{"High", "Low"}, names(suite.listTasks("?prioritySort=High-Low&team=Platform")))
	suite.Empty(suite.listTasks("?owners=NobodyHere"))
	suite.Empty(suite.listTasks("?status=Completed"))
	suite.Len(suite.listTasks("?status=ToDo&project=Task%20Board"), 2)

	w = suite.do(http.MethodGet, "/tasks?dateSort=Sideways", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), `"message"`)
}

func (suite *RouterTestSuite) TestCreateTask_Errors() {
	projectID := suite.createNamed("/projects", "project", "Task Board")
	teamID := suite.createNamed("/teams", "team", "Platform")
	valid := gin.H{
		"name": "Write API", "project": projectID, "team": teamID,
		"owners": []string{suite.userID}, "timeToComplete": 2,
	}

	w := suite.do(http.MethodPost, "/tasks", valid)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.authed(http.MethodPost, "/tasks", gin.H{"name": "No refs"})
	suite.Equal(http.StatusBadRequest, w.Code)

	withOwners := func(owners []string) gin.H {
		body := gin.H{}
		for k, v := range valid {
			body[k] = v
		}
		body["owners"] = owners
		return body
	}

	w = suite.authed(http.MethodPost, "/tasks", withOwners([]string{}))
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.authed(http.MethodPost, "/tasks", withOwners([]string{"missing"}))
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.authed(http.MethodPatch, "/tasks/missing", gin.H{"name": "x"})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RouterTestSuite) TestConflictsAreBadRequests() {
	suite.createNamed("/projects", "project", "Task Board")

	w := suite.do(http.MethodPost, "/projects", gin.H{"name": "Task Board"})
	suite.Equal(http.StatusBadRequest, w.Code)
	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	suite.Equal(apierrors.ErrCodeAlreadyExists, apiErr.Code)

	w = suite.do(http.MethodPost, "/auth/signup", gin.H{
		"name": "Again", "email": "rani@example.com", "password": "secret1",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Email already exists")
}

func (suite *RouterTestSuite) TestLoginFailures() {
	w := suite.do(http.MethodPost, "/auth/login", gin.H{"email": "nobody@example.com", "password": "secret1"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/auth/login", gin.H{"email": "rani@example.com", "password": "wrong-one"})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Incorrect password.")
}

func (suite *RouterTestSuite) TestTeamMembership() {
	w := suite.authed(http.MethodPost, "/members", gin.H{"name": "Alice"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var created struct {
		Member dto.RefDTO `json:"member"`
	}
	suite.decode(w, &created)

	teamID := suite.createNamed("/teams", "team", "Platform")

	for i := 0; i < 2; i++ {
		w = suite.do(http.MethodPost, "/team/"+teamID+"/member", gin.H{"member": created.Member.ID})
		suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	}

	w = suite.do(http.MethodGet, "/teams", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var teams []dto.TeamDTO
	suite.decode(w, &teams)
	suite.Require().Len(teams, 1)
	suite.Equal([]dto.RefDTO{created.Member}, teams[0].Members)

	w = suite.do(http.MethodGet, "/members", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *RouterTestSuite) TestReportsEmpty() {
	w := suite.do(http.MethodGet, "/report/last-week", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())

	w = suite.do(http.MethodGet, "/report/pending", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())

	w = suite.do(http.MethodGet, "/report/closed-tasks", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"byOwners":[],"byTeam":[],"byProject":[]}`, w.Body.String())
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
