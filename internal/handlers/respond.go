package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	apierrors "github.com/workviyo/taskboard-api/internal/errors"
	"github.com/workviyo/taskboard-api/internal/services"
	"github.com/workviyo/taskboard-api/internal/taskquery"
)

var (
	validationErrors = []error{
		services.ErrNameRequired,
		services.ErrEmailRequired,
		services.ErrOwnersRequired,
		services.ErrInvalidTimeToComplete,
		services.ErrInvalidPriority,
		services.ErrInvalidStatus,
		taskquery.ErrInvalidPrioritySort,
		taskquery.ErrInvalidDateSort,
	}
	notFoundErrors = []error{
		services.ErrTaskNotFound,
		services.ErrProjectNotFound,
		services.ErrTeamNotFound,
		services.ErrOwnerNotFound,
		services.ErrTagNotFound,
		services.ErrMemberNotFound,
		services.ErrUserNotFound,
	}
	conflictErrors = []error{
		services.ErrTeamNameTaken,
		services.ErrProjectNameTaken,
		services.ErrTagNameTaken,
	}
)

// respondError maps a service error onto the API error envelope. Anything
// unrecognized is a store failure: it is logged and answered with a
// generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case isAny(err, validationErrors):
		apierrors.BadRequest(c, err.Error())
	case isAny(err, notFoundErrors):
		apierrors.NotFound(c, err.Error())
	case isAny(err, conflictErrors):
		apierrors.AlreadyExists(c, err.Error())
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		apierrors.InternalError(c, "")
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
