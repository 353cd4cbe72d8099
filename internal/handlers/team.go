package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workviyo/taskboard-api/internal/dto"
	apierrors "github.com/workviyo/taskboard-api/internal/errors"
	"github.com/workviyo/taskboard-api/internal/services"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) CreateTeam(c *gin.Context) {
	type CreateTeamRequest struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Members     []string `json:"members"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), services.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.Members,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Team created successfully",
		"team":    dto.ToTeamDTO(*team),
	})
}

func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTeamDTOs(teams))
}

// AddMember adds one member to the team named by the team_id path parameter
func (h *TeamHandler) AddMember(c *gin.Context) {
	type AddMemberRequest struct {
		Member string `json:"member" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.AddMember(c.Request.Context(), c.Param("team_id"), req.Member)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Member added successfully",
		"team":    dto.ToTeamDTO(*team),
	})
}
