package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workviyo/taskboard-api/internal/dto"
	apierrors "github.com/workviyo/taskboard-api/internal/errors"
	"github.com/workviyo/taskboard-api/internal/services"
)

// DirectoryHandler serves users, members and tags
type DirectoryHandler struct {
	directoryService *services.DirectoryService
}

func NewDirectoryHandler(directoryService *services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

func (h *DirectoryHandler) ListUsers(c *gin.Context) {
	users, err := h.directoryService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

func (h *DirectoryHandler) ListMembers(c *gin.Context) {
	members, err := h.directoryService.ListMembers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRefDTOs(members, dto.MemberRef))
}

func (h *DirectoryHandler) CreateMember(c *gin.Context) {
	var req namedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.directoryService.CreateMember(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Member created successfully",
		"member":  dto.MemberRef(*member),
	})
}

func (h *DirectoryHandler) ListTags(c *gin.Context) {
	tags, err := h.directoryService.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRefDTOs(tags, dto.TagRef))
}

func (h *DirectoryHandler) CreateTag(c *gin.Context) {
	var req namedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tag, err := h.directoryService.CreateTag(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tag created successfully",
		"tag":     dto.TagRef(*tag),
	})
}

type namedRequest struct {
	Name string `json:"name" binding:"required"`
}
