package handler

import (
	"github.com/gin-gonic/gin"

	"teamroster/src/app/http/dto"
	"teamroster/src/app/http/response"
	"teamroster/src/app/middleware"
	"teamroster/src/core/usecase"
)

// TeamHandler handles team endpoints.
type TeamHandler struct {
	teamService *usecase.TeamService
}

func NewTeamHandler(teamService *usecase.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// Create adds a team.
// POST /teams
func (h *TeamHandler) Create(c *gin.Context) {
	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}
	team, err := h.teamService.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, dto.NewTeamResponse(*team))
}

// Get returns a team with its members.
// GET /teams/:id
func (h *TeamHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	team, err := h.teamService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.NewTeamResponse(*team))
}
