package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"teamroster/src/app/http/dto"
	"teamroster/src/app/http/response"
	"teamroster/src/app/middleware"
	"teamroster/src/core/domain"
	"teamroster/src/core/usecase"
)

// MemberHandler handles member endpoints.
type MemberHandler struct {
	memberService *usecase.MemberService
	defaultSize   int
	maxSize       int
}

// NewMemberHandler creates a MemberHandler. Page sizes default to
// defaultSize and are clamped to maxSize; non-positive values fall back to
// the domain defaults.
func NewMemberHandler(memberService *usecase.MemberService, defaultSize, maxSize int) *MemberHandler {
	if defaultSize < 1 {
		defaultSize = domain.DefaultPageSize
	}
	if maxSize < 1 {
		maxSize = domain.MaxPageSize
	}
	return &MemberHandler{
		memberService: memberService,
		defaultSize:   defaultSize,
		maxSize:       maxSize,
	}
}

// Get returns the username of one member as plain text.
// GET /members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	member, err := h.memberService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.String(http.StatusOK, member.Username)
}

// List returns one page of member summaries.
// GET /members?page=&size=&sort=
func (h *MemberHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error(), middleware.GetRequestID(c))
		return
	}
	page, ok := h.pageable(c, q)
	if !ok {
		return
	}
	out, err := h.memberService.List(c.Request.Context(), page)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, out)
}

// ByAge returns one page of members with the given age.
// GET /members/by-age?age=&page=&size=&sort=
func (h *MemberHandler) ByAge(c *gin.Context) {
	var q dto.ByAgeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error(), middleware.GetRequestID(c))
		return
	}
	page, ok := h.pageable(c, q.PageQuery)
	if !ok {
		return
	}
	out, err := h.memberService.ListByAge(c.Request.Context(), q.Age, page)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, domain.MapPage(out, dto.NewMemberResponse))
}

// ListDTO returns members that have a team, with the team name.
// GET /members/dto
func (h *MemberHandler) ListDTO(c *gin.Context) {
	dtos, err := h.memberService.ListDTO(c.Request.Context())
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dtos)
}

// Search returns members with a username older than min_age.
// GET /members/search?username=&min_age=
func (h *MemberHandler) Search(c *gin.Context) {
	var q dto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error(), middleware.GetRequestID(c))
		return
	}
	members, err := h.memberService.Search(c.Request.Context(), q.Username, q.MinAge)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.NewMemberResponses(members))
}

// Example runs a query by example.
// POST /members/example
func (h *MemberHandler) Example(c *gin.Context) {
	var req dto.ExampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}
	example, err := req.ToExample()
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	members, err := h.memberService.FindByExample(c.Request.Context(), example)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.NewMemberResponses(members))
}

// Create adds a member.
// POST /members
func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}
	member, err := h.memberService.Create(c.Request.Context(), req.Username, req.Age, req.TeamID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, dto.NewMemberResponse(*member))
}

// IncrementAges adds one to the age of every member at least threshold old.
// POST /members/age-increment?threshold=
func (h *MemberHandler) IncrementAges(c *gin.Context) {
	var q dto.AgeIncrementQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error(), middleware.GetRequestID(c))
		return
	}
	n, err := h.memberService.IncrementAges(c.Request.Context(), q.Threshold)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.IncrementAgesResponse{Updated: n})
}

func (h *MemberHandler) pageable(c *gin.Context, q dto.PageQuery) (domain.Pageable, bool) {
	page, err := q.ToPageable(h.defaultSize, h.maxSize)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return domain.Pageable{}, false
	}
	return page, true
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid "+param, middleware.GetRequestID(c))
		return 0, false
	}
	return id, true
}
