package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"profile-backend/internal/domains/profile/model"
	"profile-backend/internal/domains/profile/render"
	"profile-backend/internal/domains/profile/service"
	"profile-backend/internal/shared/response"
)

// =====================================================
// PROFILE HANDLER
// =====================================================

type ProfileHandler struct {
	service        service.ServiceInterface
	requestTimeout time.Duration
}

func NewProfileHandler(svc service.ServiceInterface, requestTimeout time.Duration) *ProfileHandler {
	return &ProfileHandler{
		service:        svc,
		requestTimeout: requestTimeout,
	}
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

type outputFormat int

const (
	formatJSON outputFormat = iota
	formatText
	formatXLSX
)

// negotiate picks the response format from ?format= and the Accept header.
func negotiate(c *gin.Context) outputFormat {
	switch strings.ToLower(c.Query("format")) {
	case "txt", "text":
		return formatText
	case "xlsx":
		return formatXLSX
	}
	if strings.Contains(c.GetHeader("Accept"), "text/plain") {
		return formatText
	}
	return formatJSON
}

func (h *ProfileHandler) withTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.requestTimeout)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", model.ErrProfileNotFound, c.Param("id"))
	}
	return id, nil
}

// respondError writes err in the negotiated format. Internal causes are
// logged and never sent to the client.
func respondError(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")

		switch {
		case errors.Is(err, model.ErrStoreUnavailable):
			message = model.ErrStoreUnavailable.Error()
		case errors.Is(err, model.ErrPublishUnavailable):
			message = model.ErrPublishUnavailable.Error()
		default:
			message = "internal server error"
		}
	}

	if negotiate(c) == formatText {
		response.Text(c, status, message)
		return
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), message)
}

func writeWorkbook(c *gin.Context, f *excelize.File, filename string) {
	defer f.Close()

	c.Header("Content-Type", response.XLSXContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Str("file", filename).Msg("Failed to write workbook")
	}
}

// =====================================================
// PROFILE ENDPOINTS
// =====================================================

// GetProfile returns the canonical profile
// GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	p, err := h.service.GetCanonical(ctx)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) && negotiate(c) == formatText {
			response.Text(c, http.StatusNotFound, render.NoProfile)
			return
		}
		respondError(c, err)
		return
	}

	if negotiate(c) == formatText {
		response.Text(c, http.StatusOK, render.Profile(p))
		return
	}
	response.Success(c, http.StatusOK, p)
}

// ListProfiles returns every profile
// GET /api/profiles
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	profiles, err := h.service.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	if negotiate(c) == formatText {
		response.Text(c, http.StatusOK, render.SearchResults(profiles))
		return
	}
	response.Success(c, http.StatusOK, profiles)
}

// GetProfileByID
// GET /api/profile/:id
func (h *ProfileHandler) GetProfileByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	p, err := h.service.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	if negotiate(c) == formatText {
		response.Text(c, http.StatusOK, render.Profile(p))
		return
	}
	response.Success(c, http.StatusOK, p)
}

// UpsertProfile creates or replaces the profile keyed by email
// POST /api/profile
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	var req model.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", model.ErrInvalidProfile, err))
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	result, err := h.service.Upsert(ctx, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	response.Success(c, status, result.Profile)
}

// UpdateProfile applies a partial update
// PUT /api/profile/:id
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", model.ErrInvalidProfile, err))
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	p, err := h.service.Update(ctx, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// PublishProfile uploads the text rendering to object storage
// POST /api/profile/:id/publish
func (h *ProfileHandler) PublishProfile(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	result, err := h.service.Publish(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// =====================================================
// QUERY ENDPOINTS
// =====================================================

// ProjectsBySkill
// GET /api/projects?skill=
func (h *ProfileHandler) ProjectsBySkill(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	matches, err := h.service.ProjectsBySkill(ctx, c.Query("skill"))
	if err != nil {
		respondError(c, err)
		return
	}

	switch negotiate(c) {
	case formatText:
		response.Text(c, http.StatusOK, render.ProjectMatches(matches))
	case formatXLSX:
		f, err := h.service.BuildProjectsWorkbook(matches)
		if err != nil {
			respondError(c, err)
			return
		}
		writeWorkbook(c, f, "projects.xlsx")
	default:
		response.Success(c, http.StatusOK, matches)
	}
}

// TopSkills
// GET /api/skills/top
func (h *ProfileHandler) TopSkills(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	skills, err := h.service.TopSkills(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	switch negotiate(c) {
	case formatText:
		response.Text(c, http.StatusOK, render.SkillCounts(skills))
	case formatXLSX:
		f, err := h.service.BuildSkillsWorkbook(skills)
		if err != nil {
			respondError(c, err)
			return
		}
		writeWorkbook(c, f, "top-skills.xlsx")
	default:
		response.Success(c, http.StatusOK, skills)
	}
}

// Search
// GET /api/search?q=
func (h *ProfileHandler) Search(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	results, err := h.service.Search(ctx, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	if negotiate(c) == formatText {
		response.Text(c, http.StatusOK, render.SearchResults(results))
		return
	}
	response.Success(c, http.StatusOK, results)
}

// =====================================================
// HEALTH
// =====================================================

// Health pings the store
// GET /health
func (h *ProfileHandler) Health(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	if err := h.service.Health(ctx); err != nil {
		log.Error().Err(err).Msg("DB connection error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "Error",
			"message": "Database not reachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": "Server and DB are running!",
	})
}
