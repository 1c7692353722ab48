package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"atvtours/internal/domain"
	"atvtours/internal/pkg/response"
)

type Handler struct {
	sessions SessionStore
	catalog  *domain.Catalog
}

func NewHandler(sessions SessionStore, catalog *domain.Catalog) *Handler {
	return &Handler{sessions: sessions, catalog: catalog}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout/sessions", h.CreateSession)
	rg.GET("/checkout/sessions/:id", h.GetSession)
	rg.PATCH("/checkout/sessions/:id/selection", h.MutateSelection)
	rg.POST("/checkout/sessions/:id/advance", h.Advance)
	rg.POST("/checkout/sessions/:id/retreat", h.Retreat)
	rg.POST("/checkout/sessions/:id/step", h.GoToStep)
	rg.GET("/checkout/sessions/:id/price", h.Price)
	rg.DELETE("/checkout/sessions/:id", h.Abandon)
}

func (h *Handler) CreateSession(c *gin.Context) {
	s := NewSession(h.catalog)
	h.sessions.Put(s)
	response.Success(c, http.StatusCreated, gin.H{"session": s.View()})
}

func (h *Handler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": s.View()})
}

func (h *Handler) MutateSelection(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var patch SelectionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := s.Mutate(patch); err != nil {
		h.sessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"session":   s.View(),
		"breakdown": s.Breakdown(),
	})
}

func (h *Handler) Advance(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	fields, err := s.Advance()
	if err != nil {
		h.sessionError(c, err)
		return
	}
	if len(fields) > 0 {
		response.FieldErrors(c, "Current step is not valid", fields)
		return
	}

	response.Success(c, http.StatusOK, AdvanceResponse{Moved: true, Step: s.Step()})
}

func (h *Handler) Retreat(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Retreat(); err != nil {
		h.sessionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, AdvanceResponse{Moved: true, Step: s.Step()})
}

func (h *Handler) GoToStep(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Step domain.WizardStep `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := s.GoTo(req.Step); err != nil {
		h.sessionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, AdvanceResponse{Moved: true, Step: s.Step()})
}

func (h *Handler) Price(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"breakdown": s.Breakdown()})
}

func (h *Handler) Abandon(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Abandon(); err != nil {
		h.sessionError(c, err)
		return
	}
	h.sessions.Delete(s.ID())
	response.Success(c, http.StatusOK, gin.H{"session": s.View()})
}

func (h *Handler) session(c *gin.Context) (*Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Unknown checkout session")
		return nil, false
	}
	return s, true
}

func (h *Handler) sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionClosed):
		response.Error(c, http.StatusGone, "SESSION_CLOSED", "Checkout session is no longer active")
	case errors.Is(err, ErrSubmissionInFlight):
		response.Error(c, http.StatusConflict, "SUBMISSION_IN_FLIGHT", "A payment submission is in flight")
	case errors.Is(err, ErrInitialStep):
		response.Error(c, http.StatusConflict, "INITIAL_STEP", "Already on the first step")
	case errors.Is(err, ErrFinalStep):
		response.Error(c, http.StatusConflict, "FINAL_STEP", "Already on the final step")
	case errors.Is(err, ErrStepNotReached):
		response.Error(c, http.StatusConflict, "STEP_NOT_REACHED", "Preceding steps have not been completed")
	case errors.Is(err, ErrUnknownOption):
		response.Error(c, http.StatusBadRequest, "UNKNOWN_OPTION", "Selection references an unknown catalog option")
	case errors.Is(err, ErrUnknownMethod):
		response.Error(c, http.StatusBadRequest, "UNKNOWN_METHOD", "Unknown payment method")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Session operation failed")
	}
}
