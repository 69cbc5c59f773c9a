package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ignite/tuition-service/internal/middleware"
	"github.com/ignite/tuition-service/internal/model"
	"github.com/ignite/tuition-service/internal/response"
	"github.com/ignite/tuition-service/internal/service"
	"github.com/ignite/tuition-service/internal/validator"
	"github.com/rs/zerolog"
)

// TuitionHandler exposes tuition management over HTTP.
type TuitionHandler struct {
	tuitionService *service.TuitionService
}

// NewTuitionHandler creates a new TuitionHandler.
func NewTuitionHandler(tuitionService *service.TuitionService) *TuitionHandler {
	return &TuitionHandler{tuitionService: tuitionService}
}

// CreateTuition godoc
// POST /api/v1/tuition
func (h *TuitionHandler) CreateTuition(c *gin.Context) {
	log := zerolog.Ctx(c.Request.Context())

	var req model.CreateTuitionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		log.Error().Interface("fields", fields).Msg("Required fields missing in tuition create request")
		response.Fail(c, http.StatusBadRequest, response.ErrMissingRequiredFields)
		return
	}

	tuition, err := h.tuitionService.Create(c.Request.Context(), &model.Tuition{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Schedule:    req.Schedule,
		Fee:         req.Fee,
	})
	if err != nil {
		fail(c, err, "Creating tuition failed")
		return
	}

	log.Debug().Str("tuition_id", tuition.ID).Msg("Created tuition")
	response.Success(c, response.CreateTuition, tuition)
}

// GetTuition godoc
// GET /api/v1/tuition/get/:tuitionId
func (h *TuitionHandler) GetTuition(c *gin.Context) {
	tuition, err := h.tuitionService.GetByID(c.Request.Context(), c.Param("tuitionId"))
	if err != nil {
		fail(c, err, "Getting tuition failed")
		return
	}

	response.Success(c, response.ReadTuition, tuition)
}

// ListTuitions godoc
// GET /api/v1/tuition/get/all
func (h *TuitionHandler) ListTuitions(c *gin.Context) {
	tuitions, err := h.tuitionService.List(c.Request.Context())
	if err != nil {
		fail(c, err, "Getting all tuition failed")
		return
	}

	response.Success(c, response.ReturnedAllTuition, model.TuitionList{TuitionList: tuitions})
}

// DeleteTuition godoc
// DELETE /api/v1/tuition/delete/:tuitionId
// Clears the tuition from students and payments before deleting it.
func (h *TuitionHandler) DeleteTuition(c *gin.Context) {
	tuitionID := c.Param("tuitionId")

	if err := h.tuitionService.Delete(c.Request.Context(), tuitionID, middleware.Token(c)); err != nil {
		fail(c, err, "Deleting tuition failed")
		return
	}

	zerolog.Ctx(c.Request.Context()).Debug().Str("tuition_id", tuitionID).Msg("Deleted tuition")
	response.Success(c, response.DeleteTuition, nil)
}

// AddStudent godoc
// POST /api/v1/tuition/add/student/:studentId/tuition/:tuitionId
func (h *TuitionHandler) AddStudent(c *gin.Context) {
	student, err := h.tuitionService.AddStudent(c.Request.Context(),
		c.Param("studentId"), c.Param("tuitionId"), middleware.Token(c))
	if err != nil {
		fail(c, err, "Adding student to tuition failed")
		return
	}

	response.Success(c, response.AddTuitionStudent, student)
}

// RemoveStudent godoc
// POST /api/v1/tuition/remove/student/:studentId/tuition/:tuitionId
func (h *TuitionHandler) RemoveStudent(c *gin.Context) {
	student, err := h.tuitionService.RemoveStudent(c.Request.Context(),
		c.Param("studentId"), c.Param("tuitionId"), middleware.Token(c))
	if err != nil {
		fail(c, err, "Removing student from tuition failed")
		return
	}

	response.Success(c, response.RemoveTuitionStudent, student)
}

// fail logs the failure with its classification and writes the envelope.
func fail(c *gin.Context, err error, msg string) {
	cl := response.Error(c, err)
	e := service.AsError(err)

	log := zerolog.Ctx(c.Request.Context())
	event := log.Warn()
	if cl.HTTPStatus >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("kind", e.Kind.String()).
		Str("upstream", string(e.Service)).
		Bool("timeout", e.Timeout).
		Int("code", int(cl.Code)).
		Msg(msg)
}
