package entitlement

import (
	"net/http"
	"strconv"

	"starhr/internal/middleware"
	"starhr/internal/shared/apperror"
	"starhr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("entitlement.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("entitlement.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("entitlement request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetLeaveTypes(c *gin.Context) {
	companyID := c.GetString("company_id")
	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("include_inactive", "false"))

	resp, err := h.service.GetLeaveTypes(c.Request.Context(), companyID, includeInactive)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Preview(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	h.logger.Debug("http preview entitlement", zap.String("company_id", actor.CompanyID), zap.String("actor_id", actor.EmployeeID))

	var query PreviewQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Warn("http preview entitlement validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", apperror.MapValidationError(err).Error())
		return
	}

	resp, err := h.service.Preview(c.Request.Context(), actor, query)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
