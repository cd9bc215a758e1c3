package leavebalance

import (
	"net/http"

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
	l := zap.L().Named("leavebalance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetBalances(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	var query BalanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Warn("http get balances validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", apperror.MapValidationError(err).Error())
		return
	}

	resp, err := h.service.GetBalances(c.Request.Context(), actor, query)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("get balances failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
