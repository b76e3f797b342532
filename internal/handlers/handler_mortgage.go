package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hestiabank/property_portal_app/internal/apperrors"
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	portssvc "github.com/hestiabank/property_portal_app/internal/core/ports/services"
	"github.com/hestiabank/property_portal_app/internal/dto"
	"github.com/hestiabank/property_portal_app/internal/middleware"
)

// mortgageHandler handles HTTP requests related to mortgages.
type mortgageHandler struct {
	mortgageService portssvc.MortgageSvcFacade
}

// newMortgageHandler creates a new mortgageHandler.
func newMortgageHandler(ms portssvc.MortgageSvcFacade) *mortgageHandler {
	return &mortgageHandler{
		mortgageService: ms,
	}
}

// RegisterMortgageRoutes registers routes related to mortgages.
func RegisterMortgageRoutes(rg *gin.RouterGroup, mortgageService portssvc.MortgageSvcFacade) {
	registerCustomValidators()
	h := newMortgageHandler(mortgageService)

	mortgages := rg.Group("/mortgages")
	{
		mortgages.POST("", middleware.RequireRole(domain.RoleEmployee), h.createMortgage)
		mortgages.GET("", h.listMortgages)
		mortgages.GET("/:id", h.getMortgage)
		mortgages.PUT("/:id", middleware.RequireRole(domain.RoleEmployee), h.updateMortgage)
		mortgages.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.deleteMortgage)
		mortgages.POST("/:id/payments", h.recordPayment)
		mortgages.GET("/:id/payments", h.listPayments)
		mortgages.GET("/:id/metrics", h.getMetrics)
		mortgages.POST("/:id/recompute", middleware.RequireRole(domain.RoleEmployee), h.recomputeTotal)
		mortgages.POST("/:id/default", middleware.RequireRole(domain.RoleEmployee), h.markDefaulted)
	}
}

// actorOrAbort pulls the authenticated actor from the context, writing a 401
// response if the auth middleware did not run.
func actorOrAbort(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c.Request.Context())
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}

// respondServiceError translates the error taxonomy into HTTP status codes.
func respondServiceError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflicting state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Operation not permitted"})
	default:
		logger.Error("Internal error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// createMortgage godoc
// @Summary Create a new mortgage
// @Description Creates a mortgage for a borrower against a listed property. The total owed is computed and frozen at creation.
// @Tags mortgages
// @Accept  json
// @Produce  json
// @Param   mortgage body dto.CreateMortgageRequest true "Mortgage details"
// @Success 201 {object} dto.MortgageResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Property or borrower not found"
// @Security BearerAuth
// @Router /mortgages [post]
func (h *mortgageHandler) createMortgage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMortgageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMortgage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	mortgage, err := h.mortgageService.CreateMortgage(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to create mortgage")
		return
	}

	logger.Info("Mortgage created successfully", slog.String("mortgage_id", mortgage.MortgageID))
	c.JSON(http.StatusCreated, dto.ToMortgageResponse(mortgage))
}

// getMortgage godoc
// @Summary Get a mortgage by ID
// @Description Retrieves one mortgage. Borrowers see only their own mortgages.
// @Tags mortgages
// @Produce  json
// @Param   id path string true "Mortgage ID"
// @Success 200 {object} dto.MortgageResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Mortgage not found"
// @Security BearerAuth
// @Router /mortgages/{id} [get]
func (h *mortgageHandler) getMortgage(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	mortgage, err := h.mortgageService.GetMortgageByID(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve mortgage")
		return
	}
	c.JSON(http.StatusOK, dto.ToMortgageResponse(mortgage))
}

// listMortgages godoc
// @Summary List mortgages
// @Description Lists mortgages. Borrowers are scoped to their own; staff may filter by borrower via the userID query parameter.
// @Tags mortgages
// @Produce  json
// @Param   userID query string false "Borrower filter (staff only)"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {object} dto.ListMortgagesResponse
// @Security BearerAuth
// @Router /mortgages [get]
func (h *mortgageHandler) listMortgages(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var params dto.ListMortgagesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	mortgages, err := h.mortgageService.ListMortgages(c.Request.Context(), params, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to list mortgages")
		return
	}
	c.JSON(http.StatusOK, dto.ListMortgagesResponse{Mortgages: dto.ToMortgageResponses(mortgages)})
}

// updateMortgage godoc
// @Summary Update a mortgage
// @Description Edits loan parameters and notes. The frozen total is never recomputed by this endpoint.
// @Tags mortgages
// @Accept  json
// @Produce  json
// @Param   id path string true "Mortgage ID"
// @Param   mortgage body dto.UpdateMortgageRequest true "Fields to update"
// @Success 200 {object} dto.MortgageResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Mortgage not found"
// @Failure 409 {object} map[string]string "Mortgage is in a terminal state"
// @Security BearerAuth
// @Router /mortgages/{id} [put]
func (h *mortgageHandler) updateMortgage(c *gin.Context) {
	var req dto.UpdateMortgageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	mortgage, err := h.mortgageService.UpdateMortgage(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to update mortgage")
		return
	}
	c.JSON(http.StatusOK, dto.ToMortgageResponse(mortgage))
}

// deleteMortgage godoc
// @Summary Delete a mortgage
// @Description Removes a mortgage and its payment history.
// @Tags mortgages
// @Param   id path string true "Mortgage ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Mortgage not found"
// @Security BearerAuth
// @Router /mortgages/{id} [delete]
func (h *mortgageHandler) deleteMortgage(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	if err := h.mortgageService.DeleteMortgage(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondServiceError(c, err, "Failed to delete mortgage")
		return
	}
	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Record a payment
// @Description Books one payment against a mortgage. The payment, the mortgage update and the financial ledger entry commit atomically.
// @Tags mortgages
// @Accept  json
// @Produce  json
// @Param   id path string true "Mortgage ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Mortgage not found"
// @Failure 409 {object} map[string]string "Mortgage is completed or defaulted"
// @Security BearerAuth
// @Router /mortgages/{id}/payments [post]
func (h *mortgageHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	payment, err := h.mortgageService.RecordPayment(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded successfully", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// listPayments godoc
// @Summary List payments for a mortgage
// @Description Returns the full payment history, oldest first.
// @Tags mortgages
// @Produce  json
// @Param   id path string true "Mortgage ID"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 404 {object} map[string]string "Mortgage not found"
// @Security BearerAuth
// @Router /mortgages/{id}/payments [get]
func (h *mortgageHandler) listPayments(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	payments, err := h.mortgageService.ListPayments(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ListPaymentsResponse{Payments: dto.ToPaymentResponses(payments)})
}

// getMetrics godoc
// @Summary Get mortgage metrics
// @Description Returns the derived metrics view: remaining balance, current installment, progress and overdue state. Recomputed on every call.
// @Tags mortgages
// @Produce  json
// @Param   id path string true "Mortgage ID"
// @Success 200 {object} dto.MortgageMetricsResponse
// @Failure 404 {object} map[string]string "Mortgage not found"
// @Security BearerAuth
// @Router /mortgages/{id}/metrics [get]
func (h *mortgageHandler) getMetrics(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	mortgageID := c.Param("id")
	metrics, err := h.mortgageService.GetMortgageMetrics(c.Request.Context(), mortgageID, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to compute metrics")
		return
	}
	c.JSON(http.StatusOK, dto.ToMortgageMetricsResponse(mortgageID, *metrics))
}

// recomputeTotal godoc
// @Summary Recompute the frozen total
// @Description Explicitly re-derives amountTotal from the mortgage's current parameters and property price. The only path that rewrites the total after creation.
// @Tags mortgages
// @Produce  json
// @Param   id path string true "Mortgage ID"
// @Success 200 {object} dto.MortgageResponse
// @Failure 404 {object} map[string]string "Mortgage not found"
// @Failure 409 {object} map[string]string "Mortgage is in a terminal state"
// @Security BearerAuth
// @Router /mortgages/{id}/recompute [post]
func (h *mortgageHandler) recomputeTotal(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	mortgage, err := h.mortgageService.RecomputeTotal(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to recompute total")
		return
	}
	c.JSON(http.StatusOK, dto.ToMortgageResponse(mortgage))
}

// markDefaulted godoc
// @Summary Mark a mortgage defaulted
// @Description Administrative transition from active to defaulted. Terminal states reject the transition.
// @Tags mortgages
// @Produce  json
// @Param   id path string true "Mortgage ID"
// @Success 200 {object} dto.MortgageResponse
// @Failure 404 {object} map[string]string "Mortgage not found"
// @Failure 409 {object} map[string]string "Mortgage is not active"
// @Security BearerAuth
// @Router /mortgages/{id}/default [post]
func (h *mortgageHandler) markDefaulted(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	mortgage, err := h.mortgageService.MarkDefaulted(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to mark mortgage defaulted")
		return
	}
	c.JSON(http.StatusOK, dto.ToMortgageResponse(mortgage))
}
