package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	portssvc "github.com/hestiabank/property_portal_app/internal/core/ports/services"
	"github.com/hestiabank/property_portal_app/internal/dto"
	"github.com/hestiabank/property_portal_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// ledgerHandler handles HTTP requests for the portal-wide financial ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers routes related to the financial ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("", middleware.RequireRole(domain.RoleEmployee), h.appendEntry)
		ledger.GET("", h.listEntries)
	}
}

// AppendLedgerEntryRequest records a deposit, withdrawal or property sale.
// Mortgage payment entries are written by the payment booking itself and
// cannot be appended directly.
type AppendLedgerEntryRequest struct {
	Kind        string          `json:"kind" binding:"required,oneof=DEPOSIT WITHDRAWAL PROPERTY_SALE"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	UserID      string          `json:"userID" binding:"required"`
	ReferenceID *string         `json:"referenceID,omitempty"`
	EntryDate   time.Time       `json:"entryDate"`
}

// appendEntry godoc
// @Summary Append a ledger entry
// @Description Records a deposit, withdrawal or property sale in the portal-wide financial ledger. Mortgage payments are booked through the mortgage endpoints instead.
// @Tags ledger
// @Accept json
// @Produce json
// @Param entry body AppendLedgerEntryRequest true "Entry details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /ledger [post]
func (h *ledgerHandler) appendEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req AppendLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AppendEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		Kind:        domain.LedgerEntryKind(req.Kind),
		Amount:      req.Amount,
		Description: req.Description,
		UserID:      req.UserID,
		ReferenceID: req.ReferenceID,
		EntryDate:   req.EntryDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	saved, err := h.ledgerService.AppendEntry(c.Request.Context(), entry)
	if err != nil {
		respondServiceError(c, err, "Failed to append ledger entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(saved))
}

// listEntries godoc
// @Summary List ledger entries
// @Description Lists a user's ledger entries, newest first. Borrowers see only their own; staff may pass any userID.
// @Tags ledger
// @Produce json
// @Param userID query string false "Account holder (defaults to the caller)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /ledger [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	userID := c.DefaultQuery("userID", actor.UserID)
	limit, offset := paginationFromQuery(c)

	entries, err := h.ledgerService.ListEntriesByUser(c.Request.Context(), userID, limit, offset, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to list ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListLedgerEntriesResponse{Entries: dto.ToLedgerEntryResponses(entries)})
}
