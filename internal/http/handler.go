package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aldanbek/gigworks-billing/internal/http/middleware"
	"github.com/aldanbek/gigworks-billing/internal/model"
	"github.com/aldanbek/gigworks-billing/internal/service"
)

type BalanceService interface {
	Deposit(ctx context.Context, clientID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
}

type PaymentService interface {
	PayForJob(ctx context.Context, caller model.Principal, jobID uuid.UUID) (*model.Job, error)
}

type ContractService interface {
	GetContract(ctx context.Context, caller model.Principal, id uuid.UUID) (*model.Contract, error)
	ListContracts(ctx context.Context, caller model.Principal) ([]model.Contract, error)
	ListUnpaidJobs(ctx context.Context, caller model.Principal) ([]model.Job, error)
}

type AdminService interface {
	BestProfession(ctx context.Context, start, end time.Time) (*model.ProfessionEarnings, error)
	BestClients(ctx context.Context, start, end time.Time, limit int) ([]model.ClientPayment, error)
	ExportBestClients(ctx context.Context, start, end time.Time, limit int) (*service.ExportResult, error)
	ExportBestClientsPDF(ctx context.Context, start, end time.Time, limit int) (*service.ExportResult, error)
}

type Handler struct {
	balances  BalanceService
	payments  PaymentService
	contracts ContractService
	admin     AdminService
	log       zerolog.Logger
}

func NewHandler(balances BalanceService, payments PaymentService, contracts ContractService, admin AdminService, log zerolog.Logger) *Handler {
	return &Handler{
		balances:  balances,
		payments:  payments,
		contracts: contracts,
		admin:     admin,
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/balances/deposit/:userId", h.deposit)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.POST("/jobs/:job_id/pay", h.payForJob)
	protected.GET("/jobs/unpaid", h.listUnpaidJobs)
	protected.GET("/contracts/:id", h.getContract)
	protected.GET("/contracts", h.listContracts)

	admin := router.Group("/admin")
	admin.GET("/best-profession", h.bestProfession)
	admin.GET("/best-clients", h.bestClients)
	admin.GET("/best-clients/export", h.exportBestClients)
	admin.GET("/best-clients/export/pdf", h.exportBestClientsPDF)
}

// envelope is the response shape every endpoint answers with.
type envelope struct {
	Status  bool   `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c *gin.Context, code int, message string, data any) {
	c.JSON(code, envelope{
		Status:  code < http.StatusBadRequest,
		Code:    code,
		Message: message,
		Data:    data,
	})
}

type depositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) deposit(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid user id", nil)
		return
	}

	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	balance, err := h.balances.Deposit(c.Request.Context(), clientID, req.Amount)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, "deposit made successfully", gin.H{"balance": balance})
}

func (h *Handler) payForJob(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "missing principal", nil)
		return
	}

	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid job id", nil)
		return
	}

	job, err := h.payments.PayForJob(c.Request.Context(), principal, jobID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, "payment successfully processed", job)
}

func (h *Handler) listUnpaidJobs(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "missing principal", nil)
		return
	}

	jobs, err := h.contracts.ListUnpaidJobs(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, "unpaid contract jobs retrieved successfully", jobs)
}

func (h *Handler) getContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "missing principal", nil)
		return
	}

	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid contract id", nil)
		return
	}

	contract, err := h.contracts.GetContract(c.Request.Context(), principal, contractID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, "contract retrieved successfully", contract)
}

func (h *Handler) listContracts(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "missing principal", nil)
		return
	}

	contracts, err := h.contracts.ListContracts(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, "contracts retrieved successfully", contracts)
}

func (h *Handler) bestProfession(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}

	best, err := h.admin.BestProfession(c.Request.Context(), start, end)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, "best profession retrieved successfully", best)
}

func (h *Handler) bestClients(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}

	clients, err := h.admin.BestClients(c.Request.Context(), start, end, h.limit(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, "clients payments", clients)
}

func (h *Handler) exportBestClients(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}

	result, err := h.admin.ExportBestClients(c.Request.Context(), start, end, h.limit(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) exportBestClientsPDF(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}

	result, err := h.admin.ExportBestClientsPDF(c.Request.Context(), start, end, h.limit(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrLimitExceeded):
		respond(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrUnauthenticated):
		respond(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, service.ErrInsufficientFunds):
		respond(c, http.StatusPaymentRequired, err.Error(), nil)
	case errors.Is(err, service.ErrForbidden):
		respond(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, service.ErrNotFound):
		respond(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrConflict):
		respond(c, http.StatusConflict, err.Error(), nil)
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		respond(c, http.StatusInternalServerError, "an error occurred processing the request", nil)
	}
}

func (h *Handler) dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := parseDate(c.Query("start"))
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid date format", nil)
		return time.Time{}, time.Time{}, false
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid date format", nil)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *Handler) limit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return limit
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
