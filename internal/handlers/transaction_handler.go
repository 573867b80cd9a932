package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finplan/internal/errors"
	"finplan/internal/services"
)

// TransactionHandler handles planned transaction requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a
// planned transaction. Amount is a decimal string; a positive amount marks
// the transaction as income.
type CreateTransactionRequest struct {
	AccountID      string  `json:"account_id" binding:"required"`
	ScenarioID     string  `json:"scenario_id" binding:"required"`
	Name           string  `json:"name" binding:"required,max=255"`
	Amount         string  `json:"amount" binding:"required"`
	Currency       string  `json:"currency" binding:"omitempty,iso4217"`
	RecurrenceRule string  `json:"recurrence_rule" binding:"required,recurrence_rule"`
	OccursOn       *string `json:"occurs_on"`
}

// CreateTransaction handles the creation of a new planned transaction
// @Summary     Create a planned transaction
// @Description Create a recurring planned transaction with a recurrence rule
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.PlannedTransaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input or recurrence rule"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account or scenario not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid amount"))
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	var occursOn *time.Time
	if req.OccursOn != nil && *req.OccursOn != "" {
		parsed, parseErr := parseFlexibleTime(*req.OccursOn)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid occurs_on format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		occursOn = &parsed
	}

	transaction, err := h.transactionService.CreateTransaction(
		userID,
		req.AccountID,
		req.ScenarioID,
		req.Name,
		amount,
		currency,
		req.RecurrenceRule,
		occursOn,
		time.Now(),
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// QueryTransactions handles transaction queries
// @Summary     Query planned transactions
// @Description Query planned transactions with an optional filter and date period. With a period the occurrences are expanded and partitioned into calendar months, or into pay periods when income is present; without one the matching templates are returned flat.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       tags         query []string false "Filter by tag names (union)"
// @Param       intersection query bool     false "Require every listed tag on each transaction"
// @Param       tag_set_ids  query []string false "Filter by stored tag sets; only the first existing set applies"
// @Param       account_id   query string   false "Filter by account"
// @Param       scenario_id  query string   false "Restrict to a scenario (defaults to the oldest)"
// @Param       date_period  query string   false "Named period: current_month or current_year"
// @Param       start_date   query string   false "Explicit period start (YYYY-MM-DD)"
// @Param       end_date     query string   false "Explicit period end (YYYY-MM-DD, inclusive)"
// @Success     200 {object} services.QueryResult "Query result"
// @Failure     400 {object} ErrorResponse "Invalid input or cross-year month query"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) QueryTransactions(c *gin.Context) {
	h.query(c, false)
}

// GetSchedule handles schedule queries
// @Summary     Get the transaction schedule
// @Description Query planned transactions like GET /transactions, but default the date period to the current month
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       tags         query []string false "Filter by tag names (union)"
// @Param       intersection query bool     false "Require every listed tag on each transaction"
// @Param       tag_set_ids  query []string false "Filter by stored tag sets; only the first existing set applies"
// @Param       account_id   query string   false "Filter by account"
// @Param       scenario_id  query string   false "Restrict to a scenario (defaults to the oldest)"
// @Param       date_period  query string   false "Named period: current_month or current_year"
// @Success     200 {object} services.QueryResult "Schedule"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/schedule [get]
func (h *TransactionHandler) GetSchedule(c *gin.Context) {
	h.query(c, true)
}

func (h *TransactionHandler) query(c *gin.Context, schedule bool) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	query, err := parseTransactionQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	query.Schedule = schedule

	result, err := h.transactionService.Query(userID, query, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// parseTransactionQuery decodes the query string into a TransactionQuery.
// Exactly one filter variant is chosen: tags win over tag sets, which win
// over the account filter.
func parseTransactionQuery(c *gin.Context) (services.TransactionQuery, error) {
	var query services.TransactionQuery

	switch {
	case len(c.QueryArray("tags")) > 0:
		query.Filter = services.TagFilter{
			Tags:         c.QueryArray("tags"),
			Intersection: c.Query("intersection") == "true",
		}
	case len(c.QueryArray("tag_set_ids")) > 0:
		query.Filter = services.TagSetFilter{IDs: c.QueryArray("tag_set_ids")}
	case c.Query("account_id") != "":
		query.Filter = services.AccountFilter{AccountID: c.Query("account_id")}
	default:
		query.Filter = services.NoFilter{}
	}

	query.ScenarioID = c.Query("scenario_id")

	switch period := c.Query("date_period"); period {
	case "", "current_month", "current_year":
		query.DatePeriod = period
	default:
		return query, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date_period, must be current_month or current_year")
	}

	startRaw, endRaw := c.Query("start_date"), c.Query("end_date")
	if (startRaw == "") != (endRaw == "") {
		return query, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date and end_date must be given together")
	}
	if startRaw != "" {
		start, err := parseFlexibleTime(startRaw)
		if err != nil {
			return query, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid start_date format, use RFC3339 or YYYY-MM-DD")
		}
		end, err := parseFlexibleTime(endRaw)
		if err != nil {
			return query, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid end_date format, use RFC3339 or YYYY-MM-DD")
		}
		if end.Before(start) {
			return query, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must not precede start_date")
		}
		query.StartDate = &start
		query.EndDate = &end
	}

	return query, nil
}

// GetTransactionByID handles the retrieval of a specific planned transaction
// @Summary     Get transaction by ID
// @Description Get a specific planned transaction with its tags
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.PlannedTransaction "Transaction details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles the deletion of a planned transaction
// @Summary     Delete transaction
// @Description Delete a planned transaction and its tag associations
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
