package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vespaiach/ledger-api/internal/dtos"
	"github.com/vespaiach/ledger-api/internal/models"
	"github.com/vespaiach/ledger-api/internal/repositories"
	"github.com/vespaiach/ledger-api/internal/services"
	"github.com/vespaiach/ledger-api/internal/utils"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type TransactionController struct {
	transactionService services.TransactionService
}

func NewTransactionController(transactionService services.TransactionService) *TransactionController {
	return &TransactionController{transactionService: transactionService}
}

func (c *TransactionController) Create(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateTransactionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	t, err := c.transactionService.Create(r.Context(), services.CreateTransactionInput{
		Amount:     req.Amount,
		Date:       req.Date,
		ReasonText: req.ReasonText,
		Note:       req.Note,
	})
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, t)
}

func (c *TransactionController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	t, err := c.transactionService.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if t == nil {
		utils.HandleAppError(w, utils.ErrNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, t)
}

func (c *TransactionController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateTransactionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	t, err := c.transactionService.Update(r.Context(), id, services.UpdateTransactionInput{
		Amount:     req.Amount,
		Date:       req.Date,
		ReasonText: req.ReasonText,
		Note:       req.Note,
	})
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if t == nil {
		utils.HandleAppError(w, utils.ErrNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, t)
}

func (c *TransactionController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.transactionService.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *TransactionController) List(w http.ResponseWriter, r *http.Request) {
	query, err := parseListQuery(r)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid query parameters", nil, err,
		)
		return
	}

	filter := repositories.TransactionFilter{
		DateFrom:   query.DateFrom,
		DateTo:     query.DateTo,
		AmountFrom: query.AmountFrom,
		AmountTo:   query.AmountTo,
		ReasonIDs:  query.ReasonIDs,
	}

	list, total, err := c.transactionService.List(r.Context(), filter, query.Limit, query.Offset)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if list == nil {
		list = []*models.Transaction{}
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.ListTransactionsResponse{
		Transactions: list,
		Total:        total,
		Limit:        query.Limit,
		Offset:       query.Offset,
	})
}

// parseListQuery translates the query string into a typed filter.
// Dates are RFC 3339, amounts are cents, reason_ids is comma-separated.
func parseListQuery(r *http.Request) (*dtos.ListTransactionsQuery, error) {
	q := r.URL.Query()
	out := &dtos.ListTransactionsQuery{
		Limit:  defaultPageSize,
		Offset: 0,
	}

	if v := q.Get("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		out.DateFrom = &t
	}
	if v := q.Get("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		out.DateTo = &t
	}
	if v := q.Get("amount_from"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		out.AmountFrom = &n
	}
	if v := q.Get("amount_to"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		out.AmountTo = &n
	}
	if v := q.Get("reason_ids"); v != "" {
		for _, raw := range strings.Split(v, ",") {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				return nil, err
			}
			out.ReasonIDs = append(out.ReasonIDs, id)
		}
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("limit must be positive, got %d", n)
		}
		if n > maxPageSize {
			n = maxPageSize
		}
		out.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("offset must not be negative, got %d", n)
		}
		out.Offset = n
	}

	return out, nil
}
