package controllers

import (
	"net/http"

	"github.com/vespaiach/ledger-api/internal/dtos"
	"github.com/vespaiach/ledger-api/internal/models"
	"github.com/vespaiach/ledger-api/internal/services"
	"github.com/vespaiach/ledger-api/internal/utils"
)

type ReasonController struct {
	reasonService services.ReasonService
}

func NewReasonController(reasonService services.ReasonService) *ReasonController {
	return &ReasonController{reasonService: reasonService}
}

func (c *ReasonController) List(w http.ResponseWriter, r *http.Request) {
	reasons, err := c.reasonService.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if reasons == nil {
		reasons = []*models.Reason{}
	}

	utils.RespondWithJSON(w, http.StatusOK, reasons)
}

// Create is get-or-create: posting an existing text returns the existing
// reason rather than a conflict.
func (c *ReasonController) Create(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateReasonRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	reason, err := c.reasonService.GetOrCreate(r.Context(), req.Text)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, reason)
}

func (c *ReasonController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateReasonRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	reason, err := c.reasonService.Update(r.Context(), id, req.Text)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if reason == nil {
		utils.HandleAppError(w, utils.ErrNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, reason)
}

func (c *ReasonController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	// ErrReasonInUse surfaces as a 409 conflict.
	if err := c.reasonService.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
