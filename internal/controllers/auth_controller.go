package controllers

import (
	"net/http"

	"github.com/vespaiach/ledger-api/internal/dtos"
	"github.com/vespaiach/ledger-api/internal/middleware"
	"github.com/vespaiach/ledger-api/internal/services"
	"github.com/vespaiach/ledger-api/internal/utils"
)

type AuthController struct {
	signinService services.SigninService
}

func NewAuthController(signinService services.SigninService) *AuthController {
	return &AuthController{signinService: signinService}
}

// ---------------------------------------------------------------------
// Signin
// ---------------------------------------------------------------------

// Signin always answers 200 with a display-safe message: malformed and
// disallowed addresses are soft outcomes, not errors, so the endpoint
// leaks nothing about which addresses exist or are allowed.
func (c *AuthController) Signin(w http.ResponseWriter, r *http.Request) {
	var req dtos.SigninRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	outcome, err := c.signinService.Initiate(r.Context(), req.Email, utils.ClientIP(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.SigninResponse{Message: outcome})
}

// ---------------------------------------------------------------------
// Token
// ---------------------------------------------------------------------

func (c *AuthController) Token(w http.ResponseWriter, r *http.Request) {
	var req dtos.TokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := c.signinService.Redeem(r.Context(), req.Key)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.TokenResponse{Token: token})
}

// ---------------------------------------------------------------------
// Signout
// ---------------------------------------------------------------------

// Signout revokes the presented bearer token. The route is guarded, so
// the auth context always carries a verified token here.
func (c *AuthController) Signout(w http.ResponseWriter, r *http.Request) {
	ac := middleware.GetAuthContext(r)

	if err := c.signinService.Revoke(r.Context(), ac.Token); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.SignoutResponse{Message: "Signed out"})
}
