package dtos

// ----------------------
// Sign-in
// ----------------------

// Email is deliberately not validated with the `email` rule here: a
// malformed address is a soft outcome from the sign-in flow, not a 400.
type SigninRequest struct {
	Email string `json:"email" validate:"required"`
}
type SigninResponse struct {
	Message string `json:"message"`
}

// ----------------------
// Token redemption
// ----------------------

type TokenRequest struct {
	Key string `json:"key" validate:"required"`
}
type TokenResponse struct {
	Token string `json:"token"`
}

// ----------------------
// Signout
// ----------------------

type SignoutResponse struct {
	Message string `json:"message"`
}
