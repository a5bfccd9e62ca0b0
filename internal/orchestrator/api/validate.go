// Package api implements the orchestrator's HTTP boundary: signup,
// login, user lookup, and wallet/tx endpoints (spec.md section 6.4,
// supplemented per SPEC_FULL.md section C).
package api

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// SignupRequest mirrors original_source/app/src/utils/validators/user.rs's
// signup shape.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email" validate:"required,email"`
}

// LoginRequest is username/password only; the server never accepts a
// bare user id at login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateWalletRequest mirrors spec.md section 4.1.1's input.
type CreateWalletRequest struct {
	Name  string `json:"name" validate:"required,max=64"`
	Chain string `json:"chain" validate:"required,oneof=ethereum bitcoin"`
}

// SignTxRequest mirrors spec.md section 4.1.3's input.
type SignTxRequest struct {
	To    string `json:"to" validate:"required,len=42"`
	Value uint64 `json:"value"`
}
