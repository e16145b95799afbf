package domain

import "errors"

var (
	ErrClientNotFound       = errors.New("client not found")
	ErrWithdrawalNotFound   = errors.New("withdrawal not found")
	ErrInvalidAmount        = errors.New("amount must be non-zero")
	ErrBelowMinimum         = errors.New("amount below minimum withdrawal")
	ErrInsufficientBalance  = errors.New("insufficient withdrawable balance")
	ErrInvalidTransition    = errors.New("illegal withdrawal status transition")
	ErrMissingRejectionNote = errors.New("rejection note required")
	ErrReferralCycle        = errors.New("referral chain contains a cycle")
)
