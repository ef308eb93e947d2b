package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"aerozone_backend/internal/metrics"
	"aerozone_backend/internal/services"
	"aerozone_backend/pkg/utils"
)

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", fmt.Errorf("%w: amount must be a positive integer", services.ErrValidation), http.StatusBadRequest, utils.ErrCodeValidationFailed},
		{"role not allowed", services.ErrRoleNotAllowed, http.StatusBadRequest, utils.ErrCodeValidationFailed},
		{"insufficient funds", fmt.Errorf("%w: cash 150.00 < total 200.00", services.ErrInsufficientFunds), http.StatusPaymentRequired, utils.ErrCodeInsufficientFunds},
		{"insufficient stock", &services.InsufficientStockError{ItemID: 1, ItemName: "M4", Requested: 5, Available: 2}, http.StatusConflict, utils.ErrCodeInsufficientStock},
		{"item not found", fmt.Errorf("%w: item ID 9", services.ErrStockItemNotFound), http.StatusNotFound, utils.ErrCodeNotFound},
		{"sale not found", services.ErrSaleNotFound, http.StatusNotFound, utils.ErrCodeNotFound},
		{"store not found", services.ErrStoreNotFound, http.StatusNotFound, utils.ErrCodeNotFound},
		{"user not found", services.ErrUserNotFound, http.StatusNotFound, utils.ErrCodeNotFound},
		{"store exists", services.ErrStoreExists, http.StatusConflict, utils.ErrCodeConflict},
		{"store not pending", services.ErrStoreNotPending, http.StatusConflict, utils.ErrCodeConflict},
		{"username exists", services.ErrUsernameExists, http.StatusConflict, utils.ErrCodeConflict},
		{"forbidden", services.ErrForbidden, http.StatusForbidden, utils.ErrCodeForbidden},
		{"store not approved", services.ErrStoreNotApproved, http.StatusForbidden, utils.ErrCodeForbidden},
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, utils.ErrCodeUnauthorized},
		{"persistence", fmt.Errorf("%w: inserting sale: disk I/O error", services.ErrPersistence), http.StatusServiceUnavailable, utils.ErrCodeServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, utils.ErrCodeInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := mapServiceError(tt.err)
			if apiErr.StatusCode != tt.wantStatus || apiErr.Code != tt.wantCode {
				t.Errorf("mapServiceError(%v) = %d %s, want %d %s", tt.err, apiErr.StatusCode, apiErr.Code, tt.wantStatus, tt.wantCode)
			}
		})
	}
}

func TestMapServiceError_HidesInternalDetails(t *testing.T) {
	for _, err := range []error{
		fmt.Errorf("%w: pq: connection refused", services.ErrPersistence),
		errors.New("runtime failure"),
		services.ErrInvalidCredentials,
	} {
		if apiErr := mapServiceError(err); apiErr.Details != "" {
			t.Errorf("mapServiceError(%v) leaks details %q", err, apiErr.Details)
		}
	}
}

func TestSaleOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&services.InsufficientStockError{ItemID: 1, Concurrent: true}, metrics.OutcomeInsufficientStock},
		{services.ErrInsufficientFunds, metrics.OutcomeInsufficientFunds},
		{fmt.Errorf("%w: cart must contain at least one item", services.ErrValidation), metrics.OutcomeValidation},
		{services.ErrStockItemNotFound, metrics.OutcomeNotFound},
		{services.ErrForbidden, metrics.OutcomeForbidden},
		{services.ErrPersistence, metrics.OutcomePersistence},
	}
	for _, tt := range tests {
		if got := saleOutcome(tt.err); got != tt.want {
			t.Errorf("saleOutcome(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
