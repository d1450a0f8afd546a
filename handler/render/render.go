package render

import (
	"encoding/json"
	"net/http"

	"github.com/maydayroblox/bitflow-finance/core"
	"github.com/sirupsen/logrus"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorln("render json:", err)
	}
}

// Error write error
func Error(w http.ResponseWriter, statusCode, errCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(H{"code": errCode, "msg": err.Error()}); err != nil {
		logrus.Errorln("render error:", err)
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusBadRequest, -1, err)
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusNotFound, -1, err)
}

// VaultError maps ledger error codes onto a bad request response; any
// other error is treated as internal.
func VaultError(w http.ResponseWriter, err error) {
	if code, ok := err.(core.ErrorCode); ok {
		Error(w, http.StatusBadRequest, int(code), errMessage(code))
		return
	}

	Error(w, http.StatusInternalServerError, int(core.ErrUnknown), err)
}

type message string

func (m message) Error() string {
	return string(m)
}

func errMessage(code core.ErrorCode) error {
	switch code {
	case core.ErrInvalidAmount:
		return message("invalid amount")
	case core.ErrInsufficientBalance:
		return message("insufficient balance")
	case core.ErrCollateralLocked:
		return message("collateral locked by active loan")
	case core.ErrLoanAlreadyActive:
		return message("loan already active")
	case core.ErrInsufficientCollateral:
		return message("insufficient collateral")
	case core.ErrNoActiveLoan:
		return message("no active loan")
	case core.ErrNotLiquidatable:
		return message("position not liquidatable")
	case core.ErrInvalidPrice:
		return message("invalid price")
	default:
		return message("operation failed")
	}
}
