package rest

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/maydayroblox/bitflow-finance/core"
	"github.com/maydayroblox/bitflow-finance/handler/param"
	"github.com/maydayroblox/bitflow-finance/handler/render"
	"github.com/maydayroblox/bitflow-finance/handler/views"
	"github.com/maydayroblox/bitflow-finance/internal/bitflow"
)

func userLoanHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := chi.URLParam(r, "address")

		loan, err := vaultSrv.GetUserLoan(r.Context(), address)
		if err != nil {
			render.VaultError(w, err)
			return
		}

		if loan == nil {
			render.JSON(w, render.H{"has_loan": false})
			return
		}

		render.JSON(w, views.NewLoan(loan))
	}
}

func repaymentAmountHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := chi.URLParam(r, "address")

		quote, err := vaultSrv.GetRepaymentAmount(r.Context(), address)
		if err != nil {
			render.VaultError(w, err)
			return
		}

		if quote == nil {
			render.JSON(w, render.H{"has_loan": false})
			return
		}

		render.JSON(w, views.NewRepayment(quote))
	}
}

func healthFactorHandler(vaultSrv core.IVaultService, priceSrv core.IPriceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := chi.URLParam(r, "address")

		price, err := bindPrice(r, priceSrv)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		hf, ok, err := vaultSrv.CalculateHealthFactor(r.Context(), address, price)
		if err != nil {
			render.VaultError(w, err)
			return
		}

		if !ok {
			render.JSON(w, render.H{"has_position": false})
			return
		}

		render.JSON(w, views.NewHealthFactor(address, hf))
	}
}

func requiredCollateralHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Amount int64 `schema:"amount"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Amount <= 0 {
			render.VaultError(w, core.ErrInvalidAmount)
			return
		}

		render.JSON(w, render.H{
			"amount":              params.Amount,
			"required_collateral": bitflow.RequiredCollateral(params.Amount),
		})
	}
}

func borrowHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Address      string `json:"address" valid:"required"`
			Amount       int64  `json:"amount"`
			InterestRate int64  `json:"interest_rate"`
			TermDays     int64  `json:"term_days"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := vaultSrv.Borrow(r.Context(), params.Address, params.Amount, params.InterestRate, params.TermDays); err != nil {
			render.VaultError(w, err)
			return
		}

		render.JSON(w, render.H{"ok": true})
	}
}

func repayHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Address string `json:"address" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		repayment, err := vaultSrv.Repay(r.Context(), params.Address)
		if err != nil {
			render.VaultError(w, err)
			return
		}

		render.JSON(w, views.NewRepayment(repayment))
	}
}

func liquidateHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower   string `json:"borrower" valid:"required"`
			Liquidator string `json:"liquidator" valid:"required"`
			Price      int64  `json:"price"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		result, err := vaultSrv.Liquidate(r.Context(), params.Borrower, params.Price, params.Liquidator)
		if err != nil {
			render.VaultError(w, err)
			return
		}

		render.JSON(w, views.NewLiquidation(params.Borrower, result))
	}
}
