package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/maydayroblox/bitflow-finance/core"
	"github.com/maydayroblox/bitflow-finance/handler/param"
	"github.com/maydayroblox/bitflow-finance/handler/render"
	"github.com/maydayroblox/bitflow-finance/handler/views"
)

func userDepositHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := chi.URLParam(r, "address")

		amount, err := vaultSrv.GetUserDeposit(r.Context(), address)
		if err != nil {
			render.VaultError(w, err)
			return
		}

		render.JSON(w, views.NewDeposit(address, amount))
	}
}

func maxBorrowHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := chi.URLParam(r, "address")

		amount, err := vaultSrv.GetMaxBorrowAmount(r.Context(), address)
		if err != nil {
			render.VaultError(w, err)
			return
		}

		render.JSON(w, views.NewDeposit(address, amount))
	}
}

func positionSummaryHandler(vaultSrv core.IVaultService, priceSrv core.IPriceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := chi.URLParam(r, "address")

		price, err := bindPrice(r, priceSrv)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		summary, err := vaultSrv.GetPositionSummary(r.Context(), address, price)
		if err != nil {
			render.VaultError(w, err)
			return
		}

		render.JSON(w, summary)
	}
}

func depositHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Address string `json:"address" valid:"required"`
			Amount  int64  `json:"amount"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := vaultSrv.Deposit(r.Context(), params.Address, params.Amount); err != nil {
			render.VaultError(w, err)
			return
		}

		render.JSON(w, render.H{"ok": true})
	}
}

func withdrawHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Address string `json:"address" valid:"required"`
			Amount  int64  `json:"amount"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := vaultSrv.Withdraw(r.Context(), params.Address, params.Amount); err != nil {
			render.VaultError(w, err)
			return
		}

		render.JSON(w, render.H{"ok": true})
	}
}

// bindPrice reads the price query parameter in subunits, falling back
// to the oracle when the caller did not supply one.
func bindPrice(r *http.Request, priceSrv core.IPriceService) (int64, error) {
	var params struct {
		Price int64 `schema:"price"`
	}

	if err := param.Binding(r, &params); err != nil {
		return 0, err
	}

	if params.Price > 0 {
		return params.Price, nil
	}

	if priceSrv == nil {
		return 0, errors.New("price required")
	}

	return priceSrv.CurrentPrice(r.Context())
}
