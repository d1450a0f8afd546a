package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/maydayroblox/bitflow-finance/core"
	"github.com/maydayroblox/bitflow-finance/handler/render"
)

// Handle handle rest api request
func Handle(
	vaultSrv core.IVaultService,
	transactionStore core.ITransactionStore,
	priceSrv core.IPriceService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/accounts/{address}", userDepositHandler(vaultSrv))
	router.Get("/accounts/{address}/max-borrow", maxBorrowHandler(vaultSrv))
	router.Get("/accounts/{address}/summary", positionSummaryHandler(vaultSrv, priceSrv))
	router.Get("/loans/{address}", userLoanHandler(vaultSrv))
	router.Get("/loans/{address}/repayment", repaymentAmountHandler(vaultSrv))
	router.Get("/health-factor/{address}", healthFactorHandler(vaultSrv, priceSrv))
	router.Get("/collateral", requiredCollateralHandler())
	router.Get("/stats", protocolStatsHandler(vaultSrv))
	router.Get("/transactions", transactionsHandler(transactionStore))
	router.Get("/analytics", analyticsHandler(transactionStore))

	router.Post("/deposit", depositHandler(vaultSrv))
	router.Post("/withdraw", withdrawHandler(vaultSrv))
	router.Post("/borrow", borrowHandler(vaultSrv))
	router.Post("/repay", repayHandler(vaultSrv))
	router.Post("/liquidate", liquidateHandler(vaultSrv))

	return router
}
