package rest

import (
	"net/http"

	"github.com/maydayroblox/bitflow-finance/core"
	"github.com/maydayroblox/bitflow-finance/handler/param"
	"github.com/maydayroblox/bitflow-finance/handler/render"
	"github.com/maydayroblox/bitflow-finance/pkg/number"
)

func protocolStatsHandler(vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stat, err := vaultSrv.GetProtocolStats(r.Context())
		if err != nil {
			render.VaultError(w, err)
			return
		}

		render.JSON(w, render.H{
			"total_deposited":         stat.TotalDeposited,
			"total_deposited_display": number.FromSubunits(stat.TotalDeposited),
			"total_repaid":            stat.TotalRepaid,
			"total_repaid_display":    number.FromSubunits(stat.TotalRepaid),
			"total_liquidations":      stat.TotalLiquidations,
		})
	}
}

func transactionsHandler(transactionStore core.ITransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Address string `schema:"address"`
			Cursor  uint64 `schema:"cursor"`
			Limit   int    `schema:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Limit <= 0 || params.Limit > 500 {
			params.Limit = 100
		}

		var (
			transactions []*core.Transaction
			err          error
		)
		if params.Address != "" {
			transactions, err = transactionStore.ListByAddress(r.Context(), params.Address, params.Cursor, params.Limit)
		} else {
			transactions, err = transactionStore.List(r.Context(), params.Cursor, params.Limit)
		}
		if err != nil {
			render.VaultError(w, err)
			return
		}

		var cursor uint64
		if len(transactions) > 0 {
			cursor = transactions[len(transactions)-1].ID
		}

		render.JSON(w, render.H{
			"transactions": transactionViews(transactions),
			"cursor":       cursor,
		})
	}
}

func analyticsHandler(transactionStore core.ITransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aggregates, err := transactionStore.Aggregate(r.Context())
		if err != nil {
			render.VaultError(w, err)
			return
		}

		items := make([]render.H, 0, len(aggregates))
		for _, a := range aggregates {
			items = append(items, render.H{
				"action":         a.Action.String(),
				"count":          a.Count,
				"volume":         a.Volume,
				"volume_display": number.FromSubunits(a.Volume),
			})
		}

		render.JSON(w, render.H{"actions": items})
	}
}

func transactionViews(transactions []*core.Transaction) []render.H {
	items := make([]render.H, 0, len(transactions))
	for _, t := range transactions {
		items = append(items, render.H{
			"id":             t.ID,
			"trace_id":       t.TraceID,
			"address":        t.Address,
			"action":         t.Action.String(),
			"amount":         t.Amount,
			"amount_display": number.FromSubunits(t.Amount),
			"block":          t.Block,
			"created_at":     t.CreatedAt,
		})
	}

	return items
}
