package sentinel

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/maydayroblox/bitflow-finance/core"
	"github.com/maydayroblox/bitflow-finance/internal/bitflow"
	"github.com/maydayroblox/bitflow-finance/pkg/concurrency"
	"github.com/maydayroblox/bitflow-finance/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/robfig/cron/v3"
)

const checkpointKey = "sentinel_checkpoint"

// Worker scans every open loan and reports positions that have crossed
// the liquidation threshold at the current oracle price.
type Worker struct {
	worker.BaseJob

	spec          string
	loanStore     core.ILoanStore
	accountStore  core.IAccountStore
	blockService  core.IBlockService
	priceService  core.IPriceService
	propertyStore property.Store
}

// New new sentinel worker
func New(
	spec string,
	loanStore core.ILoanStore,
	accountStore core.IAccountStore,
	blockSrv core.IBlockService,
	priceSrv core.IPriceService,
	propertyStore property.Store,
) *Worker {
	if spec == "" {
		spec = "@every 1m"
	}

	job := Worker{
		spec:          spec,
		loanStore:     loanStore,
		accountStore:  accountStore,
		blockService:  blockSrv,
		priceService:  priceSrv,
		propertyStore: propertyStore,
	}
	job.Cron = cron.New()

	return &job
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	w.OnWork = func() error {
		return w.onWork(ctx)
	}

	if _, err := w.Cron.AddJob(w.spec, &w.BaseJob); err != nil {
		return err
	}

	w.Start()
	defer w.Stop()

	<-ctx.Done()
	return ctx.Err()
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "sentinel")

	block, err := w.blockService.CurrentBlock(ctx)
	if err != nil {
		log.WithError(err).Errorln("current block")
		return err
	}

	price, err := w.priceService.CurrentPrice(ctx)
	if err != nil {
		log.WithError(err).Errorln("fetch price")
		return err
	}

	loans, err := w.loanStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("list loans")
		return err
	}

	if len(loans) == 0 {
		return nil
	}

	var flagged int64
	limit := concurrency.DefaultGoLimit

	wg := sync.WaitGroup{}
	for _, l := range loans {
		wg.Add(1)
		limit.Add()

		go func(loan *core.Loan) {
			defer wg.Done()
			defer limit.Done()

			account, err := w.accountStore.Find(ctx, loan.Borrower)
			if err != nil {
				log.WithError(err).Errorln("find account:", loan.Borrower)
				return
			}

			hf, ok := bitflow.HealthFactor(account.Deposited, loan.Principal, price)
			if !ok {
				return
			}

			if bitflow.Liquidatable(hf) {
				atomic.AddInt64(&flagged, 1)
				log.WithField("borrower", loan.Borrower).
					WithField("health_factor", hf).
					Warnln("position below liquidation threshold")
			}
		}(l)
	}

	wg.Wait()

	if flagged > 0 {
		log.Infof("scanned %d loans at block %d, %d liquidatable", len(loans), block, flagged)
	}

	if err := w.propertyStore.Save(ctx, checkpointKey, fmt.Sprint(block)); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}
