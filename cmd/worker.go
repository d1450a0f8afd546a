package cmd

import (
	"sync"

	"github.com/maydayroblox/bitflow-finance/worker"
	"github.com/maydayroblox/bitflow-finance/worker/sentinel"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "bitflow job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		propertyStore := providePropertyStore(database)
		accountStore := provideAccountStore(database)
		loanStore := provideLoanStore(database)

		blockService := provideBlockService()
		priceService := providePriceService()

		workers := []worker.Worker{
			sentinel.New(cfg.Sentinel.Interval, loanStore, accountStore, blockService, priceService, propertyStore),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
