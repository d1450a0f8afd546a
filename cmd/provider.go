package cmd

import (
	"time"

	"github.com/maydayroblox/bitflow-finance/core"
	blockservice "github.com/maydayroblox/bitflow-finance/service/block"
	"github.com/maydayroblox/bitflow-finance/service/oracle"
	vaultservice "github.com/maydayroblox/bitflow-finance/service/vault"
	"github.com/maydayroblox/bitflow-finance/store/account"
	"github.com/maydayroblox/bitflow-finance/store/loan"
	"github.com/maydayroblox/bitflow-finance/store/stat"
	"github.com/maydayroblox/bitflow-finance/store/transaction"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func provideAccountStore(db *db.DB) core.IAccountStore {
	return account.New(db)
}

func provideLoanStore(db *db.DB) core.ILoanStore {
	return loan.Cache(loan.New(db), 30*time.Second)
}

func provideStatStore(db *db.DB) core.IStatStore {
	return stat.New(db)
}

func provideTransactionStore(db *db.DB) core.ITransactionStore {
	return transaction.New(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

// ------------------service------------------------------------

func provideBlockService() core.IBlockService {
	return blockservice.New(provideConfig())
}

func providePriceService() core.IPriceService {
	return oracle.New(provideConfig())
}

func provideVaultService(db *db.DB) core.IVaultService {
	return vaultservice.New(
		db,
		provideAccountStore(db),
		provideLoanStore(db),
		provideStatStore(db),
		provideTransactionStore(db),
		provideBlockService(),
	)
}
