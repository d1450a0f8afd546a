package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config bitflow config
type Config struct {
	App      App       `json:"app"`
	DB       db.Config `json:"db"`
	Oracle   Oracle    `json:"oracle"`
	Sentinel Sentinel  `json:"sentinel"`
}

// App app config
type App struct {
	// Genesis unix timestamp of block zero; block height is derived
	// from it at a fixed cadence.
	Genesis  int64  `json:"genesis"`
	Location string `json:"location"`
}

// Oracle price oracle config
type Oracle struct {
	EndPoint string `json:"end_point"`
}

// Sentinel liquidation sentinel config
type Sentinel struct {
	Interval string `json:"interval"`
}
