package bitflow

import (
	"context"
	"testing"
	"time"
)

func TestCurrentBlock(t *testing.T) {
	currentBlock, e := CurrentBlock(context.Background(), 600, 1603366002)
	if e != nil {
		t.Error(e)
	}

	t.Log("currentBlock:", currentBlock)
}

func TestGetBlockByTime(t *testing.T) {
	genesis := int64(1603366002)

	block, e := GetBlockByTime(context.Background(), 600, genesis, time.Unix(genesis+600*144, 0))
	if e != nil {
		t.Error(e)
	}

	if block != 144 {
		t.Error("expected one day of blocks, got", block)
	}

	if _, e := GetBlockByTime(context.Background(), 600, genesis, time.Unix(genesis, 0)); e == nil {
		t.Error("expected error before genesis")
	}

	if _, e := GetBlockByTime(context.Background(), 0, genesis, time.Now()); e == nil {
		t.Error("expected error with zero cadence")
	}
}
