package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTradeOffer_Resolved(t *testing.T) {
	tests := []struct {
		status   TradeStatus
		resolved bool
	}{
		{TradePending, false},
		{TradeAccepted, true},
		{TradeRejected, true},
		{TradeCancelled, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			offer := &TradeOffer{Id: "t1", Status: tt.status}
			assert.Equal(t, tt.resolved, offer.Resolved())
		})
	}
}
