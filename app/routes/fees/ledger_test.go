package fees

import (
	"encoding/json"
	"testing"

	"github.com/adeebkhans/StudentManagementExe/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeeDerivesRemaining(t *testing.T) {
	fee := newFee("s1", "BED2024001", "2024-2026", 180000, 50000)

	assert.Equal(t, "s1", fee.StudentID)
	assert.Equal(t, 180000.0, fee.Fee)
	assert.Equal(t, 50000.0, fee.Deposited)
	assert.Equal(t, 130000.0, fee.Remaining)
}

func TestApplyDeposit(t *testing.T) {
	tests := []struct {
		name          string
		deposited     float64
		newDeposit    string
		wantDeposited float64
		wantRemaining float64
	}{
		{"adds incrementally", 50000, "20000", 70000, 110000},
		{"zero delta", 50000, "0", 50000, 130000},
		{"negative delta corrects", 50000, "-10000", 40000, 140000},
		{"overshoot goes negative", 50000, "200000", 250000, -70000},
		{"fractional delta", 50000, "999.5", 50999.5, 129000.5},
		{"non-numeric ignored", 50000, `"abc"`, 50000, 130000},
		{"null ignored", 50000, "null", 50000, 130000},
		{"object ignored", 50000, `{"amount":5}`, 50000, 130000},
		{"absent ignored", 50000, "", 50000, 130000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee := newFee("s1", "BED2024001", "2024-2026", 180000, tt.deposited)

			applyDeposit(fee, json.RawMessage(tt.newDeposit))

			assert.Equal(t, tt.wantDeposited, fee.Deposited)
			assert.Equal(t, tt.wantRemaining, fee.Remaining)
		})
	}
}

// Deposits accumulate across calls and remaining always equals fee minus
// deposited, even when a bad delta is mixed in.
func TestApplyDepositSequence(t *testing.T) {
	fee := newFee("s1", "BED2024001", "2024-2026", 180000, 0)

	for _, raw := range []string{"50000", "20000", `"oops"`, "30000"} {
		applyDeposit(fee, json.RawMessage(raw))
		require.Equal(t, fee.Fee-fee.Deposited, fee.Remaining)
	}

	assert.Equal(t, 100000.0, fee.Deposited)
	assert.Equal(t, 80000.0, fee.Remaining)
}

// A bad delta still restores the invariant on a row whose remaining was
// edited out of band.
func TestApplyDepositRepairsStaleRemaining(t *testing.T) {
	fee := &models.Fee{StudentID: "s1", Fee: 180000, Deposited: 50000, Remaining: 999}

	applyDeposit(fee, nil)

	assert.Equal(t, 130000.0, fee.Remaining)
}
