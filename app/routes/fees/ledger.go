package fees

import (
	"encoding/json"
	"math"

	"github.com/adeebkhans/StudentManagementExe/app/models"
)

// applyDeposit adds the caller-supplied delta to the cumulative deposited
// amount and restores the remaining invariant. A missing or non-numeric
// delta is a no-op add; the recomputation still runs so remaining is correct
// even if fee was edited out of band. Deltas are deliberately unbounded:
// negative deposits are how corrections are entered, and overshooting the
// total is allowed (remaining goes negative).
func applyDeposit(fee *models.Fee, newDeposit json.RawMessage) {
	if len(newDeposit) > 0 {
		var delta float64
		if err := json.Unmarshal(newDeposit, &delta); err == nil &&
			!math.IsNaN(delta) && !math.IsInf(delta, 0) {
			fee.Deposited += delta
		}
	}
	fee.Recalculate()
}

// newFee builds the initial ledger row; remaining is derived, never taken
// from the caller.
func newFee(studentID, code, session string, total, deposited float64) *models.Fee {
	fee := &models.Fee{
		StudentID: studentID,
		Code:      code,
		Session:   session,
		Fee:       total,
		Deposited: deposited,
	}
	fee.Recalculate()
	return fee
}
