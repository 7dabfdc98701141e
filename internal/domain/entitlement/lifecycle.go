package entitlement

import "time"

// BeginOrder records a newly created payment order and moves the
// subscription to pending. A failed or pending order may be replaced.
func (e *Entitlement) BeginOrder(orderID string, amount int64, now time.Time) error {
	if orderID == "" {
		return ErrOrderIDRequired
	}
	if e.IsUnlimited() {
		return ErrAlreadySubscribed
	}

	e.paymentOrderID = orderID
	e.paymentID = ""
	e.amountPaid = amount
	e.status = StatusPending
	e.updatedAt = now.UTC()
	return nil
}

// ActivatePro upgrades the user after a verified payment. The order must be
// the one recorded by BeginOrder. Re-applying the same payment is a no-op and
// reports changed=false.
func (e *Entitlement) ActivatePro(orderID, paymentID string, now time.Time, period time.Duration) (bool, error) {
	if paymentID == "" {
		return false, ErrPaymentIDRequired
	}
	if orderID == "" || e.paymentOrderID != orderID {
		return false, ErrOrderMismatch
	}
	if e.IsUnlimited() && e.paymentID == paymentID {
		return false, nil
	}

	now = now.UTC()
	end := now.Add(period)
	e.plan = PlanPro
	e.status = StatusActive
	e.paymentID = paymentID
	e.subscriptionStart = &now
	e.subscriptionEnd = &end
	e.updatedAt = now
	return true, nil
}

// MarkPaymentFailed moves a pending order to failed. Failures for orders that
// are no longer pending, such as a late event after capture, are ignored.
func (e *Entitlement) MarkPaymentFailed(orderID string, now time.Time) (bool, error) {
	if orderID == "" || e.paymentOrderID != orderID {
		return false, ErrOrderMismatch
	}
	if e.status != StatusPending {
		return false, nil
	}

	e.status = StatusFailed
	e.updatedAt = now.UTC()
	return true, nil
}

// AcknowledgeFailure returns a failed Free subscription to active so the user can retry.
func (e *Entitlement) AcknowledgeFailure(now time.Time) bool {
	if e.status != StatusFailed {
		return false
	}
	e.status = StatusActive
	e.updatedAt = now.UTC()
	return true
}
