package invoicing

import (
	"testing"
	"time"
)

func TestComputeSchedule_SplitsDepositAndBalance(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	eventDate := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	schedule := ComputeSchedule(now, eventDate, 2500, 500)

	if len(schedule.Payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(schedule.Payments))
	}
	deposit, balance := schedule.Payments[0], schedule.Payments[1]

	if deposit.Kind != PaymentDeposit || deposit.AmountCents != 50000 {
		t.Fatalf("unexpected deposit leg %+v", deposit)
	}
	if balance.Kind != PaymentBalance || balance.AmountCents != 200000 {
		t.Fatalf("unexpected balance leg %+v", balance)
	}
	if !deposit.DueDate.Equal(now.Add(3 * 24 * time.Hour)) {
		t.Fatalf("expected deposit due now+3d, got %v", deposit.DueDate)
	}
	if !balance.DueDate.Equal(eventDate.Add(-3 * 24 * time.Hour)) {
		t.Fatalf("expected balance due event-3d, got %v", balance.DueDate)
	}
}

func TestComputeSchedule_NearTermEventForcesOrdering(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	// Event in 5 days: the naive balance due date (event-3d) lands before
	// the deposit due date (now+3d).
	eventDate := now.Add(5 * 24 * time.Hour)

	schedule := ComputeSchedule(now, eventDate, 1000, 300)

	if len(schedule.Payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(schedule.Payments))
	}
	deposit, balance := schedule.Payments[0], schedule.Payments[1]
	if !deposit.DueDate.Before(balance.DueDate) {
		t.Fatalf("deposit due %v must be strictly before balance due %v", deposit.DueDate, balance.DueDate)
	}
	if !balance.DueDate.Equal(deposit.DueDate.Add(24 * time.Hour)) {
		t.Fatalf("expected balance forced to deposit+1d, got %v", balance.DueDate)
	}
}

func TestComputeSchedule_TooSoonSkipsSplit(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	eventDate := now.Add(2 * 24 * time.Hour)

	schedule := ComputeSchedule(now, eventDate, 1000, 300)

	if len(schedule.Payments) != 1 {
		t.Fatalf("expected a single payment, got %d", len(schedule.Payments))
	}
	only := schedule.Payments[0]
	if only.Kind != PaymentBalance || only.AmountCents != 100000 {
		t.Fatalf("expected full-amount balance leg, got %+v", only)
	}
	if !only.DueDate.Equal(eventDate) {
		t.Fatalf("expected due on event date, got %v", only.DueDate)
	}
}

func TestComputeSchedule_DepositAlwaysDueBeforeBalance(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	for days := 1; days <= 10; days++ {
		eventDate := now.Add(time.Duration(days) * 24 * time.Hour)
		schedule := ComputeSchedule(now, eventDate, 2000, 400)
		if len(schedule.Payments) != 2 {
			continue
		}
		deposit, balance := schedule.Payments[0], schedule.Payments[1]
		if !deposit.DueDate.Before(balance.DueDate) {
			t.Fatalf("event in %d days: deposit due %v not strictly before balance due %v",
				days, deposit.DueDate, balance.DueDate)
		}
	}
}

func TestComputeSchedule_LegsSumToTotal(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	eventDate := now.Add(60 * 24 * time.Hour)

	// 33.335 rounds half up to 3334 cents; the balance absorbs the rest.
	schedule := ComputeSchedule(now, eventDate, 100.01, 33.335)

	var sum int64
	for _, p := range schedule.Payments {
		sum += p.AmountCents
	}
	if sum != 10001 {
		t.Fatalf("expected legs to sum to 10001 cents, got %d", sum)
	}
	if schedule.Payments[0].AmountCents != 3334 {
		t.Fatalf("expected deposit rounded to 3334 cents, got %d", schedule.Payments[0].AmountCents)
	}
}
