package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/tiwiti-backend/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLedger(t *testing.T) (*LedgerService, *memStore) {
	t.Helper()
	store := newMemStore()
	return NewLedgerService(store, nil, testLogger()), store
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func requireDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(dec(want)), "want %s, got %s", want, got)
}

func TestDeposit_RejectsNonPositiveAmount(t *testing.T) {
	svc, store := newLedger(t)
	ctx := context.Background()

	for _, amount := range []string{"0", "-5", "-0.01"} {
		_, err := svc.Deposit(ctx, "u1", dec(amount))
		require.ErrorIs(t, err, models.ErrInvalidAmount)
	}
	require.Empty(t, store.d.logs)
	require.Empty(t, store.d.deposits)
	require.Empty(t, store.d.balances)
}

func TestDeposit_CreatesBalanceMovementAndLog(t *testing.T) {
	svc, store := newLedger(t)
	ctx := context.Background()

	b, err := svc.Deposit(ctx, "u1", dec("100.00"))
	require.NoError(t, err)
	requireDec(t, "100.00", b.Amount)

	require.Len(t, store.d.deposits, 1)
	requireDec(t, "100.00", store.d.deposits[0].Amount)

	require.Len(t, store.d.logs, 1)
	l := store.d.logs[0]
	require.Equal(t, models.LogDeposit, l.Type)
	require.Equal(t, "u1", l.UserID)
	require.Equal(t, models.LogSuccessful, l.Status)
	require.NotNil(t, l.DepositID)
	require.Equal(t, store.d.deposits[0].ID, *l.DepositID)
	require.Nil(t, l.WithdrawalID)

	require.NotNil(t, store.d.totals)
	requireDec(t, "100.00", store.d.totals.TotalDeposits)
	requireDec(t, "100.00", store.d.totals.AdminTotalBalance)
}

func TestWithdraw_RequiresExistingBalance(t *testing.T) {
	svc, store := newLedger(t)

	_, err := svc.Withdraw(context.Background(), "ghost", dec("10"))
	require.ErrorIs(t, err, models.ErrNoBalanceRecord)
	require.Empty(t, store.d.withdrawals)
	require.Empty(t, store.d.logs)
	require.Empty(t, store.d.balances)
}

func TestWithdraw_InsufficientFundsLeavesStateUntouched(t *testing.T) {
	svc, store := newLedger(t)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, "u1", dec("100.00"))
	require.NoError(t, err)
	totalsBefore := *store.d.totals

	_, err = svc.Withdraw(ctx, "u1", dec("200.00"))
	require.ErrorIs(t, err, models.ErrInsufficientFunds)

	b, err := svc.GetBalance(ctx, "u1")
	require.NoError(t, err)
	requireDec(t, "100.00", b.Amount)

	require.Len(t, store.d.logs, 1) // only the deposit
	require.Empty(t, store.d.withdrawals)
	require.True(t, store.d.totals.AdminTotalBalance.Equal(totalsBefore.AdminTotalBalance))
	require.True(t, store.d.totals.TotalWithdrawals.Equal(totalsBefore.TotalWithdrawals))
}

func TestWithdraw_DebitsAndLogs(t *testing.T) {
	svc, store := newLedger(t)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, "u1", dec("100.00"))
	require.NoError(t, err)

	b, err := svc.Withdraw(ctx, "u1", dec("30.00"))
	require.NoError(t, err)
	requireDec(t, "70.00", b.Amount)

	require.Len(t, store.d.logs, 2)
	l := store.d.logs[1]
	require.Equal(t, models.LogWithdrawal, l.Type)
	requireDec(t, "30.00", l.Amount)
	require.Equal(t, models.LogSuccessful, l.Status)
	require.NotNil(t, l.WithdrawalID)
	require.Nil(t, l.DepositID)

	requireDec(t, "100.00", store.d.totals.TotalDeposits)
	requireDec(t, "30.00", store.d.totals.TotalWithdrawals)
	requireDec(t, "70.00", store.d.totals.DisplayedTotalBalance)
}

// Balance always equals Σdeposits − Σsuccessful withdrawals and never
// goes negative, whatever the interleaving of operations.
func TestBalance_MatchesMovementSums(t *testing.T) {
	svc, _ := newLedger(t)
	ctx := context.Background()

	steps := []struct {
		op     string
		amount string
		ok     bool
	}{
		{"deposit", "50.00", true},
		{"withdraw", "20.00", true},
		{"withdraw", "100.00", false}, // over balance
		{"deposit", "0.50", true},
		{"withdraw", "30.50", true},
		{"withdraw", "0.01", false}, // balance is exactly 0
	}

	expected := decimal.Zero
	for i, st := range steps {
		amount := dec(st.amount)
		var err error
		if st.op == "deposit" {
			_, err = svc.Deposit(ctx, "u1", amount)
		} else {
			_, err = svc.Withdraw(ctx, "u1", amount)
		}
		if st.ok {
			require.NoError(t, err, "step %d", i)
			if st.op == "deposit" {
				expected = expected.Add(amount)
			} else {
				expected = expected.Sub(amount)
			}
		} else {
			require.ErrorIs(t, err, models.ErrInsufficientFunds, "step %d", i)
		}

		b, err := svc.GetBalance(ctx, "u1")
		require.NoError(t, err)
		require.True(t, b.Amount.Equal(expected), "step %d: want %s, got %s", i, expected, b.Amount)
		require.False(t, b.Amount.IsNegative(), "step %d", i)
	}
}

func TestGetBalance_DoesNotAutoCreate(t *testing.T) {
	svc, store := newLedger(t)

	_, err := svc.GetBalance(context.Background(), "u1")
	require.ErrorIs(t, err, models.ErrNoBalanceRecord)
	require.Empty(t, store.d.balances)
}

// Two concurrent withdrawals of 60 against a balance of 100: exactly
// one succeeds, exactly one withdrawal log row exists, final balance
// is 40.
func TestWithdraw_ConcurrentOverdraftRace(t *testing.T) {
	svc, store := newLedger(t)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, "u1", dec("100.00"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Withdraw(ctx, "u1", dec("60.00"))
		}(i)
	}
	wg.Wait()

	var successes, rejections int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, models.ErrInsufficientFunds):
			rejections++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, 1, rejections)

	b, err := svc.GetBalance(ctx, "u1")
	require.NoError(t, err)
	requireDec(t, "40.00", b.Amount)

	require.Len(t, store.d.withdrawals, 1)
	require.Len(t, store.d.logs, 2) // deposit + one withdrawal
}

func TestListTransactions_OwnRowsPaginated(t *testing.T) {
	svc, _ := newLedger(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Deposit(ctx, "u1", dec("10"))
		require.NoError(t, err)
	}
	_, err := svc.Deposit(ctx, "u2", dec("10"))
	require.NoError(t, err)

	logs, total, err := svc.ListTransactions(ctx, "u1", 2, 0)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, logs, 2)
	for _, l := range logs {
		require.Equal(t, "u1", l.UserID)
	}

	logs, total, err = svc.ListTransactions(ctx, "u1", 2, 2)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, logs, 1)
}
