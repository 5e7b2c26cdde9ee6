package payment

import (
	"context"
	"testing"

	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

func TestStripeBridge_CreateIntent_RejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()

	bridge := NewStripeBridge("sk_test_unused")

	for _, amount := range []float64{0, -3.50} {
		if _, err := bridge.CreateIntent(context.Background(), amount); err != domain.ErrInvalidAmount {
			t.Fatalf("amount %v: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}
