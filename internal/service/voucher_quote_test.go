package service

import (
	"errors"
	"testing"

	"github.com/salon-next/internal/constants"
	"github.com/salon-next/internal/models"
)

func TestComputeDiscount(t *testing.T) {
	cases := []struct {
		name     string
		voucher  models.Voucher
		subtotal float64
		want     string
	}{
		{
			name:     "percentage",
			voucher:  models.Voucher{Type: constants.VoucherTypePercentage, Discount: models.NewMoneyFromFloat(10)},
			subtotal: 85,
			want:     "8.50",
		},
		{
			name: "percentage capped",
			voucher: models.Voucher{
				Type:        constants.VoucherTypePercentage,
				Discount:    models.NewMoneyFromFloat(50),
				MaxDiscount: models.MoneyPtr(models.NewMoneyFromFloat(20)),
			},
			subtotal: 100,
			want:     "20.00",
		},
		{
			name: "zero cap",
			voucher: models.Voucher{
				Type:        constants.VoucherTypePercentage,
				Discount:    models.NewMoneyFromFloat(50),
				MaxDiscount: models.MoneyPtr(models.NewMoneyFromFloat(0)),
			},
			subtotal: 100,
			want:     "0.00",
		},
		{
			name:     "fixed",
			voucher:  models.Voucher{Type: constants.VoucherTypeFixed, Discount: models.NewMoneyFromFloat(15)},
			subtotal: 60,
			want:     "15.00",
		},
		{
			name:     "fixed above subtotal",
			voucher:  models.Voucher{Type: constants.VoucherTypeFixed, Discount: models.NewMoneyFromFloat(50)},
			subtotal: 30,
			want:     "30.00",
		},
		{
			name:     "zero subtotal",
			voucher:  models.Voucher{Type: constants.VoucherTypeFixed, Discount: models.NewMoneyFromFloat(50)},
			subtotal: 0,
			want:     "0.00",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeDiscount(&tc.voucher, models.NewMoneyFromFloat(tc.subtotal))
			if got.String() != tc.want {
				t.Fatalf("discount want %s got %s", tc.want, got.String())
			}
		})
	}
}

func TestQuoteVoucher(t *testing.T) {
	svc, _ := setupVoucherServiceTest(t)

	input := save10Input()
	input.MinSpend = moneyPtr(50)
	created, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	quote, err := svc.Quote(QuoteInput{Code: " save10 ", Subtotal: models.NewMoneyFromFloat(120)})
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if quote.Discount.String() != "12.00" || quote.Total.String() != "108.00" {
		t.Fatalf("unexpected quote: discount=%s total=%s", quote.Discount, quote.Total)
	}
	if quote.Voucher.ID != created.ID {
		t.Fatalf("quote should reference the voucher")
	}

	if _, err := svc.Quote(QuoteInput{Code: "SAVE10", Subtotal: models.NewMoneyFromFloat(20)}); !errors.Is(err, ErrVoucherMinSpend) {
		t.Fatalf("expected min spend refusal, got %v", err)
	}
	if _, err := svc.Quote(QuoteInput{Code: "NOPE", Subtotal: models.NewMoneyFromFloat(20)}); !errors.Is(err, ErrVoucherNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Quote(QuoteInput{Code: "", Subtotal: models.NewMoneyFromFloat(20)}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	loaded, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.UsedCount != 0 {
		t.Fatalf("quote must not consume usage")
	}
}

func TestQuoteExhaustedVoucher(t *testing.T) {
	svc, _ := setupVoucherServiceTest(t)

	input := save10Input()
	input.UsageLimit = intPtr(1)
	created, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ok, err := svc.IncrementUsage(created.ID); err != nil || !ok {
		t.Fatalf("increment failed: ok=%v err=%v", ok, err)
	}
	if _, err := svc.Quote(QuoteInput{Code: "SAVE10", Subtotal: models.NewMoneyFromFloat(100)}); !errors.Is(err, ErrVoucherExhausted) {
		t.Fatalf("expected exhausted, got %v", err)
	}
}
