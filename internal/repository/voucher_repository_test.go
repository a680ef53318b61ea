package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/salon-next/internal/constants"
	"github.com/salon-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupVoucherRepositoryTest(t *testing.T) (*GormVoucherRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Voucher{}, &models.VoucherRedemption{}); err != nil {
		t.Fatalf("migrate voucher models failed: %v", err)
	}
	return NewVoucherRepository(db), db
}

func newRepoVoucher(code string, limit, used int, active bool, from, until time.Time) *models.Voucher {
	return &models.Voucher{
		Code:       code,
		Title:      "Test " + code,
		Discount:   models.NewMoneyFromFloat(10),
		Type:       constants.VoucherTypePercentage,
		ValidFrom:  from,
		ValidUntil: until,
		UsageLimit: limit,
		UsedCount:  used,
		Category:   constants.VoucherCategoryGeneral,
		Active:     active,
	}
}

func TestVoucherStatsEmptyTable(t *testing.T) {
	repo, _ := setupVoucherRepositoryTest(t)

	row, err := repo.Stats(time.Now())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if row != (VoucherStatsRow{}) {
		t.Fatalf("expected all-zero stats, got %+v", row)
	}
}

func TestVoucherStatsAggregation(t *testing.T) {
	repo, _ := setupVoucherRepositoryTest(t)
	now := time.Now()
	past := now.Add(-30 * 24 * time.Hour)
	future := now.Add(30 * 24 * time.Hour)

	fixtures := []*models.Voucher{
		newRepoVoucher("LIVE1", 10, 3, true, past, future),
		newRepoVoucher("LIVE2", 5, 5, true, past, future),
		newRepoVoucher("OFF1", 5, 1, false, past, future),
		newRepoVoucher("OLD1", 5, 2, true, past.Add(-24*time.Hour), past),
	}
	for _, v := range fixtures {
		if err := repo.Create(v); err != nil {
			t.Fatalf("create %s failed: %v", v.Code, err)
		}
	}

	row, err := repo.Stats(now)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	want := VoucherStatsRow{TotalVouchers: 4, ActiveVouchers: 2, TotalUsage: 11, ExpiredVouchers: 1}
	if row != want {
		t.Fatalf("stats want %+v got %+v", want, row)
	}
}

func TestVoucherCreateDuplicateCode(t *testing.T) {
	repo, _ := setupVoucherRepositoryTest(t)
	now := time.Now()

	if err := repo.Create(newRepoVoucher("DUP", 1, 0, true, now, now.Add(time.Hour))); err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	err := repo.Create(newRepoVoucher("DUP", 1, 0, true, now, now.Add(time.Hour)))
	if !IsDuplicateKeyError(err) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestVoucherIncrementUsedCountStopsAtLimit(t *testing.T) {
	repo, _ := setupVoucherRepositoryTest(t)
	now := time.Now()
	voucher := newRepoVoucher("LIMIT2", 2, 0, true, now, now.Add(time.Hour))
	if err := repo.Create(voucher); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		ok, err := repo.IncrementUsedCount(voucher.ID)
		if err != nil || !ok {
			t.Fatalf("increment %d want ok got ok=%v err=%v", i+1, ok, err)
		}
	}
	ok, err := repo.IncrementUsedCount(voucher.ID)
	if err != nil {
		t.Fatalf("increment over limit failed: %v", err)
	}
	if ok {
		t.Fatalf("increment over limit should be refused")
	}

	ok, err = repo.IncrementUsedCount("missing-id")
	if err != nil || ok {
		t.Fatalf("increment missing id want false got ok=%v err=%v", ok, err)
	}

	stored, err := repo.GetByID(voucher.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.UsedCount != 2 {
		t.Fatalf("used count want 2 got %d", stored.UsedCount)
	}
}

func TestVoucherUpdateKeepsUsedCount(t *testing.T) {
	repo, _ := setupVoucherRepositoryTest(t)
	now := time.Now()
	voucher := newRepoVoucher("KEEP", 5, 0, true, now, now.Add(time.Hour))
	voucher.MaxDiscount = models.MoneyPtr(models.NewMoneyFromFloat(30))
	if err := repo.Create(voucher); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ok, err := repo.IncrementUsedCount(voucher.ID); err != nil || !ok {
		t.Fatalf("increment failed: ok=%v err=%v", ok, err)
	}

	voucher.UsedCount = 0
	voucher.Title = "Renamed"
	voucher.Active = false
	voucher.MaxDiscount = nil
	if err := repo.Update(voucher); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := repo.GetByID(voucher.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.UsedCount != 1 {
		t.Fatalf("update must not touch used_count, got %d", stored.UsedCount)
	}
	if stored.Title != "Renamed" || stored.Active {
		t.Fatalf("update not applied: %+v", stored)
	}
	if stored.MaxDiscount != nil {
		t.Fatalf("max discount should be cleared, got %v", stored.MaxDiscount)
	}
}

func TestVoucherListFilters(t *testing.T) {
	repo, _ := setupVoucherRepositoryTest(t)
	now := time.Now()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	usable := newRepoVoucher("USABLE", 5, 0, true, past, future)
	usable.Category = constants.VoucherCategoryPremium
	fixtures := []*models.Voucher{
		usable,
		newRepoVoucher("FULL", 1, 1, true, past, future),
		newRepoVoucher("OFF", 5, 0, false, past, future),
		newRepoVoucher("GONE", 5, 0, true, past.Add(-time.Hour), past),
	}
	for _, v := range fixtures {
		if err := repo.Create(v); err != nil {
			t.Fatalf("create %s failed: %v", v.Code, err)
		}
	}

	all, err := repo.List(VoucherListFilter{})
	if err != nil || len(all) != 4 {
		t.Fatalf("list all want 4 got %d err=%v", len(all), err)
	}

	inactive := false
	off, err := repo.List(VoucherListFilter{Active: &inactive})
	if err != nil || len(off) != 1 || off[0].Code != "OFF" {
		t.Fatalf("inactive filter unexpected: %+v err=%v", off, err)
	}

	premium, err := repo.List(VoucherListFilter{Category: constants.VoucherCategoryPremium})
	if err != nil || len(premium) != 1 || premium[0].Code != "USABLE" {
		t.Fatalf("category filter unexpected: %+v err=%v", premium, err)
	}

	onlyUsable, err := repo.List(VoucherListFilter{Usable: true, Now: now})
	if err != nil || len(onlyUsable) != 1 || onlyUsable[0].Code != "USABLE" {
		t.Fatalf("usable filter unexpected: %+v err=%v", onlyUsable, err)
	}
}

func TestVoucherDeleteReportsRemoval(t *testing.T) {
	repo, _ := setupVoucherRepositoryTest(t)
	now := time.Now()
	voucher := newRepoVoucher("BYE", 1, 0, true, now, now.Add(time.Hour))
	if err := repo.Create(voucher); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	removed, err := repo.Delete(voucher.ID)
	if err != nil || !removed {
		t.Fatalf("delete want removed got %v err=%v", removed, err)
	}
	removed, err = repo.Delete(voucher.ID)
	if err != nil || removed {
		t.Fatalf("second delete want not removed got %v err=%v", removed, err)
	}
}

func TestVoucherConsumeUsageReturnsOwnCount(t *testing.T) {
	repo, _ := setupVoucherRepositoryTest(t)
	now := time.Now()
	voucher := newRepoVoucher("CONSUME", 2, 0, true, now, now.Add(time.Hour))
	if err := repo.Create(voucher); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for want := 1; want <= 2; want++ {
		consumed, err := repo.ConsumeUsage(voucher.ID)
		if err != nil || consumed == nil {
			t.Fatalf("consume %d failed: consumed=%v err=%v", want, consumed, err)
		}
		if consumed.UsedCount != want {
			t.Fatalf("consume snapshot want %d got %d", want, consumed.UsedCount)
		}
	}
	consumed, err := repo.ConsumeUsage(voucher.ID)
	if err != nil || consumed != nil {
		t.Fatalf("consume over limit want nil got %v err=%v", consumed, err)
	}
	if consumed, err := repo.ConsumeUsage("missing-id"); err != nil || consumed != nil {
		t.Fatalf("consume missing id want nil got %v err=%v", consumed, err)
	}
}
