package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/salon-next/internal/config"
	"github.com/salon-next/internal/models"
	"github.com/salon-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

func setupRouterTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v := viper.New()
	testConfigDefaults(v)
	cfg, err := config.Unmarshal(v)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}

	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Voucher{}, &models.VoucherRedemption{}, &models.SalonService{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return SetupRouter(cfg, provider.NewContainerWithDB(cfg, db, nil))
}

// testConfigDefaults 测试使用 debug 模式，日志输出到控制台
func testConfigDefaults(v *viper.Viper) {
	config.SetDefaults(v)
	v.Set("server.mode", "debug")
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	payload := map[string]interface{}{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
		}
	}
	return w, payload
}

func save10Body() map[string]interface{} {
	return map[string]interface{}{
		"code":        "save10",
		"title":       "Save 10%",
		"description": "Ten percent off any service",
		"discount":    10,
		"type":        "percentage",
		"validFrom":   "2020-01-01",
		"validUntil":  "2099-12-31",
		"usageLimit":  2,
		"category":    "general",
	}
}

func TestVoucherRoutesLifecycle(t *testing.T) {
	r := setupRouterTest(t)

	w, created := doJSON(t, r, http.MethodPost, "/api/v1/vouchers", save10Body())
	if w.Code != http.StatusCreated {
		t.Fatalf("create status want 201 got %d body=%s", w.Code, w.Body.String())
	}
	if created["code"] != "SAVE10" {
		t.Fatalf("code should be upper-cased, got %v", created["code"])
	}
	id, _ := created["_id"].(string)
	if id == "" {
		t.Fatalf("created voucher missing id")
	}

	w, payload := doJSON(t, r, http.MethodGet, "/api/v1/vouchers/"+id, nil)
	if w.Code != http.StatusOK || payload["message"] != "Voucher retrieved successfully" {
		t.Fatalf("get unexpected: %d %v", w.Code, payload)
	}

	w, payload = doJSON(t, r, http.MethodPut, "/api/v1/vouchers/"+id, map[string]interface{}{"type": "fixed", "discount": 5})
	if w.Code != http.StatusOK {
		t.Fatalf("update status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	voucher, _ := payload["voucher"].(map[string]interface{})
	if voucher["type"] != "fixed" || voucher["maxDiscount"] != nil {
		t.Fatalf("fixed voucher should drop maxDiscount: %v", voucher)
	}

	w, payload = doJSON(t, r, http.MethodGet, "/api/v1/vouchers", nil)
	list, _ := payload["vouchers"].([]interface{})
	if w.Code != http.StatusOK || len(list) != 1 {
		t.Fatalf("list unexpected: %d %v", w.Code, payload)
	}

	w, payload = doJSON(t, r, http.MethodDelete, "/api/v1/vouchers/"+id, nil)
	if w.Code != http.StatusOK || payload["message"] != "Voucher deleted successfully" {
		t.Fatalf("delete unexpected: %d %v", w.Code, payload)
	}
	w, payload = doJSON(t, r, http.MethodDelete, "/api/v1/vouchers/"+id, nil)
	if w.Code != http.StatusNotFound || payload["kind"] != "not_found" {
		t.Fatalf("second delete should be 404: %d %v", w.Code, payload)
	}
}

func TestVoucherRoutesErrors(t *testing.T) {
	r := setupRouterTest(t)

	body := save10Body()
	body["validUntil"] = "2019-12-31"
	w, payload := doJSON(t, r, http.MethodPost, "/api/v1/vouchers", body)
	if w.Code != http.StatusBadRequest || payload["field"] != "validUntil" || payload["kind"] != "validation_error" {
		t.Fatalf("inverted dates unexpected: %d %v", w.Code, payload)
	}

	if w, _ := doJSON(t, r, http.MethodPost, "/api/v1/vouchers", save10Body()); w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}
	w, payload = doJSON(t, r, http.MethodPost, "/api/v1/vouchers", save10Body())
	if w.Code != http.StatusConflict || payload["kind"] != "duplicate" {
		t.Fatalf("duplicate unexpected: %d %v", w.Code, payload)
	}

	w, payload = doJSON(t, r, http.MethodGet, "/api/v1/vouchers/not-a-uuid", nil)
	if w.Code != http.StatusNotFound || payload["success"] != false {
		t.Fatalf("malformed id unexpected: %d %v", w.Code, payload)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vouchers", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"kind":"bad_request"`) {
		t.Fatalf("malformed body want 400 bad_request got %d %s", rec.Code, rec.Body.String())
	}

	w, payload = doJSON(t, r, http.MethodGet, "/api/v1/coupons", nil)
	if w.Code != http.StatusNotFound || payload["kind"] != "not_found" {
		t.Fatalf("unknown route unexpected: %d %v", w.Code, payload)
	}
}

func TestVoucherStatsRouteBeforeID(t *testing.T) {
	r := setupRouterTest(t)

	w, payload := doJSON(t, r, http.MethodGet, "/api/v1/vouchers/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	for _, key := range []string{"totalVouchers", "activeVouchers", "totalUsage", "expiredVouchers"} {
		if value, ok := payload[key].(float64); !ok || value != 0 {
			t.Fatalf("stats %s want 0 got %v", key, payload[key])
		}
	}
}

func TestVoucherRedeemAndQuoteRoutes(t *testing.T) {
	r := setupRouterTest(t)

	body := save10Body()
	body["usageLimit"] = 1
	_, created := doJSON(t, r, http.MethodPost, "/api/v1/vouchers", body)
	id, _ := created["_id"].(string)

	w, payload := doJSON(t, r, http.MethodPost, "/api/v1/vouchers/quote", map[string]interface{}{"code": "save10", "subtotal": 80})
	if w.Code != http.StatusOK || payload["discount"] != float64(8) || payload["total"] != float64(72) {
		t.Fatalf("quote unexpected: %d %v", w.Code, payload)
	}

	w, payload = doJSON(t, r, http.MethodPost, "/api/v1/vouchers/"+id+"/redeem", nil)
	if w.Code != http.StatusOK || payload["redeemed"] != true {
		t.Fatalf("redeem unexpected: %d %v", w.Code, payload)
	}
	w, payload = doJSON(t, r, http.MethodPost, "/api/v1/vouchers/"+id+"/redeem", nil)
	if w.Code != http.StatusConflict || payload["kind"] != "voucher_exhausted" {
		t.Fatalf("exhausted redeem unexpected: %d %v", w.Code, payload)
	}

	w, payload = doJSON(t, r, http.MethodGet, "/api/v1/vouchers/"+id+"/redemptions", nil)
	if w.Code != http.StatusOK || payload["count"] != float64(1) {
		t.Fatalf("redemptions unexpected: %d %v", w.Code, payload)
	}
}

func TestServiceRoutes(t *testing.T) {
	r := setupRouterTest(t)

	body := map[string]interface{}{
		"name":        "Classic Haircut",
		"description": "Wash, cut and style",
		"price":       45,
		"duration":    45,
		"category":    "hair",
	}
	w, payload := doJSON(t, r, http.MethodPost, "/api/v1/services", body)
	if w.Code != http.StatusCreated || payload["success"] != true {
		t.Fatalf("create service unexpected: %d %v", w.Code, payload)
	}
	data, _ := payload["data"].(map[string]interface{})
	id, _ := data["_id"].(string)
	if id == "" || data["category"] != "Hair" {
		t.Fatalf("created service unexpected: %v", data)
	}

	w, payload = doJSON(t, r, http.MethodPatch, "/api/v1/services/"+id+"/status", map[string]interface{}{"active": false})
	data, _ = payload["data"].(map[string]interface{})
	if w.Code != http.StatusOK || data["active"] != false {
		t.Fatalf("status update unexpected: %d %v", w.Code, payload)
	}

	w, payload = doJSON(t, r, http.MethodGet, "/api/v1/services?active=true", nil)
	if w.Code != http.StatusOK || payload["count"] != float64(0) {
		t.Fatalf("active filter unexpected: %d %v", w.Code, payload)
	}

	w, payload = doJSON(t, r, http.MethodPost, "/api/v1/services", map[string]interface{}{"name": "Spa Day"})
	if w.Code != http.StatusBadRequest || payload["field"] != "description" {
		t.Fatalf("validation unexpected: %d %v", w.Code, payload)
	}

	if w, _ := doJSON(t, r, http.MethodDelete, "/api/v1/services/"+id, nil); w.Code != http.StatusOK {
		t.Fatalf("delete service want 200 got %d", w.Code)
	}
	if w, _ := doJSON(t, r, http.MethodGet, "/api/v1/services/"+id, nil); w.Code != http.StatusNotFound {
		t.Fatalf("deleted service want 404 got %d", w.Code)
	}
}
