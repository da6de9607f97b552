package gateway

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"syntra-pos/internal/gateway/middleware"
	pos "syntra-pos/internal/services/pos/handler"
	"syntra-pos/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	backend, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	r, err := NewRouter(NewServices(store.New(backend), pos.PricingClient), Options{
		MaxUploadBytes:    1 << 20,
		LowStockThreshold: 5,
	})
	require.NoError(t, err)
	return r
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(r, req)
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return do(r, req)
}

func uploadCSV(t *testing.T, r *gin.Engine, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("csvfile", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload_csv", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return do(r, req)
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	return do(r, httptest.NewRequest(http.MethodGet, path, nil))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func addProduct(t *testing.T, r *gin.Engine, name, price, stock string) {
	t.Helper()
	w := postForm(r, "/add_product", url.Values{"name": {name}, "price": {price}, "stock": {stock}})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
}

func TestAddProductRedirectsAndLists(t *testing.T) {
	r := newTestRouter(t)
	addProduct(t, r, "Cà phê sữa", "25000", "10")

	w := get(r, "/api/v1/products")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	data := resp["data"].([]any)
	require.Len(t, data, 1)
	product := data[0].(map[string]any)
	assert.Equal(t, "Cà phê sữa", product["name"])
	assert.Equal(t, 25000.0, product["price"])
	assert.Equal(t, "00000001", product["barcode"])

	w = get(r, "/products")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cà phê sữa")
	assert.Contains(t, w.Body.String(), "25.000đ")
}

func TestAddProductRejectsBadInput(t *testing.T) {
	r := newTestRouter(t)

	for _, form := range []url.Values{
		{"name": {"x"}, "price": {"abc"}, "stock": {"1"}},
		{"name": {"x"}, "price": {"1"}, "stock": {"1.5"}},
		{"name": {" "}, "price": {"1"}, "stock": {"1"}},
		{"name": {"x"}, "price": {"-1"}, "stock": {"1"}},
	} {
		w := postForm(r, "/add_product", form)
		assert.Equal(t, http.StatusBadRequest, w.Code, form.Encode())
	}
}

func TestUploadCSV(t *testing.T) {
	r := newTestRouter(t)

	w := uploadCSV(t, r, "hang.txt", "name,price,stock\nA,1,1\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid CSV", w.Body.String())

	w = uploadCSV(t, r, "hang.csv", "name,price,stock\nNước ngọt,10000,24\nKẹo,abc,3\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "line 3")

	w = uploadCSV(t, r, "hang.csv", "name,price,stock\nNước ngọt,10000,24\nKẹo,2000,3\n")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))

	resp := decode(t, get(r, "/api/v1/products"))
	assert.EqualValues(t, 2, resp["meta"].(map[string]any)["count"])
}

func TestUploadCSVMissingFile(t *testing.T) {
	r := newTestRouter(t)
	w := postForm(r, "/upload_csv", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid CSV", w.Body.String())
}

func TestCreateOrderFlow(t *testing.T) {
	r := newTestRouter(t)
	addProduct(t, r, "Bánh bao", "12000", "3")

	w := postJSON(r, "/create_order", `{"cart":[{"id":1,"name":"Bánh bao","qty":2,"price":12000}],"customer_name":"Minh","customer_phone":"0987"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	assert.EqualValues(t, 1, resp["order_id"])
	assert.EqualValues(t, 24000, resp["total"])

	w = postJSON(r, "/create_order", `{"cart":[{"id":1,"qty":2,"price":12000}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Hết hàng: Bánh bao", decode(t, w)["error"])

	w = postJSON(r, "/create_order", `{"cart":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Giỏ hàng trống", decode(t, w)["error"])

	w = postJSON(r, "/create_order", `{"cart":[{"id":9,"qty":1,"price":1}]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = postJSON(r, "/create_order", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/order/1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "24.000đ")
	assert.Contains(t, w.Body.String(), "Minh")

	assert.Equal(t, http.StatusNotFound, get(r, "/order/99").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/order/abc").Code)

	resp = decode(t, get(r, "/api/v1/customers"))
	assert.Len(t, resp["data"], 1)

	resp = decode(t, get(r, "/api/v1/orders/1"))
	assert.Equal(t, "Minh", resp["data"].(map[string]any)["customer_name"])
	assert.Equal(t, http.StatusNotFound, get(r, "/api/v1/orders/2").Code)
}

func TestSubmitInventory(t *testing.T) {
	r := newTestRouter(t)
	addProduct(t, r, "Sữa tươi", "9000", "10")
	addProduct(t, r, "Sữa chua", "7000", "8")

	w := postJSON(r, "/submit_inventory", `{"1": "7", "2": 8}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	assert.EqualValues(t, 1, resp["adjusted"])

	resp = decode(t, get(r, "/api/v1/inventory/logs"))
	logs := resp["data"].([]any)
	require.Len(t, logs, 1)
	assert.EqualValues(t, -3, logs[0].(map[string]any)["diff"])

	w = postJSON(r, "/submit_inventory", `{"1": -1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/submit_inventory", `{"1": "many"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStockReportHighlightsLowStock(t *testing.T) {
	r := newTestRouter(t)
	addProduct(t, r, "Gạo", "18000", "50")
	addProduct(t, r, "Muối", "5000", "2")

	w := get(r, "/stock_report")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, strings.Count(w.Body.String(), `class="low"`))

	resp := decode(t, get(r, "/api/v1/inventory/stock?threshold=60"))
	for _, row := range resp["data"].([]any) {
		assert.Equal(t, true, row.(map[string]any)["low"])
	}

	assert.Equal(t, http.StatusOK, get(r, "/inventory_check").Code)
}

func TestExportSales(t *testing.T) {
	r := newTestRouter(t)
	addProduct(t, r, "Nem chua", "3000", "100")
	require.Equal(t, http.StatusOK, postJSON(r, "/create_order", `{"cart":[{"id":1,"qty":5,"price":3000}]}`).Code)

	w := get(r, "/export_sales")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Regexp(t, `attachment; filename="doanh_thu_\d{8}\.xlsx"`, w.Header().Get("Content-Disposition"))

	file, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	require.Contains(t, file.Sheet, "Doanh thu")
	assert.Len(t, file.Sheet["Doanh thu"].Rows, 2)
}

func TestBarcodeLookupAndHealth(t *testing.T) {
	r := newTestRouter(t)
	addProduct(t, r, "Trứng", "3500", "30")

	w := get(r, "/api/v1/products/barcode/00000001")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Trứng", decode(t, w)["data"].(map[string]any)["name"])

	w = get(r, "/api/v1/products/barcode/12345678")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])

	assert.Equal(t, http.StatusOK, get(r, "/api/v1/products/1").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/v1/products/x").Code)

	w = get(r, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "file", decode(t, w)["store"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestViewsAndStatic(t *testing.T) {
	r := newTestRouter(t)
	addProduct(t, r, "Bún", "30000", "0")

	w := get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bún")
	assert.Contains(t, w.Body.String(), "product-card out")

	assert.Equal(t, http.StatusOK, get(r, "/orders").Code)

	w = get(r, "/static/script.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "function checkout")
}

func TestRateLimitedRouter(t *testing.T) {
	backend, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	r, err := NewRouter(NewServices(store.New(backend), pos.PricingClient), Options{RateLimit: "1-M"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, get(r, "/health").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/health").Code)

	_, err = NewRouter(NewServices(store.New(backend), pos.PricingClient), Options{RateLimit: "often"})
	assert.Error(t, err)
}
