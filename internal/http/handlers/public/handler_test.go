package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/furniture-shop/internal/config"
	"github.com/furniture-shop/internal/constants"
	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func newPublicTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:public_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	require.NoError(t, err)
	require.NoError(t, models.MigrateWith(db))

	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{SecretKey: "public-handler-test-secret-key-0001", ExpireHours: 1, Issuer: "furniture-shop-test"}
	cfg.Security.PasswordMinLen = 6
	container, err := provider.Build(cfg, db, nil)
	require.NoError(t, err)
	t.Cleanup(container.Close)
	return New(container), db
}

// newPublicEngine 注册路由；userID 非零时模拟已登录用户
func newPublicEngine(h *Handler, userID uint) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID > 0 {
			c.Set(constants.ContextKeyUserID, userID)
			c.Set(constants.ContextKeyUserRole, constants.RoleCustomer)
		}
		c.Next()
	})
	r.POST("/auth/signup", h.Signup)
	r.POST("/auth/login", h.Login)
	r.POST("/orders", h.CreateOrder)
	r.GET("/customer/orders", h.ListMyOrders)
	r.GET("/products", h.ListProducts)
	r.POST("/subscribers", h.Subscribe)
	r.POST("/contact", h.Contact)
	r.GET("/captcha", h.GetCaptcha)
	return r
}

func performJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

const shippingJSON = `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","phone":"123","address1":"1 Main St","city":"London","postalCode":"N1","country":"UK"}`

func TestSignupCreatedWithAccessToken(t *testing.T) {
	h, _ := newPublicTestHandler(t)
	r := newPublicEngine(h, 0)

	w := performJSON(r, http.MethodPost, "/auth/signup", `{"email":"new@example.com","password":"secret123","name":"New"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var payload struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &payload))
	assert.NotEmpty(t, payload.AccessToken)

	w = performJSON(r, http.MethodPost, "/auth/signup", `{"email":"NEW@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already in use", decodeEnvelope(t, w).Msg)
}

func TestLoginInvalidCredentials(t *testing.T) {
	h, _ := newPublicTestHandler(t)
	r := newPublicEngine(h, 0)

	w := performJSON(r, http.MethodPost, "/auth/login", `{"email":"ghost@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeEnvelope(t, w).Msg)

	w = performJSON(r, http.MethodPost, "/auth/login", `{"email":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderAndUnknownProduct(t *testing.T) {
	h, db := newPublicTestHandler(t)
	user := &models.User{Email: "buyer@example.com", PasswordHash: "x", Role: constants.RoleCustomer}
	require.NoError(t, db.Create(user).Error)
	product := &models.Product{Title: "Chair", Price: models.MustMoney("50.00")}
	require.NoError(t, db.Create(product).Error)
	r := newPublicEngine(h, user.ID)

	body := fmt.Sprintf(`{"items":[{"productId":%d,"quantity":3}],"shippingInfo":%s}`, product.ID, shippingJSON)
	w := performJSON(r, http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order models.Order
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &order))
	assert.Equal(t, "150.00", order.Total.String())
	assert.Equal(t, constants.OrderStatusPending, order.Status)

	body = fmt.Sprintf(`{"items":[{"productId":9999,"quantity":1}],"shippingInfo":%s}`, shippingJSON)
	w = performJSON(r, http.MethodPost, "/orders", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product 9999 not found", decodeEnvelope(t, w).Msg)

	w = performJSON(r, http.MethodPost, "/orders", `{"items":[],"shippingInfo":`+shippingJSON+`}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderRequiresLogin(t *testing.T) {
	h, _ := newPublicTestHandler(t)
	w := performJSON(newPublicEngine(h, 0), http.MethodPost, "/orders", `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListMyOrdersReturnsAllWithoutPaging(t *testing.T) {
	h, db := newPublicTestHandler(t)
	user := &models.User{Email: "many@example.com", PasswordHash: "x", Role: constants.RoleCustomer}
	require.NoError(t, db.Create(user).Error)
	for i := 0; i < 25; i++ {
		require.NoError(t, db.Create(&models.Order{UserID: user.ID, Status: constants.OrderStatusPending, Total: models.MustMoney("1.00")}).Error)
	}
	r := newPublicEngine(h, user.ID)

	w := performJSON(r, http.MethodGet, "/customer/orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &orders))
	assert.Len(t, orders, 25)

	w = performJSON(r, http.MethodGet, "/customer/orders?page=2&page_size=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":25`)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &orders))
	assert.Len(t, orders, 10)
}

func TestListProductsHidesArchivedForGuests(t *testing.T) {
	h, db := newPublicTestHandler(t)
	require.NoError(t, db.Create(&models.Product{Title: "Visible", Price: models.MustMoney("10.00")}).Error)
	archived := &models.Product{Title: "Hidden", Price: models.MustMoney("10.00")}
	require.NoError(t, db.Create(archived).Error)
	require.NoError(t, db.Model(archived).Update("archived", true).Error)

	w := performJSON(newPublicEngine(h, 0), http.MethodGet, "/products?include_archived=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Visible", products[0].Title)
}

func TestSubscribeDuplicateConflict(t *testing.T) {
	h, _ := newPublicTestHandler(t)
	r := newPublicEngine(h, 0)

	w := performJSON(r, http.MethodPost, "/subscribers", `{"email":"news@example.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = performJSON(r, http.MethodPost, "/subscribers", `{"email":"news@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = performJSON(r, http.MethodPost, "/subscribers", `{"email":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email is required", decodeEnvelope(t, w).Msg)
}

func TestContactRequiresAllFields(t *testing.T) {
	h, _ := newPublicTestHandler(t)
	r := newPublicEngine(h, 0)

	w := performJSON(r, http.MethodPost, "/contact", `{"name":"Eve","email":"eve@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required", decodeEnvelope(t, w).Msg)

	w = performJSON(r, http.MethodPost, "/contact", `{"name":"Eve","email":"eve@example.com","message":"Hello"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestGetCaptchaDisabled(t *testing.T) {
	h, _ := newPublicTestHandler(t)
	w := performJSON(newPublicEngine(h, 0), http.MethodGet, "/captcha", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
