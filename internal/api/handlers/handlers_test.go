package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"little-lemon/domain"
	"little-lemon/internal/middleware"
	"little-lemon/internal/utils"
	"little-lemon/pkg/access"
	"little-lemon/pkg/cart"
	"little-lemon/pkg/group"
	"little-lemon/pkg/menu"
	"little-lemon/pkg/order"
)

// asUser stands in for the auth middleware: the X-Roles header lists the
// caller's groups, separated by commas.
func asUser(c *fiber.Ctx) error {
	if id := c.Get("X-User"); id != "" {
		var roles []string
		if raw := c.Get("X-Roles"); raw != "" {
			roles = strings.Split(raw, ",")
		}
		c.Locals(middleware.LocalsUserID, id)
		c.Locals(middleware.LocalsPrincipal, access.NewPrincipal(id, roles))
	}
	return c.Next()
}

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Meta    json.RawMessage   `json:"meta"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

func do(t *testing.T, app *fiber.App, method, path, body, roles string) (int, envelope) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if roles != "anonymous" {
		req.Header.Set("X-User", uuid.NewString())
		req.Header.Set("X-Roles", roles)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

type stubOrderService struct {
	order.OrderService
	checkoutErr error
	lastFilter  domain.OrderFilter
}

func (s *stubOrderService) Checkout(_ context.Context, p access.Principal) (domain.OrderDetailResponse, error) {
	if s.checkoutErr != nil {
		return domain.OrderDetailResponse{}, s.checkoutErr
	}
	return domain.OrderDetailResponse{Order: domain.OrderResponse{UserID: p.UserID, Total: "18.00"}}, nil
}

func (s *stubOrderService) GetOrders(_ context.Context, _ access.Principal, filter domain.OrderFilter) ([]domain.OrderResponse, int64, error) {
	s.lastFilter = filter
	return []domain.OrderResponse{{Total: "18.00"}}, 1, nil
}

func (s *stubOrderService) DeleteOrder(_ context.Context, p access.Principal, _ string) error {
	if err := access.Authorize(p, access.OpDeleteOrder); err != nil {
		return err
	}
	return domain.ErrOrderNotFound
}

func newOrderApp(svc order.OrderService) *fiber.App {
	utils.InitValidator()
	h := NewOrderHandler(svc, utils.Validate)
	app := fiber.New()
	app.Use(asUser)
	app.Post("/orders", h.Checkout)
	app.Get("/orders", h.GetOrders)
	app.Patch("/orders/:id", h.UpdateOrder)
	app.Delete("/orders/:id", h.DeleteOrder)
	return app
}

func TestCheckoutHandler(t *testing.T) {
	svc := &stubOrderService{}
	app := newOrderApp(svc)

	status, env := do(t, app, http.MethodPost, "/orders", "", "")
	assert.Equal(t, fiber.StatusCreated, status)
	assert.True(t, env.Status)
	assert.Contains(t, string(env.Data), `"total":"18.00"`)

	svc.checkoutErr = domain.ErrEmptyCart
	status, env = do(t, app, http.MethodPost, "/orders", "", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, env.Status)
	assert.Equal(t, domain.ErrEmptyCart.Error(), env.Error)

	svc.checkoutErr = domain.ErrCheckoutConflict
	status, _ = do(t, app, http.MethodPost, "/orders", "", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGetOrdersHandlerPaging(t *testing.T) {
	svc := &stubOrderService{}
	app := newOrderApp(svc)

	status, env := do(t, app, http.MethodGet, "/orders?perpage=abc&status=delivered&to_price=20", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, utils.DefaultPerPage, svc.lastFilter.PerPage)
	assert.Equal(t, 1, svc.lastFilter.Page)
	assert.Equal(t, "delivered", svc.lastFilter.Status)
	assert.Equal(t, "20", svc.lastFilter.ToPrice)
	assert.JSONEq(t, `{"page":1,"perpage":4,"total":1}`, string(env.Meta))
}

func TestDeleteOrderHandlerStatuses(t *testing.T) {
	app := newOrderApp(&stubOrderService{})

	status, env := do(t, app, http.MethodDelete, "/orders/"+uuid.NewString(), "", "")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, domain.MesaageUserNotAllowed, env.Message)

	status, _ = do(t, app, http.MethodDelete, "/orders/"+uuid.NewString(), "", domain.RoleDeliveryCrew)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = do(t, app, http.MethodDelete, "/orders/"+uuid.NewString(), "", domain.RoleManager)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestUpdateOrderHandlerValidation(t *testing.T) {
	app := newOrderApp(&stubOrderService{})

	status, env := do(t, app, http.MethodPatch, "/orders/"+uuid.NewString(), `{"status":"cooking"}`, domain.RoleManager)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, env.Errors, "status")
}

type stubGroupService struct {
	group.GroupService
}

func (stubGroupService) RemoveFromRole(_ context.Context, p access.Principal, role, _ string) (domain.GroupMemberResponse, error) {
	op, _ := access.GroupOperation(role)
	if err := access.Authorize(p, op); err != nil {
		return domain.GroupMemberResponse{}, err
	}
	return domain.GroupMemberResponse{}, domain.ErrNotInRole
}

func (stubGroupService) AddToRole(_ context.Context, _ access.Principal, _, _ string) (domain.GroupMemberResponse, error) {
	return domain.GroupMemberResponse{Username: "mario"}, nil
}

func TestGroupHandler(t *testing.T) {
	utils.InitValidator()
	h := NewGroupHandler(stubGroupService{}, utils.Validate, domain.RoleDeliveryCrew)
	app := fiber.New()
	app.Use(asUser)
	app.Post("/groups/delivery-crew/users", h.AddMember)
	app.Delete("/groups/delivery-crew/users/:id", h.RemoveMember)

	status, env := do(t, app, http.MethodPost, "/groups/delivery-crew/users", `{"user_id":"`+uuid.NewString()+`"}`, domain.RoleManager)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "User 'mario' added to Delivery crew group", env.Message)

	status, _ = do(t, app, http.MethodPost, "/groups/delivery-crew/users", `{}`, "")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env = do(t, app, http.MethodPost, "/groups/delivery-crew/users", `{"user_id":"42"}`, domain.RoleManager)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, env.Errors, "user_id")

	status, _ = do(t, app, http.MethodDelete, "/groups/delivery-crew/users/"+uuid.NewString(), "", domain.RoleManager)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodDelete, "/groups/delivery-crew/users/"+uuid.NewString(), "", domain.RoleDeliveryCrew)
	assert.Equal(t, fiber.StatusForbidden, status)
}

type stubMenuService struct {
	menu.MenuService
	added int
}

func (s *stubMenuService) AddMenuItem(_ context.Context, _ access.Principal, req domain.MenuItemRequest) (domain.MenuItemResponse, error) {
	s.added++
	return domain.MenuItemResponse{Title: req.Title, Price: req.Price}, nil
}

func (s *stubMenuService) DeleteMenuItem(_ context.Context, p access.Principal, _ string) error {
	return access.Authorize(p, access.OpWriteMenu)
}

func TestDeleteMenuItemHandler(t *testing.T) {
	utils.InitValidator()
	h := NewMenuHandler(&stubMenuService{}, utils.Validate)
	app := fiber.New()
	app.Use(asUser)
	app.Delete("/menu-items/:id", h.DeleteMenuItem)

	req := httptest.NewRequest(http.MethodDelete, "/menu-items/"+uuid.NewString(), nil)
	req.Header.Set("X-User", uuid.NewString())
	req.Header.Set("X-Roles", domain.RoleManager)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	status, _ := do(t, app, http.MethodDelete, "/menu-items/"+uuid.NewString(), "", "")
	assert.Equal(t, fiber.StatusForbidden, status)
}

type stubCartService struct {
	cart.CartService
	cleared int
}

func (s *stubCartService) ClearAll(_ context.Context, p access.Principal) error {
	if err := access.Authorize(p, access.OpMutateCart); err != nil {
		return err
	}
	s.cleared++
	return nil
}

func TestClearCartHandler(t *testing.T) {
	utils.InitValidator()
	svc := &stubCartService{}
	h := NewCartHandler(svc, utils.Validate)
	app := fiber.New()
	app.Use(asUser)
	app.Delete("/cart/menu-items", h.ClearCart)

	req := httptest.NewRequest(http.MethodDelete, "/cart/menu-items", nil)
	req.Header.Set("X-User", uuid.NewString())
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)
	assert.Equal(t, 1, svc.cleared)

	status, _ := do(t, app, http.MethodDelete, "/cart/menu-items", "", "anonymous")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAddMenuItemHandler(t *testing.T) {
	utils.InitValidator()
	svc := &stubMenuService{}
	h := NewMenuHandler(svc, utils.Validate)
	app := fiber.New()
	app.Use(asUser)
	app.Post("/menu-items", h.AddMenuItem)

	// role is checked before the body is validated
	status, _ := do(t, app, http.MethodPost, "/menu-items", `{}`, "")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env := do(t, app, http.MethodPost, "/menu-items", `{"title":"Burger"}`, domain.RoleManager)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, env.Errors, "price")
	assert.Contains(t, env.Errors, "stock")
	assert.Contains(t, env.Errors, "category_id")

	body := `{"title":"Burger","price":"8.00","stock":10,"category_id":"` + uuid.NewString() + `"}`
	status, _ = do(t, app, http.MethodPost, "/menu-items", body, domain.RoleManager)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, 1, svc.added)
}

func TestThrottleHandlers(t *testing.T) {
	app := fiber.New()
	app.Use(asUser)
	app.Get("/throttle-check", ThrottleCheck)
	app.Get("/throttle-check-auth", ThrottleCheckAuth)

	status, env := do(t, app, http.MethodGet, "/throttle-check", "", "anonymous")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, domain.MessageThrottleCheck, env.Message)

	status, _ = do(t, app, http.MethodGet, "/throttle-check-auth", "", "anonymous")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, env = do(t, app, http.MethodGet, "/throttle-check-auth", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, domain.MessageThrottleCheckAuth, env.Message)
}
