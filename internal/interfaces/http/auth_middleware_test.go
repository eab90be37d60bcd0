package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/pkg/jwt"
)

const (
	mwSecret  = "middleware-secret"
	mwUser    = "00000000-0000-0000-0000-0000000000c1"
	mwStore   = "00000000-0000-0000-0000-0000000000c2"
	mwIssuer  = "ristoranti-test"
	mwExpMins = 60
)

// localsApp monta AuthMiddleware + RequireRole(roles) y devuelve los locals tal como quedan.
func localsApp(roles []string) *fiber.App {
	app := fiber.New()
	app.Get("/x", AuthMiddleware(mwSecret), RequireRole(roles...), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  GetUserID(c),
			"store_id": GetStoreID(c),
			"role":     GetRole(c),
		})
	})
	return app
}

func bearer(t *testing.T, storeID, role string) string {
	t.Helper()
	tok, err := jwt.Generate(mwSecret, mwUser, storeID, role, mwIssuer, mwExpMins)
	require.NoError(t, err)
	return "Bearer " + tok
}

func call(t *testing.T, app *fiber.App, authorization string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body := map[string]string{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestRoleSets(t *testing.T) {
	cases := []struct {
		name  string
		set   []string
		role  string
		allow bool
	}{
		{"admin en adminOnly", adminOnly, entity.RoleAdmin, true},
		{"manager en adminOnly", adminOnly, entity.RoleManager, false},
		{"dipendente en adminOnly", adminOnly, entity.RoleDipendente, false},
		{"admin en adminOrManager", adminOrManager, entity.RoleAdmin, true},
		{"manager en adminOrManager", adminOrManager, entity.RoleManager, true},
		{"dipendente en adminOrManager", adminOrManager, entity.RoleDipendente, false},
		{"dipendente en anyRole", anyRole, entity.RoleDipendente, true},
		{"manager en anyRole", anyRole, entity.RoleManager, true},
		{"rol desconocido en anyRole", anyRole, "bodeguero", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := call(t, localsApp(tc.set), bearer(t, mwStore, tc.role))
			if tc.allow {
				assert.Equal(t, fiber.StatusOK, status)
				assert.Equal(t, tc.role, body["role"])
				return
			}
			assert.Equal(t, fiber.StatusForbidden, status)
			assert.Equal(t, "FORBIDDEN", body["code"])
		})
	}
}

func TestRequireRole_TokenWithoutRole(t *testing.T) {
	status, body := call(t, localsApp(anyRole), bearer(t, mwStore, ""))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", body["code"])
}

func TestAuthMiddleware_HeaderErrors(t *testing.T) {
	other, err := jwt.Generate("otro-secreto", mwUser, mwStore, entity.RoleAdmin, mwIssuer, mwExpMins)
	require.NoError(t, err)

	cases := []struct {
		name, header, code string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema Basic", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"sin esquema", "abc.def.ghi", "INVALID_TOKEN"},
		{"token vacío", "Bearer   ", "MISSING_TOKEN"},
		{"firma de otro secreto", "Bearer " + other, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := call(t, localsApp(anyRole), tc.header)
			assert.Equal(t, fiber.StatusUnauthorized, status)
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestAuthMiddleware_BearerIsCaseInsensitive(t *testing.T) {
	tok, err := jwt.Generate(mwSecret, mwUser, mwStore, entity.RoleManager, mwIssuer, mwExpMins)
	require.NoError(t, err)
	status, _ := call(t, localsApp(adminOrManager), "bearer "+tok)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestAuthMiddleware_Locals(t *testing.T) {
	status, body := call(t, localsApp(anyRole), bearer(t, mwStore, entity.RoleDipendente))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, mwUser, body["user_id"])
	assert.Equal(t, mwStore, body["store_id"])
	assert.Equal(t, entity.RoleDipendente, body["role"])
}

// Un admin de cadena no tiene locale: GetStoreID devuelve "".
func TestGetStoreID_AdminWithoutStore(t *testing.T) {
	status, body := call(t, localsApp(adminOnly), bearer(t, "", entity.RoleAdmin))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "", body["store_id"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestLocalGetters_WithoutAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		c.Locals(LocalStoreID, 42)
		return c.JSON(dto.ErrorResponse{Code: GetUserID(c) + "|" + GetStoreID(c) + "|" + GetRole(c)})
	})
	status, body := call(t, app, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "||", body["code"], "locals ausentes o de otro tipo se leen como vacíos")
}
