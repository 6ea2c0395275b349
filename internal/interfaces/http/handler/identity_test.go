package handler

import (
	"net/http"
	"testing"

	appidentity "github.com/pos/backend/internal/application/identity"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchHandler(t *testing.T) {
	api := newTestAPI(t)

	w := testutil.DoJSON(t, api.engine, http.MethodPost, "/api/v1/branches",
		map[string]string{"name": "Norte", "address": "Av. 1"}, api.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	norte := testutil.DecodeData[appidentity.BranchResponse](t, w)

	t.Run("duplicate name", func(t *testing.T) {
		w := testutil.DoJSON(t, api.engine, http.MethodPost, "/api/v1/branches",
			map[string]string{"name": "Norte"}, api.adminToken)
		testutil.AssertErrorResponse(t, w, http.StatusConflict, "ERR_CONFLICT")
	})

	t.Run("sellers may read but not write", func(t *testing.T) {
		w := testutil.DoJSON(t, api.engine, http.MethodGet, "/api/v1/branches", nil, api.sellerToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, testutil.DecodeData[[]appidentity.BranchResponse](t, w), 2)

		w = testutil.DoJSON(t, api.engine, http.MethodPut, "/api/v1/branches/"+norte.ID.String(),
			map[string]string{"name": "Sur"}, api.sellerToken)
		testutil.AssertErrorResponse(t, w, http.StatusForbidden, "ERR_FORBIDDEN")
	})

	t.Run("rename", func(t *testing.T) {
		w := testutil.DoJSON(t, api.engine, http.MethodPut, "/api/v1/branches/"+norte.ID.String(),
			map[string]string{"name": "Sur", "address": "Av. 2"}, api.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Sur", testutil.DecodeData[appidentity.BranchResponse](t, w).Name)
	})

	t.Run("branch with users cannot be deleted", func(t *testing.T) {
		w := testutil.DoJSON(t, api.engine, http.MethodDelete, "/api/v1/branches/"+api.branch.ID.String(), nil, api.adminToken)
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, "ERR_VALIDATION")
	})

	t.Run("empty branch is deleted", func(t *testing.T) {
		w := testutil.DoJSON(t, api.engine, http.MethodDelete, "/api/v1/branches/"+norte.ID.String(), nil, api.adminToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = testutil.DoJSON(t, api.engine, http.MethodGet, "/api/v1/branches/"+norte.ID.String(), nil, api.adminToken)
		testutil.AssertErrorResponse(t, w, http.StatusNotFound, "ERR_NOT_FOUND")
	})
}

func TestUserHandler(t *testing.T) {
	api := newTestAPI(t)

	t.Run("non admins are refused", func(t *testing.T) {
		w := testutil.DoJSON(t, api.engine, http.MethodGet, "/api/v1/users", nil, api.sellerToken)
		testutil.AssertErrorResponse(t, w, http.StatusForbidden, "ERR_FORBIDDEN")
	})

	w := testutil.DoJSON(t, api.engine, http.MethodPost, "/api/v1/users", map[string]any{
		"name":      "Ana",
		"email":     "ana@pos.test",
		"password":  "s3cret!!",
		"role":      "SUPERVISOR",
		"branch_id": api.branch.ID,
	}, api.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ana := testutil.DecodeData[appidentity.UserResponse](t, w)
	assert.Equal(t, "SUPERVISOR", ana.Role)
	assert.NotContains(t, w.Body.String(), "s3cret")

	t.Run("duplicate email", func(t *testing.T) {
		w := testutil.DoJSON(t, api.engine, http.MethodPost, "/api/v1/users", map[string]any{
			"name": "Ana 2", "email": "ANA@pos.test", "password": "s3cret!!", "role": "SELLER",
		}, api.adminToken)
		testutil.AssertErrorResponse(t, w, http.StatusConflict, "ERR_CONFLICT")
	})

	t.Run("email is normalised before it is checked", func(t *testing.T) {
		w := testutil.DoJSON(t, api.engine, http.MethodPost, "/api/v1/users", map[string]any{
			"name": "Carla", "email": "  Carla@POS.test ", "password": "s3cret!!", "role": "SELLER",
		}, api.adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "carla@pos.test", testutil.DecodeData[appidentity.UserResponse](t, w).Email)

		w = testutil.DoJSON(t, api.engine, http.MethodPost, "/api/v1/users", map[string]any{
			"name": "Dan", "email": "not-an-email", "password": "s3cret!!", "role": "SELLER",
		}, api.adminToken)
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, "ERR_VALIDATION")
	})

	t.Run("invalid role", func(t *testing.T) {
		w := testutil.DoJSON(t, api.engine, http.MethodPost, "/api/v1/users", map[string]any{
			"name": "Bob", "email": "bob@pos.test", "password": "s3cret!!", "role": "OWNER",
		}, api.adminToken)
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, "ERR_VALIDATION")
	})

	t.Run("list by branch", func(t *testing.T) {
		w := testutil.DoJSON(t, api.engine, http.MethodGet, "/api/v1/users?branch_id="+api.branch.ID.String(), nil, api.adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, testutil.DecodeData[[]appidentity.UserResponse](t, w), 3)
	})

	t.Run("changing the role revokes outstanding tokens", func(t *testing.T) {
		before := testutil.DoJSON(t, api.engine, http.MethodGet, "/api/v1/auth/me", nil, api.sellerToken)
		require.Equal(t, http.StatusOK, before.Code)

		w := testutil.DoJSON(t, api.engine, http.MethodPut, "/api/v1/users/"+api.seller.ID.String(), map[string]any{
			"name":      api.seller.Name,
			"email":     api.seller.Email,
			"role":      string(identity.RoleSupervisor),
			"branch_id": api.branch.ID,
		}, api.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		after := testutil.DoJSON(t, api.engine, http.MethodGet, "/api/v1/auth/me", nil, api.sellerToken)
		testutil.AssertErrorResponse(t, after, http.StatusUnauthorized, "ERR_TOKEN_REVOKED")
	})

	t.Run("admins cannot delete themselves", func(t *testing.T) {
		w := testutil.DoJSON(t, api.engine, http.MethodDelete, "/api/v1/users/"+api.admin.ID.String(), nil, api.adminToken)
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, "ERR_VALIDATION")
	})

	t.Run("delete", func(t *testing.T) {
		w := testutil.DoJSON(t, api.engine, http.MethodDelete, "/api/v1/users/"+ana.ID.String(), nil, api.adminToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = testutil.DoJSON(t, api.engine, http.MethodGet, "/api/v1/users/"+ana.ID.String(), nil, api.adminToken)
		testutil.AssertErrorResponse(t, w, http.StatusNotFound, "ERR_NOT_FOUND")
	})
}
