package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reboot-api/identity"
	"reboot-api/models"
)

type stubDirectory struct {
	users []identity.UserData
	err   error
}

func (d stubDirectory) ListUsers(context.Context, int) ([]identity.UserData, error) {
	return d.users, d.err
}

func TestGetUsersRequiresSession(t *testing.T) {
	store := &fakeStore{}
	ctrl := NewUserController(store, stubDirectory{})

	r := newRouter("")
	r.GET("/api/users", ctrl.GetUsers)

	w := doJSON(r, http.MethodGet, "/api/users", "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized - Please sign in"}`, w.Body.String())
}

func TestGetUsersRejectsCustomers(t *testing.T) {
	store := &fakeStore{} // no row: caller is a customer
	ctrl := NewUserController(store, stubDirectory{})

	r := newRouter("user_1")
	r.GET("/api/users", ctrl.GetUsers)

	w := doJSON(r, http.MethodGet, "/api/users", "")

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Admin access required"}`, w.Body.String())
}

func TestGetUsersAppliesRoleFilter(t *testing.T) {
	store := &fakeStore{rows: []*fakeRow{{values: []any{models.RoleAdmin}}}}
	ctrl := NewUserController(store, stubDirectory{})

	r := newRouter("admin_1")
	r.GET("/api/users", ctrl.GetUsers)

	w := doJSON(r, http.MethodGet, "/api/users?role=admin", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.calls, 2)
	assert.Contains(t, store.calls[1].sql, "order_count")
	assert.Contains(t, store.calls[1].sql, "WHERE role = $1")
	assert.Equal(t, []any{"admin"}, store.calls[1].args)
}

func TestDeleteUserByQueryRequiresID(t *testing.T) {
	store := &fakeStore{rows: []*fakeRow{{values: []any{models.RoleAdmin}}}}
	ctrl := NewUserController(store, stubDirectory{})

	r := newRouter("admin_1")
	r.DELETE("/api/users", ctrl.DeleteUserByQuery)

	w := doJSON(r, http.MethodDelete, "/api/users", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"User ID required"}`, w.Body.String())
}

func TestSyncUsersRejectsCustomers(t *testing.T) {
	store := &fakeStore{}
	ctrl := NewUserController(store, stubDirectory{users: []identity.UserData{{ID: "user_1"}}})

	r := newRouter("user_1")
	r.POST("/api/users/sync", ctrl.SyncUsers)

	w := doJSON(r, http.MethodPost, "/api/users/sync", "")

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Admin access required"}`, w.Body.String())
}

func TestSyncUsersCountsCreatedAndUpdated(t *testing.T) {
	email := "ada@example.com"
	directory := stubDirectory{users: []identity.UserData{
		{ID: "user_new", FirstName: ptr("Ada"), EmailAddresses: []identity.EmailAddress{{ID: "em_1", EmailAddress: email}}},
		{ID: "user_known", FirstName: ptr("Grace")},
	}}
	store := &fakeStore{rows: []*fakeRow{
		{values: []any{models.RoleAdmin}}, // caller role
		{err: pgx.ErrNoRows},              // user_new lookup: missing
		{values: []any{"row-2"}},          // user_known lookup: present
	}}
	ctrl := NewUserController(store, directory)

	r := newRouter("admin_1")
	r.POST("/api/users/sync", ctrl.SyncUsers)

	w := doJSON(r, http.MethodPost, "/api/users/sync", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
		Total   int    `json:"total"`
		Created int    `json:"created"`
		Updated int    `json:"updated"`
		Errors  int    `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Sync completed", resp.Message)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, 1, resp.Updated)
	assert.Equal(t, 0, resp.Errors)

	var inserted, updated bool
	for _, stmt := range store.statements() {
		if strings.Contains(stmt, "INSERT INTO users") {
			inserted = true
		}
		if strings.Contains(stmt, "UPDATE users") {
			updated = true
		}
	}
	assert.True(t, inserted, "missing directory row should be created")
	assert.True(t, updated, "known directory row should be refreshed")
}

func TestUpdateUserMapsAvatarToProfileImage(t *testing.T) {
	store := &fakeStore{rows: []*fakeRow{{values: []any{
		"row-1", "user_1", ptr("ada@example.com"), "Ada Lovelace",
		models.RoleCustomer, ptr("https://cdn.example.com/a.png"),
	}}}}
	ctrl := NewUserController(store, stubDirectory{})

	r := newRouter("admin_1")
	r.PUT("/api/users/:id", ctrl.UpdateUser)

	w := doJSON(r, http.MethodPut, "/api/users/row-1", `{"avatar_url":"https://cdn.example.com/a.png"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.calls, 1)
	assert.Contains(t, store.calls[0].sql, "profile_image = $1")
}
