package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateMe(t *testing.T) {
	r := setupRouter(t)
	token, _ := registerAndLogin(t, r, "alice", "secret123")

	w := doJSON(t, r, "PUT", "/api/users/me", token, gin.H{"username": "alice2", "avatar": "http://cdn/a.png"})
	require.Equal(t, http.StatusOK, w.Code)
	user := dataField(t, w)["user"].(map[string]any)
	assert.Equal(t, "alice2", user["username"])
	assert.Equal(t, "http://cdn/a.png", user["avatar"])
}

func TestUpdateMeUsernameConflict(t *testing.T) {
	r := setupRouter(t)
	registerAndLogin(t, r, "bob", "secret123")
	token, _ := registerAndLogin(t, r, "alice", "secret123")

	w := doJSON(t, r, "PUT", "/api/users/me", token, gin.H{"username": "bob"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateMeEmptyUsername(t *testing.T) {
	r := setupRouter(t)
	token, _ := registerAndLogin(t, r, "alice", "secret123")

	w := doJSON(t, r, "PUT", "/api/users/me", token, gin.H{"username": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMePassword(t *testing.T) {
	r := setupRouter(t)
	token, _ := registerAndLogin(t, r, "alice", "secret123")

	w := doJSON(t, r, "PUT", "/api/users/me", token, gin.H{"password": "newpass456"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "POST", "/api/auth/login", "", gin.H{"username": "alice", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, "POST", "/api/auth/login", "", gin.H{"username": "alice", "password": "newpass456"})
	assert.Equal(t, http.StatusOK, w.Code)
}
