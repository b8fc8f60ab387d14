package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialhub/db"
	"socialhub/models"
)

func TestAdminEndpointsForbiddenForRegularUser(t *testing.T) {
	r := setupRouter(t)
	token, _ := registerAndLogin(t, r, "alice", "secret123")

	for _, path := range []string{"/api/admin/users", "/api/admin/posts", "/api/admin/stats"} {
		w := doJSON(t, r, "GET", path, token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}

	w := doJSON(t, r, "GET", "/api/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminListUsers(t *testing.T) {
	r := setupRouter(t)
	registerAndLogin(t, r, "alice", "secret123")
	registerAndLogin(t, r, "bob", "secret123")
	registerAndLogin(t, r, "root", "secret123")
	adminToken := promoteToAdmin(t, r, "root", "secret123")

	w := doJSON(t, r, "GET", "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	result := dataField(t, w)
	assert.Equal(t, float64(3), result["total"])
}

func TestAdminDeleteUserCascades(t *testing.T) {
	r := setupRouter(t)
	aliceToken, aliceID := registerAndLogin(t, r, "alice", "secret123")
	bobToken, _ := registerAndLogin(t, r, "bob", "secret123")
	registerAndLogin(t, r, "root", "secret123")
	adminToken := promoteToAdmin(t, r, "root", "secret123")

	postID := createPost(t, r, aliceToken, gin.H{
		"content": "alice post",
		"media":   []gin.H{{"type": "image", "url": "http://cdn/a.png"}},
	})
	bobPostID := createPost(t, r, bobToken, gin.H{"content": "bob post"})

	// алиса наследила и на чужом посте
	w := doJSON(t, r, "POST", fmt.Sprintf("/api/posts/%d/comments", bobPostID), aliceToken, gin.H{"content": "hi"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, "POST", fmt.Sprintf("/api/posts/%d/ratings", bobPostID), aliceToken, gin.H{"score": 3})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/admin/users/%d", aliceID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.ORM.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.ORM.Model(&models.Comment{}).Where("user_id = ?", aliceID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.ORM.Model(&models.Rating{}).Where("user_id = ?", aliceID).Count(&count).Error)
	assert.Zero(t, count)

	// чужой пост не задет
	require.NoError(t, db.ORM.Model(&models.Post{}).Where("id = ?", bobPostID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAdminDeleteWritesAuditLog(t *testing.T) {
	r := setupRouter(t)
	aliceToken, _ := registerAndLogin(t, r, "alice", "secret123")
	registerAndLogin(t, r, "root", "secret123")
	adminToken := promoteToAdmin(t, r, "root", "secret123")

	postID := createPost(t, r, aliceToken, gin.H{"content": "to be moderated"})

	w := doJSON(t, r, "DELETE", fmt.Sprintf("/api/admin/posts/%d", postID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []models.AdminLog
	require.NoError(t, db.ORM.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "delete_post", entries[0].Action)
	assert.Equal(t, "post", entries[0].TargetType)
	assert.Equal(t, postID, entries[0].TargetID)
}

func TestAdminStats(t *testing.T) {
	r := setupRouter(t)
	aliceToken, _ := registerAndLogin(t, r, "alice", "secret123")
	registerAndLogin(t, r, "root", "secret123")
	adminToken := promoteToAdmin(t, r, "root", "secret123")

	postID := createPost(t, r, aliceToken, gin.H{"content": "post"})
	w := doJSON(t, r, "POST", fmt.Sprintf("/api/posts/%d/comments", postID), aliceToken, gin.H{"content": "c"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, "POST", fmt.Sprintf("/api/posts/%d/ratings", postID), aliceToken, gin.H{"score": 5})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "GET", "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := dataField(t, w)
	assert.Equal(t, float64(2), stats["users"])
	assert.Equal(t, float64(1), stats["posts"])
	assert.Equal(t, float64(1), stats["comments"])
	assert.Equal(t, float64(1), stats["ratings"])
}

func TestAdminDeleteMissingTargets(t *testing.T) {
	r := setupRouter(t)
	registerAndLogin(t, r, "root", "secret123")
	adminToken := promoteToAdmin(t, r, "root", "secret123")

	w := doJSON(t, r, "DELETE", "/api/admin/users/999", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "DELETE", "/api/admin/posts/999", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
