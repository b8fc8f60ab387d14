package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"socialhub/api/middleware"
	"socialhub/db"
	"socialhub/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(database))
	db.ORM = database
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	setupTestDB(t)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", Register)
	api.POST("/auth/login", Login)

	api.GET("/users/me", middleware.AuthRequired(), GetMe)
	api.PUT("/users/me", middleware.AuthRequired(), UpdateMe)

	api.POST("/posts", middleware.AuthRequired(), CreatePost)
	api.GET("/posts", middleware.OptionalAuth(), ListPosts)
	api.GET("/posts/:id", GetPost)
	api.PUT("/posts/:id", middleware.AuthRequired(), UpdatePost)
	api.DELETE("/posts/:id", middleware.AuthRequired(), DeletePost)

	api.POST("/posts/:id/comments", middleware.AuthRequired(), CreateComment)
	api.POST("/posts/:id/comment", middleware.AuthRequired(), CreateComment)
	api.GET("/posts/:id/comments", ListComments)
	api.POST("/posts/:id/ratings", middleware.AuthRequired(), RatePost)
	api.POST("/posts/:id/score", middleware.AuthRequired(), RatePost)

	api.POST("/upload", Upload)

	admin := api.Group("/admin", middleware.AuthRequired(), middleware.AdminRequired())
	admin.GET("/users", AdminListUsers)
	admin.DELETE("/users/:id", AdminDeleteUser)
	admin.GET("/posts", AdminListPosts)
	admin.DELETE("/posts/:id", AdminDeletePost)
	admin.GET("/stats", AdminStats)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "response has no data field: %s", w.Body.String())
	return data
}

// registerAndLogin заводит пользователя через API и возвращает токен и id
func registerAndLogin(t *testing.T, r *gin.Engine, username, password string) (string, int64) {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/auth/register", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, "POST", "/api/auth/login", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := dataField(t, w)
	token, _ := data["access_token"].(string)
	require.NotEmpty(t, token)
	user := data["user"].(map[string]any)
	return token, int64(user["id"].(float64))
}

// promoteToAdmin повышает роль в БД и перелогинивается за свежим токеном
func promoteToAdmin(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	err := db.ORM.Model(&models.User{}).Where("username = ?", username).
		Update("role", models.ROLE_ADMIN).Error
	require.NoError(t, err)

	w := doJSON(t, r, "POST", "/api/auth/login", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code)
	return dataField(t, w)["access_token"].(string)
}

func createPost(t *testing.T, r *gin.Engine, token string, payload gin.H) int64 {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/posts", token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	post := dataField(t, w)["post"].(map[string]any)
	return int64(post["id"].(float64))
}
