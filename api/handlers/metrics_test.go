package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contentOpCount читает content_operations_total из реестра по умолчанию
func contentOpCount(t *testing.T, operation, status string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "content_operations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["operation"] == operation && labels["status"] == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

// Мутации контента считаются симметрично: и успех, и ошибка
func TestContentOperationsCounted(t *testing.T) {
	r := setupRouter(t)
	token, _ := registerAndLogin(t, r, "alice", "secret123")
	postID := createPost(t, r, token, gin.H{"content": "post"})

	updateOK := contentOpCount(t, "update_post", "ok")
	w := doJSON(t, r, "PUT", fmt.Sprintf("/api/posts/%d", postID), token, gin.H{"content": "edited"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, updateOK+1, contentOpCount(t, "update_post", "ok"))

	commentOK := contentOpCount(t, "create_comment", "ok")
	w = doJSON(t, r, "POST", fmt.Sprintf("/api/posts/%d/comments", postID), token, gin.H{"content": "hi"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, commentOK+1, contentOpCount(t, "create_comment", "ok"))

	deleteErr := contentOpCount(t, "delete_post", "error")
	w = doJSON(t, r, "DELETE", "/api/posts/999999", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, deleteErr+1, contentOpCount(t, "delete_post", "error"))

	deleteOK := contentOpCount(t, "delete_post", "ok")
	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/posts/%d", postID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, deleteOK+1, contentOpCount(t, "delete_post", "ok"))
}
