// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-pcc/pkg/extensions"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type rejectingProvider struct{}

func (p *rejectingProvider) Validate(_ context.Context, token string) (*extensions.AuthInfo, error) {
	if token == "good" {
		return &extensions.AuthInfo{Username: "jlawrence"}, nil
	}
	return nil, fmt.Errorf("bad token: %w", extensions.ErrUnauthorized)
}

func TestAuth_NopProviderAuthenticatesEveryone(t *testing.T) {
	router := gin.New()
	router.Use(Auth(&extensions.NopAuthProvider{}))
	router.GET("/whoami", func(c *gin.Context) {
		info := GetAuthInfo(c)
		require.NotNil(t, info)
		c.JSON(http.StatusOK, gin.H{"username": info.Username})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "local-admin")
}

func TestAuth_RejectedTokenIs401(t *testing.T) {
	router := gin.New()
	router.Use(Auth(&rejectingProvider{}))
	router.GET("/whoami", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAuth_ValidTokenPasses(t *testing.T) {
	router := gin.New()
	router.Use(Auth(&rejectingProvider{}))
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": GetAuthInfo(c).Username})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "bearer good")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jlawrence")
}

func TestErrors_ServiceErrorBody(t *testing.T) {
	router := gin.New()
	router.Use(Errors(slog.Default()))
	router.GET("/projects/:slug", func(c *gin.Context) {
		c.Error(datatypes.ErrProjectNotFound)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/projects/ghost", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Project not found","code":"PROJECT_NOT_FOUND"}`, w.Body.String())
}

func TestErrors_ValidationError(t *testing.T) {
	router := gin.New()
	router.Use(Errors(slog.Default()))
	router.POST("/committees", func(c *gin.Context) {
		c.Error(&datatypes.ValidationError{Fields: map[string]string{"name": "Name is required"}})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/committees", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
	assert.Contains(t, w.Body.String(), "Name is required")
}

func TestErrors_UnknownErrorIsOpaque500(t *testing.T) {
	router := gin.New()
	router.Use(Errors(slog.Default()))
	router.GET("/boom", func(c *gin.Context) {
		c.Error(fmt.Errorf("connection refused to internal-host:5432"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL")
	assert.NotContains(t, w.Body.String(), "internal-host")
}

func TestErrors_NoErrorNoWrite(t *testing.T) {
	router := gin.New()
	router.Use(Errors(slog.Default()))
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRequestMetrics_CountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewRequestMetrics(reg)

	router := gin.New()
	router.Use(metrics.Handler())
	router.GET("/projects", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects", nil))
	}

	families, err := reg.Gather()
	require.NoError(t, err)
	found := false
	for _, mf := range families {
		if mf.GetName() == "pcc_http_requests_total" {
			found = true
			require.Len(t, mf.GetMetric(), 1)
			assert.Equal(t, float64(3), mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found)
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	router := gin.New()
	router.Use(rl.Handler())
	router.GET("/projects", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/projects", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
