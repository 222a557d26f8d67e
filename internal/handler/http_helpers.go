package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stagefront/internal/cms"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// backendMessage 取后端返回的错误信息，取不到时回落到兜底文案。
func backendMessage(err error, fallback string) string {
	var apiErr *cms.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// backendStatus 透传后端的错误状态码，网络层失败按网关错误处理。
func backendStatus(err error) int {
	var apiErr *cms.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 600 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}
