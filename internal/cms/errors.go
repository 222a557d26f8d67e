package cms

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError 表示后端返回的非 2xx 响应。
// Message 始终非空，Fields 在校验错误时按字段保存明细。
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cms api: status %d: %s", e.Status, e.Message)
}

// IsNotFound 判断 err 是否为后端 404。
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized 判断 err 是否为后端 401。
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// parseAPIError 按固定顺序从响应体提取人类可读的错误信息：
// error 字段、detail 字段、字段级校验明细，最后退回 HTTP 状态码。
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err == nil && len(payload) > 0 {
		if msg := decodeString(payload["error"]); msg != "" {
			apiErr.Message = msg
			return apiErr
		}
		if msg := decodeString(payload["detail"]); msg != "" {
			apiErr.Message = msg
			return apiErr
		}

		fields := make(map[string][]string)
		for name, raw := range payload {
			if msgs := decodeStringList(raw); len(msgs) > 0 {
				fields[name] = msgs
			}
		}
		if len(fields) > 0 {
			apiErr.Fields = fields
			apiErr.Message = firstFieldError(fields)
			return apiErr
		}
	}

	apiErr.Message = fmt.Sprintf("HTTP %d", status)
	return apiErr
}

func decodeString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func decodeStringList(raw json.RawMessage) []string {
	if raw == nil {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	if s := decodeString(raw); s != "" {
		return []string{s}
	}
	return nil
}

// firstFieldError 取字典序最小的字段，保证同一响应的报错文案稳定。
func firstFieldError(fields map[string][]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	name := names[0]
	return fmt.Sprintf("%s: %s", name, fields[name][0])
}
