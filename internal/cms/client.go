package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxResponseBytes = 1 << 20

// httpDoer 抽象 HTTP 客户端，方便在测试中替换。
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client 封装对 CMS 后端 REST API 的全部访问。
// 所有资源路径都以 baseURL 为前缀，路径末尾保留斜杠。
type Client struct {
	baseURL string
	http    httpDoer
	log     *zap.Logger
	token   string
}

// New 创建指向 baseURL 的客户端，baseURL 必须以斜杠结尾。
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// WithToken 返回携带访问令牌的浅拷贝，原客户端保持匿名。
func (c *Client) WithToken(token string) *Client {
	scoped := *c
	scoped.token = token
	return &scoped
}

// endpoint 拼接资源路径与查询参数。
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do 发送一次 JSON 请求并把 2xx 响应体解码到 out（out 可为 nil）。
// 非 2xx 响应统一转换为 *APIError，请求层不做任何自动重试。
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, path, method, out)
}

// upload 以 multipart 表单上传文件，fields 为附加的普通字段。
func (c *Client) upload(ctx context.Context, path, fileField, filename string, file io.Reader, fields map[string]string, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy upload body: %w", err)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("write form field %s: %w", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, path, http.MethodPost, out)
}

func (c *Client) send(req *http.Request, path, method string, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	observeRequest(path, method, resp, err, time.Since(start))
	if err != nil {
		c.log.Warn("cms request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("cms %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := parseAPIError(resp.StatusCode, data)
		c.log.Warn("cms request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
