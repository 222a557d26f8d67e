package cms

import (
	"context"
	"net/http"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPayload struct {
	Token string `json:"token"`
}

type refreshPayload struct {
	Refresh string `json:"refresh"`
}

// Login 用账号密码换取 JWT 令牌对，凭据校验完全由后端完成。
func (c *Client) Login(ctx context.Context, username, password string) (TokenPair, error) {
	var pair TokenPair
	err := c.do(ctx, http.MethodPost, "auth/login/", nil, credentials{Username: username, Password: password}, &pair)
	return pair, err
}

// Refresh 用刷新令牌换取新的访问令牌。
// 后端未开启轮换时响应里没有 refresh，此时沿用旧值。
func (c *Client) Refresh(ctx context.Context, refresh string) (TokenPair, error) {
	var pair TokenPair
	if err := c.do(ctx, http.MethodPost, "auth/refresh/", nil, refreshPayload{Refresh: refresh}, &pair); err != nil {
		return TokenPair{}, err
	}
	if pair.Refresh == "" {
		pair.Refresh = refresh
	}
	return pair, nil
}

// Verify 校验访问令牌是否仍被后端接受。
func (c *Client) Verify(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "auth/verify/", nil, tokenPayload{Token: token}, nil)
}
