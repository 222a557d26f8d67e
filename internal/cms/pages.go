package cms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListPages 拉取后台页面列表，后端默认按创建时间倒序分页。
func (c *Client) ListPages(ctx context.Context) (Collection[Page], error) {
	var out Collection[Page]
	err := c.do(ctx, http.MethodGet, "content/pages/", nil, nil, &out)
	return out, err
}

// GetPage 拉取单个页面详情。
func (c *Client) GetPage(ctx context.Context, id uint) (Page, error) {
	var out Page
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("content/pages/%d/", id), nil, nil, &out)
	return out, err
}

// CreatePage 创建页面，成功返回后端落库后的完整页面。
func (c *Client) CreatePage(ctx context.Context, input PageInput) (Page, error) {
	var out Page
	err := c.do(ctx, http.MethodPost, "content/pages/", nil, input, &out)
	return out, err
}

// UpdatePage 整体更新页面。
func (c *Client) UpdatePage(ctx context.Context, id uint, input PageInput) (Page, error) {
	var out Page
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("content/pages/%d/", id), nil, input, &out)
	return out, err
}

// DeletePage 删除页面。
func (c *Client) DeletePage(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("content/pages/%d/", id), nil, nil, nil)
}

// DuplicatePage 复制页面，后端生成 "<标题> (Copy)" 的草稿副本。
func (c *Client) DuplicatePage(ctx context.Context, id uint) (Page, error) {
	var out Page
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("content/pages/%d/duplicate/", id), nil, nil, &out)
	return out, err
}

// PublicPages 拉取已发布页面，sectionSlug 非空时按栏目过滤。
func (c *Client) PublicPages(ctx context.Context, sectionSlug string) (Collection[Page], error) {
	var query url.Values
	if sectionSlug != "" {
		query = url.Values{"section": {sectionSlug}}
	}
	var out Collection[Page]
	err := c.do(ctx, http.MethodGet, "content/pages/list_public/", query, nil, &out)
	return out, err
}

// PublicPageBySlug 按别名拉取单个已发布页面，未发布或不存在返回 404。
func (c *Client) PublicPageBySlug(ctx context.Context, slug string) (Page, error) {
	var out Page
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("content/pages/%s/public/", url.PathEscape(slug)), nil, nil, &out)
	return out, err
}
