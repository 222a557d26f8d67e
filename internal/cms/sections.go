package cms

import (
	"context"
	"fmt"
	"net/http"
)

// ListSections 拉取全部栏目，后端按 order、name 排序。
func (c *Client) ListSections(ctx context.Context) (Collection[Section], error) {
	var out Collection[Section]
	err := c.do(ctx, http.MethodGet, "content/sections/", nil, nil, &out)
	return out, err
}

// GetSection 拉取单个栏目详情。
func (c *Client) GetSection(ctx context.Context, id uint) (Section, error) {
	var out Section
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("content/sections/%d/", id), nil, nil, &out)
	return out, err
}

// CreateSection 创建栏目。
func (c *Client) CreateSection(ctx context.Context, input SectionInput) (Section, error) {
	var out Section
	err := c.do(ctx, http.MethodPost, "content/sections/", nil, input, &out)
	return out, err
}

// UpdateSection 整体更新栏目。
func (c *Client) UpdateSection(ctx context.Context, id uint, input SectionInput) (Section, error) {
	var out Section
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("content/sections/%d/", id), nil, input, &out)
	return out, err
}

// DeleteSection 删除栏目，级联删除其下全部页面由后端负责。
func (c *Client) DeleteSection(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("content/sections/%d/", id), nil, nil, nil)
}

// PublicSections 拉取用于公开导航的栏目，该接口直接返回数组。
func (c *Client) PublicSections(ctx context.Context) ([]Section, error) {
	var out []Section
	err := c.do(ctx, http.MethodGet, "content/sections/public/", nil, nil, &out)
	return out, err
}
