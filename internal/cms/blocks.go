package cms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListBlocks 拉取全部内容块，后端按名称排序。
func (c *Client) ListBlocks(ctx context.Context) (Collection[Block], error) {
	var out Collection[Block]
	err := c.do(ctx, http.MethodGet, "content/blocks/", nil, nil, &out)
	return out, err
}

// GetBlock 拉取单个内容块详情。
func (c *Client) GetBlock(ctx context.Context, id uint) (Block, error) {
	var out Block
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("content/blocks/%d/", id), nil, nil, &out)
	return out, err
}

// CreateBlock 创建内容块。
func (c *Client) CreateBlock(ctx context.Context, input BlockInput) (Block, error) {
	var out Block
	err := c.do(ctx, http.MethodPost, "content/blocks/", nil, input, &out)
	return out, err
}

// UpdateBlock 整体更新内容块。
func (c *Client) UpdateBlock(ctx context.Context, id uint, input BlockInput) (Block, error) {
	var out Block
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("content/blocks/%d/", id), nil, input, &out)
	return out, err
}

// DeleteBlock 删除内容块。
func (c *Client) DeleteBlock(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("content/blocks/%d/", id), nil, nil, nil)
}

// PublicBlocks 拉取启用中的内容块，可按类型或标识过滤，接口直接返回数组。
func (c *Client) PublicBlocks(ctx context.Context, blockType, identifier string) ([]Block, error) {
	query := url.Values{}
	if blockType != "" {
		query.Set("type", blockType)
	}
	if identifier != "" {
		query.Set("identifier", identifier)
	}
	if len(query) == 0 {
		query = nil
	}

	var out []Block
	err := c.do(ctx, http.MethodGet, "content/blocks/public/", query, nil, &out)
	return out, err
}

// PublicBlockByIdentifier 按标识拉取单个启用中的内容块。
func (c *Client) PublicBlockByIdentifier(ctx context.Context, identifier string) (Block, error) {
	var out Block
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("content/blocks/%s/public/", url.PathEscape(identifier)), nil, nil, &out)
	return out, err
}
