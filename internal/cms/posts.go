package cms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// PostFilter 描述公开文章列表的过滤条件，零值表示不过滤。
type PostFilter struct {
	Category string
	Tags     []string
	Featured bool
}

func (f PostFilter) query() url.Values {
	query := url.Values{}
	if f.Category != "" {
		query.Set("category", f.Category)
	}
	if len(f.Tags) > 0 {
		query.Set("tags", strings.Join(f.Tags, ","))
	}
	if f.Featured {
		query.Set("featured", "true")
	}
	if len(query) == 0 {
		return nil
	}
	return query
}

// ListPosts 拉取后台文章列表。
func (c *Client) ListPosts(ctx context.Context) (Collection[BlogPost], error) {
	var out Collection[BlogPost]
	err := c.do(ctx, http.MethodGet, "content/blog/", nil, nil, &out)
	return out, err
}

// GetPost 拉取单篇文章详情。
func (c *Client) GetPost(ctx context.Context, id uint) (BlogPost, error) {
	var out BlogPost
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("content/blog/%d/", id), nil, nil, &out)
	return out, err
}

// CreatePost 创建文章。
func (c *Client) CreatePost(ctx context.Context, input PostInput) (BlogPost, error) {
	var out BlogPost
	err := c.do(ctx, http.MethodPost, "content/blog/", nil, input, &out)
	return out, err
}

// UpdatePost 整体更新文章。
func (c *Client) UpdatePost(ctx context.Context, id uint, input PostInput) (BlogPost, error) {
	var out BlogPost
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("content/blog/%d/", id), nil, input, &out)
	return out, err
}

// DeletePost 删除文章。
func (c *Client) DeletePost(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("content/blog/%d/", id), nil, nil, nil)
}

// DuplicatePost 复制文章为草稿副本。
func (c *Client) DuplicatePost(ctx context.Context, id uint) (BlogPost, error) {
	var out BlogPost
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("content/blog/%d/duplicate/", id), nil, nil, &out)
	return out, err
}

// PublicPosts 拉取已发布文章，支持分类、标签与精选过滤。
func (c *Client) PublicPosts(ctx context.Context, filter PostFilter) (Collection[BlogPost], error) {
	var out Collection[BlogPost]
	err := c.do(ctx, http.MethodGet, "content/blog/list_public/", filter.query(), nil, &out)
	return out, err
}

// PublicPostBySlug 按别名拉取单篇已发布文章。
func (c *Client) PublicPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	var out BlogPost
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("content/blog/%s/public/", url.PathEscape(slug)), nil, nil, &out)
	return out, err
}

// PostCategories 拉取已发布文章的全部分类。
func (c *Client) PostCategories(ctx context.Context) ([]string, error) {
	var out struct {
		Categories []string `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "content/blog/categories/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// PostTags 拉取已发布文章的全部标签，后端已去重排序。
func (c *Client) PostTags(ctx context.Context) ([]string, error) {
	var out struct {
		Tags []string `json:"tags"`
	}
	if err := c.do(ctx, http.MethodGet, "content/blog/tags/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Tags, nil
}
