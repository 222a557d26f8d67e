package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stagefront/internal/cms"
	"github.com/stagefront/internal/view"
)

const categoryFilterAll = "all"

// ShowPostList 渲染博客文章列表，分类筛选在已取回的集合上完成。
func (a *API) ShowPostList(c *gin.Context) {
	api := a.client(c)

	selected := c.DefaultQuery("category", categoryFilterAll)

	posts, err := api.ListPosts(c.Request.Context())
	if err != nil {
		a.log.Warn("获取文章列表失败", zap.Error(err))
		a.renderHTML(c, http.StatusOK, "post_list.html", gin.H{
			"title":    "文章管理",
			"error":    "获取文章列表失败，请稍后重试",
			"category": selected,
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "post_list.html", gin.H{
		"title":      "文章管理",
		"posts":      filterPostsByCategory(posts.Results, selected),
		"total":      posts.Size(),
		"categories": postCategories(posts.Results),
		"category":   selected,
	})
}

func filterPostsByCategory(posts []cms.BlogPost, category string) []cms.BlogPost {
	if category == "" || category == categoryFilterAll {
		return posts
	}
	filtered := make([]cms.BlogPost, 0, len(posts))
	for _, post := range posts {
		if post.Category == category {
			filtered = append(filtered, post)
		}
	}
	return filtered
}

// postCategories 汇总已取回文章的分类，供筛选下拉框使用。
func postCategories(posts []cms.BlogPost) []string {
	seen := make(map[string]struct{}, len(posts))
	categories := make([]string, 0, len(posts))
	for _, post := range posts {
		name := strings.TrimSpace(post.Category)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		categories = append(categories, name)
	}
	return categories
}

// ShowPostForm 渲染文章表单，新建时按后端默认值预填。
func (a *API) ShowPostForm(c *gin.Context) {
	post := cms.BlogPost{
		Status:          cms.StatusDraft,
		AllowComments:   true,
		ReadTimeMinutes: 5,
	}
	title := "新建文章"

	if raw := c.Param("id"); raw != "" {
		id, err := parseUintParam(c, "id")
		if err != nil {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		post, err = a.client(c).GetPost(c.Request.Context(), id)
		if err != nil {
			if cms.IsNotFound(err) {
				c.AbortWithStatus(http.StatusNotFound)
				return
			}
			a.renderHTML(c, backendStatus(err), "error.html", gin.H{
				"title": "出错了",
				"error": backendMessage(err, "加载文章失败，请稍后重试"),
			})
			return
		}
		title = "编辑文章"
	}

	a.renderHTML(c, http.StatusOK, "post_edit.html", gin.H{
		"title":         title,
		"post":          post,
		"statusOptions": view.PostStatusOptions(),
		"robotsOptions": view.RobotsOptions(),
	})
}

// SavePost 创建或更新文章。slug 留空时由后端派生。
func (a *API) SavePost(c *gin.Context) {
	input := cms.PostInput{
		Title:           strings.TrimSpace(c.PostForm("title")),
		Slug:            strings.TrimSpace(c.PostForm("slug")),
		Status:          c.DefaultPostForm("status", cms.StatusDraft),
		Content:         c.PostForm("content"),
		Excerpt:         c.PostForm("excerpt"),
		Tags:            strings.TrimSpace(c.PostForm("tags")),
		Category:        strings.TrimSpace(c.PostForm("category")),
		AllowComments:   c.PostForm("allow_comments") != "",
		IsFeatured:      c.PostForm("is_featured") != "",
		ReadTimeMinutes: parsePositiveInt(c.PostForm("read_time_minutes"), 0),
		MetaTitle:       strings.TrimSpace(c.PostForm("meta_title")),
		MetaDescription: strings.TrimSpace(c.PostForm("meta_description")),
		RobotsTxt:       c.PostForm("robots_txt"),
	}
	if input.MetaTitle == "" {
		input.MetaTitle = input.Title
	}

	var err error
	if raw := c.Param("id"); raw != "" {
		var id uint
		if id, err = parseUintParam(c, "id"); err != nil {
			respondError(c, http.StatusBadRequest, "无效的文章编号")
			return
		}
		_, err = a.client(c).UpdatePost(c.Request.Context(), id, input)
	} else {
		_, err = a.client(c).CreatePost(c.Request.Context(), input)
	}
	if err != nil {
		a.renderHTML(c, backendStatus(err), "form_error.html", gin.H{
			"error": backendMessage(err, "保存失败，请稍后重试"),
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin/posts")
}

// DeletePost 删除文章，成功返回空片段由 HTMX 移除对应行。
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章编号")
		return
	}

	if err := a.client(c).DeletePost(c.Request.Context(), id); err != nil {
		a.log.Warn("删除文章失败", zap.Uint("post", id), zap.Error(err))
		respondError(c, backendStatus(err), backendMessage(err, "删除失败，请稍后重试"))
		return
	}
	c.String(http.StatusOK, "")
}

// DuplicatePost 复制文章，随后进入副本的编辑表单。
func (a *API) DuplicatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章编号")
		return
	}

	duplicated, err := a.client(c).DuplicatePost(c.Request.Context(), id)
	if err != nil {
		respondError(c, backendStatus(err), backendMessage(err, "复制失败，请稍后重试"))
		return
	}
	c.Redirect(http.StatusFound, "/admin/posts/"+strconv.FormatUint(uint64(duplicated.ID), 10)+"/edit")
}

func parsePositiveInt(value string, fallback int) int {
	num, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || num <= 0 {
		return fallback
	}
	return num
}
