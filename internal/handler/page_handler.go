package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stagefront/internal/cms"
	"github.com/stagefront/internal/db"
	"github.com/stagefront/internal/service"
	"github.com/stagefront/internal/view"
)

const sectionFilterAll = "all"

// 复选框未勾选时不会出现在表单数据里，整单提交前显式回填。
var pageCheckboxFields = []string{"requires_auth"}

// ShowPageList 渲染页面列表。列表一次性取回，栏目筛选和搜索都在
// 已取回的集合上完成，不向后端传筛选参数。
func (a *API) ShowPageList(c *gin.Context) {
	api := a.client(c)

	selected := c.DefaultQuery("section", sectionFilterAll)
	query := strings.TrimSpace(c.Query("q"))

	pages, err := api.ListPages(c.Request.Context())
	if err != nil {
		a.log.Warn("获取页面列表失败", zap.Error(err))
		a.renderHTML(c, http.StatusOK, "page_list.html", gin.H{
			"title":   "页面管理",
			"error":   "获取页面列表失败，请稍后重试",
			"section": selected,
			"query":   query,
		})
		return
	}

	sections, err := api.ListSections(c.Request.Context())
	if err != nil {
		a.log.Warn("获取栏目列表失败", zap.Error(err))
	}

	filtered := filterPagesByQuery(filterPagesBySection(pages.Results, selected), query)

	a.renderHTML(c, http.StatusOK, "page_list.html", gin.H{
		"title":    "页面管理",
		"pages":    filtered,
		"total":    pages.Size(),
		"sections": sections.Results,
		"section":  selected,
		"query":    query,
	})
}

func filterPagesBySection(pages []cms.Page, slug string) []cms.Page {
	if slug == "" || slug == sectionFilterAll {
		return pages
	}
	filtered := make([]cms.Page, 0, len(pages))
	for _, page := range pages {
		if page.Section != nil && page.Section.Slug == slug {
			filtered = append(filtered, page)
		}
	}
	return filtered
}

// filterPagesByQuery 对标题和别名做大小写无关的子串匹配。
func filterPagesByQuery(pages []cms.Page, query string) []cms.Page {
	if query == "" {
		return pages
	}
	needle := strings.ToLower(query)
	filtered := make([]cms.Page, 0, len(pages))
	for _, page := range pages {
		if strings.Contains(strings.ToLower(page.Title), needle) ||
			strings.Contains(strings.ToLower(page.Slug), needle) {
			filtered = append(filtered, page)
		}
	}
	return filtered
}

// NewPageDraft 开启一次新建页面的编辑会话并跳转到编辑器。
// 每次进入都建一份独立草稿，两个标签页互不干扰。
func (a *API) NewPageDraft(c *gin.Context) {
	draft, err := a.drafts.Create()
	if err != nil {
		a.log.Error("创建页面草稿失败", zap.Error(err))
		a.renderHTML(c, http.StatusInternalServerError, "error.html", gin.H{
			"title": "出错了",
			"error": "创建草稿失败，请稍后重试",
		})
		return
	}
	c.Redirect(http.StatusFound, "/admin/pages/drafts/"+draft.ID)
}

// EditPageDraft 以后端当前内容为底稿开启编辑会话。
func (a *API) EditPageDraft(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	page, err := a.client(c).GetPage(c.Request.Context(), id)
	if err != nil {
		if cms.IsNotFound(err) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		a.renderHTML(c, backendStatus(err), "error.html", gin.H{
			"title": "出错了",
			"error": backendMessage(err, "加载页面失败，请稍后重试"),
		})
		return
	}

	draft, err := a.drafts.CreateForPage(page)
	if err != nil {
		a.log.Error("创建编辑草稿失败", zap.Uint("page", id), zap.Error(err))
		a.renderHTML(c, http.StatusInternalServerError, "error.html", gin.H{
			"title": "出错了",
			"error": "创建草稿失败，请稍后重试",
		})
		return
	}
	c.Redirect(http.StatusFound, "/admin/pages/drafts/"+draft.ID)
}

// ShowPageDraft 渲染页面编辑器。
func (a *API) ShowPageDraft(c *gin.Context) {
	draft, err := a.drafts.Get(c.Param("id"))
	if err != nil {
		a.renderHTML(c, http.StatusNotFound, "error.html", gin.H{
			"title": "草稿不存在",
			"error": "草稿不存在或已提交",
		})
		return
	}

	sections, err := a.client(c).ListSections(c.Request.Context())
	if err != nil {
		a.log.Warn("获取栏目列表失败", zap.Error(err))
	}

	title := "新建页面"
	if draft.PageID > 0 {
		title = "编辑页面"
	}

	a.renderHTML(c, http.StatusOK, "page_edit.html", gin.H{
		"title":           title,
		"draft":           draft,
		"sections":        sections.Results,
		"statusOptions":   view.PageStatusOptions(),
		"templateOptions": view.TemplateOptions(),
		"robotsOptions":   view.RobotsOptions(),
		"maxUploadHuman":  view.FileSize(a.uploads.MaxBytes()),
	})
}

// UpdateDraftField 处理编辑器的逐字段自动保存，返回派生字段片段。
func (a *API) UpdateDraftField(c *gin.Context) {
	id := c.Param("id")

	if err := c.Request.ParseForm(); err != nil {
		respondError(c, http.StatusBadRequest, "表单格式不正确")
		return
	}

	var (
		draft *db.PageDraft
		err   error
	)
	for field, values := range c.Request.PostForm {
		if len(values) == 0 {
			continue
		}
		draft, err = a.drafts.ApplyField(id, field, values[len(values)-1])
		if err != nil {
			break
		}
	}

	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		respondError(c, http.StatusNotFound, "草稿不存在或已提交")
		return
	case errors.Is(err, service.ErrUnknownField):
		respondError(c, http.StatusBadRequest, "未知的表单字段")
		return
	case err != nil:
		a.log.Error("保存草稿字段失败", zap.String("draft", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "保存草稿失败，请稍后重试")
		return
	}

	if draft == nil {
		if draft, err = a.drafts.Get(id); err != nil {
			respondError(c, http.StatusNotFound, "草稿不存在或已提交")
			return
		}
	}

	a.renderHTML(c, http.StatusOK, "page_derived.html", gin.H{"draft": draft})
}

// UploadDraftImage 处理编辑器里的特色图上传。校验不通过时不发起
// 任何后端请求；失败时草稿里保留上一次的图片引用。
func (a *API) UploadDraftImage(c *gin.Context) {
	id := c.Param("id")

	draft, err := a.drafts.Get(id)
	if err != nil {
		respondError(c, http.StatusNotFound, "草稿不存在或已提交")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		a.renderImageWidget(c, http.StatusBadRequest, draft, "未找到上传的图片")
		return
	}

	src, err := file.Open()
	if err != nil {
		a.renderImageWidget(c, http.StatusInternalServerError, draft, "读取上传文件失败")
		return
	}
	defer src.Close()

	media, err := a.uploads.Upload(c.Request.Context(), a.client(c), id,
		file.Filename, file.Header.Get("Content-Type"), file.Size, src)
	if err != nil {
		a.renderImageWidget(c, uploadErrorStatus(err), draft, a.uploadErrorMessage(err))
		return
	}

	draft, err = a.drafts.SetFeaturedImage(id, media.File)
	if err != nil {
		respondError(c, http.StatusNotFound, "草稿不存在或已提交")
		return
	}
	a.renderImageWidget(c, http.StatusOK, draft, "")
}

// RemoveDraftImage 仅清除草稿里的图片引用，不调用后端。
func (a *API) RemoveDraftImage(c *gin.Context) {
	draft, err := a.drafts.SetFeaturedImage(c.Param("id"), "")
	if err != nil {
		respondError(c, http.StatusNotFound, "草稿不存在或已提交")
		return
	}
	a.renderImageWidget(c, http.StatusOK, draft, "")
}

func (a *API) renderImageWidget(c *gin.Context, status int, draft *db.PageDraft, message string) {
	a.renderHTML(c, status, "page_image.html", gin.H{
		"draft":          draft,
		"error":          message,
		"maxUploadHuman": view.FileSize(a.uploads.MaxBytes()),
	})
}

func (a *API) uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrImageTooLarge):
		return fmt.Sprintf("图片超过大小限制，最大 %s", view.FileSize(a.uploads.MaxBytes()))
	case errors.Is(err, service.ErrNotImage):
		return "只允许上传图片文件"
	case errors.Is(err, service.ErrUploadInFlight):
		return "上一次上传尚未完成，请稍候"
	default:
		return backendMessage(err, "上传失败，请稍后重试")
	}
}

func uploadErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrImageTooLarge), errors.Is(err, service.ErrNotImage):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUploadInFlight):
		return http.StatusConflict
	default:
		return backendStatus(err)
	}
}

// SubmitPageDraft 将草稿整体提交到后端。成功后丢弃草稿并回到列表；
// 失败时草稿原样保留，错误信息展示一次。
func (a *API) SubmitPageDraft(c *gin.Context) {
	id := c.Param("id")

	if err := c.Request.ParseForm(); err != nil {
		respondError(c, http.StatusBadRequest, "表单格式不正确")
		return
	}

	values := make(map[string]string, len(c.Request.PostForm))
	for field, posted := range c.Request.PostForm {
		if len(posted) > 0 {
			values[field] = posted[len(posted)-1]
		}
	}
	for _, field := range pageCheckboxFields {
		if _, ok := values[field]; !ok {
			values[field] = ""
		}
	}

	if _, err := a.drafts.ApplyValues(id, values); err != nil {
		switch {
		case errors.Is(err, service.ErrDraftNotFound):
			respondError(c, http.StatusNotFound, "草稿不存在或已提交")
		case errors.Is(err, service.ErrUnknownField):
			respondError(c, http.StatusBadRequest, "未知的表单字段")
		default:
			a.log.Error("保存草稿失败", zap.String("draft", id), zap.Error(err))
			respondError(c, http.StatusInternalServerError, "保存草稿失败，请稍后重试")
		}
		return
	}

	page, err := a.drafts.Submit(c.Request.Context(), a.client(c), id)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			respondError(c, http.StatusNotFound, "草稿不存在或已提交")
			return
		}
		a.renderHTML(c, backendStatus(err), "form_error.html", gin.H{
			"error": backendMessage(err, "保存失败，请稍后重试"),
		})
		return
	}

	a.log.Info("页面已保存", zap.Uint("page", page.ID), zap.String("slug", page.Slug))
	c.Redirect(http.StatusFound, "/admin/pages")
}

// DiscardPageDraft 放弃草稿并返回列表。
func (a *API) DiscardPageDraft(c *gin.Context) {
	if err := a.drafts.Delete(c.Param("id")); err != nil && !errors.Is(err, service.ErrDraftNotFound) {
		a.log.Error("放弃草稿失败", zap.String("draft", c.Param("id")), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "放弃草稿失败，请稍后重试")
		return
	}
	c.Redirect(http.StatusFound, "/admin/pages")
}

// DeletePage 删除页面。成功返回空片段，HTMX 据此移除对应行；
// 被拒绝时返回错误，列表保持原样。
func (a *API) DeletePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的页面编号")
		return
	}

	if err := a.client(c).DeletePage(c.Request.Context(), id); err != nil {
		a.log.Warn("删除页面失败", zap.Uint("page", id), zap.Error(err))
		respondError(c, backendStatus(err), backendMessage(err, "删除失败，请稍后重试"))
		return
	}
	c.String(http.StatusOK, "")
}

// DuplicatePage 复制页面，随后直接进入副本的编辑会话。
func (a *API) DuplicatePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的页面编号")
		return
	}

	duplicated, err := a.client(c).DuplicatePage(c.Request.Context(), id)
	if err != nil {
		respondError(c, backendStatus(err), backendMessage(err, "复制失败，请稍后重试"))
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/admin/pages/%d/edit", duplicated.ID))
}
