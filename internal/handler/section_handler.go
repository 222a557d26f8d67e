package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stagefront/internal/cms"
	"github.com/stagefront/internal/view"
)

// ShowSectionList 渲染栏目列表。
func (a *API) ShowSectionList(c *gin.Context) {
	sections, err := a.client(c).ListSections(c.Request.Context())
	if err != nil {
		a.log.Warn("获取栏目列表失败", zap.Error(err))
		a.renderHTML(c, http.StatusOK, "section_list.html", gin.H{
			"title": "栏目管理",
			"error": "获取栏目列表失败，请稍后重试",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "section_list.html", gin.H{
		"title":    "栏目管理",
		"sections": sections.Results,
		"total":    sections.Size(),
	})
}

// ShowSectionForm 渲染栏目表单。
func (a *API) ShowSectionForm(c *gin.Context) {
	section := cms.Section{IsActive: true, ShowInNav: true}
	title := "新建栏目"

	if raw := c.Param("id"); raw != "" {
		id, err := parseUintParam(c, "id")
		if err != nil {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		section, err = a.client(c).GetSection(c.Request.Context(), id)
		if err != nil {
			if cms.IsNotFound(err) {
				c.AbortWithStatus(http.StatusNotFound)
				return
			}
			a.renderHTML(c, backendStatus(err), "error.html", gin.H{
				"title": "出错了",
				"error": backendMessage(err, "加载栏目失败，请稍后重试"),
			})
			return
		}
		title = "编辑栏目"
	}

	a.renderHTML(c, http.StatusOK, "section_edit.html", gin.H{
		"title":       title,
		"section":     section,
		"typeOptions": view.SectionTypeOptions(),
	})
}

// SaveSection 创建或更新栏目。
func (a *API) SaveSection(c *gin.Context) {
	input := cms.SectionInput{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Slug:        strings.TrimSpace(c.PostForm("slug")),
		SectionType: c.PostForm("section_type"),
		Description: c.PostForm("description"),
		IsActive:    c.PostForm("is_active") != "",
		Order:       parsePositiveInt(c.PostForm("order"), 0),
		ShowInNav:   c.PostForm("show_in_nav") != "",
		NavTitle:    strings.TrimSpace(c.PostForm("nav_title")),
	}

	var err error
	if raw := c.Param("id"); raw != "" {
		var id uint
		if id, err = parseUintParam(c, "id"); err != nil {
			respondError(c, http.StatusBadRequest, "无效的栏目编号")
			return
		}
		_, err = a.client(c).UpdateSection(c.Request.Context(), id, input)
	} else {
		_, err = a.client(c).CreateSection(c.Request.Context(), input)
	}
	if err != nil {
		a.renderHTML(c, backendStatus(err), "form_error.html", gin.H{
			"error": backendMessage(err, "保存失败，请稍后重试"),
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin/sections")
}

// DeleteSection 删除栏目，成功返回空片段由 HTMX 移除对应行。
func (a *API) DeleteSection(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的栏目编号")
		return
	}

	if err := a.client(c).DeleteSection(c.Request.Context(), id); err != nil {
		a.log.Warn("删除栏目失败", zap.Uint("section", id), zap.Error(err))
		respondError(c, backendStatus(err), backendMessage(err, "删除失败，请稍后重试"))
		return
	}
	c.String(http.StatusOK, "")
}
