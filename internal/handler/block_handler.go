package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stagefront/internal/cms"
	"github.com/stagefront/internal/view"
)

const blockTypeFilterAll = "all"

// ShowBlockList 渲染内容块列表，类型筛选在已取回的集合上完成。
func (a *API) ShowBlockList(c *gin.Context) {
	selected := c.DefaultQuery("type", blockTypeFilterAll)

	blocks, err := a.client(c).ListBlocks(c.Request.Context())
	if err != nil {
		a.log.Warn("获取内容块列表失败", zap.Error(err))
		a.renderHTML(c, http.StatusOK, "block_list.html", gin.H{
			"title":     "内容块管理",
			"error":     "获取内容块列表失败，请稍后重试",
			"blockType": selected,
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "block_list.html", gin.H{
		"title":       "内容块管理",
		"blocks":      filterBlocksByType(blocks.Results, selected),
		"total":       blocks.Size(),
		"typeOptions": view.BlockTypeOptions(),
		"blockType":   selected,
	})
}

func filterBlocksByType(blocks []cms.Block, blockType string) []cms.Block {
	if blockType == "" || blockType == blockTypeFilterAll {
		return blocks
	}
	filtered := make([]cms.Block, 0, len(blocks))
	for _, block := range blocks {
		if block.BlockType == blockType {
			filtered = append(filtered, block)
		}
	}
	return filtered
}

// ShowBlockForm 渲染内容块表单。
func (a *API) ShowBlockForm(c *gin.Context) {
	block := cms.Block{BlockType: "text", IsActive: true}
	title := "新建内容块"

	if raw := c.Param("id"); raw != "" {
		id, err := parseUintParam(c, "id")
		if err != nil {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		block, err = a.client(c).GetBlock(c.Request.Context(), id)
		if err != nil {
			if cms.IsNotFound(err) {
				c.AbortWithStatus(http.StatusNotFound)
				return
			}
			a.renderHTML(c, backendStatus(err), "error.html", gin.H{
				"title": "出错了",
				"error": backendMessage(err, "加载内容块失败，请稍后重试"),
			})
			return
		}
		title = "编辑内容块"
	}

	a.renderHTML(c, http.StatusOK, "block_edit.html", gin.H{
		"title":       title,
		"block":       block,
		"typeOptions": view.BlockTypeOptions(),
	})
}

// SaveBlock 创建或更新内容块。identifier 留空时由后端派生。
func (a *API) SaveBlock(c *gin.Context) {
	input := cms.BlockInput{
		Name:       strings.TrimSpace(c.PostForm("name")),
		BlockType:  c.PostForm("block_type"),
		Identifier: strings.TrimSpace(c.PostForm("identifier")),
		Title:      strings.TrimSpace(c.PostForm("title")),
		Content:    c.PostForm("content"),
		URL:        strings.TrimSpace(c.PostForm("url")),
		ButtonText: strings.TrimSpace(c.PostForm("button_text")),
		IsActive:   c.PostForm("is_active") != "",
		CSSClasses: strings.TrimSpace(c.PostForm("css_classes")),
	}

	var err error
	if raw := c.Param("id"); raw != "" {
		var id uint
		if id, err = parseUintParam(c, "id"); err != nil {
			respondError(c, http.StatusBadRequest, "无效的内容块编号")
			return
		}
		_, err = a.client(c).UpdateBlock(c.Request.Context(), id, input)
	} else {
		_, err = a.client(c).CreateBlock(c.Request.Context(), input)
	}
	if err != nil {
		a.renderHTML(c, backendStatus(err), "form_error.html", gin.H{
			"error": backendMessage(err, "保存失败，请稍后重试"),
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin/blocks")
}

// DeleteBlock 删除内容块，成功返回空片段由 HTMX 移除对应行。
func (a *API) DeleteBlock(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的内容块编号")
		return
	}

	if err := a.client(c).DeleteBlock(c.Request.Context(), id); err != nil {
		a.log.Warn("删除内容块失败", zap.Uint("block", id), zap.Error(err))
		respondError(c, backendStatus(err), backendMessage(err, "删除失败，请稍后重试"))
		return
	}
	c.String(http.StatusOK, "")
}
