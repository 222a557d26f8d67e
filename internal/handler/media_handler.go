package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stagefront/internal/cms"
	"github.com/stagefront/internal/view"
)

// ShowMediaLibrary 渲染媒体库。
func (a *API) ShowMediaLibrary(c *gin.Context) {
	media, err := a.client(c).ListMedia(c.Request.Context())
	if err != nil {
		a.log.Warn("获取媒体列表失败", zap.Error(err))
		a.renderHTML(c, http.StatusOK, "media_list.html", gin.H{
			"title":          "媒体库",
			"error":          "获取媒体列表失败，请稍后重试",
			"maxUploadHuman": view.FileSize(a.uploads.MaxBytes()),
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "media_list.html", gin.H{
		"title":          "媒体库",
		"media":          media.Results,
		"total":          media.Size(),
		"maxUploadHuman": view.FileSize(a.uploads.MaxBytes()),
	})
}

// UploadMediaFile 将文件直接转发到后端媒体库。
// 媒体库不限定图片类型，但沿用同一个大小上限。
func (a *API) UploadMediaFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "未找到上传的文件")
		return
	}
	if file.Size > a.uploads.MaxBytes() {
		respondError(c, http.StatusBadRequest,
			fmt.Sprintf("文件超过大小限制，最大 %s", view.FileSize(a.uploads.MaxBytes())))
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "读取上传文件失败")
		return
	}
	defer src.Close()

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		title = file.Filename
	}

	_, err = a.client(c).UploadMedia(c.Request.Context(), cms.MediaUpload{
		Filename: file.Filename,
		Body:     src,
		Title:    title,
		Category: c.DefaultPostForm("category", "uploads"),
		AltText:  strings.TrimSpace(c.PostForm("alt_text")),
		Caption:  strings.TrimSpace(c.PostForm("caption")),
	})
	if err != nil {
		respondError(c, backendStatus(err), backendMessage(err, "上传失败，请稍后重试"))
		return
	}

	c.Redirect(http.StatusFound, "/admin/media")
}

// DeleteMediaFile 删除媒体文件，成功返回空片段由 HTMX 移除对应卡片。
func (a *API) DeleteMediaFile(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的媒体编号")
		return
	}

	if err := a.client(c).DeleteMedia(c.Request.Context(), id); err != nil {
		a.log.Warn("删除媒体失败", zap.Uint("media", id), zap.Error(err))
		respondError(c, backendStatus(err), backendMessage(err, "删除失败，请稍后重试"))
		return
	}
	c.String(http.StatusOK, "")
}
