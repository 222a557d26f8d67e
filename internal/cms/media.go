package cms

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MediaUpload 描述一次待上传的文件。
type MediaUpload struct {
	Filename string
	Body     io.Reader
	Title    string
	Category string
	AltText  string
	Caption  string
}

// ListMedia 拉取媒体库文件列表，最新上传在前。
func (c *Client) ListMedia(ctx context.Context) (Collection[MediaFile], error) {
	var out Collection[MediaFile]
	err := c.do(ctx, http.MethodGet, "media/", nil, nil, &out)
	return out, err
}

// UploadMedia 以 multipart 表单上传文件，成功返回落库后的媒体记录，
// 其 File 字段即后端为该文件分配的存储定位串。
func (c *Client) UploadMedia(ctx context.Context, upload MediaUpload) (MediaFile, error) {
	fields := map[string]string{}
	if upload.Title != "" {
		fields["title"] = upload.Title
	}
	if upload.Category != "" {
		fields["category"] = upload.Category
	}
	if upload.AltText != "" {
		fields["alt_text"] = upload.AltText
	}
	if upload.Caption != "" {
		fields["caption"] = upload.Caption
	}

	var out MediaFile
	err := c.upload(ctx, "media/", "file", upload.Filename, upload.Body, fields, &out)
	return out, err
}

// DeleteMedia 删除媒体文件。
func (c *Client) DeleteMedia(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("media/%d/", id), nil, nil, nil)
}
