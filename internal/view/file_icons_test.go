package view

import (
	"strings"
	"testing"
)

func TestFileTypeIconSVG(t *testing.T) {
	t.Parallel()

	for _, fileType := range []string{"image", "audio", "video", "document"} {
		svg := FileTypeIconSVG(fileType)
		if !strings.HasPrefix(svg, "<svg") {
			t.Errorf("FileTypeIconSVG(%q) 不是 SVG: %q", fileType, svg)
		}
		if svg == defaultFileIcon.SVG {
			t.Errorf("FileTypeIconSVG(%q) 落到了默认图标", fileType)
		}
	}

	// 未知类型、空值和大小写混排都回退到默认图标
	for _, fileType := range []string{"", "archive", " Image "} {
		svg := FileTypeIconSVG(fileType)
		if !strings.HasPrefix(svg, "<svg") {
			t.Errorf("FileTypeIconSVG(%q) 不是 SVG: %q", fileType, svg)
		}
	}
	if FileTypeIconSVG("archive") != defaultFileIcon.SVG {
		t.Error("未知类型应使用默认图标")
	}
	if FileTypeIconSVG("IMAGE") == defaultFileIcon.SVG {
		t.Error("类型匹配应忽略大小写")
	}
}

func TestFileTypeLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fileType string
		want     string
	}{
		{fileType: "image", want: "图片"},
		{fileType: "audio", want: "音频"},
		{fileType: "video", want: "视频"},
		{fileType: "document", want: "文档"},
		{fileType: "other", want: "文件"},
		{fileType: "archive", want: "文件"},
		{fileType: "", want: "文件"},
	}

	for _, tt := range tests {
		if got := FileTypeLabel(tt.fileType); got != tt.want {
			t.Errorf("FileTypeLabel(%q) = %q, want %q", tt.fileType, got, tt.want)
		}
	}
}
