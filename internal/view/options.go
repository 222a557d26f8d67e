package view

// Option pairs a stored value with its admin display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var (
	pageStatusDefinitions = []Option{
		{Value: "draft", Label: "草稿"},
		{Value: "published", Label: "已发布"},
		{Value: "archived", Label: "已归档"},
	}
	postStatusDefinitions = []Option{
		{Value: "draft", Label: "草稿"},
		{Value: "published", Label: "已发布"},
		{Value: "scheduled", Label: "定时发布"},
		{Value: "archived", Label: "已归档"},
	}
	templateDefinitions = []Option{
		{Value: "default", Label: "默认模板"},
		{Value: "landing", Label: "落地页"},
		{Value: "full-width", Label: "通栏布局"},
		{Value: "minimal", Label: "极简"},
	}
	robotsDefinitions = []Option{
		{Value: "index, follow", Label: "允许收录并跟踪链接"},
		{Value: "noindex, follow", Label: "不收录，跟踪链接"},
		{Value: "index, nofollow", Label: "收录，不跟踪链接"},
		{Value: "noindex, nofollow", Label: "不收录也不跟踪"},
	}
	sectionTypeDefinitions = []Option{
		{Value: "home", Label: "首页"},
		{Value: "about", Label: "关于"},
		{Value: "services", Label: "服务"},
		{Value: "blog", Label: "博客"},
		{Value: "contact", Label: "联系"},
		{Value: "custom", Label: "自定义栏目"},
	}
	blockTypeDefinitions = []Option{
		{Value: "text", Label: "文本块"},
		{Value: "image", Label: "图片块"},
		{Value: "video", Label: "视频块"},
		{Value: "gallery", Label: "图集"},
		{Value: "testimonial", Label: "用户评价"},
		{Value: "cta", Label: "行动号召"},
		{Value: "custom", Label: "自定义 HTML"},
	}

	statusLabelLookup = func() map[string]string {
		lookup := make(map[string]string, len(postStatusDefinitions))
		for _, option := range postStatusDefinitions {
			lookup[option.Value] = option.Label
		}
		return lookup
	}()
	sectionTypeLookup = buildOptionLookup(sectionTypeDefinitions)
	blockTypeLookup   = buildOptionLookup(blockTypeDefinitions)
)

func buildOptionLookup(options []Option) map[string]string {
	lookup := make(map[string]string, len(options))
	for _, option := range options {
		lookup[option.Value] = option.Label
	}
	return lookup
}

func cloneOptions(options []Option) []Option {
	clones := make([]Option, len(options))
	copy(clones, options)
	return clones
}

// PageStatusOptions exposes the selectable page statuses for admin forms.
func PageStatusOptions() []Option {
	return cloneOptions(pageStatusDefinitions)
}

// PostStatusOptions exposes the selectable blog post statuses for admin forms.
func PostStatusOptions() []Option {
	return cloneOptions(postStatusDefinitions)
}

// TemplateOptions exposes the selectable page templates for admin forms.
func TemplateOptions() []Option {
	return cloneOptions(templateDefinitions)
}

// RobotsOptions exposes the selectable robots directives for admin forms.
func RobotsOptions() []Option {
	return cloneOptions(robotsDefinitions)
}

// SectionTypeOptions exposes the selectable section types for admin forms.
func SectionTypeOptions() []Option {
	return cloneOptions(sectionTypeDefinitions)
}

// BlockTypeOptions exposes the selectable block types for admin forms.
func BlockTypeOptions() []Option {
	return cloneOptions(blockTypeDefinitions)
}

// StatusLabel resolves the display label for a page or post status,
// falling back to the raw value for anything unknown.
func StatusLabel(value string) string {
	if label, ok := statusLabelLookup[value]; ok {
		return label
	}
	return value
}

// SectionTypeLabel resolves the display label for a section type.
func SectionTypeLabel(value string) string {
	if label, ok := sectionTypeLookup[value]; ok {
		return label
	}
	return value
}

// BlockTypeLabel resolves the display label for a content block type.
func BlockTypeLabel(value string) string {
	if label, ok := blockTypeLookup[value]; ok {
		return label
	}
	return value
}
