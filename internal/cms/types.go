package cms

import "time"

// 内容状态与后端保持同一组取值。
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusScheduled = "scheduled"
	StatusArchived  = "archived"
)

// SectionTypes 为后端接受的栏目类型全集，表单下拉框使用。
var SectionTypes = []string{"home", "about", "services", "blog", "contact", "custom"}

// BlockTypes 为后端接受的内容块类型全集。
var BlockTypes = []string{"text", "image", "video", "gallery", "testimonial", "cta", "custom"}

// Author 是列表/详情响应里嵌套的作者信息。
type Author struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// SectionRef 是页面响应里嵌套的轻量栏目信息。
type SectionRef struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Slug        string `json:"slug"`
	SectionType string `json:"section_type"`
}

// Section 对应后端的内容栏目资源。
type Section struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	SectionType string    `json:"section_type"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	Order       int       `json:"order"`
	ShowInNav   bool      `json:"show_in_nav"`
	NavTitle    string    `json:"nav_title"`
	DisplayName string    `json:"display_name"`
	PageCount   int       `json:"page_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SectionInput 是创建/更新栏目时提交的可写字段。
type SectionInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	SectionType string `json:"section_type"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
	Order       int    `json:"order"`
	ShowInNav   bool   `json:"show_in_nav"`
	NavTitle    string `json:"nav_title,omitempty"`
}

// Page 对应后端的页面资源，列表与详情共用同一结构，
// 列表响应缺失的字段保持零值。
type Page struct {
	ID               uint        `json:"id"`
	Title            string      `json:"title"`
	Slug             string      `json:"slug"`
	Status           string      `json:"status"`
	Content          string      `json:"content"`
	Excerpt          string      `json:"excerpt"`
	FeaturedImage    string      `json:"featured_image"`
	FeaturedImageURL string      `json:"featured_image_url"`
	Section          *SectionRef `json:"section"`
	TemplateName     string      `json:"template_name"`
	Author           *Author     `json:"author"`
	PublishedAt      *time.Time  `json:"published_at"`
	RequiresAuth     bool        `json:"requires_auth"`
	IsPublished      bool        `json:"is_published"`
	AbsoluteURL      string      `json:"absolute_url"`

	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	CanonicalURL    string `json:"canonical_url"`
	OGTitle         string `json:"og_title"`
	OGDescription   string `json:"og_description"`
	RobotsTxt       string `json:"robots_txt"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SectionName 返回页面所属栏目的展示名，无栏目时为空串。
func (p Page) SectionName() string {
	if p.Section == nil {
		return ""
	}
	if p.Section.DisplayName != "" {
		return p.Section.DisplayName
	}
	return p.Section.Name
}

// PageInput 是创建/更新页面时提交的可写字段。
// 后端用 section_id 关联栏目，meta_title 与 meta_description 必填。
type PageInput struct {
	Title           string `json:"title"`
	Slug            string `json:"slug,omitempty"`
	Status          string `json:"status"`
	Content         string `json:"content"`
	Excerpt         string `json:"excerpt,omitempty"`
	FeaturedImage   string `json:"featured_image,omitempty"`
	SectionID       uint   `json:"section_id"`
	TemplateName    string `json:"template_name,omitempty"`
	RequiresAuth    bool   `json:"requires_auth"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	CanonicalURL    string `json:"canonical_url,omitempty"`
	OGTitle         string `json:"og_title,omitempty"`
	OGDescription   string `json:"og_description,omitempty"`
	RobotsTxt       string `json:"robots_txt,omitempty"`
}

// BlogPost 对应后端的博客文章资源。
type BlogPost struct {
	ID               uint       `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Status           string     `json:"status"`
	Content          string     `json:"content"`
	Excerpt          string     `json:"excerpt"`
	FeaturedImageURL string     `json:"featured_image_url"`
	Tags             string     `json:"tags"`
	TagList          []string   `json:"tag_list"`
	Category         string     `json:"category"`
	Author           *Author    `json:"author"`
	PublishedAt      *time.Time `json:"published_at"`
	ScheduledFor     *time.Time `json:"scheduled_for"`
	AllowComments    bool       `json:"allow_comments"`
	IsFeatured       bool       `json:"is_featured"`
	ReadTimeMinutes  int        `json:"read_time_minutes"`
	IsPublished      bool       `json:"is_published"`

	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	RobotsTxt       string `json:"robots_txt"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostInput 是创建/更新博客文章时提交的可写字段。
type PostInput struct {
	Title           string `json:"title"`
	Slug            string `json:"slug,omitempty"`
	Status          string `json:"status"`
	Content         string `json:"content"`
	Excerpt         string `json:"excerpt,omitempty"`
	Tags            string `json:"tags,omitempty"`
	Category        string `json:"category,omitempty"`
	AllowComments   bool   `json:"allow_comments"`
	IsFeatured      bool   `json:"is_featured"`
	ReadTimeMinutes int    `json:"read_time_minutes,omitempty"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	RobotsTxt       string `json:"robots_txt,omitempty"`
}

// Block 对应后端的可复用内容块资源。
type Block struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	BlockType  string    `json:"block_type"`
	Identifier string    `json:"identifier"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"image_url"`
	URL        string    `json:"url"`
	ButtonText string    `json:"button_text"`
	IsActive   bool      `json:"is_active"`
	CSSClasses string    `json:"css_classes"`
	UsageCount int       `json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BlockInput 是创建/更新内容块时提交的可写字段。
type BlockInput struct {
	Name       string `json:"name"`
	BlockType  string `json:"block_type"`
	Identifier string `json:"identifier,omitempty"`
	Title      string `json:"title,omitempty"`
	Content    string `json:"content,omitempty"`
	URL        string `json:"url,omitempty"`
	ButtonText string `json:"button_text,omitempty"`
	IsActive   bool   `json:"is_active"`
	CSSClasses string `json:"css_classes,omitempty"`
}

// MediaFile 对应后端媒体库里的一个文件。
// File 字段即后端存储定位串，表单引用图片时原样记录该值。
type MediaFile struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	File        string    `json:"file"`
	FileType    string    `json:"file_type"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	Tags        string    `json:"tags"`
	AltText     string    `json:"alt_text"`
	Caption     string    `json:"caption"`
	IsPublic    bool      `json:"is_public"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TokenPair 是登录/刷新接口返回的 JWT 令牌对。
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
