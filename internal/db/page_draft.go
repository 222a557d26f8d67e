package db

import "time"

// PageDraft 是页面表单在本机暂存的工作副本，主键为随机 UUID。
// 草稿内容从不发送给内容后端，提交成功或放弃后整行删除。
type PageDraft struct {
	ID        string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// 编辑已有页面时记录其后端 ID，新建时为 0。
	PageID uint

	Title           string
	Slug            string
	Status          string
	Content         string `gorm:"type:text"`
	Excerpt         string
	FeaturedImage   string
	SectionID       uint
	TemplateName    string
	RequiresAuth    bool
	MetaTitle       string
	MetaDescription string
	CanonicalURL    string
	OGTitle         string
	OGDescription   string `gorm:"type:text"`
	RobotsTxt       string

	// 派生字段的触碰标记，置位后在本草稿生命周期内不再回落。
	SlugTouched      bool
	MetaTitleTouched bool
}

// TableName 指定自定义表名。
func (PageDraft) TableName() string {
	return "page_drafts"
}
