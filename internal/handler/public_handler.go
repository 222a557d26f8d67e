package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"github.com/stagefront/internal/cms"
)

var (
	// WithUnsafe 让嵌入播放器的原始 HTML 通过渲染，安全由 sanitizer 兜底。
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
	)
	sanitizer = buildContentSanitizer()
)

// ShowHome renders the public landing page: hero block, nav sections,
// featured posts.
func (a *API) ShowHome(c *gin.Context) {
	ctx := c.Request.Context()
	nav := a.publicNav(c)

	var (
		hero        *cms.Block
		heroContent template.HTML
	)
	if block, err := a.api.PublicBlockByIdentifier(ctx, "hero"); err == nil {
		hero = &block
		if rendered, renderErr := renderMarkdown(block.Content); renderErr == nil {
			heroContent = rendered
		}
	} else if !cms.IsNotFound(err) {
		a.log.Warn("获取首页内容块失败", zap.Error(err))
	}

	posts, err := a.api.PublicPosts(ctx, cms.PostFilter{Featured: true})
	if err != nil {
		a.log.Warn("获取精选文章失败", zap.Error(err))
	}

	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title":       a.siteName,
		"nav":         nav,
		"hero":        hero,
		"heroContent": heroContent,
		"posts":       posts.Results,
	})
}

// ShowSection renders one nav section with its published pages.
func (a *API) ShowSection(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	nav := a.publicNav(c)

	var current *cms.Section
	for i := range nav {
		if nav[i].Slug == slug {
			current = &nav[i]
			break
		}
	}
	if current == nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	pages, err := a.api.PublicPages(c.Request.Context(), slug)
	if err != nil {
		a.log.Warn("获取栏目页面失败", zap.String("section", slug), zap.Error(err))
	}

	a.renderHTML(c, http.StatusOK, "section.html", gin.H{
		"title":   current.DisplayName,
		"nav":     nav,
		"section": current,
		"pages":   pages.Results,
	})
}

// ShowPage renders a published page with markdown content and its SEO
// fields in the document head.
func (a *API) ShowPage(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	page, err := a.api.PublicPageBySlug(c.Request.Context(), slug)
	if err != nil {
		if cms.IsNotFound(err) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		a.log.Warn("获取页面失败", zap.String("slug", slug), zap.Error(err))
		a.renderHTML(c, http.StatusBadGateway, "error.html", gin.H{
			"title": "出错了",
			"error": "页面暂时无法展示，请稍后再试",
		})
		return
	}

	content, err := renderMarkdown(page.Content)
	if err != nil {
		a.log.Warn("渲染页面内容失败", zap.String("slug", slug), zap.Error(err))
		content = template.HTML("")
	}

	a.renderHTML(c, http.StatusOK, "page.html", gin.H{
		"title":   page.Title,
		"nav":     a.publicNav(c),
		"page":    page,
		"content": content,
		"meta":    pageMeta(page),
	})
}

// ShowBlog renders the blog index. The public blog endpoint filters by
// category on the backend side.
func (a *API) ShowBlog(c *gin.Context) {
	ctx := c.Request.Context()
	category := strings.TrimSpace(c.Query("category"))

	posts, err := a.api.PublicPosts(ctx, cms.PostFilter{Category: category})
	if err != nil {
		a.log.Warn("获取博客列表失败", zap.Error(err))
	}

	categories, err := a.api.PostCategories(ctx)
	if err != nil {
		a.log.Warn("获取博客分类失败", zap.Error(err))
	}

	a.renderHTML(c, http.StatusOK, "blog.html", gin.H{
		"title":      "Blog",
		"nav":        a.publicNav(c),
		"posts":      posts.Results,
		"categories": categories,
		"category":   category,
	})
}

// ShowBlogPost renders one published post.
func (a *API) ShowBlogPost(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	post, err := a.api.PublicPostBySlug(c.Request.Context(), slug)
	if err != nil {
		if cms.IsNotFound(err) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		a.log.Warn("获取文章失败", zap.String("slug", slug), zap.Error(err))
		a.renderHTML(c, http.StatusBadGateway, "error.html", gin.H{
			"title": "出错了",
			"error": "文章暂时无法展示，请稍后再试",
		})
		return
	}

	content, err := renderMarkdown(post.Content)
	if err != nil {
		a.log.Warn("渲染文章内容失败", zap.String("slug", slug), zap.Error(err))
		content = template.HTML("")
	}

	a.renderHTML(c, http.StatusOK, "blog_post.html", gin.H{
		"title":   post.Title,
		"nav":     a.publicNav(c),
		"post":    post,
		"content": content,
		"meta":    postMeta(post),
	})
}

// publicNav 拉取导航栏目，失败时记日志并按空导航渲染。
func (a *API) publicNav(c *gin.Context) []cms.Section {
	sections, err := a.api.PublicSections(c.Request.Context())
	if err != nil {
		a.log.Warn("获取导航栏目失败", zap.Error(err))
		return nil
	}
	nav := make([]cms.Section, 0, len(sections))
	for _, section := range sections {
		if section.ShowInNav {
			nav = append(nav, section)
		}
	}
	return nav
}

// renderMarkdown 将正文 markdown 转成净化后的 HTML，
// 独立成行的媒体链接先替换为嵌入播放器。
func renderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(applyMediaEmbeds(content)), &buf); err != nil {
		return "", err
	}
	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}

func pageMeta(page cms.Page) gin.H {
	metaTitle := page.MetaTitle
	if metaTitle == "" {
		metaTitle = page.Title
	}
	ogTitle := page.OGTitle
	if ogTitle == "" {
		ogTitle = metaTitle
	}
	return gin.H{
		"metaTitle":       metaTitle,
		"metaDescription": page.MetaDescription,
		"canonicalUrl":    page.CanonicalURL,
		"robots":          page.RobotsTxt,
		"ogTitle":         ogTitle,
		"ogDescription":   page.OGDescription,
		"ogImage":         page.FeaturedImageURL,
	}
}

func postMeta(post cms.BlogPost) gin.H {
	metaTitle := post.MetaTitle
	if metaTitle == "" {
		metaTitle = post.Title
	}
	return gin.H{
		"metaTitle":       metaTitle,
		"metaDescription": post.MetaDescription,
		"robots":          post.RobotsTxt,
		"ogTitle":         metaTitle,
		"ogDescription":   post.Excerpt,
		"ogImage":         post.FeaturedImageURL,
	}
}
