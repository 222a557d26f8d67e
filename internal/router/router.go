package router

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stagefront/internal/config"
	"github.com/stagefront/internal/handler"
	"github.com/stagefront/internal/view"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(gzip.Gzip(gzip.BestCompression))

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("stagefront_session", store))

	// 加载模板并添加自定义函数
	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"mul": func(a, b int) int {
			return a * b
		},
		"gt": func(a, b int) bool {
			return a > b
		},
		"lt": func(a, b int) bool {
			return a < b
		},
		"eq": func(a, b interface{}) bool {
			return a == b
		},
		"fileSize":         view.FileSize,
		"statusLabel":      view.StatusLabel,
		"sectionTypeLabel": view.SectionTypeLabel,
		"blockTypeLabel":   view.BlockTypeLabel,
		"fileTypeLabel":    view.FileTypeLabel,
		"fileIcon": func(fileType string) template.HTML {
			return template.HTML(view.FileTypeIconSVG(fileType))
		},
	})
	r.LoadHTMLGlob("web/template/**/*.html")

	// 静态文件服务
	r.Static("/static", "./web/static")
	if !strings.HasPrefix(cfg.PreviewURLPath, "/static/") {
		// 预览目录搬到 /static 之外时需要单独挂载
		r.Static(cfg.PreviewURLPath, cfg.PreviewDir)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 公开站点路由
	r.GET("/", api.ShowHome)
	r.GET("/sections/:slug", api.ShowSection)
	r.GET("/pages/:slug", api.ShowPage)
	r.GET("/blog", api.ShowBlog)
	r.GET("/blog/:slug", api.ShowBlogPost)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(api.RequireAuth())
		{
			auth.GET("/dashboard", api.ShowDashboard)

			auth.GET("/pages", api.ShowPageList)
			auth.GET("/pages/new", api.NewPageDraft)
			auth.GET("/pages/:id/edit", api.EditPageDraft)
			auth.GET("/pages/drafts/:id", api.ShowPageDraft)
			auth.POST("/pages/drafts/:id", api.SubmitPageDraft)
			auth.POST("/pages/drafts/:id/fields", api.UpdateDraftField)
			auth.POST("/pages/drafts/:id/image", api.UploadDraftImage)
			auth.DELETE("/pages/drafts/:id/image", api.RemoveDraftImage)
			auth.POST("/pages/drafts/:id/discard", api.DiscardPageDraft)

			auth.GET("/posts", api.ShowPostList)
			auth.GET("/posts/new", api.ShowPostForm)
			auth.GET("/posts/:id/edit", api.ShowPostForm)
			auth.POST("/posts", api.SavePost)
			auth.POST("/posts/:id", api.SavePost)

			auth.GET("/sections", api.ShowSectionList)
			auth.GET("/sections/new", api.ShowSectionForm)
			auth.GET("/sections/:id/edit", api.ShowSectionForm)
			auth.POST("/sections", api.SaveSection)
			auth.POST("/sections/:id", api.SaveSection)

			auth.GET("/blocks", api.ShowBlockList)
			auth.GET("/blocks/new", api.ShowBlockForm)
			auth.GET("/blocks/:id/edit", api.ShowBlockForm)
			auth.POST("/blocks", api.SaveBlock)
			auth.POST("/blocks/:id", api.SaveBlock)

			auth.GET("/media", api.ShowMediaLibrary)
			auth.POST("/media", api.UploadMediaFile)

			// API路由
			hx := auth.Group("/api")
			{
				hx.DELETE("/pages/:id", api.DeletePage)
				hx.POST("/pages/:id/duplicate", api.DuplicatePage)
				hx.DELETE("/posts/:id", api.DeletePost)
				hx.POST("/posts/:id/duplicate", api.DuplicatePost)
				hx.DELETE("/sections/:id", api.DeleteSection)
				hx.DELETE("/blocks/:id", api.DeleteBlock)
				hx.DELETE("/media/:id", api.DeleteMediaFile)
			}
		}
	}

	return r
}
