package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stagefront/internal/cms"
	"github.com/stagefront/internal/config"
	"github.com/stagefront/internal/service"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	api       *cms.Client
	sessions  *service.SessionService
	drafts    *service.DraftService
	uploads   *service.UploadService
	dashboard *service.DashboardService
	log       *zap.Logger

	siteName    string
	siteBaseURL string
}

const clientContextKey = "__cms_client"

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, client *cms.Client, cfg config.Config, log *zap.Logger) *API {
	return &API{
		api:         client,
		sessions:    service.NewSessionService(client),
		drafts:      service.NewDraftService(gdb),
		uploads:     service.NewUploadService(cfg.PreviewDir, cfg.PreviewURLPath, cfg.UploadMaxBytes, log),
		dashboard:   service.NewDashboardService(log),
		log:         log,
		siteName:    cfg.SiteName,
		siteBaseURL: cfg.SiteBaseURL,
	}
}

// Drafts exposes the draft service for the cron wiring in main.
func (a *API) Drafts() *service.DraftService {
	return a.drafts
}

// Uploads exposes the upload service for the cron wiring in main.
func (a *API) Uploads() *service.UploadService {
	return a.uploads
}

// client 返回绑定了当前会话令牌的后端客户端；
// 未登录的公共请求回落到匿名客户端。
func (a *API) client(c *gin.Context) *cms.Client {
	if cached, exists := c.Get(clientContextKey); exists {
		if scoped, ok := cached.(*cms.Client); ok {
			return scoped
		}
	}
	return a.api
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		payload["site"] = gin.H{
			"name":    a.siteName,
			"baseUrl": a.siteBaseURL,
		}
	}
	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = a.siteName
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = time.Now().Year()
	}

	c.HTML(status, template, payload)
}
