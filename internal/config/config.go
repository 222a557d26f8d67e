package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config 汇总运行服务所需的全部配置，缺失项使用默认值。
type Config struct {
	ListenAddr    string `envconfig:"LISTEN_ADDR" default:":8080"`
	GinMode       string `envconfig:"GIN_MODE" default:"release"`
	SessionSecret string `envconfig:"SESSION_SECRET" default:"stagefront-dev-secret"`

	// APIBaseURL 指向承载全部内容数据的 CMS 后端。
	APIBaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:8000/api/v1/"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"15s"`

	// 草稿只落在本地 sqlite，后端永远看不到未提交内容。
	DraftDBPath string        `envconfig:"DRAFT_DB_PATH" default:"stagefront.db"`
	DraftTTL    time.Duration `envconfig:"DRAFT_TTL" default:"72h"`

	UploadMaxBytes int64  `envconfig:"UPLOAD_MAX_BYTES" default:"5242880"`
	PreviewDir     string `envconfig:"PREVIEW_DIR" default:"web/static/previews"`
	PreviewURLPath string `envconfig:"PREVIEW_URL_PATH" default:"/static/previews"`

	CleanupCron string `envconfig:"CLEANUP_CRON" default:"@hourly"`

	SiteName    string `envconfig:"SITE_NAME" default:"StageFront"`
	SiteBaseURL string `envconfig:"SITE_BASE_URL" default:"http://localhost:8080"`
}

// Load 先尝试读取 .env，再从环境变量填充配置。
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if !strings.HasSuffix(cfg.APIBaseURL, "/") {
		cfg.APIBaseURL += "/"
	}

	return &cfg, nil
}
