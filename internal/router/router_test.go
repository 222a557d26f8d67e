package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/stagefront/internal/cms"
	"github.com/stagefront/internal/config"
	"github.com/stagefront/internal/handler"
)

func setupRouterTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	workDir := t.TempDir()
	templateDir := filepath.Join(workDir, "web", "template", "admin")
	if err := os.MkdirAll(templateDir, 0o755); err != nil {
		t.Fatalf("创建模板目录失败: %v", err)
	}
	loginTemplate := `<h1>{{.title}}</h1><footer>{{.siteName}} {{.year}}</footer>`
	if err := os.WriteFile(filepath.Join(templateDir, "login.html"), []byte(loginTemplate), 0o644); err != nil {
		t.Fatalf("写入模板失败: %v", err)
	}

	staticDir := filepath.Join(workDir, "web", "static")
	if err := os.MkdirAll(staticDir, 0o755); err != nil {
		t.Fatalf("创建静态目录失败: %v", err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "site.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatalf("写入静态文件失败: %v", err)
	}

	t.Chdir(workDir)

	gdb, err := gorm.Open(sqlite.Open("file:router-test?mode=memory&cache=shared"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(backend.Close)

	cfg := config.Config{
		SessionSecret:  "router-test-secret",
		APIBaseURL:     backend.URL + "/api/v1/",
		UploadMaxBytes: 1024,
		PreviewDir:     filepath.Join(staticDir, "previews"),
		PreviewURLPath: "/static/previews",
		SiteName:       "StageFront",
		SiteBaseURL:    "http://localhost:8080",
	}

	client := cms.New(cfg.APIBaseURL, 2*time.Second, zap.NewNop())
	api := handler.NewAPI(gdb, client, cfg, zap.NewNop())

	return SetupRouter(api, &cfg)
}

func TestSetupRouterRedirectsAnonymousAdmin(t *testing.T) {
	r := setupRouterTest(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/pages", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("未登录访问后台应重定向, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/admin/login" {
		t.Fatalf("重定向目标错误: %q", loc)
	}
}

func TestSetupRouterRendersLoginPage(t *testing.T) {
	r := setupRouterTest(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("登录页应返回 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "管理员登录") {
		t.Fatalf("登录页缺少标题: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "StageFront") {
		t.Fatalf("登录页缺少站点名称: %s", rr.Body.String())
	}
}

func TestSetupRouterServesMetrics(t *testing.T) {
	r := setupRouterTest(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics 应返回 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "# HELP") {
		t.Fatalf("metrics 输出缺少指标")
	}
}

func TestSetupRouterReportsHealth(t *testing.T) {
	r := setupRouterTest(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("healthz 应返回 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("healthz 响应不符: %s", rr.Body.String())
	}
}

func TestSetupRouterServesStaticFiles(t *testing.T) {
	r := setupRouterTest(t)

	req := httptest.NewRequest(http.MethodGet, "/static/site.css", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("静态文件应返回 200, got %d", rr.Code)
	}
	if rr.Body.String() != "body{}" {
		t.Fatalf("静态文件内容不符: %q", rr.Body.String())
	}
}
