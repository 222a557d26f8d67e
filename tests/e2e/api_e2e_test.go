package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/stagefront/internal/cms"
	"github.com/stagefront/internal/config"
	"github.com/stagefront/internal/db"
	"github.com/stagefront/internal/handler"
	"github.com/stagefront/internal/router"
)

const (
	e2eUsername  = "admin"
	e2ePassword  = "e2e-secret"
	e2eJWTSecret = "e2e-signing-secret"
)

// fakeCMS 模拟内容后端：登录发 JWT，页面增删落在内存里，
// 其余集合返回固定内容。
type fakeCMS struct {
	mu       sync.Mutex
	pages    []map[string]interface{}
	nextID   int
	lastPage map[string]interface{}
}

func (f *fakeCMS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")

	switch {
	case path == "/api/v1/auth/login/" && r.Method == http.MethodPost:
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Username != e2eUsername || creds.Password != e2ePassword {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"用户名或密码错误"}`))
			return
		}
		token := mintAccessToken()
		json.NewEncoder(w).Encode(map[string]string{"access": token, "refresh": "e2e-refresh"})

	case path == "/api/v1/content/pages/" && r.Method == http.MethodGet:
		f.mu.Lock()
		defer f.mu.Unlock()
		writeEnvelope(w, f.pages)

	case path == "/api/v1/content/pages/" && r.Method == http.MethodPost:
		var created map[string]interface{}
		json.NewDecoder(r.Body).Decode(&created)
		f.mu.Lock()
		f.nextID++
		created["id"] = f.nextID
		f.pages = append(f.pages, created)
		f.lastPage = created
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)

	case strings.HasPrefix(path, "/api/v1/content/pages/") && r.Method == http.MethodDelete:
		f.mu.Lock()
		f.pages = nil
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)

	case path == "/api/v1/content/sections/" && r.Method == http.MethodGet:
		writeEnvelope(w, []map[string]interface{}{e2eSection()})

	case path == "/api/v1/content/sections/public/" && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode([]map[string]interface{}{e2eSection()})

	case path == "/api/v1/content/blocks/hero/public/" && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":         1,
			"name":       "首页大图",
			"title":      "新专辑《夜航》现已上线",
			"identifier": "hero",
			"content":    "十首新歌，全平台上线。\n\nhttps://soundcloud.com/forss/flickermood",
			"is_active":  true,
		})

	case path == "/api/v1/content/blog/list_public/" && r.Method == http.MethodGet:
		writeEnvelope(w, []map[string]interface{}{{
			"id": 1, "title": "新专辑《夜航》发行", "slug": "night-flight-release",
			"excerpt": "两年打磨的十首歌。", "category": "releases", "is_featured": true,
			"read_time_minutes": 3,
		}})

	case path == "/api/v1/content/blog/" && r.Method == http.MethodGet,
		path == "/api/v1/content/blocks/" && r.Method == http.MethodGet,
		path == "/api/v1/media/" && r.Method == http.MethodGet:
		writeEnvelope(w, nil)

	case path == "/api/v1/media/" && r.Method == http.MethodPost:
		if err := r.ParseMultipartForm(4 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"上传表单不合法"}`))
			return
		}
		_, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"缺少文件"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 9, "title": header.Filename, "file": "media/e2e/" + header.Filename,
			"file_type": "image", "file_size": header.Size,
		})

	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"未找到。"}`))
	}
}

func e2eSection() map[string]interface{} {
	return map[string]interface{}{
		"id": 1, "name": "巡演", "slug": "tour", "section_type": "custom",
		"order": 1, "show_in_nav": true, "is_active": true,
	}
}

func writeEnvelope(w http.ResponseWriter, results []map[string]interface{}) {
	if results == nil {
		results = []map[string]interface{}{}
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"count": len(results), "next": nil, "previous": nil, "results": results,
	})
}

// mintAccessToken 生成未来一小时内有效的访问令牌，
// 会话层只读 exp 声明，不校验签名。
func mintAccessToken() string {
	claims := jwt.MapClaims{
		"token_type": "access",
		"user_id":    1,
		"username":   e2eUsername,
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(e2eJWTSecret))
	return token
}

type e2eSuite struct {
	backend *fakeCMS
	public  httpClient
	admin   httpClient
	baseURL string
}

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// 路由加载 web/template 与 web/static 的真实文件。
	t.Chdir("../..")

	gdb, err := gorm.Open(sqlite.Open("file:e2e-suite?mode=memory&cache=shared"), &gorm.Config{
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
	if err := gdb.AutoMigrate(&db.PageDraft{}); err != nil {
		t.Fatalf("迁移草稿表失败: %v", err)
	}

	backend := &fakeCMS{}
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	cfg := config.Config{
		SessionSecret:  "e2e-session-secret",
		APIBaseURL:     server.URL + "/api/v1/",
		APITimeout:     5 * time.Second,
		UploadMaxBytes: 1 << 20,
		PreviewDir:     t.TempDir(),
		PreviewURLPath: "/static/previews",
		SiteName:       "StageFront",
		SiteBaseURL:    "http://stagefront.test",
	}

	client := cms.New(cfg.APIBaseURL, cfg.APITimeout, zap.NewNop())
	api := handler.NewAPI(gdb, client, cfg, zap.NewNop())
	engine := router.SetupRouter(api, &cfg)

	return &e2eSuite{
		backend: backend,
		public:  newLocalClient(engine, false),
		admin:   newLocalClient(engine, true),
		baseURL: "http://stagefront.test",
	}
}

func TestE2EEditorialFlow(t *testing.T) {
	suite := newE2ESuite(t)

	t.Run("public site", suite.testPublicSite)

	suite.login(t)
	t.Run("page lifecycle", suite.testPageLifecycle)
	t.Run("logout", suite.testLogout)
}

func (s *e2eSuite) login(t *testing.T) {
	t.Helper()
	form := url.Values{
		"username": {e2eUsername},
		"password": {e2ePassword},
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/admin/login", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("构造登录请求失败: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.admin.Do(req)
	if err != nil {
		t.Fatalf("登录请求失败: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("登录应重定向, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	if loc := resp.Header.Get("Location"); loc != "/admin/dashboard" {
		t.Fatalf("登录后应进入面板, got %q", loc)
	}
}

func (s *e2eSuite) testPublicSite(t *testing.T) {
	resp := s.mustRequest(t, s.public, http.MethodGet, "/", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("首页应返回 200, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "新专辑《夜航》现已上线") {
		t.Fatalf("首页缺少 hero 标题: %s", body)
	}
	// 独立成行的 SoundCloud 链接渲染成嵌入播放器。
	if !strings.Contains(body, "w.soundcloud.com/player") {
		t.Fatalf("首页缺少嵌入播放器: %s", body)
	}
	if !strings.Contains(body, "新专辑《夜航》发行") {
		t.Fatalf("首页缺少精选文章: %s", body)
	}
	if !strings.Contains(body, "/sections/tour") {
		t.Fatalf("首页导航缺少栏目链接: %s", body)
	}

	resp = s.mustRequest(t, s.public, http.MethodGet, "/healthz", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz 应返回 200, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, `"status":"ok"`) {
		t.Fatalf("healthz 响应不符: %s", body)
	}

	resp = s.mustRequest(t, s.public, http.MethodGet, "/admin/pages", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("匿名访问后台应重定向, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testPageLifecycle(t *testing.T) {
	resp := s.mustRequest(t, s.admin, http.MethodGet, "/admin/dashboard", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("面板应返回 200, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, "管理面板") {
		t.Fatalf("面板缺少标题: %s", body)
	}

	// 新建页面先落一份本地草稿。
	resp = s.mustRequest(t, s.admin, http.MethodGet, "/admin/pages/new", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("新建页面应跳转编辑器, got %d", resp.StatusCode)
	}
	draftPath := resp.Header.Get("Location")
	if !strings.HasPrefix(draftPath, "/admin/pages/drafts/") {
		t.Fatalf("编辑器地址不符: %q", draftPath)
	}

	resp = s.mustRequest(t, s.admin, http.MethodGet, draftPath, nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("编辑器应返回 200, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, "新建页面") {
		t.Fatalf("编辑器缺少标题: %s", body)
	}

	// 标题自动保存返回派生字段片段，slug 跟随标题。
	resp = s.mustRequest(t, s.admin, http.MethodPost, draftPath+"/fields",
		strings.NewReader("title=Band Bio"),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("字段保存应返回 200, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, `value="band-bio"`) {
		t.Fatalf("派生片段缺少 slug: %s", body)
	}

	// 上传特色图：本地校验通过后转发到后端，片段展示返回的定位串。
	resp = s.uploadDraftImage(t, draftPath)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("上传应返回 200, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	if body := readBody(t, resp); !strings.Contains(body, "media/e2e/cover.png") {
		t.Fatalf("图片组件缺少后端定位串: %s", body)
	}

	// 整单提交后草稿删除，页面落到后端。
	form := url.Values{
		"title":         {"Band Bio"},
		"slug":          {"band-bio"},
		"meta_title":    {"Band Bio"},
		"status":        {"published"},
		"content":       {"## 我们是谁\n\n四个人，两把吉他。"},
		"excerpt":       {"乐队简介"},
		"section_id":    {"1"},
		"template_name": {"default"},
		"robots_txt":    {"index, follow"},
	}
	resp = s.mustRequest(t, s.admin, http.MethodPost, draftPath,
		strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("提交应重定向列表, got %d: %s", resp.StatusCode, readBody(t, resp))
	}

	s.backend.mu.Lock()
	created := s.backend.lastPage
	s.backend.mu.Unlock()
	if created == nil {
		t.Fatal("后端未收到创建请求")
	}
	if created["title"] != "Band Bio" || created["slug"] != "band-bio" {
		t.Fatalf("创建载荷不符: %v", created)
	}
	if created["featured_image"] != "media/e2e/cover.png" {
		t.Fatalf("特色图定位串未透传: %v", created["featured_image"])
	}

	// 草稿已删除，编辑器地址失效。
	resp = s.mustRequest(t, s.admin, http.MethodGet, draftPath, nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("提交后的草稿应 404, got %d", resp.StatusCode)
	}

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/admin/pages", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("页面列表应返回 200, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Band Bio") {
		t.Fatalf("列表缺少新页面: %s", body)
	}

	resp = s.mustRequest(t, s.admin, http.MethodDelete, "/admin/api/pages/1", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("删除应返回 200, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); body != "" {
		t.Fatalf("删除成功应返回空片段, got %q", body)
	}
}

func (s *e2eSuite) testLogout(t *testing.T) {
	resp := s.mustRequest(t, s.admin, http.MethodGet, "/admin/logout", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("退出应重定向, got %d", resp.StatusCode)
	}

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/admin/pages", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("退出后访问后台应重定向登录, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin/login" {
		t.Fatalf("重定向目标错误: %q", loc)
	}
}

func (s *e2eSuite) uploadDraftImage(t *testing.T, draftPath string) *http.Response {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("编码 PNG 失败: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, "image", "cover.png"))
	partHeader.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		t.Fatalf("构造上传表单失败: %v", err)
	}
	if _, err := part.Write(buf.Bytes()); err != nil {
		t.Fatalf("写入图片失败: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("关闭表单失败: %v", err)
	}

	headers := map[string]string{"Content-Type": writer.FormDataContentType()}
	return s.mustRequest(t, s.admin, http.MethodPost, draftPath+"/image", body, headers)
}

func (s *e2eSuite) mustRequest(t *testing.T, client httpClient, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		t.Fatalf("构造请求失败 %s %s: %v", method, path, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("请求失败 %s %s: %v", method, path, err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("读取响应失败: %v", err)
	}
	return string(data)
}
