package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stagefront/internal/service"
)

const (
	sessionKeyAccess  = "access_token"
	sessionKeyRefresh = "refresh_token"
	sessionKeyUser    = "username"
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "管理员登录",
	})
}

// Login 处理登录请求，凭证校验完全交给后端
func (a *API) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	tokens, err := a.sessions.LogIn(c.Request.Context(), username, password)
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login_error.html", gin.H{
			"error": backendMessage(err, "用户名或密码错误"),
		})
		return
	}

	// 设置会话
	session := sessions.Default(c)
	session.Set(sessionKeyAccess, tokens.Access)
	session.Set(sessionKeyRefresh, tokens.Refresh)
	session.Set(sessionKeyUser, username)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "login_error.html", gin.H{"error": "会话保存失败"})
		return
	}

	// HTMX 请求用 HX-Redirect 跳转，普通表单提交走 302
	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Redirect", "/admin/dashboard")
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout 处理登出，令牌随会话一起丢弃，后端无需通知
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// ShowDashboard 渲染后台主面板
func (a *API) ShowDashboard(c *gin.Context) {
	stats := a.dashboard.Load(c.Request.Context(), a.client(c))

	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":       "管理面板",
		"username":    currentUsername(c),
		"pageCount":   stats.PageCount,
		"postCount":   stats.PostCount,
		"blockCount":  stats.BlockCount,
		"mediaCount":  stats.MediaCount,
		"recentPages": stats.RecentPages,
		"recentPosts": stats.RecentPosts,
	})
}

// RequireAuth 校验会话令牌的认证中间件，临近过期时在请求前静默续期
func (a *API) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		access, _ := session.Get(sessionKeyAccess).(string)
		refresh, _ := session.Get(sessionKeyRefresh).(string)

		tokens, refreshed, err := a.sessions.Refresh(c.Request.Context(), service.SessionTokens{
			Access:  access,
			Refresh: refresh,
		})
		if err != nil {
			if !errors.Is(err, service.ErrNotAuthenticated) {
				a.log.Warn("刷新会话令牌失败", zap.Error(err))
			}
			session.Clear()
			session.Save()
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}

		if refreshed {
			session.Set(sessionKeyAccess, tokens.Access)
			session.Set(sessionKeyRefresh, tokens.Refresh)
			if err := session.Save(); err != nil {
				a.log.Warn("保存续期令牌失败", zap.Error(err))
			}
		}

		c.Set(clientContextKey, a.sessions.Client(tokens))
		c.Next()
	}
}

func currentUsername(c *gin.Context) string {
	name, _ := sessions.Default(c).Get(sessionKeyUser).(string)
	return name
}
