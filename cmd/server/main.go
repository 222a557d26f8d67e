package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/stagefront/internal/cms"
	"github.com/stagefront/internal/config"
	"github.com/stagefront/internal/db"
	"github.com/stagefront/internal/handler"
	"github.com/stagefront/internal/router"
)

var (
	reapedDraftsCounter  prometheus.Counter
	sweptPreviewsCounter prometheus.Counter
)

func init() {
	reapedDraftsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stagefront_reaped_drafts_total",
			Help: "Total number of stale page drafts removed by the cleanup job.",
		},
	)
	sweptPreviewsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stagefront_swept_previews_total",
			Help: "Total number of orphaned preview files removed by the cleanup job.",
		},
	)
	prometheus.MustRegister(reapedDraftsCounter, sweptPreviewsCounter)
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("加载配置失败", zap.Error(err))
	}
	gin.SetMode(cfg.GinMode)

	// 初始化本地草稿库
	if err := db.Init(cfg.DraftDBPath); err != nil {
		logging.Fatal("初始化数据库失败", zap.Error(err))
	}

	client := cms.New(cfg.APIBaseURL, cfg.APITimeout, logging)
	api := handler.NewAPI(db.DB, client, *cfg, logging)

	// 定时清理过期草稿和无主预览图
	cronScheduler := cron.New()
	_, err = cronScheduler.AddFunc(cfg.CleanupCron, func() {
		reaped, err := api.Drafts().ReapStale(cfg.DraftTTL)
		if err != nil {
			logging.Error("清理过期草稿失败", zap.Error(err))
		} else if reaped > 0 {
			logging.Info("已清理过期草稿", zap.Int64("count", reaped))
			reapedDraftsCounter.Add(float64(reaped))
		}

		swept, err := api.Uploads().SweepPreviews(cfg.DraftTTL)
		if err != nil {
			logging.Error("清理预览图失败", zap.Error(err))
		} else if swept > 0 {
			logging.Info("已清理预览图", zap.Int("count", swept))
			sweptPreviewsCounter.Add(float64(swept))
		}
	})
	if err != nil {
		logging.Fatal("注册清理任务失败", zap.Error(err))
	}
	cronScheduler.Start()

	r := router.SetupRouter(api, cfg)

	logging.Info("启动服务", zap.String("addr", cfg.ListenAddr))
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("服务异常退出", zap.Error(err))
	}
}
