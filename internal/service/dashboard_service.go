package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/stagefront/internal/cms"
)

const recentLimit = 5

// Dashboard carries the numbers and recent entries for the admin
// landing screen. Counts follow the length of each fetched list; a
// failed fetch contributes zero instead of blocking the screen.
type Dashboard struct {
	PageCount  int
	PostCount  int
	BlockCount int
	MediaCount int

	RecentPages []cms.Page
	RecentPosts []cms.BlogPost
}

// DashboardService aggregates summary data from the content backend.
type DashboardService struct {
	log *zap.Logger
}

// NewDashboardService returns a new DashboardService instance.
func NewDashboardService(log *zap.Logger) *DashboardService {
	return &DashboardService{log: log}
}

// Load issues the four list requests concurrently and waits for all of
// them to settle before returning. Each goroutine writes its own
// fields only; a failing request is logged and leaves them at zero.
func (s *DashboardService) Load(ctx context.Context, api *cms.Client) Dashboard {
	var (
		dash Dashboard
		wg   sync.WaitGroup
	)

	wg.Add(4)

	go func() {
		defer wg.Done()
		col, err := api.ListPages(ctx)
		if err != nil {
			s.logZero("pages", err)
			return
		}
		dash.PageCount = col.Size()
		dash.RecentPages = head(col.Results, recentLimit)
	}()

	go func() {
		defer wg.Done()
		col, err := api.ListPosts(ctx)
		if err != nil {
			s.logZero("posts", err)
			return
		}
		dash.PostCount = col.Size()
		dash.RecentPosts = head(col.Results, recentLimit)
	}()

	go func() {
		defer wg.Done()
		col, err := api.ListBlocks(ctx)
		if err != nil {
			s.logZero("blocks", err)
			return
		}
		dash.BlockCount = col.Size()
	}()

	go func() {
		defer wg.Done()
		col, err := api.ListMedia(ctx)
		if err != nil {
			s.logZero("media", err)
			return
		}
		dash.MediaCount = col.Size()
	}()

	wg.Wait()
	return dash
}

func (s *DashboardService) logZero(resource string, err error) {
	s.log.Warn("统计拉取失败，该项按 0 渲染", zap.String("resource", resource), zap.Error(err))
}

func head[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
