package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/stagefront/internal/cms"
)

func postListJSON(n int) string {
	items := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, fmt.Sprintf(`{"id":%d,"title":"Post %d","slug":"post-%d"}`, i, i, i))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestDashboardLoadGathersAllResources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/content/pages/":
			// 信封里的 count 可能与分页后的列表不一致，统计以列表长度为准。
			io.WriteString(w, `{"count":99,"next":null,"previous":null,"results":[{"id":1,"title":"Home","slug":"home"},{"id":2,"title":"Bio","slug":"bio"}]}`)
		case "/api/v1/content/blog/":
			io.WriteString(w, postListJSON(7))
		case "/api/v1/content/blocks/":
			io.WriteString(w, `[{"id":1,"title":"Hero","identifier":"hero"}]`)
		case "/api/v1/media/":
			io.WriteString(w, `{"count":3,"next":null,"previous":null,"results":[{"id":1},{"id":2},{"id":3}]}`)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	api := cms.New(srv.URL+"/api/v1/", 2*time.Second, zap.NewNop())

	dash := NewDashboardService(zap.NewNop()).Load(context.Background(), api)

	if dash.PageCount != 2 {
		t.Errorf("expected page count 2 from the result list, got %d", dash.PageCount)
	}
	if dash.PostCount != 7 {
		t.Errorf("expected post count 7, got %d", dash.PostCount)
	}
	if dash.BlockCount != 1 {
		t.Errorf("expected block count 1, got %d", dash.BlockCount)
	}
	if dash.MediaCount != 3 {
		t.Errorf("expected media count 3, got %d", dash.MediaCount)
	}
	if len(dash.RecentPages) != 2 {
		t.Errorf("expected 2 recent pages, got %d", len(dash.RecentPages))
	}
	if len(dash.RecentPosts) != recentLimit {
		t.Errorf("recent posts must cap at %d, got %d", recentLimit, len(dash.RecentPosts))
	}
	if len(dash.RecentPosts) > 0 && dash.RecentPosts[0].Title != "Post 1" {
		t.Errorf("recent posts must keep backend order, got %q first", dash.RecentPosts[0].Title)
	}
}

func TestDashboardLoadRendersFailedResourceAsZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/content/pages/":
			io.WriteString(w, `[{"id":1,"title":"Home","slug":"home"}]`)
		case "/api/v1/content/blog/":
			io.WriteString(w, `[{"id":1,"title":"Post","slug":"post"}]`)
		case "/api/v1/content/blocks/":
			io.WriteString(w, `[{"id":1,"identifier":"hero"}]`)
		case "/api/v1/media/":
			w.WriteHeader(http.StatusBadGateway)
			io.WriteString(w, `{"error":"storage offline"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	api := cms.New(srv.URL+"/api/v1/", 2*time.Second, zap.NewNop())

	dash := NewDashboardService(zap.NewNop()).Load(context.Background(), api)

	if dash.MediaCount != 0 {
		t.Errorf("failed resource must render as zero, got %d", dash.MediaCount)
	}
	if dash.PageCount != 1 || dash.PostCount != 1 || dash.BlockCount != 1 {
		t.Errorf("healthy resources must keep their numbers: %+v", dash)
	}
}
