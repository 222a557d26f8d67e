package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stagefront/internal/cms"
)

func TestShowSectionListRendersBackendCollection(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/content/sections/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":2,"next":null,"previous":null,"results":[
			{"id":1,"name":"关于我们","slug":"about","section_type":"about","order":1,"show_in_nav":true,"is_active":true,"page_count":3},
			{"id":2,"name":"巡演","slug":"tour","section_type":"custom","order":2,"show_in_nav":true,"is_active":true,"page_count":5}
		]}`))
	})

	api, stub, router := newHandlerTest(t, backend)
	router.GET("/admin/sections", api.ShowSectionList)

	request := httptest.NewRequest(http.MethodGet, "/admin/sections", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	if stub.lastName != "section_list.html" {
		t.Fatalf("应渲染栏目列表, got %q", stub.lastName)
	}
	sections, ok := stub.lastData["sections"].([]cms.Section)
	if !ok {
		t.Fatalf("模板数据缺少栏目列表: %T", stub.lastData["sections"])
	}
	if len(sections) != 2 || stub.lastData["total"] != 2 {
		t.Fatalf("栏目数量不符: %d / %v", len(sections), stub.lastData["total"])
	}
}

func TestShowSectionFormSeedsNavDefaults(t *testing.T) {
	api, stub, router := newHandlerTest(t, nil)
	router.GET("/admin/sections/new", api.ShowSectionForm)

	request := httptest.NewRequest(http.MethodGet, "/admin/sections/new", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	section, ok := stub.lastData["section"].(cms.Section)
	if !ok {
		t.Fatalf("模板数据缺少栏目: %T", stub.lastData["section"])
	}
	// 新栏目默认启用且进导航。
	if !section.IsActive || !section.ShowInNav {
		t.Fatalf("新建默认值不符: %+v", section)
	}
}

func TestSaveSectionCreateForwardsFormValues(t *testing.T) {
	var created map[string]interface{}
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/content/sections/" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&created)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":3,"name":"巡演","slug":"tour"}`))
	})

	api, _, router := newHandlerTest(t, backend)
	router.POST("/admin/sections", api.SaveSection)

	form := "name=巡演&section_type=custom&nav_title=Tour&order=2&show_in_nav=on&is_active=on"
	request := httptest.NewRequest(http.MethodPost, "/admin/sections", strings.NewReader(form))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusFound {
		t.Fatalf("保存成功应重定向, got %d", recorder.Code)
	}
	if created["name"] != "巡演" || created["nav_title"] != "Tour" {
		t.Fatalf("表单值未转发: %v", created)
	}
	if created["show_in_nav"] != true {
		t.Fatalf("勾选的 show_in_nav 应为 true, got %v", created["show_in_nav"])
	}
}

func TestDeleteSectionRejectedKeepsList(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"栏目下仍有页面，无法删除"}`))
	})

	api, _, router := newHandlerTest(t, backend)
	router.DELETE("/admin/api/sections/:id", api.DeleteSection)

	request := httptest.NewRequest(http.MethodDelete, "/admin/api/sections/1", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("拒绝删除应透传状态, got %d", recorder.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应不是 JSON: %v", err)
	}
	if body["error"] != "栏目下仍有页面，无法删除" {
		t.Fatalf("应返回后端错误信息, got %q", body["error"])
	}
}
