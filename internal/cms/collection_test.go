package cms

import (
	"encoding/json"
	"testing"
)

func TestCollectionDecodesPaginatedEnvelope(t *testing.T) {
	payload := []byte(`{
		"count": 42,
		"next": "http://backend/api/v1/content/pages/?page=2",
		"previous": null,
		"results": [{"id": 1, "title": "Tour"}, {"id": 2, "title": "About"}]
	}`)

	var col Collection[Page]
	if err := json.Unmarshal(payload, &col); err != nil {
		t.Fatalf("解析分页信封失败: %v", err)
	}

	if col.Count != 42 {
		t.Fatalf("count 应为 42，实际 %d", col.Count)
	}
	if col.Next == "" || col.Previous != "" {
		t.Fatalf("next/previous 解析错误: next=%q previous=%q", col.Next, col.Previous)
	}
	if col.Size() != 2 {
		t.Fatalf("Size 应取 results 长度 2，实际 %d", col.Size())
	}
	if col.Results[1].Title != "About" {
		t.Fatalf("results 内容解析错误: %+v", col.Results)
	}
}

func TestCollectionDecodesBareArray(t *testing.T) {
	payload := []byte(`[{"id": 7, "name": "Home", "section_type": "home"}]`)

	var col Collection[Section]
	if err := json.Unmarshal(payload, &col); err != nil {
		t.Fatalf("解析裸数组失败: %v", err)
	}

	if col.Size() != 1 || col.Count != 1 {
		t.Fatalf("裸数组应按长度计数: size=%d count=%d", col.Size(), col.Count)
	}
	if col.Results[0].SectionType != "home" {
		t.Fatalf("数组元素解析错误: %+v", col.Results[0])
	}
}

func TestCollectionSizeIsZeroWithoutResults(t *testing.T) {
	cases := []string{
		`{"count": 10, "next": null, "previous": null, "results": []}`,
		`{"count": 10}`,
		`[]`,
	}

	for _, payload := range cases {
		var col Collection[Page]
		if err := json.Unmarshal([]byte(payload), &col); err != nil {
			t.Fatalf("解析 %s 失败: %v", payload, err)
		}
		if col.Size() != 0 {
			t.Fatalf("%s 的 Size 应为 0，实际 %d", payload, col.Size())
		}
	}
}

func TestCollectionRejectsMalformedPayload(t *testing.T) {
	var col Collection[Page]
	if err := json.Unmarshal([]byte(`{"results": "not a list"}`), &col); err == nil {
		t.Fatal("畸形 results 应返回解析错误")
	}
}
