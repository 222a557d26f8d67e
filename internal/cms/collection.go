package cms

import (
	"bytes"
	"encoding/json"
)

// Collection 承载后端的列表响应。后端通常返回分页信封
// {count,next,previous,results}，个别公开接口直接返回数组，
// 两种形态都能解码到同一结构。
type Collection[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []T    `json:"results"`
}

// Size 返回本页实际拿到的条目数，列表为空或缺失时为 0。
// 仪表盘统计一律使用该值，而不是信封里的总数。
func (c Collection[T]) Size() int {
	return len(c.Results)
}

func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		c.Count = len(items)
		c.Next = ""
		c.Previous = ""
		c.Results = items
		return nil
	}

	var envelope struct {
		Count    int     `json:"count"`
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
		Results  []T     `json:"results"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}

	c.Count = envelope.Count
	c.Results = envelope.Results
	c.Next = ""
	if envelope.Next != nil {
		c.Next = *envelope.Next
	}
	c.Previous = ""
	if envelope.Previous != nil {
		c.Previous = *envelope.Previous
	}
	return nil
}
