package view

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Funcs 模板函数
func Funcs() template.FuncMap {
	return template.FuncMap{
		"add":         func(a, b int) int { return a + b },
		"seq":         seq,
		"rating":      func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
		"percent":     func(v float64) string { return strconv.FormatFloat(v, 'f', 0, 64) },
		"dateLabel":   dateLabel,
		"dateValue":   dateValue,
		"truncate":    truncate,
		"join":        strings.Join,
		"lower":       strings.ToLower,
		"title":       titleWord,
		"pageURL":     pageURL,
		"oldOr":       oldOr,
		"selected":    selected,
		"checked":     checked,
		"statusBadge": statusBadge,
		"year":        func() int { return time.Now().Year() },
	}
}

func seq(from, to int) []int {
	if to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// dateLabel 接受 datatypes.Date、*datatypes.Date 与 time.Time
func dateLabel(v any) string {
	var t time.Time
	switch d := v.(type) {
	case datatypes.Date:
		t = time.Time(d)
	case *datatypes.Date:
		if d == nil {
			return ""
		}
		t = time.Time(*d)
	case time.Time:
		t = d
	default:
		return ""
	}
	if t.IsZero() {
		return ""
	}
	return t.Format("Mon, 02 Jan 2006")
}

func dateValue(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format("2006-01-02")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}

// pageURL 保留现有查询参数，仅替换 page
func pageURL(base string, query url.Values, page int) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	q.Set("page", strconv.Itoa(page))
	return base + "?" + q.Encode()
}

// oldOr 表单回填：优先使用上次提交的值
func oldOr(old map[string]string, key string, fallback any) string {
	if v, ok := old[key]; ok {
		return v
	}
	if fallback == nil {
		return ""
	}
	return fmt.Sprint(fallback)
}

func selected(a, b string) template.HTMLAttr {
	if a == b {
		return "selected"
	}
	return ""
}

func checked(v bool) template.HTMLAttr {
	if v {
		return "checked"
	}
	return ""
}

func statusBadge(status string) string {
	switch status {
	case "completed":
		return "badge badge-success"
	case "cancelled":
		return "badge badge-muted"
	case "confirmed":
		return "badge badge-info"
	default:
		return "badge badge-warning"
	}
}
