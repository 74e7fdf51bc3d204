package view

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/gin-gonic/gin/render"
)

// layoutTemplate 所有页面共用的外层模板名
const layoutTemplate = "layout"

// Renderer 每个页面一套模板（layout + partials + 页面），实现 gin render.HTMLRender
//
// 目录约定：
//   - layouts/*.html   定义 "layout"
//   - partials/*.html  可复用片段（导航、flash、分页、表单字段）
//   - pages/**.html    页面，定义 "title" 与 "content"；模板名为相对路径去掉扩展名，如 "sessions/index"
type Renderer struct {
	templates map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// New 解析模板文件系统
func New(fsys fs.FS, funcs template.FuncMap) (*Renderer, error) {
	shared, err := sharedFiles(fsys)
	if err != nil {
		return nil, err
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	err = fs.WalkDir(fsys, "pages", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" {
			return nil
		}

		name := strings.TrimSuffix(strings.TrimPrefix(p, "pages/"), ".html")
		files := append(append([]string(nil), shared...), p)
		t, err := template.New(name).Funcs(funcs).ParseFS(fsys, files...)
		if err != nil {
			return fmt.Errorf("解析模板 %s 失败: %w", name, err)
		}
		r.templates[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(r.templates) == 0 {
		return nil, fmt.Errorf("未找到任何页面模板")
	}
	return r, nil
}

func sharedFiles(fsys fs.FS) ([]string, error) {
	var files []string
	for _, pattern := range []string{"layouts/*.html", "partials/*.html"} {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("未找到布局模板")
	}
	return files, nil
}

// Instance 实现 render.HTMLRender
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.templates[name]
	if !ok {
		panic(fmt.Sprintf("模板不存在: %s", name))
	}
	return render.HTML{Template: t, Name: layoutTemplate, Data: data}
}

// Has 判断页面模板是否存在
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}
