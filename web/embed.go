// Package web 内嵌页面模板与静态资源
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var files embed.FS

// Templates 模板根目录（layouts / partials / pages）
func Templates() fs.FS {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static 静态资源根目录
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
