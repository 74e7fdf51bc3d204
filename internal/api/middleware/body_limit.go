package middleware

import (
	"errors"
	"net/http"
	"strings"
)

// BodyLimit 限制请求体大小，并在路由匹配前处理表单的 _method 覆盖
//
// HTML 表单只能提交 GET / POST，PUT 与 DELETE 通过隐藏字段 _method 传递。
// gin 在执行中间件前已按请求方法匹配路由，因此需要在引擎外层改写方法。
func BodyLimit(next http.Handler, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil && maxBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}

		if r.Method == http.MethodPost && isURLEncodedForm(r) {
			if err := r.ParseForm(); err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					http.Error(w, "Request body too large.", http.StatusRequestEntityTooLarge)
					return
				}
				http.Error(w, "Malformed form data.", http.StatusBadRequest)
				return
			}
			switch m := strings.ToUpper(r.PostForm.Get("_method")); m {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = m
			}
		}

		next.ServeHTTP(w, r)
	})
}

func isURLEncodedForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded")
}
