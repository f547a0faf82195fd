package httpserver

import (
	"log"
	"net/http"
	"time"

	"xiangqi/internal/server/store"
)

// Options 组装服务所需的全部参数
type Options struct {
	WebDir       string
	DefaultDepth int
	LogRequests  bool
}

// NewRouter 把 /api/* 和静态页面挂到同一个 mux 上
func NewRouter(games *store.Manager, opts Options) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", NewHandler(games, opts.DefaultDepth))
	RegisterStaticRoutes(mux, opts.WebDir)
	if !opts.LogRequests {
		return mux
	}
	return logRequests(mux)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}
