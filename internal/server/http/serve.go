package httpserver

import (
	"errors"
	"log"
	"net"
	"net/http"

	"xiangqi/internal/server/store"
)

// Start 在后台起本地服务，立即返回；调用方用返回的 *http.Server 关停。
// 监听在返回前就已建立，拿到的 Addr 可以直接访问。
func Start(addr string, games *store.Manager, opts Options) (*http.Server, net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}
	srv := &http.Server{Handler: NewRouter(games, opts)}

	// 放在后台，不阻塞调用方
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	}()
	return srv, ln.Addr(), nil
}
