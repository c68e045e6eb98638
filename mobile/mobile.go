package mobile

import (
	"log"
	"net/http"
	"time"

	"raichu/internal/cache"
	"raichu/internal/engine"
	"raichu/internal/server/game"
	httpserver "raichu/internal/server/http"
)

// NewHandler 手机端用的 handler：全部内存存储，限时 2 秒
func NewHandler(webDir string) http.Handler {
	h := httpserver.NewHandler(
		game.NewManager(game.NewMemoryStore(), nil),
		cache.NewMemory(10*time.Minute, cache.DefaultMaxItems),
		httpserver.SearchDefaults{
			MinDepth:  engine.DefaultMinDepth,
			MaxDepth:  8,
			TimeLimit: 2 * time.Second,
			Parallel:  true,
			UseTT:     true,
			BoardSize: 8,
		},
		nil,
	)
	return h.Router(webDir)
}

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, port string) {
	handler := NewHandler(webDir)

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := http.ListenAndServe("127.0.0.1:"+port, handler); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}
