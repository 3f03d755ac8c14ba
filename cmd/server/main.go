package main

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	"github.com/koilabs/koimbti/internal/api"
	"github.com/koilabs/koimbti/internal/db"
	"github.com/koilabs/koimbti/internal/middleware"
	"github.com/koilabs/koimbti/internal/pkg/logger"
	"github.com/koilabs/koimbti/internal/utils"
)

func main() {
	addr := utils.SafeEnv("KOIMBTI_ADDR", ":8080")
	mode := utils.SafeEnv("KOIMBTI_MODE", "dev")
	commit := os.Getenv("KOIMBTI_COMMIT")
	buildTime := os.Getenv("KOIMBTI_BUILD_TIME")

	zlog, err := logger.New(mode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	store, cleanup, err := buildStore(zlog)
	if err != nil {
		zlog.Fatal("init store", "err", err)
	}
	defer cleanup()

	mux := http.NewServeMux()
	api.NewRouter(store, zlog).Register(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		locale := middleware.LocaleFromContext(r.Context())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "KoiMBTI API",
			"locale":     locale,
			"msg":        utils.T(locale, "health.ok"),
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	// Frontend serving strategy (priority):
	// 1) Static files if KOIMBTI_STATIC_DIR is set (fullstack image)
	// 2) Dev proxy if KOIMBTI_DEV_FRONTEND_URL is set (proxy / to the dev server)
	if staticDir := os.Getenv("KOIMBTI_STATIC_DIR"); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	} else if devURL := os.Getenv("KOIMBTI_DEV_FRONTEND_URL"); devURL != "" {
		if u, err := url.Parse(devURL); err == nil {
			rp := httputil.NewSingleHostReverseProxy(u)
			// Ensure no-store headers also apply to proxied responses
			rp.ModifyResponse = func(res *http.Response) error {
				res.Header.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
				res.Header.Set("Pragma", "no-cache")
				res.Header.Set("Expires", "0")
				return nil
			}
			mux.Handle("/", rp)
		} else {
			zlog.Warn("invalid dev frontend url", "url", devURL, "err", err)
		}
	}

	handler := middleware.RequestLogger(zlog)(
		middleware.NoStore(
			middleware.SecureHeaders(
				middleware.CORS(
					middleware.LocaleMiddleware(mux)))))

	zlog.Info("server listening", "addr", addr, "mode", mode)
	if err := http.ListenAndServe(addr, handler); err != nil {
		zlog.Fatal("server error", "err", err)
	}
}

// buildStore opens SQLite when a path is configured and falls back to the
// in-memory store otherwise, which is enough for local hacking and tests.
func buildStore(zlog *logger.Logger) (api.Store, func(), error) {
	path := os.Getenv("KOIMBTI_SQLITE_PATH")
	if path == "" {
		zlog.Warn("no sqlite path configured, using in-memory store")
		return api.NewMemoryStore(), func() {}, nil
	}

	store, err := db.Open(path, zlog)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(store.DB(), os.Getenv("KOIMBTI_MIGRATIONS_DIR")); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	zlog.Info("sqlite store ready", "path", path)
	return store, func() { _ = store.Close() }, nil
}
