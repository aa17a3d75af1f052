// Package transport implements the HTTP/WebSocket surface (§4.6): game
// creation, joining, an ops surface (/version, /healthz, /robots.txt,
// optional pprof), and a QR code convenience endpoint for the join URL.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/Seednode/cardhub/internal/applog"
	"github.com/Seednode/cardhub/internal/config"
	"github.com/Seednode/cardhub/internal/loader"
	"github.com/Seednode/cardhub/internal/manager"
	"github.com/Seednode/cardhub/internal/wire"
)

const (
	logDate string        = `2006-01-02T15:04:05.000-07:00`
	timeout time.Duration = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func securityHeaders(cfg *config.Config, w http.ResponseWriter) {
	w.Header().Set("Cross-Origin-Embedder-Policy", "require-corp")
	w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
	w.Header().Set("Cross-Origin-Resource-Policy", "same-site")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'self'")

	if cfg.Scheme() == "https" {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
	}
}

func realIP(r *http.Request) string {
	host, port, _ := net.SplitHostPort(r.RemoteAddr)
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		if net.ParseIP(ip) != nil {
			host = ip
		}
	} else if ip := r.Header.Get("X-Real-IP"); ip != "" {
		if net.ParseIP(ip) != nil {
			host = ip
		}
	}
	if net.ParseIP(host) != nil && strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port != "" {
		return host + ":" + port
	}
	return host
}

// Serve starts the HTTP listener and blocks until ctx is cancelled, then
// shuts the server down gracefully. It returns an error without listening
// if no module is registered.
func Serve(ctx context.Context, cfg *config.Config, log *applog.Logger) error {
	if len(loader.List()) == 0 {
		return errors.New("no modules registered")
	}

	mgr := manager.New(log)

	mux := httprouter.New()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Bind, strconv.Itoa(cfg.Port)),
		Handler:           mux,
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
		WriteTimeout:      timeout,
	}

	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		log.Printf("PANIC: %v", i)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal server error\n"))
	}

	cfg.Prefix = strings.TrimSuffix(cfg.Prefix, "/")

	mux.GET(cfg.Prefix+"/version", serveVersion(cfg, log))
	mux.GET(cfg.Prefix+"/healthz", serveHealthCheck(cfg))
	mux.GET(cfg.Prefix+"/robots.txt", serveRobots(cfg))
	mux.GET(cfg.Prefix+"/modules", serveModuleList(cfg))
	mux.POST(cfg.Prefix+"/create/:moduleIndex", serveCreate(cfg, mgr, log))
	mux.GET(cfg.Prefix+"/join/:gameID", serveJoin(cfg, mgr, log))
	mux.GET(cfg.Prefix+"/join/:gameID/qr", serveJoinQR(cfg))

	if cfg.Profile {
		registerProfileHandlers(cfg.Prefix, mux)
	}

	go func() {
		var err error
		log.Printf("START: cardhub v%s", config.ReleaseVersion)
		if cfg.TLSKey != "" && cfg.TLSCert != "" {
			log.Printf("SERVE: listening on %s://%s%s/", cfg.Scheme(), srv.Addr, cfg.Prefix)
			err = srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			log.Printf("SERVE: listening on %s://%s%s/", cfg.Scheme(), srv.Addr, cfg.Prefix)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("ERROR: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func serveVersion(cfg *config.Config, log *applog.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		start := time.Now()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusOK)

		written, err := w.Write([]byte("cardhub v" + config.ReleaseVersion + "\n"))
		if err != nil {
			return
		}

		log.Printf("SERVE: version page (%s) to %s in %s",
			humanReadableSize(int64(written)), realIP(r), time.Since(start).Round(time.Microsecond))
	}
}

func serveHealthCheck(cfg *config.Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	}
}

func serveRobots(cfg *config.Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /\n"))
	}
}

func serveModuleList(cfg *config.Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		entries := loader.List()
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"modules": names})
	}
}

func serveCreate(cfg *config.Config, mgr *manager.Manager, log *applog.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		idx, err := strconv.Atoi(p.ByName("moduleIndex"))
		if err != nil {
			http.Error(w, "invalid module index", http.StatusBadRequest)
			return
		}

		gameID, err := mgr.Create(idx)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"game-id": gameID})

		log.Printf("SERVE: created game %d from %s", gameID, realIP(r))
	}
}

func serveJoin(cfg *config.Config, mgr *manager.Manager, log *applog.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		gameID, err := strconv.Atoi(p.ByName("gameID"))
		if err != nil {
			http.Error(w, "invalid game id", http.StatusBadRequest)
			return
		}

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade failed for %s: %v", realIP(r), err)
			return
		}

		conn := newWSConn(ws, log)

		if err := mgr.Join(gameID, conn); err != nil {
			// Nothing is queued on conn yet, so writing directly does not
			// race its writer goroutine.
			if data, err := wire.Encode(wire.Error{Reason: "game does not exist"}); err == nil {
				_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
				_ = ws.WriteMessage(websocket.TextMessage, data)
			}
			conn.Close()
			return
		}

		log.Printf("SERVE: %s joining game %d", realIP(r), gameID)
	}
}

func serveJoinQR(cfg *config.Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		gameID := p.ByName("gameID")

		scheme := "ws"
		if cfg.Scheme() == "https" {
			scheme = "wss"
		}

		url := fmt.Sprintf("%s://%s%s/join/%s", scheme, r.Host, cfg.Prefix, gameID)

		png, err := qrcode.Encode(url, qrcode.Medium, 256)
		if err != nil {
			http.Error(w, "failed to render QR code", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}
