package server

import (
	"bytes"
	"context"
	"io/fs"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"go.uber.org/zap"

	"github.com/soar/GamepadKeyMouse/internal/hub"
)

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	queue       hub.PointerQueue
	assets      map[string]asset
	addr        string
	httpServer  *http.Server
	logger      *zap.SugaredLogger
}

type asset struct {
	mediaType string
	data      []byte
}

// New prepares a server for the frontend in frontendFS. Text assets are
// minified once here.
func New(h *hub.Hub, b *hub.Broadcaster, queue hub.PointerQueue, frontendFS fs.FS, addr string, logger *zap.SugaredLogger) (*Server, error) {
	assets, err := loadAssets(frontendFS)
	if err != nil {
		return nil, err
	}
	return &Server{
		hub:         h,
		broadcaster: b,
		queue:       queue,
		assets:      assets,
		addr:        addr,
		logger:      logger,
	}, nil
}

var mediaTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".ico":  "image/x-icon",
}

func loadAssets(fsys fs.FS) (map[string]asset, error) {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)

	assets := make(map[string]asset)
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		mediaType, ok := mediaTypes[path.Ext(name)]
		if !ok {
			mediaType = http.DetectContentType(data)
		}
		if out, err := m.Bytes(mediaType, data); err == nil {
			data = out
		} else if !errors.Is(err, minify.ErrNotExist) {
			return errors.Wrapf(err, "minify %s", name)
		}
		assets["/"+name] = asset{mediaType: mediaType, data: data}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "load frontend")
	}
	return assets, nil
}

var startTime = time.Now()

func (s *Server) serveAsset(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Path
	if strings.HasSuffix(name, "/") {
		name += "index.html"
	}
	a, ok := s.assets[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", a.mediaType)
	http.ServeContent(w, r, name, startTime, bytes.NewReader(a.data))
}

// Handler returns the HTTP handler serving the frontend and /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster, s.queue, s.logger))

	// Static files (frontend)
	mux.HandleFunc("/", s.serveAsset)
	return mux
}

func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	s.logger.Infow("HTTP server listening", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		s.logger.Info("shutting down HTTP server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
