package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nocis/vk-raytracing-tutorial/pkg/config"
	"github.com/nocis/vk-raytracing-tutorial/pkg/pipeline"
)

// Request limits
const (
	MinImageSize = 16
	MaxImageSize = 2000
	MaxSpheres   = 200000
)

// Server exposes the pipeline over HTTP
type Server struct {
	port   int
	base   config.Config
	logger *slog.Logger
}

// NewServer creates a server whose requests start from base
func NewServer(port int, base config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{port: port, base: base, logger: logger}
}

// RenderResponse is the JSON body returned by /api/render
type RenderResponse struct {
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// Stats represents launch statistics
type Stats struct {
	Width             int    `json:"width"`
	Height            int    `json:"height"`
	Primitives        int    `json:"primitives"`
	Tiles             int    `json:"tiles"`
	Workers           int    `json:"workers"`
	PrimaryRays       int    `json:"primaryRays"`
	Hits              int    `json:"hits"`
	ShadowRays        int    `json:"shadowRays"`
	Occluded          int    `json:"occluded"`
	IntersectionCalls int    `json:"intersectionCalls"`
	LightType         string `json:"lightType"`
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/config", s.handleConfig)
	mux.HandleFunc("GET /api/render", s.handleRender)
	mux.HandleFunc("GET /api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting web server", "addr", "http://localhost"+addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleConfig returns the base configuration and request limits
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"defaults": map[string]interface{}{
			"width":   s.base.Width,
			"height":  s.base.Height,
			"spheres": s.base.Spheres,
			"seed":    s.base.Seed,
			"light":   s.base.Light.Type,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": MinImageSize, "max": MaxImageSize},
			"height":  map[string]int{"min": MinImageSize, "max": MaxImageSize},
			"spheres": map[string]int{"min": 1, "max": MaxSpheres},
		},
		"lightTypes": []string{"point", "spot", "directional"},
	})
}

// handleRender launches the pipeline and returns the image, either as raw
// PNG (format=png) or as JSON with stats and console output
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.parseRequestConfig(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, s.logger, consoleChan)

	p, err := cfg.NewPipeline(webLogger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	startTime := time.Now()
	img, stats, err := p.Launch(r.Context(), cfg.Width, cfg.Height)
	if err != nil {
		s.logger.Warn("render failed", "render", renderID, "error", err)
		writeError(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}

	if r.URL.Query().Get("format") == "png" {
		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, img); err != nil {
			s.logger.Warn("writing png", "render", renderID, "error", err)
		}
		return
	}

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode image: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, RenderResponse{
		ImageData: imageData,
		Stats:     newStats(stats, p),
		Console:   drainConsole(consoleChan),
		ElapsedMs: time.Since(startTime).Milliseconds(),
	})
}

func newStats(stats pipeline.LaunchStats, p *pipeline.Pipeline) Stats {
	return Stats{
		Width:             stats.Width,
		Height:            stats.Height,
		Primitives:        p.Scene().PrimitiveCount(),
		Tiles:             stats.Tiles,
		Workers:           stats.Workers,
		PrimaryRays:       stats.Counters.PrimaryRays,
		Hits:              stats.Counters.Hits,
		ShadowRays:        stats.Counters.ShadowRays,
		Occluded:          stats.Counters.Occluded,
		IntersectionCalls: stats.Counters.IntersectionCalls,
		LightType:         p.Constants().Light.Type.String(),
	}
}

// parseRequestConfig applies query parameters on top of the base config
func (s *Server) parseRequestConfig(values url.Values) (config.Config, error) {
	cfg := s.base

	var err error
	if cfg.Width, err = parseIntParam(values, "width", cfg.Width, MinImageSize, MaxImageSize); err != nil {
		return cfg, err
	}
	if cfg.Height, err = parseIntParam(values, "height", cfg.Height, MinImageSize, MaxImageSize); err != nil {
		return cfg, err
	}
	if cfg.Spheres, err = parseIntParam(values, "spheres", cfg.Spheres, 1, MaxSpheres); err != nil {
		return cfg, err
	}
	seed, err := parseIntParam(values, "seed", int(cfg.Seed), 0, 1<<31-1)
	if err != nil {
		return cfg, err
	}
	cfg.Seed = uint64(seed)
	if cfg.Light.Intensity, err = parseFloatParam(values, "intensity", cfg.Light.Intensity, 0, 1e6); err != nil {
		return cfg, err
	}
	if light := values.Get("light"); light != "" {
		cfg.Light.Type = light
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.Width*cfg.Height > 800*600 && cfg.Spheres > 20000 {
		s.logger.Warn("large image with many primitives may render slowly",
			"width", cfg.Width, "height", cfg.Height, "spheres", cfg.Spheres)
	}
	return cfg, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
