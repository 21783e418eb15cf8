package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Request limits keep a single render bounded
const (
	maxWidth   = 1920
	maxSamples = 1000
	maxDepth   = 100
	maxWorkers = 64
)

// Server handles web requests for the path tracer
type Server struct {
	port   int
	opts   scene.Options
	logger log.Logger
	mux    *http.ServeMux
}

// NewServer creates a new web server; opts controls how scenes load textures
func NewServer(port int, opts scene.Options) *Server {
	s := &Server{
		port:   port,
		opts:   opts,
		logger: log.New("web"),
		mux:    http.NewServeMux(),
	}

	// Serve static files
	s.mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	return s
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string            `json:"name"`
	Scenes []scene.SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// groupScenes groups scenes by their Group field, keeping first-appearance order
func groupScenes(scenes []scene.SceneInfo) ScenesResponse {
	var response ScenesResponse
	index := make(map[string]int)
	for _, info := range scenes {
		i, ok := index[info.Group]
		if !ok {
			i = len(response.Groups)
			index[info.Group] = i
			response.Groups = append(response.Groups, SceneGroup{Name: info.Group})
		}
		response.Groups[i].Scenes = append(response.Groups[i].Scenes, info)
	}
	return response
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, groupScenes(scene.ListScenes()))
}

// sceneParams are the query parameters shared by render and inspect
type sceneParams struct {
	Scene string
	Width int
	Seed  int64
}

// parseSceneParams reads scene, width and seed from the query
func parseSceneParams(values url.Values) (sceneParams, error) {
	params := sceneParams{Scene: values.Get("scene"), Seed: 42}
	if params.Scene == "" {
		params.Scene = "two-spheres"
	}

	var err error
	if params.Width, err = parseIntParam(values, "width", 0, 1, maxWidth); err != nil {
		return params, err
	}
	if value := values.Get("seed"); value != "" {
		if params.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return params, fmt.Errorf("invalid seed: %s", value)
		}
	}
	return params, nil
}

// buildScene constructs the requested scene with construction randomness drawn from the seed
func (s *Server) buildScene(params sceneParams) (*scene.Scene, error) {
	return scene.Build(params.Scene, core.NewSeededSampler(params.Seed), s.opts)
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
