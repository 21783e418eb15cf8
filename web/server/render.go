package server

import (
	"bytes"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// consoleBuffer bounds the messages kept for a single render
const consoleBuffer = 256

var renderCounter atomic.Int64

// RenderRequest represents a render request from the client
type RenderRequest struct {
	sceneParams
	SamplesPerPixel int    // 0 keeps the scene's default
	MaxDepth        int    // 0 keeps the scene's default
	NumWorkers      int    // 0 uses every CPU
	Format          string // "png" (default) or "json"
}

// Stats represents render statistics
type Stats struct {
	TotalPixels   int     `json:"totalPixels"`
	TotalSamples  int64   `json:"totalSamples"`
	TotalRays     int64   `json:"totalRays"`
	RaysPerSecond float64 `json:"raysPerSecond"`
}

// RenderResponse is the JSON form of a finished render
type RenderResponse struct {
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// parseRenderRequest parses and validates URL query parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()

	params, err := parseSceneParams(query)
	if err != nil {
		return nil, err
	}
	req := &RenderRequest{sceneParams: params, Format: query.Get("format")}

	if req.SamplesPerPixel, err = parseIntParam(query, "spp", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if req.NumWorkers, err = parseIntParam(query, "workers", 0, 0, maxWorkers); err != nil {
		return nil, err
	}

	switch req.Format {
	case "":
		req.Format = "png"
	case "png", "json":
	default:
		return nil, fmt.Errorf("format must be png or json, got: %s", req.Format)
	}
	return req, nil
}

// handleRender renders a scene and returns it as a PNG, or as JSON with
// statistics and the render's log messages when format=json
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))
	consoleChan := make(chan ConsoleMessage, consoleBuffer)
	logger := NewWebLogger(renderID, s.logger, consoleChan)

	startTime := time.Now()
	sc, err := s.buildScene(req.sceneParams)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rt, err := sc.NewRaytracer(
		renderer.CameraConfig{Width: req.Width},
		renderer.SamplingConfig{
			SamplesPerPixel: req.SamplesPerPixel,
			MaxDepth:        req.MaxDepth,
			Seed:            req.Seed,
			NumWorkers:      req.NumWorkers,
		},
		logger,
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, stats := rt.Render()
	elapsed := time.Since(startTime)
	totals := stats.Totals()
	logger.Infof("%s: %dx%d, %d samples, %d rays in %s", req.Scene, stats.Width, stats.Height, totals.Samples, totals.Rays, elapsed)

	if req.Format == "json" {
		imageData, err := imageToBase64PNG(img)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to encode image: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, RenderResponse{
			Scene:     req.Scene,
			Width:     stats.Width,
			Height:    stats.Height,
			ImageData: imageData,
			Stats: Stats{
				TotalPixels:   totals.Pixels,
				TotalSamples:  totals.Samples,
				TotalRays:     totals.Rays,
				RaysPerSecond: stats.RaysPerSecond(),
			},
			Console:   drainConsole(consoleChan),
			ElapsedMs: elapsed.Milliseconds(),
		})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode image: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
