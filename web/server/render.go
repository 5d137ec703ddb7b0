package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/golang/glog"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	X          int    `json:"x"` // Pixel offset of the tile
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Completed tiles so far (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalTiles       int     `json:"totalTiles"`
	BlackPixels      int     `json:"blackPixels"`
	AverageLuminance float64 `json:"averageLuminance"`
	MaxLuminance     float64 `json:"maxLuminance"`
	NumWorkers       int     `json:"numWorkers"`
	RayLimit         int     `json:"rayLimit"`
}

// CompleteUpdate is the final event of a streamed render
type CompleteUpdate struct {
	Scene     string `json:"scene"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a whole scene and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSONError(w, sceneErrorStatus(err), err.Error())
		return
	}

	raytracer := s.newRaytracer(sceneObj, req, renderer.NewGlogLogger(1))
	canvas, stats, err := raytracer.Render(r.Context(), nil)
	if err != nil {
		glog.Errorf("Render of %s failed: %v", req.Scene, err)
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := canvas.WritePNG(&buf); err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Encoding error: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time", stats.Duration.String())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		glog.V(1).Infof("Client went away before the image was sent: %v", err)
	}
}

// handleRenderStream renders a scene and streams finished tiles via SSE
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	// Every write to w goes through one goroutine
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", err.Error())
		return
	}

	logger := s.newStreamLogger(ctx, sseEventChan, sceneObj.Name)
	raytracer := s.newRaytracer(sceneObj, req, logger)

	startTime := time.Now()
	_, stats, err := raytracer.Render(ctx, func(tile renderer.TileCompletionResult) {
		s.handleTileUpdate(ctx, sseEventChan, tile)
	})
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Render error: %v", err))
		return
	}

	complete := CompleteUpdate{
		Scene:  sceneObj.Name,
		Width:  sceneObj.Camera.HSize,
		Height: sceneObj.Camera.VSize,
		Stats: Stats{
			TotalPixels:      stats.TotalPixels,
			TotalTiles:       stats.TotalTiles,
			BlackPixels:      stats.BlackPixels,
			AverageLuminance: stats.AverageLuminance,
			MaxLuminance:     stats.MaxLuminance,
			NumWorkers:       stats.NumWorkers,
			RayLimit:         stats.RayLimit,
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}
	s.sendJSONEvent(ctx, sseEventChan, "complete", complete)
}

func (s *Server) newRaytracer(sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) *renderer.Raytracer {
	config := renderer.DefaultConfig()
	config.RayLimit = req.RayLimit
	config.TileSize = req.TileSize
	return renderer.NewRaytracer(sceneObj, config, logger)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents writes events until the channel is closed. After the client
// disconnects or a write fails, remaining events are drained and dropped.
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	failed := false

	for event := range sseEventChan {
		if failed || ctx.Err() != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			glog.V(1).Infof("SSE write failed: %v", err)
			failed = true
			continue
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// handleTileUpdate encodes a finished tile and queues it for the client
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan<- SSEEvent, tile renderer.TileCompletionResult) {
	imageData, err := s.imageToBase64PNG(tile.TileImage)
	if err != nil {
		glog.Errorf("Failed to encode tile (%d,%d): %v", tile.TileX, tile.TileY, err)
		return
	}

	update := TileUpdate{
		TileX:      tile.TileX,
		TileY:      tile.TileY,
		X:          tile.Bounds.Min.X,
		Y:          tile.Bounds.Min.Y,
		Width:      tile.Bounds.Dx(),
		Height:     tile.Bounds.Dy(),
		ImageData:  imageData,
		TileNumber: tile.TileNumber,
		TotalTiles: tile.TotalTiles,
	}
	s.sendJSONEvent(ctx, sseEventChan, "tile", update)
}

func (s *Server) sendJSONEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		glog.Errorf("Failed to marshal %s event: %v", eventType, err)
		return
	}
	s.sendEvent(ctx, sseEventChan, eventType, string(data))
}

// sendEvent queues an event unless the client has gone
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType, data string) {
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: data}:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
