package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strconv"
	"time"

	"strip-cropper/internal/detection"
	"strip-cropper/internal/imaging"
	"strip-cropper/internal/storage"
)

// allowedTypes is the upload content-type allowlist. The decoder sniffs
// the real format from the bytes; this check just rejects obvious
// non-images before reading the body.
var allowedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/bmp":  {},
}

type errorResponse struct {
	Error string `json:"error"`
}

// saveResponse is the JSON body of a successful /crop/save call.
type saveResponse struct {
	Success   bool              `json:"success"`
	SavedTo   string            `json:"saved_to"`
	Filename  string            `json:"filename"`
	Detection *detection.Result `json:"detection"`
}

// handleInfo serves API information at the root path.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"service":     "strip-cropper",
		"version":     s.version,
		"description": "Upload pool test strip photos to crop them automatically",
		"endpoints": map[string]string{
			"POST /crop":       "Upload image, receive cropped image",
			"POST /crop/save":  "Upload image, save cropped image to server",
			"POST /crop/debug": "Upload image, receive original with detection box drawn",
			"GET /health":      "Health check",
		},
	})
}

// handleHealth reports liveness for container orchestration.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleCrop runs detection on the uploaded image and responds with the
// cropped PNG. A detection soft-failure is still a 200: the original image
// comes back unchanged with X-Crop-Success set to false.
func (s *Server) handleCrop(w http.ResponseWriter, r *http.Request) {
	img, ok := s.readUploadedImage(w, r)
	if !ok {
		return
	}

	cropped, result, err := detection.DetectStrip(img, s.detectCfg)
	if err != nil {
		s.detectionError(w, err)
		return
	}

	out, err := imaging.EncodePNG(cropped)
	if err != nil {
		s.log.Error().Err(err).Msg("encode cropped image")
		s.writeError(w, http.StatusInternalServerError, "error encoding cropped image")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Crop-Success", strconv.FormatBool(result.Success))
	w.Header().Set("X-Crop-Message", result.Message)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// handleCropSave runs detection and persists the cropped image into the
// output folder, responding with the saved path and detection metadata.
func (s *Server) handleCropSave(w http.ResponseWriter, r *http.Request) {
	img, ok := s.readUploadedImage(w, r)
	if !ok {
		return
	}

	cropped, result, err := detection.DetectStrip(img, s.detectCfg)
	if err != nil {
		s.detectionError(w, err)
		return
	}

	name := storage.SafeName(r.FormValue("filename"))
	if name == "" {
		name = storage.GeneratedName(time.Now())
	}

	path, err := s.store.Save(name, cropped)
	if err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("save cropped image")
		s.writeError(w, http.StatusInternalServerError, "error saving cropped image")
		return
	}

	s.writeJSON(w, http.StatusOK, saveResponse{
		Success:   true,
		SavedTo:   path,
		Filename:  name + ".png",
		Detection: result,
	})
}

// handleCropDebug responds with the original image annotated with the
// detected bounding box, for tuning thresholds against real photos. On a
// detection failure the image comes back unannotated.
func (s *Server) handleCropDebug(w http.ResponseWriter, r *http.Request) {
	img, ok := s.readUploadedImage(w, r)
	if !ok {
		return
	}

	_, result, err := detection.DetectStrip(img, s.detectCfg)
	if err != nil {
		s.detectionError(w, err)
		return
	}

	annotated := img
	if result.Success {
		b := result.BBox
		box := image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height).Add(img.Bounds().Min)
		annotated = imaging.AnnotateBox(img, box, 3)
	}

	out, err := imaging.EncodePNG(annotated)
	if err != nil {
		s.log.Error().Err(err).Msg("encode annotated image")
		s.writeError(w, http.StatusInternalServerError, "error encoding annotated image")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Crop-Success", strconv.FormatBool(result.Success))
	w.Header().Set("X-Crop-Message", result.Message)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// readUploadedImage validates and decodes the multipart "file" field.
// On failure it writes the error response itself and returns ok=false.
func (s *Server) readUploadedImage(w http.ResponseWriter, r *http.Request) (image.Image, bool) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "missing file field")
		return nil, false
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if _, ok := allowedTypes[contentType]; !ok {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("invalid file type: %s (allowed: image/jpeg, image/png, image/webp, image/bmp)", contentType))
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxUpload+1))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "error reading file")
		return nil, false
	}
	if int64(len(data)) > s.maxUpload {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("file too large, maximum size: %d MB", s.maxUpload/1024/1024))
		return nil, false
	}

	img, _, err := imaging.Decode(data)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return img, true
}

// detectionError maps DetectStrip hard errors to HTTP responses. Soft
// detection failures never reach here; they travel in the Result.
func (s *Server) detectionError(w http.ResponseWriter, err error) {
	if errors.Is(err, detection.ErrInvalidImage) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Error().Err(err).Msg("detection failed")
	s.writeError(w, http.StatusInternalServerError, "error processing image")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
