package web

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/vbonduro/mealai/internal/domain"
	"github.com/vbonduro/mealai/internal/resolve"
)

const maxUploadSize = 50 * 1024 * 1024 // 50 MB across all photos

type resolveRequest struct {
	Kind  string `json:"kind"`
	Query string `json:"query"`
}

// allowedImageTypes is the set of MIME types accepted for uploaded photos.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP needs its own check since the stdlib sniffer lacks it.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

func unsupportedImage(name string) error {
	return fmt.Errorf("%w: unsupported image format %q", domain.ErrInvalidInput, name)
}

func parseInput(req resolveRequest) (resolve.Input, bool) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, false
	}
	switch strings.ToLower(req.Kind) {
	case "", "text":
		return resolve.Text(query), true
	case "voice":
		return resolve.Voice(query), true
	case "barcode":
		return resolve.Barcode(query), true
	default:
		return nil, false
	}
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "invalid JSON body", s.logger)
		return
	}

	in, ok := parseInput(req)
	if !ok {
		badRequest(w, "kind must be text, voice or barcode and query is required", s.logger)
		return
	}

	result, err := s.service.Resolve(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result, s.logger)
}

func (s *Server) handleResolveImages(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequest(w, "failed to parse form", s.logger)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 || len(files) > resolve.MaxImages {
		badRequest(w, "between 1 and 3 images are required", s.logger)
		return
	}

	images := make(resolve.Images, 0, len(files))
	for _, fh := range files {
		img, err := s.readImage(fh)
		if err != nil {
			s.writeError(w, err)
			return
		}
		images = append(images, img)
	}

	result, err := s.service.Resolve(r.Context(), images)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result, s.logger)
}

func (s *Server) readImage(fh *multipart.FileHeader) (domain.Image, error) {
	file, err := fh.Open()
	if err != nil {
		return domain.Image{}, err
	}
	defer closeWithLog(file, "upload file", s.logger)

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.Image{}, err
	}

	mimeType, ok := allowedImageMIME(data)
	if !ok {
		return domain.Image{}, unsupportedImage(fh.Filename)
	}
	return domain.Image{Data: data, MimeType: mimeType}, nil
}
