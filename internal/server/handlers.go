package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/bizhubhq/bizhub/internal/db"
	"github.com/bizhubhq/bizhub/internal/service"
)

// maxUploadBytes caps a multipart listing submission, photos included.
const maxUploadBytes = 25 << 20

// listingRequest is the JSON shape of a listing submission. Multipart form
// submissions use the same field names.
type listingRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	sub, err := parseSubmission(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if sub.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	business, err := s.deps.Listings.Submit(r.Context(), *sub)
	if err != nil {
		var rejection *service.RejectionError
		if errors.As(err, &rejection) {
			// The reason goes back verbatim so the submitter can revise.
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  rejection.Error(),
				"reason": rejection.Verdict.Reason,
				"score":  rejection.Verdict.Score,
			})
			return
		}
		s.logger.Error("listing submission failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save listing"})
		return
	}

	writeJSON(w, http.StatusCreated, business)
}

func parseSubmission(r *http.Request) (*service.Submission, error) {
	ct := r.Header.Get("Content-Type")

	if strings.HasPrefix(ct, "application/json") {
		var req listingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, errors.New("invalid JSON body")
		}
		return &service.Submission{
			Name:        req.Name,
			Description: req.Description,
			Category:    req.Category,
			Address:     req.Address,
			Phone:       req.Phone,
			Email:       req.Email,
		}, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, errors.New("invalid form body")
	}

	sub := &service.Submission{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Address:     r.FormValue("address"),
		Phone:       r.FormValue("phone"),
		Email:       r.FormValue("email"),
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			f, err := header.Open()
			if err != nil {
				continue
			}
			content, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				continue
			}
			sub.Images = append(sub.Images, service.ImageUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Content:     content,
			})
		}
	}

	return sub, nil
}

func (s *Server) handleSearchBusinesses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := db.DefaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	results, err := s.deps.Directory.Search(r.Context(), query, limit)
	if err != nil {
		s.logger.Error("business search failed", "query", query, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "search failed"})
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.deps.Directory.Categories(r.Context())
	if err != nil {
		s.logger.Error("category list failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load categories"})
		return
	}

	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	bucket := r.PathValue("bucket")
	path := r.PathValue("path")

	img, err := s.deps.Images.GetImage(r.Context(), bucket, path)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("file fetch failed", "bucket", bucket, "path", path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if img.ContentType != "" {
		w.Header().Set("Content-Type", img.ContentType)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(img.Content)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.deps.Collector == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "metrics disabled"})
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Collector.Snapshot())
}
