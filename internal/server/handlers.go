package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/assessment-recommender/internal/ingestion"
	"github.com/jonathan/assessment-recommender/internal/recommend"
)

// RecommendRequest represents the request body for /recommend. Exactly one
// of job_description or job_url should be provided; a URL is scraped and
// treated like pasted text.
type RecommendRequest struct {
	JobDescription string `json:"job_description"`
	JobURL         string `json:"job_url,omitempty"`
}

// RecommendResponse represents the response for /recommend.
type RecommendResponse struct {
	Recommendations []recommend.Result `json:"recommendations"`
	Message         string             `json:"message,omitempty"`
}

// TokenRequest represents the request body for /auth/token.
type TokenRequest struct {
	APIKey string `json:"api_key"`
}

// TokenResponse represents the response for /auth/token.
type TokenResponse struct {
	Token string `json:"token"`
}

// handleRoot returns a liveness message.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	// "GET /" also matches every unregistered path.
	if r.URL.Path != "/" {
		s.errorResponse(w, http.StatusNotFound, "Not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Assessment recommender is running!"})
}

// handleHealth returns server health status, including catalog readiness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if !s.engine.Ready() {
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "catalog unavailable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRecommend accepts a job description or job posting URL and returns
// ranked assessment recommendations.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.JobDescription == "" && req.JobURL == "" {
		s.errorResponse(w, http.StatusBadRequest, "Either job_description or job_url is required")
		return
	}

	text := req.JobDescription
	if text == "" {
		extracted, err := ingestion.IngestFromURL(r.Context(), req.JobURL, s.cfg.UseBrowser, s.cfg.Verbose)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "Failed to extract job description from URL: "+err.Error())
			return
		}
		text = extracted
	}

	results, err := s.engine.Recommend(r.Context(), text)
	if err != nil {
		if errors.Is(err, recommend.ErrCatalogUnavailable) {
			s.errorResponse(w, http.StatusServiceUnavailable, "Catalog unavailable")
			return
		}
		log.Printf("Recommendation failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Recommendation failed")
		return
	}

	resp := RecommendResponse{Recommendations: results}
	if len(results) == 0 {
		resp.Message = "No recommendations found. Please try a more detailed job description."
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleCatalogStats reports the served snapshot's size and version.
func (s *Server) handleCatalogStats(w http.ResponseWriter, _ *http.Request) {
	stats, err := s.engine.Stats()
	if err != nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Catalog unavailable")
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

// handleCatalogReload rebuilds the snapshot from the configured source and
// swaps it in atomically. In-flight requests keep the old snapshot.
func (s *Server) handleCatalogReload(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Reload(r.Context()); err != nil {
		log.Printf("Catalog reload failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Catalog reload failed: "+err.Error())
		return
	}

	stats, err := s.engine.Stats()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Catalog reload failed")
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

// handleAuthToken exchanges the admin API key for a short-lived token.
func (s *Server) handleAuthToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.APIKey == "" || !s.adminKey.Verify(req.APIKey) {
		s.errorResponse(w, http.StatusUnauthorized, "Invalid API key")
		return
	}

	token, err := s.jwtService.GenerateToken()
	if err != nil {
		log.Printf("Token generation failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Token generation failed")
		return
	}
	s.jsonResponse(w, http.StatusOK, TokenResponse{Token: token})
}
