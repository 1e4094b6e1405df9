package api

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// errorResponse is the uniform JSON error body
type errorResponse struct {
	Error string `json:"error"`
}

// setCacheStatusHeader sets the Cache-Status header based on cache status
func (s *Server) setCacheStatusHeader(w http.ResponseWriter, cacheStatus string) {
	if cacheStatus != "" {
		w.Header().Set("Cache-Status", cacheStatus)
	}
}

// sendJSONResponse is a common wrapper for JSON responses that sets
// Content-Type, Content-Length and ETag headers
func (s *Server) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	responseBytes, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	// ETag is the MD5 hash of the response
	hash := md5.Sum(responseBytes)
	etag := hex.EncodeToString(hash[:])

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseBytes)))
	w.Header().Set("ETag", "\""+etag+"\"")

	if _, err := w.Write(responseBytes); err != nil {
		log.Printf("Error writing response: %v", err)
		return
	}
}

// sendJSONError writes a JSON error body with the given status code
func (s *Server) sendJSONError(w http.ResponseWriter, statusCode int, message string) {
	responseBytes, err := json.Marshal(errorResponse{Error: message})
	if err != nil {
		http.Error(w, message, statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(responseBytes); err != nil {
		log.Printf("Error writing error response: %v", err)
	}
}

// splitParamLowercase splits a comma-separated parameter into lowercase,
// trimmed, non-empty tokens
func splitParamLowercase(param string) []string {
	if param == "" {
		return []string{}
	}

	parts := strings.Split(param, ",")
	result := []string{}
	for _, part := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(part))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
