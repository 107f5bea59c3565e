package pkg

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
	Text string
}{
	JSON: "application/json",
	Text: "text/plain; charset=utf-8",
}

func WriteResponse(w http.ResponseWriter, contentType, message string, statusCode int) {
	WriteResponseBytes(w, contentType, []byte(message), statusCode)
}

func WriteResponseBytes(w http.ResponseWriter, contentType string, message []byte, statusCode int) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(statusCode)

	if _, err := w.Write(message); err != nil {
		log.Errorf("failed to write response [%s]: %s", message, err)
	}
}

func WriteResponseBytesOK(w http.ResponseWriter, contentType string, message []byte) {
	WriteResponseBytes(w, contentType, message, http.StatusOK)
}

func WriteTextResponseOK(w http.ResponseWriter, message string) {
	WriteResponse(w, ContentType.Text, message, http.StatusOK)
}

func WriteJSONResponseOK(w http.ResponseWriter, message string) {
	WriteResponse(w, ContentType.JSON, message, http.StatusOK)
}

type errorResponse struct {
	Error string `json:"error"`
}

// WriteJSONError writes {"error": message} with the given status.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	resp, err := json.Marshal(errorResponse{Error: message})
	if err != nil {
		log.Errorf("marshal error response: %s", err)
		http.Error(w, message, statusCode)
		return
	}
	WriteResponseBytes(w, ContentType.JSON, resp, statusCode)
}
