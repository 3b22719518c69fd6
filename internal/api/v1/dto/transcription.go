package dto

import "mime/multipart"

// ProcessAudioRequest is the multipart form accepted by POST /process-audio
type ProcessAudioRequest struct {
	File *multipart.FileHeader `form:"file" binding:"required"`
}

// ProcessAudioResponse carries exactly one of Transcription or Error.
// An empty transcript is still reported under the transcription key.
type ProcessAudioResponse struct {
	Transcription *string `json:"transcription,omitempty"`
	Error         *string `json:"error,omitempty"`
}

// NewTranscriptionResponse builds the success body
func NewTranscriptionResponse(transcript string) ProcessAudioResponse {
	return ProcessAudioResponse{Transcription: &transcript}
}

// NewErrorResponse builds the failure body
func NewErrorResponse(message string) ProcessAudioResponse {
	return ProcessAudioResponse{Error: &message}
}

// ServiceInfo describes the service at GET /
type ServiceInfo struct {
	Message       string            `json:"message"`
	Version       string            `json:"version"`
	Provider      string            `json:"provider"`
	Documentation string            `json:"documentation"`
	Endpoints     map[string]string `json:"endpoints"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}
