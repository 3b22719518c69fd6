package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"voice-transcriber/internal/api/errors"
	"voice-transcriber/internal/api/middleware"
	"voice-transcriber/internal/api/v1/dto"
	"voice-transcriber/internal/api/v1/services"
	"voice-transcriber/internal/app/transcription"
)

// ErrorCodeHeader exposes the failure classification without changing the body shape
const ErrorCodeHeader = "X-Error-Code"

var statusKinds = map[transcription.Code]errors.ErrorKind{
	transcription.CodeUploadReadFailed:  errors.KindBadRequest,
	transcription.CodeUploadTooLarge:    errors.KindPayloadTooLarge,
	transcription.CodeTranscodingFailed: errors.KindUnprocessable,
	transcription.CodeArtifactFailed:    errors.KindInternal,
	transcription.CodeProviderFailed:    errors.KindBadGateway,
}

// TranscriptionHandler serves the audio upload endpoint
type TranscriptionHandler struct {
	processor         services.AudioProcessor
	strictStatusCodes bool
}

// NewTranscriptionHandler creates a new transcription handler. With strictStatusCodes
// failures are answered with a matching 4xx/5xx status instead of 200.
func NewTranscriptionHandler(processor services.AudioProcessor, strictStatusCodes bool) *TranscriptionHandler {
	return &TranscriptionHandler{
		processor:         processor,
		strictStatusCodes: strictStatusCodes,
	}
}

// ProcessAudio handles POST /process-audio
//
// @Summary Transcribe an audio clip
// @Description Converts the uploaded clip and returns its transcript. Processing failures are reported in the error key.
// @Tags transcriptions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio clip"
// @Success 200 {object} dto.ProcessAudioResponse "Transcript or processing error"
// @Failure 422 {object} errors.APIError "Missing file field"
// @Router /process-audio [post]
func (h *TranscriptionHandler) ProcessAudio(c *gin.Context) {
	var req dto.ProcessAudioRequest
	if err := middleware.BindUpload(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	var result transcription.Result
	upload, err := req.File.Open()
	if err != nil {
		result = transcription.Failure(transcription.CodeUploadReadFailed, err)
	} else {
		defer upload.Close()
		result = h.processor.Handle(c.Request.Context(), upload, req.File.Filename)
	}

	if result.OK() {
		c.JSON(http.StatusOK, dto.NewTranscriptionResponse(result.Transcript))
		return
	}

	c.Header(ErrorCodeHeader, string(result.Err.Code))
	c.JSON(h.failureStatus(result.Err.Code), dto.NewErrorResponse(result.Err.Message))
}

func (h *TranscriptionHandler) failureStatus(code transcription.Code) int {
	if !h.strictStatusCodes {
		return http.StatusOK
	}
	kind, ok := statusKinds[code]
	if !ok {
		kind = errors.KindInternal
	}
	return errors.StatusForKind(kind)
}
