package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanpilot/backend/internal/services"
	"github.com/loanpilot/backend/internal/utils"
)

type stubChatService struct {
	turn services.ChatTurn
	err  error
	got  struct{ sessionID, message string }
}

func (s *stubChatService) ProcessMessage(_ context.Context, sessionID, message string) (services.ChatTurn, error) {
	s.got.sessionID = sessionID
	s.got.message = message
	return s.turn, s.err
}

func newChatRouter(svc services.ChatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewChatHandler(svc)
	r.POST("/chat-input", h.ChatInput)
	r.POST("/voice-webhook", h.VoiceWebhook)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestChatInput_OK(t *testing.T) {
	stub := &stubChatService{turn: services.ChatTurn{Response: "What is your monthly income?"}}
	r := newChatRouter(stub)

	w := postJSON(t, r, "/chat-input", `{"session_id":"sess-1","message":"Asha"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "What is your monthly income?", resp.Response)
	assert.Equal(t, "sess-1", stub.got.sessionID)
	assert.Equal(t, "Asha", stub.got.message)
}

func TestChatInput_MissingFields(t *testing.T) {
	r := newChatRouter(&stubChatService{})

	for _, body := range []string{`{}`, `{"session_id":"sess-1"}`, `{"message":"hi"}`, `not json`} {
		w := postJSON(t, r, "/chat-input", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

func TestChatInput_ServiceError(t *testing.T) {
	stub := &stubChatService{err: utils.E(utils.CodeInternal, "ChatService.ProcessMessage", "failed to persist slot", nil)}
	r := newChatRouter(stub)

	w := postJSON(t, r, "/chat-input", `{"session_id":"sess-1","message":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, utils.CodeInternal, resp.Code)
}

func TestVoiceWebhook_RoutesTranscript(t *testing.T) {
	stub := &stubChatService{turn: services.ChatTurn{Response: "Great! How much loan amount are you looking for?"}}
	r := newChatRouter(stub)

	w := postJSON(t, r, "/voice-webhook", `{"session_id":"sess-1","transcript":"55000","call_id":"call-9"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "55000", stub.got.message)
}

func TestVoiceWebhook_UnknownSessionIsConversational(t *testing.T) {
	stub := &stubChatService{turn: services.ChatTurn{Response: services.ReplySessionNotFound}}
	r := newChatRouter(stub)

	w := postJSON(t, r, "/voice-webhook", `{"session_id":"gone","transcript":"hello"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Session not found")
}
