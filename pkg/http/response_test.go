package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IT-Nick/examdesk/internal/domain/model"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{model.ErrValidation, http.StatusBadRequest},
		{fmt.Errorf("failed to register test taker: %w", model.ErrDuplicate), http.StatusBadRequest},
		{model.ErrUnauthorized, http.StatusUnauthorized},
		{model.ErrChallengeNotFound, http.StatusBadRequest},
		{model.ErrChallengeExpired, http.StatusBadRequest},
		{model.ErrChallengeMismatch, http.StatusUnauthorized},
		{model.ErrUserNotFound, http.StatusBadRequest},
		{fmt.Errorf("failed to delete question 1: %w", model.ErrNotFound), http.StatusNotFound},
		{model.ErrUnsupported, http.StatusNotImplemented},
		{errors.New("googleapi: Error 403: forbidden"), http.StatusBadRequest},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, ожидалось %d", tt.err, got, tt.want)
		}
	}
}

func TestError_WritesBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, model.ErrChallengeExpired)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Ожидался статус 400, получено %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Неожиданный Content-Type: %s", ct)
	}
	var body ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Не удалось разобрать тело: %v", err)
	}
	if body.Message != "Kod muddati tugagan" || body.Msg != body.Message {
		t.Errorf("Неожиданное тело: %+v", body)
	}
}

func TestMessageFor_BackendPassThrough(t *testing.T) {
	err := errors.New("failed to list results: connection refused")
	if got := MessageFor(err); got != err.Error() {
		t.Errorf("Ожидалось исходное сообщение, получено %q", got)
	}
}
