package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/ssamu04/groceria/pkg/errors"
)

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestWriteSuccessReturnsPlainPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"name": "Weekly"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["name"] != "Weekly" {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestWriteCreatedStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteCreated(rec, map[string]string{"name": "Weekly"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "validation",
			err:         pkgerrors.New(pkgerrors.CodeValidation, "name is required"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "name is required",
		},
		{
			name:        "not found",
			err:         pkgerrors.New(pkgerrors.CodeNotFound, "Grocery list not found"),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Grocery list not found",
		},
		{
			name:        "rate limit",
			err:         pkgerrors.New(pkgerrors.CodeRateLimit, "Too many requests"),
			wantStatus:  http.StatusTooManyRequests,
			wantMessage: "Too many requests",
		},
		{
			name:        "dependency",
			err:         pkgerrors.New(pkgerrors.CodeDependency, "catalog unavailable"),
			wantStatus:  http.StatusBadGateway,
			wantMessage: "catalog unavailable",
		},
		{
			name:        "internal hides detail",
			err:         pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("connection refused"), "fetch grocery list"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Server Error",
		},
		{
			name:        "untyped error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Server Error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(context.Background(), nil, rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d got %d", tc.wantStatus, rec.Code)
			}
			body := decodeErrorBody(t, rec)
			if body.Message != tc.wantMessage {
				t.Fatalf("expected message %q got %q", tc.wantMessage, body.Message)
			}
		})
	}
}

func TestWriteErrorNilError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}
