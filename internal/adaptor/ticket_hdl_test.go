package adaptor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperr"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubTicketService struct {
	scanResp   *response.ScanTicketResponse
	scanErr    error
	ticketResp *response.TicketResponse
	ticketErr  error
}

func (s *stubTicketService) Scan(_ context.Context, _ *request.ScanTicketRequest) (*response.ScanTicketResponse, error) {
	return s.scanResp, s.scanErr
}

func (s *stubTicketService) IssueTicket(_ context.Context, _ string) (*response.TicketResponse, error) {
	return s.ticketResp, s.ticketErr
}

func newTicketRouter(svc *stubTicketService) *chi.Mux {
	h := adaptor.NewTicketHandler(svc, false, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/bookings/scan", h.ScanTicket)
	r.Get("/bookings/{id}/ticket", h.GetTicket)
	return r
}

func doScan(t *testing.T, router http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"participant_id":"7b1f4b1e-6f0e-4e55-9a40-000000000001"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings/scan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestScanTicketStatusMapping(t *testing.T) {
	redeemed := &response.ScanTicketResponse{Name: "Budi Santoso", Status: entity.ParticipantStatusRedeemed}

	tests := []struct {
		name     string
		svc      *stubTicketService
		wantCode int
		wantOK   bool
	}{
		{
			name:     "success",
			svc:      &stubTicketService{scanResp: redeemed},
			wantCode: http.StatusOK,
			wantOK:   true,
		},
		{
			name:     "not found",
			svc:      &stubTicketService{scanErr: apperr.NotFound("participant not found")},
			wantCode: http.StatusNotFound,
		},
		{
			name: "already redeemed",
			svc: &stubTicketService{
				scanResp: redeemed,
				scanErr:  apperr.AlreadyRedeemed("ticket for Budi Santoso has already been redeemed"),
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "voided",
			svc: &stubTicketService{
				scanResp: &response.ScanTicketResponse{Name: "Budi Santoso", Status: entity.ParticipantStatusVoid},
				scanErr:  apperr.Voided("ticket for Budi Santoso has been voided"),
			},
			wantCode: http.StatusGone,
		},
		{
			name:     "invalid state",
			svc:      &stubTicketService{scanErr: apperr.InvalidState("ticket is in an invalid state")},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "internal error is opaque",
			svc:      &stubTicketService{scanErr: assertableInternalErr},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doScan(t, newTicketRouter(tt.svc))
			assert.Equal(t, tt.wantCode, rec.Code)

			var body struct {
				Status  bool            `json:"status"`
				Message string          `json:"message"`
				Data    json.RawMessage `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantOK, body.Status)

			if tt.wantCode == http.StatusInternalServerError {
				assert.Equal(t, "Internal server error", body.Message)
				assert.NotContains(t, body.Message, "pq:")
			}

			// Conflict and Gone still expose the participant snapshot.
			if tt.svc.scanResp != nil && (tt.wantCode == http.StatusConflict || tt.wantCode == http.StatusGone) {
				assert.Contains(t, string(body.Data), "Budi Santoso")
			}
		})
	}
}

var assertableInternalErr = apperr.Internal("query participant", errAny)

var errAny = assertErr{}

type assertErr struct{}

func (assertErr) Error() string { return "pq: connection refused" }

func TestGetTicketStatusMapping(t *testing.T) {
	t.Run("payment incomplete is forbidden", func(t *testing.T) {
		svc := &stubTicketService{ticketErr: apperr.PaymentIncomplete("booking BDG-ABCD1234 is not fully paid")}
		req := httptest.NewRequest(http.MethodGet, "/bookings/7b1f4b1e-6f0e-4e55-9a40-000000000002/ticket", nil)
		rec := httptest.NewRecorder()
		newTicketRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.NotContains(t, rec.Body.String(), "participants")
	})

	t.Run("issued ticket is returned", func(t *testing.T) {
		svc := &stubTicketService{ticketResp: &response.TicketResponse{
			BookingCode: "BDG-ABCD1234",
			QRCode:      "data:image/png;base64,xxx",
		}}
		req := httptest.NewRequest(http.MethodGet, "/bookings/7b1f4b1e-6f0e-4e55-9a40-000000000002/ticket", nil)
		rec := httptest.NewRecorder()
		newTicketRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "BDG-ABCD1234")
	})
}
