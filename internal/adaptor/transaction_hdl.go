package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type TransactionHandler struct {
	service usecase.BookingService
	debug   bool
	log     *zap.Logger
}

func NewTransactionHandler(service usecase.BookingService, debug bool, log *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: service,
		debug:   debug,
		log:     log.With(zap.String("handler", "transaction")),
	}
}

// CreateTransaction handles POST /transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	txn, err := h.service.RecordPayment(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "record payment", h.debug, nil)
		return
	}

	utils.ResponseCreated(w, "payment recorded", txn)
}
