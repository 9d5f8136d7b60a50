package adaptor

import (
	"net/http"

	"travel-booking/internal/usecase"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Handler struct {
	Booking     *BookingHandler
	Transaction *TransactionHandler
	Ticket      *TicketHandler
}

func NewHandler(service *usecase.Service, debug bool, log *zap.Logger) *Handler {
	return &Handler{
		Booking:     NewBookingHandler(service.Booking, debug, log),
		Transaction: NewTransactionHandler(service.Booking, debug, log),
		Ticket:      NewTicketHandler(service.Ticket, debug, log),
	}
}

// respondError maps the error taxonomy onto HTTP statuses. Rejections from
// the scan state machine may carry a payload (the participant snapshot) so
// the operator sees whose ticket was presented.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string, debug bool, data any) {
	kind := apperr.KindOf(err)
	message := apperr.MessageOf(err)

	switch kind {
	case apperr.KindInvalidInput, apperr.KindInvalidState:
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, message, nil)

	case apperr.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, message)

	case apperr.KindConflict, apperr.KindAlreadyRedeemed:
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, message, data)

	case apperr.KindVoided:
		log.Warn(operation+" failed - voided", zap.Error(err))
		utils.ResponseGone(w, message, data)

	case apperr.KindPaymentIncomplete:
		log.Warn(operation+" failed - payment incomplete", zap.Error(err))
		utils.ResponseForbidden(w, message)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		// Opaque message in production; the full error only in debug builds.
		if debug {
			utils.ResponseInternalError(w, err.Error())
			return
		}
		utils.ResponseInternalError(w, "Internal server error")
	}
}
