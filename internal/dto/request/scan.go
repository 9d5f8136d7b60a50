package request

type ScanTicketRequest struct {
	ParticipantID string `json:"participant_id" validate:"required,uuid4"`
}
