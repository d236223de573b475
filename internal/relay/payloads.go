package relay

import "baro_site_server/internal/types"

const (
	ErrandRequestSubject  = "바로심부름 - 새로운 심부름 신청이 접수되었습니다"
	ContactMessageSubject = "바로심부름 - 일반 문의가 접수되었습니다"
)

// ErrandRequest is the relay body for the errand request form.
type ErrandRequest struct {
	Subject string `json:"subject"`
	types.RequestFormData
}

func NewErrandRequest(form types.RequestFormData) ErrandRequest {
	return ErrandRequest{Subject: ErrandRequestSubject, RequestFormData: form}
}

// ContactMessage is the relay body for the general inquiry form.
type ContactMessage struct {
	Subject string `json:"subject"`
	types.ContactFormData
}

func NewContactMessage(form types.ContactFormData) ContactMessage {
	return ContactMessage{Subject: ContactMessageSubject, ContactFormData: form}
}
