package model

import "contact-manager/pkg/apierror"

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ContactResponse struct {
	Message string  `json:"message"`
	Contact Contact `json:"contact"`
}

type AuditListResponse struct {
	Entries []AuditEntry `json:"entries"`
}

// ErrorResponse is the only error body the API emits. Errors, when present,
// carries validator field messages; the message itself is always sanitized.
type ErrorResponse struct {
	Message string                `json:"message"`
	Errors  []apierror.FieldError `json:"errors,omitempty"`
}
