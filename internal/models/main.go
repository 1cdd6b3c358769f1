// Package models defines the core data structures for visa cases,
// share links, and upload provenance.
package models

// Case represents one tracked visa case for an employee.
type Case struct {
	// ID is the unique identifier for the case, assigned by the server.
	ID string `json:"id"`
	// EmployeeName is the full name of the employee. Required.
	EmployeeName string `json:"employee_name"`
	// VisaType is the visa category (H-1B, L-1, etc.). Required.
	VisaType string `json:"visa_type"`
	// ExpiryDate is the canonical YYYY-MM-DD expiry of the visa. Required.
	ExpiryDate string `json:"expiry_date"`
	// CurrentStage is the optional processing stage of the case.
	CurrentStage string `json:"current_stage"`
	// USCISCaseID is the optional USCIS receipt number.
	USCISCaseID string `json:"uscis_case_id"`
	// Notes holds optional free-form notes.
	Notes string `json:"notes"`
	// LastUpdatedAt is an RFC 3339 timestamp stamped on every write.
	LastUpdatedAt string `json:"last_updated_at"`
}

// SharedLink maps an opaque viewer token to a case and the email it was sent to.
type SharedLink struct {
	// CaseID references the shared case. A reference, not ownership:
	// the case may be replaced out from under the link.
	CaseID string `json:"case_id"`
	// Email is the recipient the viewer link was mailed to.
	Email string `json:"email"`
	// LinkToken is the unguessable token embedded in the viewer URL.
	LinkToken string `json:"link_token"`
}

// Upload records provenance for one replace-all import.
type Upload struct {
	// Filename is the original name of the uploaded spreadsheet.
	Filename string `json:"filename"`
	// UploadedBy is the authenticated identity that ran the import, if any.
	UploadedBy string `json:"uploaded_by"`
	// RowCount is the number of case rows the import produced.
	RowCount int `json:"row_count"`
}
