package constants

// RequestStatus is the canonical lifecycle status for a procurement request.
type RequestStatus string

// Stable values (store these exact strings in the DB).
const (
	StatusPending    RequestStatus = "pending"    // created right after upload + extraction
	StatusOpen       RequestStatus = "open"       // submitted into the approval pipeline
	StatusInProgress RequestStatus = "inprogress" // being worked by procurement
	StatusClosed     RequestStatus = "closed"     // terminal
)

// ParseRequestStatus validates a raw status string.
func ParseRequestStatus(raw string) (RequestStatus, bool) {
	switch RequestStatus(raw) {
	case StatusPending, StatusOpen, StatusInProgress, StatusClosed:
		return RequestStatus(raw), true
	}
	return "", false
}
