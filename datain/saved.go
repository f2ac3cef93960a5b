package datain

// SavedRecordResponse is the outcome for one submitted record.
type SavedRecordResponse struct {
	id           int
	success      bool
	errorCode    int
	errorMessage string
}

// NewSavedRecordResponse builds an outcome. id is 0 when unknown.
func NewSavedRecordResponse(id int, success bool, errorCode int, errorMessage string) SavedRecordResponse {
	return SavedRecordResponse{id: id, success: success, errorCode: errorCode, errorMessage: errorMessage}
}

// ID returns the id of the saved record, 0 if unknown.
func (r SavedRecordResponse) ID() int { return r.id }

// Success reports whether the record was saved.
func (r SavedRecordResponse) Success() bool { return r.success }

// ErrorCode returns the error code, 0 if none.
func (r SavedRecordResponse) ErrorCode() int { return r.errorCode }

// ErrorMessage returns the error message, "" if none.
func (r SavedRecordResponse) ErrorMessage() string { return r.errorMessage }
