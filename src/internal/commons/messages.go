package commons

const (
	MessageValidationFailed   = "validation failed"
	MessageAccountNotFound    = "Account not found"
	MessageInsufficientFunds  = "Insufficient balance"
	MessageServiceUnavailable = "Service temporarily unavailable"
	MessageTransferFailed     = "failed to process transfer"
	MessageTransferSuccessful = "Transfer successful"
	MessageAccountRetrieved   = "Account retrieved"
)

// Failure codes carried in Response.Code. Controllers map them to HTTP
// status codes.
const (
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeAccountNotFound    = "ACCOUNT_NOT_FOUND"
	CodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeTransferFailed     = "TRANSFER_FAILED"
)
