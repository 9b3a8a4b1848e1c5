package model

// Response codes carried in the "code" field of every JSON body. Clients
// depend on these values; never renumber them.
const (
	CodeOK             = 2000
	CodeValidation     = 4001
	CodeInvalidJSON    = 4002
	CodeEmailExists    = 4003
	CodeNotFound       = 4004
	CodeForbidden      = 4006
	CodeTooManyRequest = 4029
	CodeServerError    = 5000
	CodeLLMUnavailable = 5002
	CodeAnalysisFailed = 5003
	CodeUnauthorized   = 5005
	CodeTokenRevoked   = 5006
)

// ErrorBody is the envelope returned for every failed request.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Fail builds an ErrorBody.
func Fail(code int, message string) ErrorBody {
	return ErrorBody{Code: code, Message: message}
}
