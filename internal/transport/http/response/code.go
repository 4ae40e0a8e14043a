package response

// 错误码直接基于 HTTP 语义
const (
	CodeBadRequest         = 400
	CodeNotFound           = 404
	CodePayloadTooLarge    = 413
	CodeTooManyRequests    = 429
	CodeServerError        = 500
	CodeServiceUnavailable = 503
	CodeGatewayTimeout     = 504
)

// CodeMsgMap 集中管理 code - msg
var CodeMsgMap = map[int]string{
	CodeBadRequest:         "Bad Request",
	CodeNotFound:           "Not Found",
	CodePayloadTooLarge:    "Payload Too Large",
	CodeTooManyRequests:    "Too Many Requests",
	CodeServerError:        "Internal Server Error",
	CodeServiceUnavailable: "Service Unavailable",
	CodeGatewayTimeout:     "Gateway Timeout",
}
