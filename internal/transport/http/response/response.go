package response

// Err 错误响应体；成功响应直接写业务负载，不套壳
type Err struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Err {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return Err{Code: code, Msg: msg}
}
