package utils

// Response is the envelope returned by every API endpoint.
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

var ErrParameters = Response{Code: 2001, Msg: "invalid parameters", Data: map[string]interface{}{}}

func ResponseOK(data interface{}) Response {
	return Response{Code: 0, Msg: "ok", Data: data}
}

func ResponseErr(code int, msg string, data interface{}) Response {
	if data == nil {
		data = map[string]interface{}{}
	}
	return Response{Code: code, Msg: msg, Data: data}
}
