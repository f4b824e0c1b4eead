package test

import (
	"encoding/json"
	"net/http/httptest"
)

// Result 和 web.Result 对应，Data 换成具体类型方便断言
type Result[T any] struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}

type JSONResponseRecorder[T any] struct {
	*httptest.ResponseRecorder
}

func NewJSONResponseRecorder[T any]() JSONResponseRecorder[T] {
	return JSONResponseRecorder[T]{
		ResponseRecorder: httptest.NewRecorder(),
	}
}

// MustScan 响应体不是合法 JSON 时直接 panic
func (r JSONResponseRecorder[T]) MustScan() Result[T] {
	var res Result[T]
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		panic(err)
	}
	return res
}
