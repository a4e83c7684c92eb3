// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecodeclub/ekit/iox"
	"github.com/stretchr/testify/require"
)

// ErrorResp 接口出错时的响应体
type ErrorResp struct {
	Message string `json:"message"`
}

// Do 直接调用 handler，并把响应体解析成 T。body 为 nil 时不带请求体
func Do[T any](t *testing.T, h http.Handler, method, url string, body any) (int, T) {
	var req *http.Request
	var err error
	if body == nil {
		req, err = http.NewRequest(method, url, nil)
	} else {
		req, err = http.NewRequest(method, url, iox.NewJSONReader(body))
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	h.ServeHTTP(recorder, req)
	var res T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res), recorder.Body.String())
	return recorder.Code, res
}
