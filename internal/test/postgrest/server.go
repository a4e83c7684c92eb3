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

// Package postgrest 在内存里模拟一个 PostgREST 风格的表接口，用于测试远端存储
package postgrest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const APIKey = "test-api-key"

type Row struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `json:"username"`
	Payload   string    `json:"payload"`
	ReplyOf   *int64    `json:"reply_of"`
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

type failure struct {
	status  int
	message string
}

type Server struct {
	*httptest.Server
	table string

	mu     sync.Mutex
	rows   []Row
	nextID int64
	last   time.Time
	fails  []failure
}

func NewServer(table string) *Server {
	s := &Server{table: table, nextID: 1, rows: []Row{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// NewRestyClient 返回一个已经设置好地址和鉴权头的客户端
func (s *Server) NewRestyClient() *resty.Client {
	return resty.New().
		SetBaseURL(s.URL).
		SetHeader("apikey", APIKey).
		SetAuthToken(APIKey).
		SetTimeout(3 * time.Second)
}

// FailNext 下一次请求返回指定的错误
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fails = append(s.fails, failure{status: status, message: message})
}

// Seed 直接写入数据，返回写入后的行
func (s *Server) Seed(username, payload string, replyOf *int64) Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(username, payload, replyOf)
}

func (s *Server) Rows() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]Row, len(s.rows))
	copy(res, s.rows)
	return res
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("apikey") != APIKey || r.Header.Get("Authorization") != "Bearer "+APIKey {
		s.writeError(w, http.StatusUnauthorized, apiError{Message: "Invalid API key", Hint: "Double check your API key."})
		return
	}
	if r.URL.Path != "/rest/v1/"+s.table {
		s.writeError(w, http.StatusNotFound, apiError{
			Code:    "42P01",
			Message: `relation "public.` + strings.TrimPrefix(r.URL.Path, "/rest/v1/") + `" does not exist`,
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.fails) > 0 {
		f := s.fails[0]
		s.fails = s.fails[1:]
		s.writeError(w, f.status, apiError{Message: f.message})
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, http.StatusOK, s.rows)
	case http.MethodPost:
		var body struct {
			Username string `json:"username"`
			Payload  string `json:"payload"`
			ReplyOf  *int64 `json:"reply_of"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, http.StatusBadRequest, apiError{Code: "PGRST102", Message: "Empty or invalid json"})
			return
		}
		row := s.insert(body.Username, body.Payload, body.ReplyOf)
		s.writeJSON(w, http.StatusCreated, []Row{row})
	case http.MethodPatch:
		id, ok := s.filterID(w, r)
		if !ok {
			return
		}
		var body struct {
			Payload   string `json:"payload"`
			UpdatedAt string `json:"updated_at"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, http.StatusBadRequest, apiError{Code: "PGRST102", Message: "Empty or invalid json"})
			return
		}
		res := []Row{}
		for i := range s.rows {
			if s.rows[i].ID != id {
				continue
			}
			s.rows[i].Payload = body.Payload
			s.rows[i].UpdatedAt = s.tick()
			res = append(res, s.rows[i])
		}
		s.writeJSON(w, http.StatusOK, res)
	case http.MethodDelete:
		id, ok := s.filterID(w, r)
		if !ok {
			return
		}
		res := []Row{}
		kept := s.rows[:0]
		for _, row := range s.rows {
			if row.ID == id {
				res = append(res, row)
				continue
			}
			kept = append(kept, row)
		}
		s.rows = kept
		s.writeJSON(w, http.StatusOK, res)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, apiError{Message: "Method not allowed"})
	}
}

func (s *Server) insert(username, payload string, replyOf *int64) Row {
	now := s.tick()
	row := Row{
		ID:        s.nextID,
		CreatedAt: now,
		UpdatedAt: now,
		Username:  username,
		Payload:   payload,
		ReplyOf:   replyOf,
	}
	s.nextID++
	s.rows = append(s.rows, row)
	return row
}

// tick 保证时间严格递增，精度是毫秒
func (s *Server) tick() time.Time {
	now := time.Now().UTC().Truncate(time.Millisecond)
	if !now.After(s.last) {
		now = s.last.Add(time.Millisecond)
	}
	s.last = now
	return now
}

func (s *Server) filterID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	v := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(strings.TrimPrefix(v, "eq."), 10, 64)
	if !strings.HasPrefix(v, "eq.") || err != nil {
		s.writeError(w, http.StatusBadRequest, apiError{
			Code:    "PGRST100",
			Message: `"failed to parse filter (` + v + `)" (line 1, column 1)`,
		})
		return 0, false
	}
	return id, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, e apiError) {
	s.writeJSON(w, status, e)
}
