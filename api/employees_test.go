package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garnizeh/worklog/api"
	"github.com/garnizeh/worklog/internal/auth"
	"github.com/garnizeh/worklog/pkg/models"
	"github.com/garnizeh/worklog/pkg/repository/mock"
)

func TestListEmployees(t *testing.T) {
	t.Run("empty store returns an empty array", func(t *testing.T) {
		h := api.NewEmployeesHandler(mock.NewMocks().EmpRepo, false)
		w := serve(t, h.ListEmployees, http.MethodGet, "/api/employees", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("rows include the stored hash", func(t *testing.T) {
		m := mock.NewMocks()
		m.EmpRepo.Stored = []models.Employee{
			{ID: 1, Name: "Ana", Email: "ana@example.com", Username: "ana", Password: "$2a$10$x", IsBoss: 1},
			{ID: 2, Name: "Bob", Email: "bob@example.com", Username: "bob", Password: "$2a$10$y"},
		}
		h := api.NewEmployeesHandler(m.EmpRepo, false)
		w := serve(t, h.ListEmployees, http.MethodGet, "/api/employees", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[
			{"id":1,"name":"Ana","email":"ana@example.com","username":"ana","password":"$2a$10$x","isBoss":1},
			{"id":2,"name":"Bob","email":"bob@example.com","username":"bob","password":"$2a$10$y","isBoss":0}
		]`, w.Body.String())
	})

	t.Run("redacted rows omit the hash", func(t *testing.T) {
		m := mock.NewMocks()
		m.EmpRepo.Stored = []models.Employee{{ID: 1, Username: "ana", Password: "$2a$10$x"}}
		h := api.NewEmployeesHandler(m.EmpRepo, true)
		w := serve(t, h.ListEmployees, http.MethodGet, "/api/employees", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("store error", func(t *testing.T) {
		m := mock.NewMocks()
		m.EmpRepo.ListErr = errors.New("boom")
		h := api.NewEmployeesHandler(m.EmpRepo, false)
		w := serve(t, h.ListEmployees, http.MethodGet, "/api/employees", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to fetch employees"}`, w.Body.String())
	})
}

func TestAddEmployee(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		prepare    func(m *mock.Mocks)
		wantStatus int
		wantBody   string
		check      func(t *testing.T, m *mock.Mocks)
	}{
		{
			name:       "Created",
			body:       `{"name":"Cene","email":"cene@example.com","username":"cene","password":"geslo123","isBoss":true}`,
			wantStatus: http.StatusCreated,
			wantBody:   `{"message":"Employee added successfully","id":1}`,
			check: func(t *testing.T, m *mock.Mocks) {
				require.Len(t, m.EmpRepo.Stored, 1)
				e := m.EmpRepo.Stored[0]
				assert.Equal(t, "cene", e.Username)
				assert.Equal(t, 1, e.IsBoss)
				assert.NotEqual(t, "geslo123", e.Password)
				assert.True(t, auth.VerifyPassword("geslo123", e.Password))
				assert.False(t, auth.VerifyPassword("geslo124", e.Password))
			},
		},
		{
			name:       "IsBossAsString",
			body:       `{"name":"D","email":"d@example.com","username":"d","password":"pw","isBoss":"0"}`,
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, m *mock.Mocks) {
				require.Len(t, m.EmpRepo.Stored, 1)
				assert.Equal(t, 0, m.EmpRepo.Stored[0].IsBoss)
			},
		},
		{
			name:       "IsBossNotAFlag",
			body:       `{"name":"G","email":"g@example.com","username":"g","password":"pw","isBoss":"boss"}`,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to add employee"}`,
			check: func(t *testing.T, m *mock.Mocks) {
				assert.Empty(t, m.EmpRepo.Stored)
			},
		},
		{
			name:       "InvalidRequest",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid request"}`,
		},
		{
			name:       "DuplicateUsername",
			body:       `{"name":"E","email":"e@example.com","username":"e","password":"pw"}`,
			prepare:    func(m *mock.Mocks) { m.EmpRepo.CreateErr = errors.New("UNIQUE constraint failed") },
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to add employee"}`,
		},
		{
			name:       "PasswordTooLong",
			body:       `{"name":"F","email":"f@example.com","username":"f","password":"` + string(make72plus()) + `"}`,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to add employee"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mock.NewMocks()
			if tt.prepare != nil {
				tt.prepare(m)
			}
			h := api.NewEmployeesHandler(m.EmpRepo, false)
			w := serve(t, h.AddEmployee, http.MethodPost, "/api/employees", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
			if tt.check != nil {
				tt.check(t, m)
			}
		})
	}
}

func make72plus() []byte {
	b := make([]byte, 80)
	for i := range b {
		b[i] = 'a'
	}
	return b
}

func TestAddEmployeeResponseID(t *testing.T) {
	m := mock.NewMocks()
	h := api.NewEmployeesHandler(m.EmpRepo, false)
	serve(t, h.AddEmployee, http.MethodPost, "/api/employees", `{"username":"a","password":"p"}`)
	w := serve(t, h.AddEmployee, http.MethodPost, "/api/employees", `{"username":"b","password":"p"}`)

	var resp struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp.ID)
}
