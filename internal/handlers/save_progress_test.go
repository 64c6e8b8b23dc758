package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/mlevkov/gamebackend/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestSaveProgressHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockProgressSaver)
		expectedCode int
		expectedBody map[string]any
	}{
		{
			name: "new progress",
			body: `{"user_id":1,"level_number":1,"stars":3}`,
			mockSetup: func(m *MockProgressSaver) {
				m.EXPECT().
					Save(gomock.Any(), int64(1), int64(1), 3).
					Return(services.SaveCreated, nil)
			},
			expectedCode: 200,
			expectedBody: map[string]any{"message": "New progress saved successfully"},
		},
		{
			name: "higher score updates",
			body: `{"user_id":1,"level_number":1,"stars":5}`,
			mockSetup: func(m *MockProgressSaver) {
				m.EXPECT().
					Save(gomock.Any(), int64(1), int64(1), 5).
					Return(services.SaveUpdated, nil)
			},
			expectedCode: 200,
			expectedBody: map[string]any{"message": "Progress updated with higher score"},
		},
		{
			name: "lower score keeps existing",
			body: `{"user_id":1,"level_number":1,"stars":2}`,
			mockSetup: func(m *MockProgressSaver) {
				m.EXPECT().
					Save(gomock.Any(), int64(1), int64(1), 2).
					Return(services.SaveUnchanged, nil)
			},
			expectedCode: 200,
			expectedBody: map[string]any{"message": "Existing score is higher, no changes made"},
		},
		{
			name:         "invalid json",
			body:         `{invalid json}`,
			expectedCode: 400,
		},
		{
			name: "store error echoed",
			body: `{"user_id":1,"level_number":1,"stars":3}`,
			mockSetup: func(m *MockProgressSaver) {
				m.EXPECT().
					Save(gomock.Any(), int64(1), int64(1), 3).
					Return(services.SaveResult(0), errors.New("FOREIGN KEY constraint failed"))
			},
			expectedCode: 400,
			expectedBody: map[string]any{"error": "FOREIGN KEY constraint failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockProgressSaver(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewSaveProgressHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/save-progress", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedBody != nil {
				var resp map[string]any
				err := json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBody, resp)
			}
		})
	}
}
