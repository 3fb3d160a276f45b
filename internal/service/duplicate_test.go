package service

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credkit/issuerd/internal/domain/model"
)

func TestNewDuplicateMatcherRejectsBadExpression(t *testing.T) {
	_, err := NewDuplicateMatcher(true, "error..code", "duplicate_issuance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate-detection expression")
}

func TestDuplicateMatcherIsDuplicateSuccess(t *testing.T) {
	duplicateBody := json.RawMessage(`{"error":{"code":"duplicate_issuance","message":"already issued"}}`)

	tests := []struct {
		name           string
		treatAsSuccess bool
		expr           string
		value          string
		resp           model.AttemptResponse
		want           bool
	}{
		{
			name:           "matching 400",
			treatAsSuccess: true,
			expr:           "error.code",
			value:          "duplicate_issuance",
			resp:           model.AttemptResponse{StatusCode: http.StatusBadRequest, Body: duplicateBody},
			want:           true,
		},
		{
			name:           "policy disabled",
			treatAsSuccess: false,
			expr:           "error.code",
			value:          "duplicate_issuance",
			resp:           model.AttemptResponse{StatusCode: http.StatusBadRequest, Body: duplicateBody},
			want:           false,
		},
		{
			name:           "empty expression disables matching",
			treatAsSuccess: true,
			expr:           "",
			value:          "duplicate_issuance",
			resp:           model.AttemptResponse{StatusCode: http.StatusBadRequest, Body: duplicateBody},
			want:           false,
		},
		{
			name:           "only 400 responses are considered",
			treatAsSuccess: true,
			expr:           "error.code",
			value:          "duplicate_issuance",
			resp:           model.AttemptResponse{StatusCode: http.StatusConflict, Body: duplicateBody},
			want:           false,
		},
		{
			name:           "different error code",
			treatAsSuccess: true,
			expr:           "error.code",
			value:          "duplicate_issuance",
			resp: model.AttemptResponse{
				StatusCode: http.StatusBadRequest,
				Body:       json.RawMessage(`{"error":{"code":"schema_mismatch"}}`),
			},
			want: false,
		},
		{
			name:           "expression misses",
			treatAsSuccess: true,
			expr:           "error.reason",
			value:          "duplicate_issuance",
			resp:           model.AttemptResponse{StatusCode: http.StatusBadRequest, Body: duplicateBody},
			want:           false,
		},
		{
			name:           "non-json body",
			treatAsSuccess: true,
			expr:           "error.code",
			value:          "duplicate_issuance",
			resp: model.AttemptResponse{
				StatusCode: http.StatusBadRequest,
				Body:       json.RawMessage(`<html>nope</html>`),
			},
			want: false,
		},
		{
			name:           "empty body",
			treatAsSuccess: true,
			expr:           "error.code",
			value:          "duplicate_issuance",
			resp:           model.AttemptResponse{StatusCode: http.StatusBadRequest},
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewDuplicateMatcher(tt.treatAsSuccess, tt.expr, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.IsDuplicateSuccess(tt.resp))
		})
	}
}

func TestDuplicateMatcherNilReceiver(t *testing.T) {
	var m *DuplicateMatcher
	assert.False(t, m.IsDuplicateSuccess(model.AttemptResponse{StatusCode: http.StatusBadRequest}))
}
