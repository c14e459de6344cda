package forwarding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/milkbill/internal/domain/models"
)

func TestAppend(t *testing.T) {
	var got models.SheetRow
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/add-data", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Data sent successfully"}`))
	}))
	defer srv.Close()

	row := models.SheetRow{CustomerName: "Asha", MobileNumber: "9876543210", TotalAmount: "240.00"}
	require.NoError(t, NewClient(srv.URL+"/").Append(context.Background(), row))
	assert.Equal(t, row, got)
}

func TestAppendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Server configuration error"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Append(context.Background(), models.SheetRow{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=500")
	assert.Contains(t, err.Error(), "Server configuration error")
}
