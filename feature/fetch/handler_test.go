package fetch

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"object-fetcher/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client) {
	t.Helper()
	app := fiber.New()
	mockClient := new(mocks.Client)
	logger := zap.NewNop()
	svc := NewService(mockClient, Config{DownloadPath: "/tmp/downloaded_file.pdf"}, logger)
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, mockClient
}

func TestHandleReadJSON(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app, mockClient := setupTestApp(t)
		mockClient.On("GetObject", mock.Anything, "test-bucket", "config.json", mock.Anything).
			Return(objectBody(`{"enabled": true}`), nil)

		req := httptest.NewRequest("GET", "/fetch/json?path=s3%3A%2F%2Ftest-bucket%2Fconfig.json", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, true, body["enabled"])
	})

	t.Run("MissingPath", func(t *testing.T) {
		app, _ := setupTestApp(t)

		req := httptest.NewRequest("GET", "/fetch/json", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("InvalidPath", func(t *testing.T) {
		app, _ := setupTestApp(t)

		req := httptest.NewRequest("GET", "/fetch/json?path=test-bucket%2Fconfig.json", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("StorageFailure", func(t *testing.T) {
		app, mockClient := setupTestApp(t)
		mockClient.On("GetObject", mock.Anything, "test-bucket", "missing.json", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist.", StatusCode: 404})

		req := httptest.NewRequest("GET", "/fetch/json?path=s3%3A%2F%2Ftest-bucket%2Fmissing.json", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 502, resp.StatusCode)
	})
}

func TestHandleReadJSONRaw(t *testing.T) {
	app, mockClient := setupTestApp(t)
	raw := `{"enabled": true}`
	mockClient.On("GetObject", mock.Anything, "test-bucket", "config.json", mock.Anything).
		Return(objectBody(raw), nil)

	req := httptest.NewRequest("GET", "/fetch/json/raw?path=s3%3A%2F%2Ftest-bucket%2Fconfig.json", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, raw, body["content"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["enabled"])
}

func TestHandleReadCSV(t *testing.T) {
	t.Run("Records", func(t *testing.T) {
		app, mockClient := setupTestApp(t)
		mockClient.On("GetObject", mock.Anything, "test-bucket", "data.csv", mock.Anything).
			Return(objectBody("id,name\n1,a\n2,b\n"), nil)

		req := httptest.NewRequest("GET", "/fetch/csv?bucket=test-bucket&key=data.csv", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body struct {
			Records []map[string]string `json:"records"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		require.Len(t, body.Records, 2)
		assert.Equal(t, map[string]string{"id": "1", "name": "a"}, body.Records[0])
	})

	t.Run("Table", func(t *testing.T) {
		app, mockClient := setupTestApp(t)
		mockClient.On("GetObject", mock.Anything, "test-bucket", "data.csv", mock.Anything).
			Return(objectBody("id,name\n1,a\n2,b\n"), nil)

		req := httptest.NewRequest("GET", "/fetch/csv?bucket=test-bucket&key=data.csv&table=true", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body struct {
			Columns []string         `json:"columns"`
			Rows    []map[string]any `json:"rows"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, []string{"id", "name"}, body.Columns)
		assert.Len(t, body.Rows, 2)
	})

	t.Run("MissingParams", func(t *testing.T) {
		app, _ := setupTestApp(t)

		req := httptest.NewRequest("GET", "/fetch/csv?bucket=test-bucket", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestHandleDownload(t *testing.T) {
	t.Run("DefaultDestination", func(t *testing.T) {
		app, mockClient := setupTestApp(t)
		mockClient.On("FGetObject", mock.Anything, "test-bucket", "docs/report.pdf", "/tmp/downloaded_file.pdf", mock.Anything).
			Return(nil)

		req := httptest.NewRequest("POST", "/fetch/download", strings.NewReader(`{"path":"s3://test-bucket/docs/report.pdf"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "/tmp/downloaded_file.pdf", body["destination"])
	})

	t.Run("MissingPath", func(t *testing.T) {
		app, _ := setupTestApp(t)

		req := httptest.NewRequest("POST", "/fetch/download", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("StorageFailure", func(t *testing.T) {
		app, mockClient := setupTestApp(t)
		mockClient.On("FGetObject", mock.Anything, "test-bucket", "missing.pdf", "/tmp/out.pdf", mock.Anything).
			Return(minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist.", StatusCode: 404})

		req := httptest.NewRequest("POST", "/fetch/download", strings.NewReader(`{"path":"s3://test-bucket/missing.pdf","local_path":"/tmp/out.pdf"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 502, resp.StatusCode)
	})
}

func TestLoader(t *testing.T) {
	mockClient := new(mocks.Client)
	logger := zap.NewNop()
	feature := NewFeature(mockClient, Config{}, logger)

	assert.Equal(t, "fetch", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
