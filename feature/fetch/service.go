package fetch

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strings"

	"object-fetcher/core/storage"

	"github.com/go-gota/gota/dataframe"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Service handles object fetch operations.
type Service struct {
	client storage.Client
	cfg    Config
	logger *zap.Logger
}

// NewService creates a new fetch service.
func NewService(client storage.Client, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// ReadJSON fetches the object at the combined path and decodes it as a JSON
// mapping. The error is logged and returned unchanged; no fallback value is
// substituted.
func (s *Service) ReadJSON(ctx context.Context, path string) (map[string]any, error) {
	payload, _, err := s.readJSON(ctx, path)
	return payload, err
}

// ReadJSONWithContent behaves like ReadJSON but additionally returns the raw
// object text alongside the decoded mapping, for callers that need both the
// structured and original representations.
func (s *Service) ReadJSONWithContent(ctx context.Context, path string) (map[string]any, string, error) {
	return s.readJSON(ctx, path)
}

func (s *Service) readJSON(ctx context.Context, path string) (map[string]any, string, error) {
	bucket, key, err := ParseObjectPath(path)
	if err != nil {
		s.logger.Error("Invalid storage path", zap.String("path", path), zap.Error(err))
		return nil, "", err
	}

	raw, err := s.readObject(ctx, bucket, key)
	if err != nil {
		s.logReadError(err, bucket, key)
		return nil, "", err
	}

	content := string(raw)
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Log the bucket/key resolved above, not the raw input path.
		s.logger.Error("Failed to parse JSON content",
			zap.String("bucket", bucket),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, "", err
	}

	return payload, content, nil
}

// ReadCSVRecords fetches a CSV object and decodes it into an ordered sequence
// of records keyed by the header row.
func (s *Service) ReadCSVRecords(ctx context.Context, bucket, key string) ([]map[string]string, error) {
	s.logger.Info("Reading CSV object", zap.String("bucket", bucket), zap.String("key", key))

	raw, err := s.readObject(ctx, bucket, key)
	if err != nil {
		s.logReadError(err, bucket, key)
		return nil, err
	}

	records, err := decodeRecords(raw)
	if err != nil {
		s.logger.Error("Failed to parse CSV content",
			zap.String("bucket", bucket),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}

	return records, nil
}

// ReadCSVTable fetches a CSV object and hands the content to the gota
// dataframe parser instead of the record decoder.
func (s *Service) ReadCSVTable(ctx context.Context, bucket, key string) (dataframe.DataFrame, error) {
	s.logger.Info("Reading CSV object", zap.String("bucket", bucket), zap.String("key", key))

	raw, err := s.readObject(ctx, bucket, key)
	if err != nil {
		s.logReadError(err, bucket, key)
		return dataframe.DataFrame{}, err
	}

	df := dataframe.ReadCSV(strings.NewReader(string(raw)))
	if df.Err != nil {
		s.logger.Error("Failed to parse CSV content",
			zap.String("bucket", bucket),
			zap.String("key", key),
			zap.Error(df.Err),
		)
		return dataframe.DataFrame{}, df.Err
	}

	return df, nil
}

// Download streams the object at the combined path to a local file and returns
// the destination path. An empty localPath selects the configured default
// destination. No partial-file cleanup happens on failure, so a partially
// written file may remain.
func (s *Service) Download(ctx context.Context, path, localPath string) (string, error) {
	if localPath == "" {
		localPath = s.cfg.DownloadPath
	}

	parsed, err := url.Parse(path)
	if err != nil {
		s.logger.Error("Failed to download file from storage", zap.String("path", path), zap.Error(err))
		return "", err
	}
	bucket := parsed.Host
	key := strings.TrimPrefix(parsed.Path, "/")

	s.logger.Info("Downloading file from storage",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.String("destination", localPath),
	)

	if err := s.client.FGetObject(ctx, bucket, key, localPath, minio.GetObjectOptions{}); err != nil {
		s.logger.Error("Failed to download file from storage",
			zap.String("bucket", bucket),
			zap.String("key", key),
			zap.Error(err),
		)
		return "", err
	}

	s.logger.Info("Download successful", zap.String("destination", localPath))
	return localPath, nil
}

// readObject fetches an object and reads its full content. Minio surfaces
// request errors lazily on the first read, so both stages are covered here.
func (s *Service) readObject(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	return io.ReadAll(obj)
}

// logReadError records a failed storage read. Provider errors carry a
// machine-readable code and a message; both are logged, and the error itself
// goes back to the caller unchanged.
func (s *Service) logReadError(err error, bucket, key string) {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		s.logger.Error("Failed to read from storage",
			zap.String("bucket", bucket),
			zap.String("key", key),
			zap.String("code", resp.Code),
			zap.String("message", resp.Message),
			zap.Error(err),
		)
		return
	}

	s.logger.Error("Unexpected error reading from storage",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.Error(err),
	)
}

// decodeRecords maps each CSV row onto the column headers from the first row.
// An empty object yields an empty record list.
func decodeRecords(raw []byte) ([]map[string]string, error) {
	reader := csv.NewReader(strings.NewReader(string(raw)))

	header, err := reader.Read()
	if err == io.EOF {
		return []map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	records := make([]map[string]string, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		record := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				record[col] = row[i]
			}
		}
		records = append(records, record)
	}

	return records, nil
}
