package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseObjectPath(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{"Simple", "s3://bucket/key", "bucket", "key", false},
		{"NestedKey", "s3://bucket/key/sub", "bucket", "key/sub", false},
		{"DeepKey", "s3://data-lake/reports/2024/01/daily.csv", "data-lake", "reports/2024/01/daily.csv", false},
		{"MissingPrefix", "bucket/key", "", "", true},
		{"WrongScheme", "gs://bucket/key", "", "", true},
		{"NoSeparator", "s3://bucket", "", "", true},
		{"Empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, err := ParseObjectPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
