package output

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fleet-report/core/storage"
	"fleet-report/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	sink, err := New(Config{Sink: "local", Dir: "Reports"}, afero.NewMemMapFs(), nil, "")
	require.NoError(t, err)
	assert.IsType(t, &LocalSink{}, sink)

	_, err = New(Config{Sink: "s3"}, nil, nil, "bucket")
	assert.ErrorContains(t, err, "requires a storage client")

	sink, err = New(Config{Sink: "S3", Prefix: "reports"}, nil, new(mocks.Client), "bucket")
	require.NoError(t, err)
	assert.IsType(t, &ObjectSink{}, sink)

	_, err = New(Config{Sink: "ftp"}, nil, nil, "")
	assert.ErrorContains(t, err, "unknown report sink")
}

func TestRelPath(t *testing.T) {
	tests := []struct {
		name    string
		isolate bool
		runID   string
		file    string
		want    string
		wantErr bool
	}{
		{"Plain", false, "", "vessels_Report.xlsx", "vessels_Report.xlsx", false},
		{"Isolated", true, "0b7f", "vessels_Report.xlsx", "0b7f/vessels_Report.xlsx", false},
		{"Traversal", false, "", "../etc/passwd", "", true},
		{"Backslash", false, "", `..\x.xlsx`, "", true},
		{"Empty", false, "", "", "", true},
		{"BadRunID", true, "../x", "a.xlsx", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := relPath(tt.isolate, tt.runID, tt.file)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalSink(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	sink := NewLocalSink(fs, "Reports", false)

	entries, err := sink.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	loc, err := sink.Save(ctx, "ignored", "vessels_Report.xlsx", []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, "Reports/vessels_Report.xlsx", loc)

	// Same name overwrites without isolation.
	_, err = sink.Save(ctx, "other", "vessels_Report.xlsx", []byte("second"))
	require.NoError(t, err)

	rc, err := sink.Open(ctx, "", "vessels_Report.xlsx")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "second", string(body))

	entries, err = sink.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "vessels_Report.xlsx", entries[0].Name)
	assert.Equal(t, int64(6), entries[0].Size)

	_, err = sink.Open(ctx, "", "missing.xlsx")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalSink_IsolateRuns(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	sink := NewLocalSink(fs, "Reports", true)

	_, err := sink.Save(ctx, "run-a", "vessels_Report.xlsx", []byte("a"))
	require.NoError(t, err)
	_, err = sink.Save(ctx, "run-b", "vessels_Report.xlsx", []byte("b"))
	require.NoError(t, err)

	for runID, want := range map[string]string{"run-a": "a", "run-b": "b"} {
		rc, err := sink.Open(ctx, runID, "vessels_Report.xlsx")
		require.NoError(t, err)
		body, _ := io.ReadAll(rc)
		rc.Close()
		assert.Equal(t, want, string(body))
	}

	entries, err := sink.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "run-a", entries[0].RunID)
	assert.Equal(t, "run-b", entries[1].RunID)
}

func TestObjectSink(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	sink := NewObjectSink(client, "fleet-reports", "/reports/", false)

	client.On("PutObject", mock.Anything, "fleet-reports", "reports/vessels_Report.xlsx", mock.Anything, int64(4),
		minio.PutObjectOptions{ContentType: ContentType}).Return(minio.UploadInfo{}, nil)

	loc, err := sink.Save(ctx, "", "vessels_Report.xlsx", []byte("xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "fleet-reports/reports/vessels_Report.xlsx", loc)
	require.Len(t, client.Uploaded, 1)
	assert.Equal(t, []byte("xlsx"), client.Uploaded[0].Body)

	client.On("StatObject", mock.Anything, "fleet-reports", "reports/vessels_Report.xlsx", mock.Anything).
		Return(minio.ObjectInfo{Key: "reports/vessels_Report.xlsx", Size: 4}, nil)
	client.On("GetObject", mock.Anything, "fleet-reports", "reports/vessels_Report.xlsx", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("xlsx"))), nil)

	rc, err := sink.Open(ctx, "", "vessels_Report.xlsx")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "xlsx", string(body))

	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "reports/vessels_Report.xlsx", Size: 4}
	ch <- minio.ObjectInfo{Key: "reports/notes.txt"}
	ch <- minio.ObjectInfo{Key: "reports/run-1/b_Report.xlsx", Size: 9}
	close(ch)
	client.On("ListObjects", mock.Anything, "fleet-reports", minio.ListObjectsOptions{Prefix: "reports/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(ch))

	entries, err := sink.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Name: "vessels_Report.xlsx", Size: 4}, entries[0])
	assert.Equal(t, Entry{Name: "b_Report.xlsx", RunID: "run-1", Size: 9}, entries[1])
}

func TestObjectSink_UploadError(t *testing.T) {
	client := new(mocks.Client)
	sink := NewObjectSink(client, "fleet-reports", "", false)

	client.On("PutObject", mock.Anything, "fleet-reports", "x_Report.xlsx", mock.Anything, int64(1), mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	_, err := sink.Save(context.Background(), "", "x_Report.xlsx", []byte("x"))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestObjectSink_OpenMissing(t *testing.T) {
	client := new(mocks.Client)
	sink := NewObjectSink(client, "fleet-reports", "reports", false)

	client.On("StatObject", mock.Anything, "fleet-reports", "reports/missing_Report.xlsx", mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})

	_, err := sink.Open(context.Background(), "", "missing_Report.xlsx")
	assert.ErrorIs(t, err, ErrNotFound)
	client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestObjectSink_OpenStatError(t *testing.T) {
	client := new(mocks.Client)
	sink := NewObjectSink(client, "fleet-reports", "reports", false)

	client.On("StatObject", mock.Anything, "fleet-reports", "reports/a_Report.xlsx", mock.Anything).
		Return(minio.ObjectInfo{}, assert.AnError)

	_, err := sink.Open(context.Background(), "", "a_Report.xlsx")
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrNotFound)
}

// A real minio client against a server that knows no objects: the missing
// key must be reported by Open, not by the first Read.
func TestObjectSink_OpenMissingOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Header().Set("X-Amz-Request-Id", "test")
		w.WriteHeader(http.StatusNotFound)
		if r.Method != http.MethodHead {
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
		}
	}))
	defer srv.Close()

	client, err := storage.NewClient(storage.Config{Endpoint: srv.URL, AccessKey: "k", SecretKey: "s", Region: "us-east-1"})
	require.NoError(t, err)

	sink := NewObjectSink(client, "fleet-reports", "reports", false)
	rc, err := sink.Open(context.Background(), "", "missing_Report.xlsx")
	if rc != nil {
		rc.Close()
	}
	assert.ErrorIs(t, err, ErrNotFound)
}
