package upload_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/safeupload/pkg/file"
	"github.com/dmitrymomot/safeupload/pkg/ratelimiter"
	"github.com/dmitrymomot/safeupload/pkg/upload"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// newLimiter builds a limiter over a fresh memory store without background cleanup.
func newLimiter(t *testing.T, cfg ratelimiter.Config, opts ...ratelimiter.MemoryStoreOption) *ratelimiter.Limiter {
	t.Helper()
	store := ratelimiter.NewMemoryStore(append([]ratelimiter.MemoryStoreOption{ratelimiter.WithCleanupInterval(0)}, opts...)...)
	t.Cleanup(store.Close)

	limiter, err := ratelimiter.NewLimiter(store, cfg)
	require.NoError(t, err)
	return limiter
}

// newLocalService returns a service over a temporary directory with a budget
// large enough not to interfere.
func newLocalService(t *testing.T, opts ...upload.Option) (*upload.Service, *file.LocalStorage) {
	t.Helper()
	storage, err := file.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	svc, err := upload.NewService(storage, newLimiter(t, ratelimiter.Config{Limit: 1000, Window: time.Minute}), opts...)
	require.NoError(t, err)
	return svc, storage
}

func pngBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R'})
	return data
}

func jpegBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'})
	return data
}

func zipBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{'P', 'K', 0x03, 0x04, 0x14, 0x00})
	return data
}

func peBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{'M', 'Z', 0x90, 0x00, 0x03})
	return data
}

func elfBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0x7F, 'E', 'L', 'F', 0x02, 0x01, 0x01})
	return data
}

func oleBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	return data
}

// countingReader records how many bytes were read from it.
type countingReader struct {
	r    *bytes.Reader
	read atomic.Int64
}

func newCountingReader(data []byte) *countingReader {
	return &countingReader{r: bytes.NewReader(data)}
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read.Add(int64(n))
	return n, err
}

// lateCancelContext reports cancellation only after Err was consulted
// `after` times, which lets a test cancel between two checkpoints.
type lateCancelContext struct {
	context.Context
	after int32
	calls atomic.Int32
}

func (c *lateCancelContext) Err() error {
	if c.calls.Add(1) > c.after {
		return context.Canceled
	}
	return nil
}

// MockStorage is a mock implementation of file.Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) EnsureDir(ctx context.Context, dir string) error {
	return m.Called(ctx, dir).Error(0)
}

func (m *MockStorage) Write(ctx context.Context, key string, data []byte, contentType string) (*file.Object, error) {
	args := m.Called(ctx, key, data, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*file.Object), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, p string) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) Root() string {
	return m.Called().String(0)
}

func fmtMillis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func readAll(in upload.IncomingFile) ([]byte, error) {
	return io.ReadAll(in.Content)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}
