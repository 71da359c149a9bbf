package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/biguint/internal/biguint"
)

func TestRecorder_CountsOperations(t *testing.T) {
	t.Parallel()
	r := NewRecorder()

	x, err := biguint.New(biguint.WithBytes([]byte{1}), biguint.WithObserver(r))
	require.NoError(t, err)
	y, err := x.Scope().New(biguint.WithBytes([]byte{2}))
	require.NoError(t, err)

	require.NoError(t, y.Add(y, x))
	require.NoError(t, y.Mul(y, y))
	require.Error(t, x.Sub(x, y))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("mul")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("sub")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operationErrs.WithLabelValues("sub")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.operationErrs.WithLabelValues("add")))

	assert.Equal(t, float64(x.Scope().InUse()), testutil.ToFloat64(r.bytesInUse))
	assert.Greater(t, testutil.ToFloat64(r.allocations), 2.0)

	require.NoError(t, x.Destroy())
	assert.Equal(t, 0.0, testutil.ToFloat64(r.bytesInUse))
}

func TestRecorder_ActiveRequests(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.IncrementActiveRequests()
	r.IncrementActiveRequests()
	r.DecrementActiveRequests()
	assert.Equal(t, 1.0, testutil.ToFloat64(r.activeRequests))
}

func TestRecorder_WritePrometheus(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.OperationDone("sqrt", nil)
	r.BytesAllocated(64)

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	r.WritePrometheus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `biguint_operations_total{op="sqrt"} 1`)
	assert.Contains(t, body, "biguint_bytes_in_use 64")
	assert.Contains(t, body, "biguint_allocations_total 1")
	assert.Contains(t, body, "go_goroutines")
}

func TestRecorder_PrivateRegistries(t *testing.T) {
	t.Parallel()
	a, b := NewRecorder(), NewRecorder()
	a.OperationDone("add", nil)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.operations.WithLabelValues("add")))
	assert.NotSame(t, a.Registry(), b.Registry())
}
