package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	Init(reg)

	ObserveBillsFetch(ResultError, 10*time.Millisecond)
	ObserveBillsFetch("", time.Millisecond)
	IncMalformedBill()
	IncPageError("404")
	IncExport("xlsx", "")

	assert.Equal(t, 1.0, testutil.ToFloat64(billsFetchTotal.WithLabelValues(ResultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(billsFetchTotal.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(billsMalformed))
	assert.Equal(t, 1.0, testutil.ToFloat64(pageErrors.WithLabelValues("404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(exportTotal.WithLabelValues("xlsx", ResultSuccess)))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
