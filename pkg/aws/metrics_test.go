package aws

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
)

func TestToDimensions_SortedByName(t *testing.T) {
	dims := toDimensions(map[string]string{"Route": "/menus", "Method": "GET", "Status": "2xx"})

	var names []string
	for _, d := range dims {
		names = append(names, *d.Name)
	}
	assert.Equal(t, []string{"Method", "Route", "Status"}, names)
	assert.Nil(t, toDimensions(nil))
}

func TestDatumHelpers(t *testing.T) {
	c := Count(MetricOrdersCreated, nil)
	assert.Equal(t, float64(1), c.Value)
	assert.Equal(t, types.StandardUnitCount, c.Unit)

	l := Latency(MetricHTTPLatency, 1500*time.Millisecond, nil)
	assert.Equal(t, float64(1500), l.Value)
	assert.Equal(t, types.StandardUnitMilliseconds, l.Unit)
}

func TestMetricsClient_DisabledIsNoop(t *testing.T) {
	var nilClient *MetricsClient
	assert.False(t, nilClient.IsEnabled())
	assert.NoError(t, nilClient.RecordCount(context.Background(), MetricCacheHits, nil))

	disabled := &MetricsClient{enabled: false}
	assert.NoError(t, disabled.Put(context.Background(), Count(MetricCacheMisses, nil)))
}
