package aws

import (
	"context"
	"fmt"
	"sort"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metric names published under the configured namespace.
const (
	MetricHTTPRequests = "HTTPRequests"
	MetricHTTPErrors   = "HTTPErrors"
	MetricHTTPLatency  = "HTTPLatency"
	MetricHTTP4xx      = "HTTP4xxErrors"
	MetricHTTP5xx      = "HTTP5xxErrors"

	MetricOrdersCreated       = "OrdersCreated"
	MetricOrderRevenue        = "OrderRevenue"
	MetricCheckoutFailed      = "CheckoutFailed"
	MetricReservationsCreated = "ReservationsCreated"
	MetricReviewsCreated      = "ReviewsCreated"
	MetricUsersRegistered     = "UsersRegistered"

	MetricCacheHits   = "CacheHits"
	MetricCacheMisses = "CacheMisses"
)

// PutMetricData accepts at most this many data points per call.
const maxDatumsPerCall = 1000

// Datum is one data point.
type Datum struct {
	Name       string
	Value      float64
	Unit       types.StandardUnit
	Dimensions map[string]string
}

// Count is a single increment of name.
func Count(name string, dimensions map[string]string) Datum {
	return Datum{Name: name, Value: 1, Unit: types.StandardUnitCount, Dimensions: dimensions}
}

// Latency records d in milliseconds.
func Latency(name string, d time.Duration, dimensions map[string]string) Datum {
	return Datum{Name: name, Value: float64(d.Milliseconds()), Unit: types.StandardUnitMilliseconds, Dimensions: dimensions}
}

// MetricsClient publishes to CloudWatch. A nil or disabled client drops
// every data point, so callers never need to check before recording.
type MetricsClient struct {
	client    *cloudwatch.Client
	namespace string
	enabled   bool
	now       func() time.Time
}

func NewMetricsClient(cfg sdkaws.Config, namespace string, enabled bool) *MetricsClient {
	if namespace == "" {
		namespace = "Restaurant"
	}
	return &MetricsClient{
		client:    cloudwatch.NewFromConfig(cfg),
		namespace: namespace,
		enabled:   enabled,
		now:       time.Now,
	}
}

func (m *MetricsClient) IsEnabled() bool {
	return m != nil && m.enabled
}

// Put sends the data points in as few PutMetricData calls as possible, all
// stamped with the same timestamp.
func (m *MetricsClient) Put(ctx context.Context, data ...Datum) error {
	if !m.IsEnabled() || len(data) == 0 {
		return nil
	}

	ts := sdkaws.Time(m.now())
	batch := make([]types.MetricDatum, 0, len(data))
	for _, d := range data {
		batch = append(batch, types.MetricDatum{
			MetricName: sdkaws.String(d.Name),
			Value:      sdkaws.Float64(d.Value),
			Unit:       d.Unit,
			Timestamp:  ts,
			Dimensions: toDimensions(d.Dimensions),
		})
	}

	for start := 0; start < len(batch); start += maxDatumsPerCall {
		end := start + maxDatumsPerCall
		if end > len(batch) {
			end = len(batch)
		}
		if _, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  sdkaws.String(m.namespace),
			MetricData: batch[start:end],
		}); err != nil {
			return fmt.Errorf("put %d metrics to %s: %w", end-start, m.namespace, err)
		}
	}
	return nil
}

func (m *MetricsClient) RecordCount(ctx context.Context, name string, dimensions map[string]string) error {
	return m.Put(ctx, Count(name, dimensions))
}

func (m *MetricsClient) RecordValue(ctx context.Context, name string, value float64, dimensions map[string]string) error {
	return m.Put(ctx, Datum{Name: name, Value: value, Unit: types.StandardUnitNone, Dimensions: dimensions})
}

// toDimensions sorts by name so identical maps always yield the same series.
func toDimensions(dimensions map[string]string) []types.Dimension {
	if len(dimensions) == 0 {
		return nil
	}
	names := make([]string, 0, len(dimensions))
	for k := range dimensions {
		names = append(names, k)
	}
	sort.Strings(names)

	dims := make([]types.Dimension, 0, len(names))
	for _, k := range names {
		dims = append(dims, types.Dimension{Name: sdkaws.String(k), Value: sdkaws.String(dimensions[k])})
	}
	return dims
}
