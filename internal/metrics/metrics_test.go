package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	Register()

	before := testutil.ToFloat64(bookings.WithLabelValues("created"))
	IncBooking("created")
	assert.Equal(t, before+1, testutil.ToFloat64(bookings.WithLabelValues("created")))

	before = testutil.ToFloat64(httpRequests.WithLabelValues("/items"))
	IncHTTP("/items")
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("/items")))

	before = testutil.ToFloat64(exports.WithLabelValues("ok"))
	IncExport("ok")
	assert.Equal(t, before+1, testutil.ToFloat64(exports.WithLabelValues("ok")))
}
