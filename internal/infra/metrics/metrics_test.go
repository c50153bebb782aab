package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(jobsTotal.WithLabelValues("completed"))
	IncJob(" Completed ")
	assert.Equal(t, before+1, testutil.ToFloat64(jobsTotal.WithLabelValues("completed")))

	fb := testutil.ToFloat64(fallbacksTotal.WithLabelValues("content_analysis"))
	IncFallback("content_analysis")
	assert.Equal(t, fb+1, testutil.ToFloat64(fallbacksTotal.WithLabelValues("content_analysis")))

	ObserveStage("ppt_build", 10*time.Millisecond)
	IncAICall("structure_design", "ok")
	IncStorage("local", "put")

	MustRegister()
	MustRegister() // idempotent
}
