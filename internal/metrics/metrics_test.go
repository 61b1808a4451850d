package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordOperation(t *testing.T) {
	before := testutil.ToFloat64(checkoutOperations.WithLabelValues("place_order", "error"))
	RecordOperation("place_order", false)
	after := testutil.ToFloat64(checkoutOperations.WithLabelValues("place_order", "error"))

	if after-before != 1 {
		t.Errorf("error counter delta = %v, want 1", after-before)
	}
}

func TestRecordValidationNotices(t *testing.T) {
	before := testutil.ToFloat64(validationNotices)
	RecordValidationNotices(5)
	if got := testutil.ToFloat64(validationNotices) - before; got != 5 {
		t.Errorf("validation notices delta = %v, want 5", got)
	}
}
