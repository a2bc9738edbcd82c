package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoApplication(t *testing.T) {
	ctx := context.Background()

	_, ok := FromContext(ctx)
	assert.False(t, ok)

	_, ok = FromContext(NewContext(ctx, nil))
	assert.False(t, ok)

	// Nothing below may panic without an application or transaction
	RecordCount(ctx, "count", 1)
	RecordDuration(ctx, "duration", time.Second)
	RecordEvent(ctx, "event", map[string]interface{}{"key": "value"})

	tracer := TraceMethodCall(ctx, "metrics", "TestNoApplication")
	assert.Nil(t, tracer)
	tracer.AddAttribute("key", "value")
	tracer.AddAttributes(map[string]interface{}{"key": "value"})
	tracer.OnError(errors.New("error"))
	tracer.End()
}

func TestStartTransaction_NoApplication(t *testing.T) {
	ctx := context.Background()

	txnCtx, end := StartTransaction(ctx, "test")
	assert.Equal(t, ctx, txnCtx)
	end()
}
