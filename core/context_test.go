package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuppressHeader(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressHeader(ctx))
	assert.True(t, shouldSuppressHeader(WithSuppressHeader(ctx)))

	// Wrong value type is treated as unset
	assert.False(t, shouldSuppressHeader(context.WithValue(ctx, suppressHeaderKey, "yes")))
}
