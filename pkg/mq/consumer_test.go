package mq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsumerConfigDefaultsPrefetch(t *testing.T) {
	cfg := ConsumerConfig{Queue: "venue.notify.q"}.normalize()
	assert.Equal(t, defaultPrefetch, cfg.Prefetch)

	cfg = ConsumerConfig{Prefetch: -1}.normalize()
	assert.Equal(t, defaultPrefetch, cfg.Prefetch)

	cfg = ConsumerConfig{Prefetch: 32}.normalize()
	assert.Equal(t, 32, cfg.Prefetch, "explicit prefetch is kept")
}
