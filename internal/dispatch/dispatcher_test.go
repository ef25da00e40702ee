package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

func TestSimulatedDispatcherQueuesAll(t *testing.T) {
	d := &SimulatedDispatcher{Delay: time.Millisecond}
	leads := []model.Lead{
		{ID: "l1", Email: "alice@acme.test"},
		{ID: "l2", Email: "bob@acme.test"},
	}

	queued, err := d.QueueEmails(context.Background(), leads)
	require.NoError(t, err)
	assert.Equal(t, 2, queued)
}

func TestSimulatedDispatcherHonorsCancel(t *testing.T) {
	d := &SimulatedDispatcher{Delay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	queued, err := d.QueueEmails(ctx, []model.Lead{{ID: "l1"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, queued)
}
