package dispatch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/archpilot/internal/dispatch"
	"github.com/Cyclone1070/archpilot/internal/document"
	"github.com/Cyclone1070/archpilot/internal/host"
)

func startLoop(t *testing.T, h host.Host) *dispatch.Dispatcher[host.Host] {
	t.Helper()
	loop := host.NewLoop(h)
	d := dispatch.New[host.Host](loop)
	loop.Start(func(h host.Host) { d.RunPending(h) })
	t.Cleanup(loop.Stop)
	return d
}

func TestFailingTransactionRollsBack(t *testing.T) {
	h := host.NewDocumentHost(document.Demo())
	before := h.Document().Clone()
	d := startLoop(t, h)

	cause := errors.New("dimension style missing")
	op := func(hh host.Host, args ...any) (any, error) {
		return hh.WithTransaction("Create Dimensions", func(doc *document.Document) (any, error) {
			rooms, err := doc.Query(document.CategoryRoom, "all")
			if err != nil {
				return nil, err
			}
			for _, r := range rooms[:3] {
				if _, err := doc.AddDimension(r.ID, 200, "Linear"); err != nil {
					return nil, err
				}
			}
			return nil, cause
		})
	}

	_, err := d.Execute(context.Background(), op, time.Second)

	var execErr *dispatch.ExecutionError
	require.True(t, errors.As(err, &execErr))
	var txErr *host.TransactionError
	require.True(t, errors.As(err, &txErr))
	assert.Equal(t, "Create Dimensions", txErr.Label)
	assert.ErrorIs(t, err, cause)

	state, err := d.Execute(context.Background(), func(hh host.Host, _ ...any) (any, error) {
		return hh.View(func(doc *document.Document) (any, error) { return doc.Clone(), nil })
	}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, before, state)
}

func TestSuccessfulTransactionCommits(t *testing.T) {
	h := host.NewDocumentHost(document.Demo())
	d := startLoop(t, h)

	_, err := d.Execute(context.Background(), func(hh host.Host, args ...any) (any, error) {
		return hh.WithTransaction("Create Tags", func(doc *document.Document) (any, error) {
			doors, err := doc.Query(document.CategoryDoor, "current_view")
			if err != nil {
				return nil, err
			}
			for _, door := range doors {
				if _, err := doc.AddTag(door.ID, args[0].(bool)); err != nil {
					return nil, err
				}
			}
			return len(doors), nil
		})
	}, time.Second, true)
	require.NoError(t, err)

	count, err := d.Execute(context.Background(), func(hh host.Host, _ ...any) (any, error) {
		return hh.View(func(doc *document.Document) (any, error) { return len(doc.Tags), nil })
	}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestStoppedLoopIsUnavailable(t *testing.T) {
	loop := host.NewLoop(host.NoopHost())
	d := dispatch.New[host.Host](loop)
	loop.Start(func(h host.Host) { d.RunPending(h) })
	loop.Stop()

	_, err := d.Submit(func(host.Host, ...any) (any, error) { return nil, nil })

	var unavailable *dispatch.UnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.ErrorIs(t, err, host.ErrHostStopped)
	assert.False(t, d.Pending())
}
