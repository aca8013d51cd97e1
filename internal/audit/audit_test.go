package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/db/dbtest"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func TestLogger_WritesRow(t *testing.T) {
	db := dbtest.New(t)
	uid, eid := uint(1), uint(9)

	err := audit.New(db).Log(context.Background(), audit.Event{
		UserID:   &uid,
		Action:   "cut_created",
		Entity:   "cut",
		EntityID: &eid,
		Metadata: map[string]string{"service": "Corte"},
	})
	require.NoError(t, err)

	var row models.AuditLog
	require.NoError(t, db.First(&row).Error)
	require.Equal(t, "cut_created", row.Action)
	require.Equal(t, uint(9), *row.EntityID)
	require.JSONEq(t, `{"service":"Corte"}`, row.Metadata)
}

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
	block  chan struct{}
}

func (s *recordingSink) Log(_ context.Context, ev audit.Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	if ev.Action == "fail" {
		return errors.New("boom")
	}
	return nil
}

func TestDispatcher_DeliversAndDrains(t *testing.T) {
	sink := &recordingSink{}
	d := audit.NewDispatcher(sink)

	d.Dispatch(audit.Event{Action: "a"})
	d.Dispatch(audit.Event{Action: "fail"})
	d.Dispatch(audit.Event{Action: "b"})
	d.Close()

	require.Len(t, sink.events, 3)
	require.Equal(t, "b", sink.events[2].Action)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := audit.NewDispatcher(sink)

	// o worker segura um evento; a fila comporta mais 100
	for i := 0; i < 150; i++ {
		d.Dispatch(audit.Event{Action: "x"})
	}
	close(sink.block)
	d.Close()

	require.Less(t, len(sink.events), 150)
	require.GreaterOrEqual(t, len(sink.events), 100)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *audit.Dispatcher
	require.NotPanics(t, func() { d.Dispatch(audit.Event{Action: "x"}) })
}

func TestDispatcher_DispatchAfterCloseDrops(t *testing.T) {
	sink := &recordingSink{}
	d := audit.NewDispatcher(sink)

	d.Dispatch(audit.Event{Action: "a"})
	d.Close()

	require.NotPanics(t, func() { d.Dispatch(audit.Event{Action: "late"}) })
	require.NotPanics(t, d.Close)
	require.Len(t, sink.events, 1)
}

func TestDispatcher_ConcurrentDispatchAndClose(t *testing.T) {
	d := audit.NewDispatcher(&recordingSink{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				d.Dispatch(audit.Event{Action: "x"})
			}
		}()
	}
	d.Close()
	wg.Wait()
}
