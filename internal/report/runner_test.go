package report

import (
	"context"
	"sync"
	"testing"
)

func TestRunnerSingleRun(t *testing.T) {
	var r Runner
	want := []Row{{StudentName: "Asha"}}

	rows, latest, err := r.Run(context.Background(), func(context.Context) ([]Row, error) {
		return want, nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !latest {
		t.Fatal("single run reported stale")
	}
	if len(rows) != 1 || rows[0].StudentName != "Asha" {
		t.Fatalf("rows = %+v, want %+v", rows, want)
	}
}

func TestRunnerSupersededRunIsDiscarded(t *testing.T) {
	var r Runner

	firstStarted := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)

	var staleRows []Row
	var staleLatest bool
	go func() {
		defer wg.Done()
		staleRows, staleLatest, _ = r.Run(context.Background(), func(ctx context.Context) ([]Row, error) {
			close(firstStarted)
			<-release
			return []Row{{StudentName: "stale"}}, nil
		})
	}()

	<-firstStarted

	// Second run starts while the first is blocked; the first must cancel.
	rows, latest, err := r.Run(context.Background(), func(ctx context.Context) ([]Row, error) {
		select {
		case <-ctx.Done():
			t.Error("fresh run was cancelled")
		default:
		}
		return []Row{{StudentName: "fresh"}}, nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !latest {
		t.Fatal("newest run reported stale")
	}
	if len(rows) != 1 || rows[0].StudentName != "fresh" {
		t.Fatalf("rows = %+v, want the fresh result", rows)
	}

	close(release)
	wg.Wait()

	if staleLatest {
		t.Error("superseded run reported itself latest")
	}
	if staleRows != nil {
		t.Errorf("superseded run returned rows %+v, want nil", staleRows)
	}
}

func TestRunnerCancelsPreviousContext(t *testing.T) {
	var r Runner

	started := make(chan struct{})
	cancelled := make(chan struct{})

	go func() {
		_, _, _ = r.Run(context.Background(), func(ctx context.Context) ([]Row, error) {
			close(started)
			<-ctx.Done()
			close(cancelled)
			return nil, ctx.Err()
		})
	}()

	<-started
	_, _, err := r.Run(context.Background(), func(context.Context) ([]Row, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	<-cancelled // hangs here if the old context was never cancelled
}
