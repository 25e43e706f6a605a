package upload

import (
	"context"
	"fmt"
	"time"
)

type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Poll queries the state until it turns active or failed, sleeping interval between queries.
// It gives up with ErrTimeout once deadline has elapsed since the first query.
func Poll(ctx context.Context, clock Clock, interval, deadline time.Duration, query func(ctx context.Context) (State, error)) (State, error) {
	start := clock.Now()

	for {
		state, err := query(ctx)

		if err != nil {
			return state, err
		}

		switch state {
		case StateActive:
			return state, nil

		case StateFailed:
			return state, ErrProcessingFailed
		}

		if clock.Now().Sub(start)+interval >= deadline {
			return state, fmt.Errorf("%w (%s)", ErrTimeout, deadline)
		}

		if err := clock.Sleep(ctx, interval); err != nil {
			return state, err
		}
	}
}
