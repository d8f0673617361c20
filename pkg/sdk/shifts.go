package sdk

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Shifts lists the shifts of riders visible to the caller. The endpoint
// returns a bare array rather than an items envelope.
func (c *Client) Shifts(ctx context.Context) ([]Shift, error) {
	var shifts []Shift
	if err := c.do(ctx, http.MethodGet, "/shifts/list", nil, nil, &shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

// CreateShiftInput schedules a working window for a rider.
type CreateShiftInput struct {
	RiderID   int64
	StartTime time.Time
	EndTime   time.Time
}

// CreateShift schedules a shift and returns the created record.
func (c *Client) CreateShift(ctx context.Context, in CreateShiftInput) (*Shift, error) {
	if in.RiderID == 0 || in.StartTime.IsZero() || in.EndTime.IsZero() {
		return nil, errors.New("rider id, start time and end time are required")
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, errors.New("end time must be after start time")
	}
	body := struct {
		RiderID   int64     `json:"rider_id"`
		StartTime Timestamp `json:"start_time"`
		EndTime   Timestamp `json:"end_time"`
	}{
		RiderID:   in.RiderID,
		StartTime: Timestamp{in.StartTime},
		EndTime:   Timestamp{in.EndTime},
	}
	var shift Shift
	if err := c.do(ctx, http.MethodPost, "/shifts/create", nil, body, &shift); err != nil {
		return nil, err
	}
	return &shift, nil
}
