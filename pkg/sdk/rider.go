package sdk

import (
	"context"
	"fmt"
	"net/http"
)

// AttendanceToday fetches the rider's check-in answer for today.
// AttendanceUnmarked means no answer has been recorded yet.
func (c *Client) AttendanceToday(ctx context.Context) (AttendanceStatus, error) {
	var resp struct {
		Date   string  `json:"date"`
		Status *string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/attendance/today", nil, nil, &resp); err != nil {
		return AttendanceUnmarked, err
	}
	if resp.Status == nil {
		return AttendanceUnmarked, nil
	}
	return AttendanceStatus(*resp.Status), nil
}

// MarkAttendance records the rider's daily check-in answer. Re-marking the
// same day overwrites the earlier answer.
func (c *Client) MarkAttendance(ctx context.Context, status AttendanceStatus) error {
	if status != AttendancePresent && status != AttendanceAbsent {
		return fmt.Errorf("attendance status must be %q or %q", AttendancePresent, AttendanceAbsent)
	}
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPost, "/attendance/mark", nil, body, nil)
}

// Queue fetches the rider's current status and store queue. Queue order is
// authoritative from the backend; the snapshot is never re-sorted or merged
// with a previous one. Unknown status values normalize to offline.
func (c *Client) Queue(ctx context.Context) (*QueueSnapshot, error) {
	var snap QueueSnapshot
	if err := c.do(ctx, http.MethodGet, "/rider/queue", nil, nil, &snap); err != nil {
		return nil, err
	}
	snap.Status = NormalizeWorkStatus(string(snap.Status))
	return &snap, nil
}

// UpdateWorkStatus broadcasts the rider's work status.
func (c *Client) UpdateWorkStatus(ctx context.Context, status WorkStatus) error {
	switch status {
	case StatusAvailable, StatusDelivery, StatusBreak, StatusOffline:
	default:
		return fmt.Errorf("unknown work status %q", status)
	}
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPost, "/rider/status", nil, body, nil)
}
