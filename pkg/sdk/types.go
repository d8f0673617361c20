package sdk

import (
	"encoding/json"
	"fmt"
	"time"
)

// WorkStatus is a rider's broadcast work state.
type WorkStatus string

const (
	StatusAvailable WorkStatus = "available"
	StatusDelivery  WorkStatus = "delivery"
	StatusBreak     WorkStatus = "break"
	StatusOffline   WorkStatus = "offline"
)

// NormalizeWorkStatus maps unknown backend values to StatusOffline.
func NormalizeWorkStatus(s string) WorkStatus {
	switch WorkStatus(s) {
	case StatusAvailable, StatusDelivery, StatusBreak:
		return WorkStatus(s)
	}
	return StatusOffline
}

// AttendanceStatus is a rider's daily check-in answer. The zero value means
// no answer has been recorded today.
type AttendanceStatus string

const (
	AttendanceUnmarked AttendanceStatus = ""
	AttendancePresent  AttendanceStatus = "present"
	AttendanceAbsent   AttendanceStatus = "absent"
)

// Timestamp accepts both RFC 3339 and the backend's timezone-less ISO
// timestamps. It marshals as RFC 3339 UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// DashboardStats is the admin dashboard summary for one store, or for the
// whole fleet when no store filter is applied.
type DashboardStats struct {
	TotalRiders int        `json:"total_riders"`
	Active      int        `json:"active"`
	Delivery    int        `json:"delivery"`
	Available   int        `json:"available"`
	OnBreak     int        `json:"on_break"`
	Absent      int        `json:"absent"`
	UpdatedAt   *Timestamp `json:"updated_at,omitempty"`
}

// RiderStatusEntry is one row of the live status board. The list is owned
// by the backend; each poll fully replaces the previous one.
type RiderStatusEntry struct {
	RiderID   int64      `json:"rider_id"`
	Name      string     `json:"name"`
	Status    WorkStatus `json:"status"`
	UpdatedAt *Timestamp `json:"updated_at,omitempty"`
}

// Rider is a managed rider account.
type Rider struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Store     string     `json:"store,omitempty"`
	Status    WorkStatus `json:"status"`
	UpdatedAt *Timestamp `json:"updated_at,omitempty"`
	ManagerID int64      `json:"manager_id,omitempty"`
}

// SubAdmin is a sub admin account with its managed rider count.
type SubAdmin struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	RiderCount int    `json:"rider_count"`
}

// SubAdminActivity summarizes one sub admin's fleet on the prime overview.
type SubAdminActivity struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	RiderCount int    `json:"rider_count"`
	Active     int    `json:"active"`
	Delivery   int    `json:"delivery"`
	Available  int    `json:"available"`
}

// StoreOverview summarizes one store on the prime overview.
type StoreOverview struct {
	Store      string `json:"store"`
	RiderCount int    `json:"rider_count"`
	Active     int    `json:"active"`
	Delivery   int    `json:"delivery"`
	Available  int    `json:"available"`
}

// OverviewTotals aggregates the prime overview across sub admins.
type OverviewTotals struct {
	Active    int `json:"active"`
	Delivery  int `json:"delivery"`
	Available int `json:"available"`
}

// PrimeOverview is the prime admin's cross-store view.
type PrimeOverview struct {
	Items  []SubAdminActivity `json:"items"`
	Totals OverviewTotals     `json:"totals"`
	Stores []StoreOverview    `json:"stores,omitempty"`
}

// ImpersonationLog is one audit record of an admin acting as another account.
type ImpersonationLog struct {
	ID         int64     `json:"id"`
	ActorName  string    `json:"actor_name,omitempty"`
	TargetName string    `json:"target_name,omitempty"`
	TargetRole Role      `json:"target_role"`
	CreatedAt  Timestamp `json:"created_at"`
}

// QueueEntry is one rider in the waiting queue. Array order in the backend
// response is the queue order; the client must not re-sort.
type QueueEntry struct {
	RiderID   int64      `json:"rider_id"`
	Name      string     `json:"name"`
	Store     string     `json:"store,omitempty"`
	UpdatedAt *Timestamp `json:"updated_at,omitempty"`
}

// QueueSnapshot is the rider's view of their store queue. Position is
// 1-based; 0 means the rider is not in the queue.
type QueueSnapshot struct {
	Status       WorkStatus   `json:"status"`
	Queue        []QueueEntry `json:"queue"`
	Position     int          `json:"position"`
	TotalWaiting int          `json:"total_waiting"`
}

// Shift is a scheduled working window for a rider.
type Shift struct {
	ID        int64     `json:"id"`
	RiderID   int64     `json:"rider_id"`
	StartTime Timestamp `json:"start_time"`
	EndTime   Timestamp `json:"end_time"`
}
