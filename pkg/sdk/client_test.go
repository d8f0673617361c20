package sdk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	backend := NewMockBackend()
	t.Cleanup(backend.Close)
	backend.AddAccount("asha", "asha-pw", Principal{Name: "Asha", Role: RoleRider, Store: "north"})

	c := newTestClient(t, backend)

	t.Run("missing fields rejected before network", func(t *testing.T) {
		_, err := c.Login(context.Background(), "asha", "")
		require.Error(t, err)
		assert.Equal(t, 0, backend.RequestCount("/auth/login"))
	})

	t.Run("bad credentials surface backend detail", func(t *testing.T) {
		_, err := c.Login(context.Background(), "asha", "wrong")
		require.Error(t, err)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Invalid credentials", apiErr.Detail)
		assert.False(t, c.Session().IsAuthenticated())
	})

	t.Run("success installs session", func(t *testing.T) {
		p, err := c.Login(context.Background(), "asha", "asha-pw")
		require.NoError(t, err)
		assert.Equal(t, RoleRider, p.Role)
		assert.Equal(t, "north", p.Store)
		assert.True(t, c.Session().IsAuthenticated())
		assert.NotEmpty(t, c.Session().Token())
	})
}

func TestLogout(t *testing.T) {
	backend := NewMockBackend()
	t.Cleanup(backend.Close)
	backend.AddAccount("asha", "asha-pw", Principal{Name: "Asha", Role: RoleRider})

	c := newTestClient(t, backend)
	login(t, c, "asha", "asha-pw")

	c.Logout()
	assert.False(t, c.Session().IsAuthenticated())
	// Idempotent.
	c.Logout()
	assert.False(t, c.Session().IsAuthenticated())
}

// seedFleet builds a small two-store fleet: one prime admin, one sub admin
// managing the north riders, and three riders.
func seedFleet(t *testing.T) (*MockBackend, int64) {
	t.Helper()
	backend := NewMockBackend()
	t.Cleanup(backend.Close)
	backend.AddAccount("boss", "boss-pw", Principal{Name: "Boss", Role: RolePrimeAdmin})
	subID := backend.AddAccount("ravi", "ravi-pw", Principal{Name: "Ravi", Role: RoleSubAdmin})
	backend.AddAccount("asha", "asha-pw", Principal{Name: "Asha", Role: RoleRider, Store: "north", ManagerID: subID})
	backend.AddAccount("meena", "meena-pw", Principal{Name: "Meena", Role: RoleRider, Store: "north", ManagerID: subID})
	backend.AddAccount("karan", "karan-pw", Principal{Name: "Karan", Role: RoleRider, Store: "south"})
	return backend, subID
}

func TestAdminDashboardAndStatuses(t *testing.T) {
	backend, _ := seedFleet(t)
	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	c := newTestClient(t, backend)
	login(t, c, "boss", "boss-pw")

	riders, err := c.Riders(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, riders, 3)

	var asha, meena Rider
	for _, r := range riders {
		switch r.Name {
		case "Asha":
			asha = r
		case "Meena":
			meena = r
		}
	}
	backend.SetWorkStatus(asha.ID, StatusAvailable, base)
	backend.SetWorkStatus(meena.ID, StatusDelivery, base.Add(time.Minute))

	stats, err := c.DashboardStats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalRiders)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 1, stats.Available)
	assert.Equal(t, 1, stats.Delivery)

	// Store filter narrows the snapshot; "all" means unfiltered.
	northStats, err := c.DashboardStats(context.Background(), "north")
	require.NoError(t, err)
	assert.Equal(t, 2, northStats.TotalRiders)
	allStats, err := c.DashboardStats(context.Background(), "all")
	require.NoError(t, err)
	assert.Equal(t, 3, allStats.TotalRiders)

	board, err := c.RiderStatuses(context.Background(), "north")
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, StatusAvailable, board[0].Status)
}

func TestSubAdminSeesOnlyManagedRiders(t *testing.T) {
	backend, _ := seedFleet(t)

	c := newTestClient(t, backend)
	login(t, c, "ravi", "ravi-pw")

	riders, err := c.Riders(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, riders, 2)
	for _, r := range riders {
		assert.Equal(t, "north", r.Store)
	}
}

func TestPrimeOverview(t *testing.T) {
	backend, subID := seedFleet(t)
	base := time.Now().UTC()

	c := newTestClient(t, backend)
	login(t, c, "boss", "boss-pw")

	riders, err := c.Riders(context.Background(), "north")
	require.NoError(t, err)
	for _, r := range riders {
		backend.SetWorkStatus(r.ID, StatusAvailable, base)
	}

	overview, err := c.PrimeOverview(context.Background())
	require.NoError(t, err)
	require.Len(t, overview.Items, 1)
	assert.Equal(t, subID, overview.Items[0].ID)
	assert.Equal(t, 2, overview.Items[0].RiderCount)
	assert.Equal(t, 2, overview.Items[0].Available)
	assert.Equal(t, 2, overview.Totals.Active)
	require.NotEmpty(t, overview.Stores)
}

func TestPrimeOverviewDeniedToSubAdmin(t *testing.T) {
	backend, _ := seedFleet(t)

	c := newTestClient(t, backend)
	login(t, c, "ravi", "ravi-pw")

	_, err := c.PrimeOverview(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
	// 403 is not 401: the session survives.
	assert.True(t, c.Session().IsAuthenticated())
}

func TestRiderAccountLifecycle(t *testing.T) {
	backend, subID := seedFleet(t)

	c := newTestClient(t, backend)
	login(t, c, "boss", "boss-pw")
	ctx := context.Background()

	err := c.AddRider(ctx, AddRiderInput{Username: "newbie", Name: "", Password: "pw", Store: "north"})
	require.Error(t, err, "presence validation")

	err = c.AddRider(ctx, AddRiderInput{
		Username: "newbie", Name: "Newbie", Password: "pw", Store: "north", SubAdminID: subID,
	})
	require.NoError(t, err)

	riders, err := c.Riders(ctx, "north")
	require.NoError(t, err)
	assert.Len(t, riders, 3)

	msg, err := c.DeleteRider(ctx, "  NEWBIE  ")
	require.NoError(t, err)
	assert.Equal(t, "Rider deleted", msg)

	// Deleting again is a soft outcome, not an error.
	msg, err = c.DeleteRider(ctx, "newbie")
	require.NoError(t, err)
	assert.Equal(t, "Rider not found", msg)
}

func TestSubAdminAccountLifecycle(t *testing.T) {
	backend, _ := seedFleet(t)

	c := newTestClient(t, backend)
	login(t, c, "boss", "boss-pw")
	ctx := context.Background()

	require.NoError(t, c.AddSubAdmin(ctx, AddSubAdminInput{Username: "priya", Name: "Priya", Password: "pw"}))

	subs, err := c.SubAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, 2, subs[0].RiderCount)

	msg, err := c.DeleteSubAdmin(ctx, "priya")
	require.NoError(t, err)
	assert.Equal(t, "Sub admin deleted", msg)
}

func TestAttendanceFlow(t *testing.T) {
	backend, _ := seedFleet(t)

	c := newTestClient(t, backend)
	login(t, c, "asha", "asha-pw")
	ctx := context.Background()

	status, err := c.AttendanceToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, AttendanceUnmarked, status)

	require.Error(t, c.MarkAttendance(ctx, AttendanceStatus("late")))

	require.NoError(t, c.MarkAttendance(ctx, AttendanceAbsent))
	status, err = c.AttendanceToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, AttendanceAbsent, status)

	// Re-marking the same day overwrites.
	require.NoError(t, c.MarkAttendance(ctx, AttendancePresent))
	status, err = c.AttendanceToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, AttendancePresent, status)
}

func TestQueueOrderAndPosition(t *testing.T) {
	backend, _ := seedFleet(t)
	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	asha := newTestClient(t, backend)
	me := login(t, asha, "asha", "asha-pw")

	meena := newTestClient(t, backend)
	other := login(t, meena, "meena", "meena-pw")

	// Meena went available before Asha, so she heads the queue.
	backend.SetWorkStatus(other.ID, StatusAvailable, base)
	backend.SetWorkStatus(me.ID, StatusAvailable, base.Add(time.Minute))

	snap, err := asha.Queue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, snap.Status)
	require.Len(t, snap.Queue, 2)
	assert.Equal(t, "Meena", snap.Queue[0].Name)
	assert.Equal(t, "Asha", snap.Queue[1].Name)
	assert.Equal(t, 2, snap.Position)
	assert.Equal(t, 2, snap.TotalWaiting)

	// Going on delivery drops the rider from the queue; position 0 means
	// not queued.
	require.NoError(t, asha.UpdateWorkStatus(context.Background(), StatusDelivery))
	snap, err = asha.Queue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusDelivery, snap.Status)
	require.Len(t, snap.Queue, 1)
	assert.Equal(t, 0, snap.Position)
	assert.Equal(t, 1, snap.TotalWaiting)
}

func TestQueueExcludesOtherStores(t *testing.T) {
	backend, _ := seedFleet(t)
	base := time.Now().UTC()

	karan := newTestClient(t, backend)
	me := login(t, karan, "karan", "karan-pw")
	backend.SetWorkStatus(me.ID, StatusAvailable, base)

	asha := newTestClient(t, backend)
	other := login(t, asha, "asha", "asha-pw")
	backend.SetWorkStatus(other.ID, StatusAvailable, base)

	snap, err := karan.Queue(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Queue, 1)
	assert.Equal(t, "Karan", snap.Queue[0].Name)
	assert.Equal(t, 1, snap.Position)
}

func TestUpdateWorkStatusValidation(t *testing.T) {
	backend, _ := seedFleet(t)
	c := newTestClient(t, backend)
	login(t, c, "asha", "asha-pw")

	err := c.UpdateWorkStatus(context.Background(), WorkStatus("napping"))
	require.Error(t, err)
	assert.Equal(t, 0, backend.RequestCount("/rider/status"))
}

func TestShifts(t *testing.T) {
	backend, _ := seedFleet(t)

	c := newTestClient(t, backend)
	login(t, c, "boss", "boss-pw")
	ctx := context.Background()

	riders, err := c.Riders(ctx, "north")
	require.NoError(t, err)
	require.NotEmpty(t, riders)
	riderID := riders[0].ID

	start := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

	_, err = c.CreateShift(ctx, CreateShiftInput{RiderID: riderID, StartTime: start, EndTime: start})
	require.Error(t, err, "end must be after start")

	shift, err := c.CreateShift(ctx, CreateShiftInput{
		RiderID:   riderID,
		StartTime: start,
		EndTime:   start.Add(8 * time.Hour),
	})
	require.NoError(t, err)
	assert.NotZero(t, shift.ID)
	assert.Equal(t, riderID, shift.RiderID)

	shifts, err := c.Shifts(ctx)
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.True(t, shifts[0].EndTime.After(shifts[0].StartTime.Time))
}

func TestTimestampParsesBackendFormats(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{`"2026-08-28T09:15:00Z"`, time.Date(2026, 8, 28, 9, 15, 0, 0, time.UTC)},
		{`"2026-08-28T09:15:00.123456"`, time.Date(2026, 8, 28, 9, 15, 0, 123456000, time.UTC)},
		{`"2026-08-28T09:15:00"`, time.Date(2026, 8, 28, 9, 15, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		var ts Timestamp
		require.NoError(t, ts.UnmarshalJSON([]byte(tt.raw)), tt.raw)
		assert.True(t, ts.Equal(tt.want), tt.raw)
	}

	var ts Timestamp
	assert.Error(t, ts.UnmarshalJSON([]byte(`"yesterday"`)))
}

func TestNormalizeWorkStatus(t *testing.T) {
	assert.Equal(t, StatusAvailable, NormalizeWorkStatus("available"))
	assert.Equal(t, StatusBreak, NormalizeWorkStatus("break"))
	assert.Equal(t, StatusOffline, NormalizeWorkStatus("offline"))
	assert.Equal(t, StatusOffline, NormalizeWorkStatus(""))
	assert.Equal(t, StatusOffline, NormalizeWorkStatus("sleeping"))
}
