package sdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MockBackend is an in-memory rider-operations backend for tests. It covers
// the endpoints this client consumes, enforces bearer auth, and supports
// fault injection so gateway behavior (retry, 401 handling) can be observed.
type MockBackend struct {
	*httptest.Server

	mu            sync.Mutex
	accounts      map[string]*MockAccount // by username
	tokens        map[string]*MockAccount // by bearer token
	statuses      map[int64]statusRecord  // rider id -> latest status
	attendance    map[int64]string        // rider id -> today's answer
	shifts        []Shift
	logs          []ImpersonationLog
	failures      map[string]int // path -> remaining 500 responses
	requests      map[string]int // path -> request count
	nextID        int64
	nextToken     int64
	enforceScopes bool
}

// MockAccount is a backend account with its login credentials.
type MockAccount struct {
	Principal
	Username string
	Password string
}

type statusRecord struct {
	status    WorkStatus
	updatedAt time.Time
}

// NewMockBackend starts a mock backend with no accounts. Callers seed it
// with AddAccount and close it via the embedded httptest server.
func NewMockBackend() *MockBackend {
	m := &MockBackend{
		accounts:      make(map[string]*MockAccount),
		tokens:        make(map[string]*MockAccount),
		statuses:      make(map[int64]statusRecord),
		attendance:    make(map[int64]string),
		failures:      make(map[string]int),
		requests:      make(map[string]int),
		nextID:        100,
		enforceScopes: true,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", m.handleLogin)
	mux.HandleFunc("POST /auth/impersonate", m.handleImpersonate)
	mux.HandleFunc("GET /admin/dashboard-stats", m.handleDashboardStats)
	mux.HandleFunc("GET /admin/rider-status", m.handleRiderStatus)
	mux.HandleFunc("GET /admin/prime-overview", m.handlePrimeOverview)
	mux.HandleFunc("GET /admin/impersonation-logs", m.handleImpersonationLogs)
	mux.HandleFunc("GET /admin/riders", m.handleListRiders)
	mux.HandleFunc("POST /admin/add-rider", m.handleAddRider)
	mux.HandleFunc("DELETE /admin/delete-rider", m.handleDeleteRider)
	mux.HandleFunc("GET /admin/sub-admins", m.handleListSubAdmins)
	mux.HandleFunc("POST /admin/add-sub-admin", m.handleAddSubAdmin)
	mux.HandleFunc("DELETE /admin/delete-sub-admin", m.handleDeleteSubAdmin)
	mux.HandleFunc("GET /attendance/today", m.handleAttendanceToday)
	mux.HandleFunc("POST /attendance/mark", m.handleAttendanceMark)
	mux.HandleFunc("GET /rider/queue", m.handleQueue)
	mux.HandleFunc("POST /rider/status", m.handleUpdateStatus)
	mux.HandleFunc("GET /shifts/list", m.handleListShifts)
	mux.HandleFunc("POST /shifts/create", m.handleCreateShift)

	m.Server = httptest.NewServer(m.instrument(mux))
	return m
}

// AddAccount registers an account and returns its assigned id.
func (m *MockBackend) AddAccount(username, password string, p Principal) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		m.nextID++
		p.ID = m.nextID
	}
	m.accounts[username] = &MockAccount{Principal: p, Username: username, Password: password}
	return p.ID
}

// SetWorkStatus seeds a rider's latest status.
func (m *MockBackend) SetWorkStatus(riderID int64, status WorkStatus, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[riderID] = statusRecord{status: status, updatedAt: at}
}

// SetEnforceScopes toggles server-side impersonation scope checks. Turning
// them off simulates a permissive backend so the client's local rejection
// can be exercised.
func (m *MockBackend) SetEnforceScopes(enforce bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enforceScopes = enforce
}

// RevokeTokens invalidates every issued token, simulating server-side
// session revocation.
func (m *MockBackend) RevokeTokens() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = make(map[string]*MockAccount)
}

// FailNext makes the next n requests to path answer 500.
func (m *MockBackend) FailNext(path string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[path] = n
}

// RequestCount reports how many requests path has received.
func (m *MockBackend) RequestCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[path]
}

func (m *MockBackend) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests[r.URL.Path]++
		fail := m.failures[r.URL.Path] > 0
		if fail {
			m.failures[r.URL.Path]--
		}
		m.mu.Unlock()
		if fail {
			writeDetail(w, http.StatusInternalServerError, "backend unavailable")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// authenticate resolves the bearer token. It writes a 401 and returns nil
// when the request carries no valid token.
func (m *MockBackend) authenticate(w http.ResponseWriter, r *http.Request) *MockAccount {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	m.mu.Lock()
	account := m.tokens[token]
	m.mu.Unlock()
	if token == "" || account == nil {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return nil
	}
	return account
}

func (m *MockBackend) issueToken(account *MockAccount) string {
	m.nextToken++
	token := fmt.Sprintf("tok-%d-%s", m.nextToken, account.Username)
	m.tokens[token] = account
	return token
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func sessionPayload(token string, p Principal) map[string]any {
	return map[string]any{"token": token, "user": p}
}

func (m *MockBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct{ Username, Password string }
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account := m.accounts[req.Username]
	if account == nil || account.Password != req.Password {
		writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, sessionPayload(m.issueToken(account), account.Principal))
}

func (m *MockBackend) handleImpersonate(w http.ResponseWriter, r *http.Request) {
	actor := m.authenticate(w, r)
	if actor == nil {
		return
	}
	var req struct{ Username, Password string }
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	target := m.accounts[req.Username]
	if target == nil || target.Password != req.Password {
		writeDetail(w, http.StatusUnauthorized, "Invalid target credentials")
		return
	}
	if m.enforceScopes {
		switch actor.Role {
		case RolePrimeAdmin:
			if target.Role != RoleSubAdmin && target.Role != RoleRider {
				writeDetail(w, http.StatusForbidden, "Prime admin can only impersonate sub admin or rider")
				return
			}
		case RoleSubAdmin:
			if target.Role != RoleRider || target.ManagerID != actor.ID {
				writeDetail(w, http.StatusForbidden, "Sub admin can only impersonate their own riders")
				return
			}
		default:
			writeDetail(w, http.StatusForbidden, "Impersonation not allowed for this role")
			return
		}
	}
	m.logs = append(m.logs, ImpersonationLog{
		ID:         int64(len(m.logs) + 1),
		ActorName:  actor.Name,
		TargetName: target.Name,
		TargetRole: target.Role,
		CreatedAt:  Timestamp{time.Now().UTC()},
	})
	writeJSON(w, http.StatusOK, sessionPayload(m.issueToken(target), target.Principal))
}

// visibleRiders returns rider accounts the admin may see, optionally
// filtered by store. Sub admins only see riders they manage.
func (m *MockBackend) visibleRiders(admin *MockAccount, store string) []*MockAccount {
	var riders []*MockAccount
	for _, account := range m.accounts {
		if account.Role != RoleRider {
			continue
		}
		if admin.Role == RoleSubAdmin && account.ManagerID != admin.ID {
			continue
		}
		if store != "" && account.Store != store {
			continue
		}
		riders = append(riders, account)
	}
	sort.Slice(riders, func(i, j int) bool { return riders[i].ID < riders[j].ID })
	return riders
}

func (m *MockBackend) requireAdmin(w http.ResponseWriter, r *http.Request) *MockAccount {
	account := m.authenticate(w, r)
	if account == nil {
		return nil
	}
	if !account.Role.IsAdmin() {
		writeDetail(w, http.StatusForbidden, "Admin privileges required")
		return nil
	}
	return account
}

func (m *MockBackend) requireRider(w http.ResponseWriter, r *http.Request) *MockAccount {
	account := m.authenticate(w, r)
	if account == nil {
		return nil
	}
	if account.Role != RoleRider {
		writeDetail(w, http.StatusForbidden, "Rider account required")
		return nil
	}
	return account
}

func (m *MockBackend) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	admin := m.requireAdmin(w, r)
	if admin == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := DashboardStats{UpdatedAt: &Timestamp{time.Now().UTC()}}
	for _, rider := range m.visibleRiders(admin, r.URL.Query().Get("store")) {
		stats.TotalRiders++
		switch m.statuses[rider.ID].status {
		case StatusAvailable:
			stats.Available++
			stats.Active++
		case StatusDelivery:
			stats.Delivery++
			stats.Active++
		case StatusBreak:
			stats.OnBreak++
			stats.Active++
		}
		if m.attendance[rider.ID] == string(AttendanceAbsent) {
			stats.Absent++
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (m *MockBackend) handleRiderStatus(w http.ResponseWriter, r *http.Request) {
	admin := m.requireAdmin(w, r)
	if admin == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]RiderStatusEntry, 0)
	for _, rider := range m.visibleRiders(admin, r.URL.Query().Get("store")) {
		record, ok := m.statuses[rider.ID]
		if !ok {
			continue
		}
		items = append(items, RiderStatusEntry{
			RiderID:   rider.ID,
			Name:      rider.Name,
			Status:    record.status,
			UpdatedAt: &Timestamp{record.updatedAt},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (m *MockBackend) handlePrimeOverview(w http.ResponseWriter, r *http.Request) {
	admin := m.requireAdmin(w, r)
	if admin == nil {
		return
	}
	if admin.Role != RolePrimeAdmin {
		writeDetail(w, http.StatusForbidden, "Prime admin privileges required")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	overview := PrimeOverview{Items: []SubAdminActivity{}, Stores: []StoreOverview{}}
	storeIndex := make(map[string]int)
	for _, account := range m.accounts {
		if account.Role != RoleSubAdmin {
			continue
		}
		activity := SubAdminActivity{ID: account.ID, Name: account.Name, Username: account.Username}
		for _, rider := range m.visibleRiders(admin, "") {
			if rider.ManagerID != account.ID {
				continue
			}
			activity.RiderCount++
			switch m.statuses[rider.ID].status {
			case StatusAvailable:
				activity.Available++
				activity.Active++
			case StatusDelivery:
				activity.Delivery++
				activity.Active++
			case StatusBreak:
				activity.Active++
			}
		}
		overview.Totals.Active += activity.Active
		overview.Totals.Delivery += activity.Delivery
		overview.Totals.Available += activity.Available
		overview.Items = append(overview.Items, activity)
	}
	sort.Slice(overview.Items, func(i, j int) bool { return overview.Items[i].ID < overview.Items[j].ID })

	for _, rider := range m.visibleRiders(admin, "") {
		if rider.Store == "" {
			continue
		}
		idx, ok := storeIndex[rider.Store]
		if !ok {
			idx = len(overview.Stores)
			storeIndex[rider.Store] = idx
			overview.Stores = append(overview.Stores, StoreOverview{Store: rider.Store})
		}
		overview.Stores[idx].RiderCount++
		switch m.statuses[rider.ID].status {
		case StatusAvailable:
			overview.Stores[idx].Available++
			overview.Stores[idx].Active++
		case StatusDelivery:
			overview.Stores[idx].Delivery++
			overview.Stores[idx].Active++
		case StatusBreak:
			overview.Stores[idx].Active++
		}
	}
	writeJSON(w, http.StatusOK, overview)
}

func (m *MockBackend) handleImpersonationLogs(w http.ResponseWriter, r *http.Request) {
	if m.requireAdmin(w, r) == nil {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]ImpersonationLog, 0, len(m.logs))
	for i := len(m.logs) - 1; i >= 0; i-- {
		items = append(items, m.logs[i])
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (m *MockBackend) handleListRiders(w http.ResponseWriter, r *http.Request) {
	admin := m.requireAdmin(w, r)
	if admin == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]Rider, 0)
	for _, rider := range m.visibleRiders(admin, r.URL.Query().Get("store")) {
		record := m.statuses[rider.ID]
		item := Rider{
			ID:        rider.ID,
			Username:  rider.Username,
			Name:      rider.Name,
			Store:     rider.Store,
			Status:    StatusOffline,
			ManagerID: rider.ManagerID,
		}
		if record.status != "" {
			item.Status = record.status
			item.UpdatedAt = &Timestamp{record.updatedAt}
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (m *MockBackend) handleAddRider(w http.ResponseWriter, r *http.Request) {
	admin := m.requireAdmin(w, r)
	if admin == nil {
		return
	}
	var req struct {
		Username   string `json:"username"`
		Name       string `json:"name"`
		Password   string `json:"password"`
		Store      string `json:"store"`
		SubAdminID int64  `json:"sub_admin_id"`
	}
	if err := decodeBody(r, &req); err != nil || req.Username == "" {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.accounts[req.Username]; exists {
		writeDetail(w, http.StatusBadRequest, "Username already exists")
		return
	}
	managerID := req.SubAdminID
	if admin.Role == RoleSubAdmin {
		managerID = admin.ID
	}
	m.nextID++
	m.accounts[req.Username] = &MockAccount{
		Principal: Principal{ID: m.nextID, Name: req.Name, Role: RoleRider, Store: req.Store, ManagerID: managerID},
		Username:  req.Username,
		Password:  req.Password,
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Rider added"})
}

func (m *MockBackend) handleDeleteRider(w http.ResponseWriter, r *http.Request) {
	if m.requireAdmin(w, r) == nil {
		return
	}
	var req struct {
		Username string `json:"username"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account := m.accounts[req.Username]
	if account == nil || account.Role != RoleRider {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Rider not found"})
		return
	}
	delete(m.accounts, req.Username)
	delete(m.statuses, account.ID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Rider deleted"})
}

func (m *MockBackend) handleListSubAdmins(w http.ResponseWriter, r *http.Request) {
	if m.requireAdmin(w, r) == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]SubAdmin, 0)
	for _, account := range m.accounts {
		if account.Role != RoleSubAdmin {
			continue
		}
		item := SubAdmin{ID: account.ID, Username: account.Username, Name: account.Name}
		for _, other := range m.accounts {
			if other.Role == RoleRider && other.ManagerID == account.ID {
				item.RiderCount++
			}
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (m *MockBackend) handleAddSubAdmin(w http.ResponseWriter, r *http.Request) {
	if m.requireAdmin(w, r) == nil {
		return
	}
	var req struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil || req.Username == "" {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.accounts[req.Username]; exists {
		writeDetail(w, http.StatusBadRequest, "Username already exists")
		return
	}
	m.nextID++
	m.accounts[req.Username] = &MockAccount{
		Principal: Principal{ID: m.nextID, Name: req.Name, Role: RoleSubAdmin},
		Username:  req.Username,
		Password:  req.Password,
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sub admin added"})
}

func (m *MockBackend) handleDeleteSubAdmin(w http.ResponseWriter, r *http.Request) {
	if m.requireAdmin(w, r) == nil {
		return
	}
	var req struct {
		Username string `json:"username"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account := m.accounts[req.Username]
	if account == nil || account.Role != RoleSubAdmin {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Sub admin not found"})
		return
	}
	delete(m.accounts, req.Username)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sub admin deleted"})
}

func (m *MockBackend) handleAttendanceToday(w http.ResponseWriter, r *http.Request) {
	rider := m.requireRider(w, r)
	if rider == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var status *string
	if answer, ok := m.attendance[rider.ID]; ok {
		status = &answer
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":   time.Now().UTC().Format("2006-01-02"),
		"status": status,
	})
}

func (m *MockBackend) handleAttendanceMark(w http.ResponseWriter, r *http.Request) {
	rider := m.requireRider(w, r)
	if rider == nil {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil || (req.Status != "present" && req.Status != "absent") {
		writeDetail(w, http.StatusBadRequest, "status must be present or absent")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attendance[rider.ID] = req.Status
	writeJSON(w, http.StatusOK, map[string]string{"message": "Attendance marked"})
}

func (m *MockBackend) handleQueue(w http.ResponseWriter, r *http.Request) {
	rider := m.requireRider(w, r)
	if rider == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	type waiting struct {
		entry QueueEntry
		since time.Time
	}
	var queue []waiting
	for _, account := range m.accounts {
		if account.Role != RoleRider || account.Store != rider.Store {
			continue
		}
		record, ok := m.statuses[account.ID]
		if !ok || record.status != StatusAvailable {
			continue
		}
		queue = append(queue, waiting{
			entry: QueueEntry{
				RiderID:   account.ID,
				Name:      account.Name,
				Store:     account.Store,
				UpdatedAt: &Timestamp{record.updatedAt},
			},
			since: record.updatedAt,
		})
	}
	// Oldest available first; array order is the queue order.
	sort.Slice(queue, func(i, j int) bool { return queue[i].since.Before(queue[j].since) })

	entries := make([]QueueEntry, len(queue))
	position := 0
	for i, item := range queue {
		entries[i] = item.entry
		if item.entry.RiderID == rider.ID {
			position = i + 1
		}
	}

	status := StatusOffline
	if record, ok := m.statuses[rider.ID]; ok {
		status = record.status
	}
	resp := map[string]any{
		"status":        status,
		"queue":         entries,
		"total_waiting": len(entries),
		"position":      nil,
	}
	if position > 0 {
		resp["position"] = position
	}
	writeJSON(w, http.StatusOK, resp)
}

func (m *MockBackend) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	rider := m.requireRider(w, r)
	if rider == nil {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil || req.Status == "" {
		writeDetail(w, http.StatusBadRequest, "status is required")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[rider.ID] = statusRecord{status: WorkStatus(req.Status), updatedAt: time.Now().UTC()}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (m *MockBackend) handleListShifts(w http.ResponseWriter, r *http.Request) {
	admin := m.requireAdmin(w, r)
	if admin == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	visible := make(map[int64]bool)
	for _, rider := range m.visibleRiders(admin, "") {
		visible[rider.ID] = true
	}
	shifts := make([]Shift, 0)
	for _, shift := range m.shifts {
		if visible[shift.RiderID] {
			shifts = append(shifts, shift)
		}
	}
	writeJSON(w, http.StatusOK, shifts)
}

func (m *MockBackend) handleCreateShift(w http.ResponseWriter, r *http.Request) {
	admin := m.requireAdmin(w, r)
	if admin == nil {
		return
	}
	var req struct {
		RiderID   int64     `json:"rider_id"`
		StartTime Timestamp `json:"start_time"`
		EndTime   Timestamp `json:"end_time"`
	}
	if err := decodeBody(r, &req); err != nil || req.RiderID == 0 {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	visible := false
	for _, rider := range m.visibleRiders(admin, "") {
		if rider.ID == req.RiderID {
			visible = true
			break
		}
	}
	if !visible {
		writeDetail(w, http.StatusForbidden, "Cannot create shift for this rider")
		return
	}
	shift := Shift{
		ID:        int64(len(m.shifts) + 1),
		RiderID:   req.RiderID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	m.shifts = append(m.shifts, shift)
	writeJSON(w, http.StatusOK, shift)
}
