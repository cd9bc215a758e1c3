package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"starhr/internal/bootstrap"
	"starhr/internal/domain"
	"starhr/internal/entitlement"
	entitlementerrors "starhr/internal/entitlement/errors"
	"starhr/internal/leave"
	leaveerrors "starhr/internal/leave/errors"
	"starhr/internal/leavebalance"
	leavebalanceerrors "starhr/internal/leavebalance/errors"
	"starhr/internal/messaging/kafka"
	kafkamock "starhr/internal/messaging/kafka/mock"
	"starhr/internal/orghierarchy"
	orghierarchyerrors "starhr/internal/orghierarchy/errors"
	"starhr/internal/shared/apperror"
	"starhr/internal/shared/counter"
	countermock "starhr/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	companyID  = "11111111-1111-1111-1111-111111111111"
	employeeID = "22222222-2222-2222-2222-222222222222"
	managerID  = "33333333-3333-3333-3333-333333333333"
	hrID       = "44444444-4444-4444-4444-444444444444"
	strangerID = "55555555-5555-5555-5555-555555555555"

	fixedNow = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
)

func employeeActor() domain.Actor {
	return domain.Actor{CompanyID: companyID, EmployeeID: employeeID, Role: domain.RoleEmployee}
}

func managerActor() domain.Actor {
	return domain.Actor{CompanyID: companyID, EmployeeID: managerID, Role: domain.RoleManager}
}

func hrActor() domain.Actor {
	return domain.Actor{CompanyID: companyID, EmployeeID: hrID, Role: domain.RoleHR}
}

type memLeaveRepo struct {
	rows    map[string]*leave.LeaveRequest
	history []leave.ApprovalHistoryEntry
	locked  []string
}

func newMemLeaveRepo() *memLeaveRepo {
	return &memLeaveRepo{rows: map[string]*leave.LeaveRequest{}}
}

func (m *memLeaveRepo) WithTx(tx *sql.Tx) leave.Repository { return m }

func (m *memLeaveRepo) Create(ctx context.Context, l *leave.LeaveRequest) error {
	cp := *l
	m.rows[l.ID.String()] = &cp
	return nil
}

func (m *memLeaveRepo) FindByID(ctx context.Context, companyID, id string) (*leave.LeaveRequest, error) {
	l, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memLeaveRepo) FindByIDForUpdate(ctx context.Context, companyID, id string) (*leave.LeaveRequest, error) {
	return m.FindByID(ctx, companyID, id)
}

func (m *memLeaveRepo) ListByEmployee(ctx context.Context, companyID, employeeID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, l := range m.rows {
		if l.EmployeeID.String() == employeeID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memLeaveRepo) ListPending(ctx context.Context, companyID string, approverID *string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, l := range m.rows {
		if l.Status != leave.StatusPending {
			continue
		}
		if approverID != nil && (l.CurrentApproverID == nil || l.CurrentApproverID.String() != *approverID) {
			continue
		}
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestNumber < out[j].RequestNumber })
	return out, nil
}

func (m *memLeaveRepo) LockEmployee(ctx context.Context, companyID, employeeID string) error {
	m.locked = append(m.locked, employeeID)
	return nil
}

func (m *memLeaveRepo) HasOverlap(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error) {
	for _, l := range m.rows {
		if l.EmployeeID.String() != employeeID {
			continue
		}
		if l.Status != leave.StatusPending && l.Status != leave.StatusApproved {
			continue
		}
		if !l.StartDate.After(endDate) && !l.EndDate.Before(startDate) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memLeaveRepo) UpdateStatus(ctx context.Context, companyID, id, fromStatus string, changes map[string]any) (int64, error) {
	l, ok := m.rows[id]
	if !ok || l.Status != fromStatus {
		return 0, nil
	}
	l.Status = changes["status"].(string)
	return 1, nil
}

func (m *memLeaveRepo) AddHistory(ctx context.Context, entry *leave.ApprovalHistoryEntry) error {
	m.history = append(m.history, *entry)
	return nil
}

func (m *memLeaveRepo) ListHistory(ctx context.Context, companyID, leaveRequestID string) ([]leave.ApprovalHistoryEntry, error) {
	var out []leave.ApprovalHistoryEntry
	for _, h := range m.history {
		if h.LeaveRequestID.String() == leaveRequestID {
			out = append(out, h)
		}
	}
	return out, nil
}

// memLedger applies the same guards as the SQL ledger.
type memLedger struct {
	allocated decimal.Decimal
	balances  map[string]*leavebalance.LeaveBalance
}

func newMemLedger(allocated int64) *memLedger {
	return &memLedger{allocated: decimal.NewFromInt(allocated), balances: map[string]*leavebalance.LeaveBalance{}}
}

func (m *memLedger) WithTx(tx *sql.Tx) leavebalance.Ledger { return m }

func (m *memLedger) GetOrCreate(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*leavebalance.LeaveBalance, error) {
	for _, b := range m.balances {
		if b.EmployeeID.String() == employeeID && b.LeaveTypeID.String() == leaveTypeID && b.Year == year {
			cp := *b
			return &cp, nil
		}
	}
	b := &leavebalance.LeaveBalance{
		ID:            uuid.New(),
		CompanyID:     uuid.MustParse(companyID),
		EmployeeID:    uuid.MustParse(employeeID),
		LeaveTypeID:   uuid.MustParse(leaveTypeID),
		Year:          year,
		AllocatedDays: m.allocated,
	}
	m.balances[b.ID.String()] = b
	cp := *b
	return &cp, nil
}

func (m *memLedger) LockForUpdate(ctx context.Context, companyID, balanceID string) (*leavebalance.LeaveBalance, error) {
	b, ok := m.balances[balanceID]
	if !ok {
		return nil, leavebalanceerrors.ErrBalanceNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memLedger) Reserve(ctx context.Context, companyID, balanceID string, days decimal.Decimal) error {
	b := m.balances[balanceID]
	if b.Available().LessThan(days) {
		return leavebalanceerrors.ErrLedgerConflict
	}
	b.PendingDays = b.PendingDays.Add(days)
	return nil
}

func (m *memLedger) Commit(ctx context.Context, companyID, balanceID string, days decimal.Decimal) error {
	b := m.balances[balanceID]
	if b.PendingDays.LessThan(days) {
		return leavebalanceerrors.ErrLedgerConflict
	}
	b.PendingDays = b.PendingDays.Sub(days)
	b.TakenDays = b.TakenDays.Add(days)
	return nil
}

func (m *memLedger) Release(ctx context.Context, companyID, balanceID string, days decimal.Decimal) error {
	b := m.balances[balanceID]
	if b.PendingDays.LessThan(days) {
		return leavebalanceerrors.ErrLedgerConflict
	}
	b.PendingDays = b.PendingDays.Sub(days)
	return nil
}

func (m *memLedger) Grant(ctx context.Context, companyID, balanceID string, days decimal.Decimal) error {
	b := m.balances[balanceID]
	b.AllocatedDays = b.AllocatedDays.Add(days)
	return nil
}

func (m *memLedger) Revoke(ctx context.Context, companyID, balanceID string, days decimal.Decimal) error {
	b := m.balances[balanceID]
	b.AllocatedDays = b.AllocatedDays.Sub(days)
	return nil
}

func (m *memLedger) only(t *testing.T) *leavebalance.LeaveBalance {
	t.Helper()
	require.Len(t, m.balances, 1)
	for _, b := range m.balances {
		return b
	}
	return nil
}

type fakeLeaveTypes struct {
	types map[string]*entitlement.LeaveType
}

func (f *fakeLeaveTypes) GetLeaveTypeByCode(ctx context.Context, companyID, code string) (*entitlement.LeaveType, error) {
	lt, ok := f.types[strings.ToUpper(code)]
	if !ok {
		return nil, entitlementerrors.ErrLeaveTypeNotFound
	}
	return lt, nil
}

type fakeApprovers struct {
	resolveFn func(ctx context.Context, companyID, employeeID string) (orghierarchy.Approver, error)
}

func (f *fakeApprovers) Resolve(ctx context.Context, companyID, employeeID string) (orghierarchy.Approver, error) {
	return f.resolveFn(ctx, companyID, employeeID)
}

type markCall struct {
	employeeID string
	date       string
	leaveID    string
}

type fakeAttendance struct {
	calls []markCall
	err   error
}

func (f *fakeAttendance) MarkOnLeave(ctx context.Context, companyID, employeeID string, date time.Time, leaveRequestID string) error {
	f.calls = append(f.calls, markCall{employeeID: employeeID, date: date.Format("2006-01-02"), leaveID: leaveRequestID})
	return f.err
}

type fakeMetrics struct {
	actions []string
}

func (f *fakeMetrics) RecordTransition(flow, action string) {
	f.actions = append(f.actions, flow+":"+action)
}

type fakeAudit struct {
	entries []bootstrap.AuditLog
}

func (f *fakeAudit) Log(ctx context.Context, entry bootstrap.AuditLog) {
	f.entries = append(f.entries, entry)
}

func (f *fakeAudit) actions() []string {
	out := []string{}
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

type harness struct {
	svc        leave.Service
	sql        sqlmock.Sqlmock
	repo       *memLeaveRepo
	ledger     *memLedger
	types      *fakeLeaveTypes
	approvers  *fakeApprovers
	attendance *fakeAttendance
	metrics    *fakeMetrics
	audit      *fakeAudit
	events     []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := &harness{
		sql:    mock,
		repo:   newMemLeaveRepo(),
		ledger: newMemLedger(14),
		types: &fakeLeaveTypes{types: map[string]*entitlement.LeaveType{
			"AL": {ID: uuid.New(), Code: "AL", Name: "Annual Leave", MaxDaysPerYear: decimal.NewFromInt(14), RequiresApproval: true, IsActive: true},
		}},
		approvers: &fakeApprovers{resolveFn: func(ctx context.Context, companyID, employeeID string) (orghierarchy.Approver, error) {
			return orghierarchy.Approver{ApproverID: managerID, ApproverName: "Mira Manager", HierarchyLevel: 1, Source: orghierarchy.SourceSupervisor}, nil
		}},
		attendance: &fakeAttendance{},
		metrics:    &fakeMetrics{},
		audit:      &fakeAudit{},
	}

	outbox := kafkamock.NewMockOutboxRepository(ctrl)
	outbox.EXPECT().WithTx(gomock.Any()).Return(outbox).AnyTimes()
	outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, event kafka.OutboxEvent) error {
		h.events = append(h.events, event.EventType)
		return nil
	}).AnyTimes()

	var seq int64
	counters := countermock.NewMockRepository(ctrl)
	counters.EXPECT().WithTx(gomock.Any()).Return(counters).AnyTimes()
	counters.EXPECT().GetNextValue(gomock.Any(), companyID, counter.TypeLeaveRequest).DoAndReturn(func(ctx context.Context, companyID, counterType string) (int64, error) {
		seq++
		return seq, nil
	}).AnyTimes()

	h.svc = leave.NewService(leave.Deps{
		DB:         db,
		Repo:       h.repo,
		Counter:    counters,
		Outbox:     outbox,
		LeaveTypes: h.types,
		Ledger:     h.ledger,
		Approvers:  h.approvers,
		Attendance: h.attendance,
		Metrics:    h.metrics,
		Audit:      h.audit,
		Now:        func() time.Time { return fixedNow },
	})
	return h
}

func weekRequest() leave.SubmitLeaveRequest {
	return leave.SubmitLeaveRequest{
		LeaveTypeCode: "AL",
		StartDate:     "2025-03-10",
		EndDate:       "2025-03-14",
		Reason:        "family trip",
	}
}

func (h *harness) submit(t *testing.T, req leave.SubmitLeaveRequest) leave.SubmitLeaveResponse {
	t.Helper()
	h.sql.ExpectBegin()
	h.sql.ExpectCommit()
	resp, err := h.svc.Submit(context.Background(), employeeActor(), req)
	require.NoError(t, err)
	return resp
}

func TestSubmit_HalfDayEndReservesFourAndAHalf(t *testing.T) {
	h := newHarness(t)
	req := weekRequest()
	req.HalfDayEnd = true

	resp := h.submit(t, req)

	assert.Equal(t, "4.5", resp.DaysRequested.String())
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, "LV-2025-000001", resp.RequestNumber)
	assert.Equal(t, "Mira Manager", resp.ApproverName)

	b := h.ledger.only(t)
	assert.Equal(t, "4.5", b.PendingDays.String())
	assert.True(t, b.TakenDays.IsZero())

	require.Len(t, h.repo.history, 1)
	assert.Equal(t, leave.ActionSubmitted, h.repo.history[0].Action)
	assert.Equal(t, []string{"leave.submitted"}, h.events)
	assert.Empty(t, h.attendance.calls)
	assert.Equal(t, []string{"leave:SUBMITTED"}, h.metrics.actions)
	assert.Equal(t, []string{employeeID}, h.repo.locked)
	assert.Empty(t, h.audit.entries)
	assert.NoError(t, h.sql.ExpectationsWereMet())
}

func TestSubmit_NoHierarchyCreatesNothing(t *testing.T) {
	h := newHarness(t)
	h.approvers.resolveFn = func(ctx context.Context, companyID, employeeID string) (orghierarchy.Approver, error) {
		return orghierarchy.Approver{}, orghierarchyerrors.ErrNoHierarchy
	}

	_, err := h.svc.Submit(context.Background(), employeeActor(), weekRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, orghierarchyerrors.ErrNoHierarchy)
	assert.Empty(t, h.repo.rows)
	assert.Empty(t, h.ledger.balances)
	assert.Empty(t, h.events)
	assert.NoError(t, h.sql.ExpectationsWereMet())
}

func TestSubmit_InsufficientBalanceLeavesLedgerUntouched(t *testing.T) {
	h := newHarness(t)
	lt := h.types.types["AL"]
	b := &leavebalance.LeaveBalance{
		ID:            uuid.New(),
		CompanyID:     uuid.MustParse(companyID),
		EmployeeID:    uuid.MustParse(employeeID),
		LeaveTypeID:   lt.ID,
		Year:          2025,
		AllocatedDays: decimal.NewFromInt(14),
		TakenDays:     decimal.NewFromInt(10),
		PendingDays:   decimal.NewFromInt(2),
	}
	h.ledger.balances[b.ID.String()] = b

	req := weekRequest()
	req.EndDate = "2025-03-12"

	h.sql.ExpectBegin()
	h.sql.ExpectRollback()
	_, err := h.svc.Submit(context.Background(), employeeActor(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodePolicyViolation, appErr.Code)
	assert.Equal(t, "2", appErr.Details["available"])
	assert.Equal(t, "3", appErr.Details["requested"])

	assert.Equal(t, "2", b.PendingDays.String())
	assert.Equal(t, "10", b.TakenDays.String())
	assert.Empty(t, h.repo.rows)
	assert.NoError(t, h.sql.ExpectationsWereMet())
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(h *harness, req *leave.SubmitLeaveRequest)
		actor   domain.Actor
		wantErr error
	}{
		{
			name:    "bad date format",
			mutate:  func(h *harness, req *leave.SubmitLeaveRequest) { req.StartDate = "10/03/2025" },
			wantErr: leaveerrors.ErrInvalidDateFormat,
		},
		{
			name:    "end before start",
			mutate:  func(h *harness, req *leave.SubmitLeaveRequest) { req.EndDate = "2025-03-07" },
			wantErr: leaveerrors.ErrInvalidDateRange,
		},
		{
			name: "cross year",
			mutate: func(h *harness, req *leave.SubmitLeaveRequest) {
				req.StartDate = "2025-12-29"
				req.EndDate = "2026-01-02"
			},
			wantErr: leaveerrors.ErrCrossYear,
		},
		{
			name: "weekend only",
			mutate: func(h *harness, req *leave.SubmitLeaveRequest) {
				req.StartDate = "2025-03-15"
				req.EndDate = "2025-03-16"
			},
			wantErr: leaveerrors.ErrNoWorkingDays,
		},
		{
			name:    "unknown type",
			mutate:  func(h *harness, req *leave.SubmitLeaveRequest) { req.LeaveTypeCode = "XX" },
			wantErr: entitlementerrors.ErrLeaveTypeNotFound,
		},
		{
			name:    "inactive type",
			mutate:  func(h *harness, req *leave.SubmitLeaveRequest) { h.types.types["AL"].IsActive = false },
			wantErr: entitlementerrors.ErrLeaveTypeInactive,
		},
		{
			name:    "exceeds max consecutive",
			mutate:  func(h *harness, req *leave.SubmitLeaveRequest) { h.types.types["AL"].MaxConsecutiveDays = 3 },
			wantErr: leaveerrors.ErrExceedsMaxConsecutive,
		},
		{
			name:    "insufficient notice",
			mutate:  func(h *harness, req *leave.SubmitLeaveRequest) { h.types.types["AL"].MinNoticeDays = 14 },
			wantErr: leaveerrors.ErrInsufficientNotice,
		},
		{
			name:    "document required",
			mutate:  func(h *harness, req *leave.SubmitLeaveRequest) { h.types.types["AL"].RequiresDocument = true },
			wantErr: leaveerrors.ErrDocumentRequired,
		},
		{
			name:    "employee submitting for someone else",
			mutate:  func(h *harness, req *leave.SubmitLeaveRequest) { req.EmployeeID = strangerID },
			wantErr: leaveerrors.ErrSubmitOnBehalf,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			req := weekRequest()
			tt.mutate(h, &req)

			_, err := h.svc.Submit(context.Background(), employeeActor(), req)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, h.repo.rows)
			assert.NoError(t, h.sql.ExpectationsWereMet())
		})
	}
}

func TestSubmit_OnBehalfByHR(t *testing.T) {
	h := newHarness(t)
	req := weekRequest()
	req.EmployeeID = employeeID

	h.sql.ExpectBegin()
	h.sql.ExpectCommit()
	resp, err := h.svc.Submit(context.Background(), hrActor(), req)

	require.NoError(t, err)
	stored := h.repo.rows[resp.RequestID]
	assert.Equal(t, employeeID, stored.EmployeeID.String())
	assert.Equal(t, hrID, h.repo.history[0].ActorID.String())
}

func TestSubmit_OverlapRejected(t *testing.T) {
	h := newHarness(t)
	h.submit(t, weekRequest())

	req := weekRequest()
	req.StartDate = "2025-03-14"
	req.EndDate = "2025-03-18"

	h.sql.ExpectBegin()
	h.sql.ExpectRollback()
	_, err := h.svc.Submit(context.Background(), employeeActor(), req)

	assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	assert.Len(t, h.repo.rows, 1)
	assert.Equal(t, "5", h.ledger.only(t).PendingDays.String())
	assert.NoError(t, h.sql.ExpectationsWereMet())
}

// Two submissions for different leave types lock different balance rows, so
// the overlap check is serialised on the employee instead.
func TestSubmit_LocksEmployeeBeforeOverlapCheck(t *testing.T) {
	h := newHarness(t)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	svc := leave.NewService(leave.Deps{
		DB:         db,
		Repo:       leave.NewRepository(gdb),
		LeaveTypes: h.types,
		Ledger:     h.ledger,
		Approvers:  h.approvers,
		Audit:      h.audit,
		Now:        func() time.Time { return fixedNow },
	})

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
		WithArgs("leave_request:" + companyID + ":" + employeeID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "leave_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err = svc.Submit(context.Background(), employeeActor(), weekRequest())

	assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	assert.True(t, h.ledger.only(t).PendingDays.IsZero())
	assert.Empty(t, h.audit.entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmit_AutoApproveWhenApprovalNotRequired(t *testing.T) {
	h := newHarness(t)
	h.types.types["AL"].RequiresApproval = false

	resp := h.submit(t, weekRequest())

	assert.Equal(t, leave.StatusApproved, resp.Status)
	b := h.ledger.only(t)
	assert.True(t, b.PendingDays.IsZero())
	assert.Equal(t, "5", b.TakenDays.String())
	assert.Equal(t, []string{"leave.submitted", "leave.approved"}, h.events)
	require.Len(t, h.repo.history, 2)
	assert.Equal(t, leave.ActionApproved, h.repo.history[1].Action)
	assert.Len(t, h.attendance.calls, 5)
	assert.Equal(t, []string{bootstrap.ActionLeaveAutoApproved}, h.audit.actions())
}

func TestApprove_RoundTrip(t *testing.T) {
	h := newHarness(t)
	submitted := h.submit(t, weekRequest())

	h.sql.ExpectBegin()
	h.sql.ExpectCommit()
	resp, err := h.svc.Approve(context.Background(), managerActor(), submitted.RequestID, leave.DecisionRequest{Notes: "enjoy"})

	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, managerID, *resp.ApprovedBy)

	b := h.ledger.only(t)
	assert.True(t, b.PendingDays.IsZero())
	assert.Equal(t, "5", b.TakenDays.String())
	assert.Equal(t, "9", b.Available().String())

	require.Len(t, h.attendance.calls, 5)
	assert.Equal(t, "2025-03-10", h.attendance.calls[0].date)
	assert.Equal(t, submitted.RequestID, h.attendance.calls[0].leaveID)

	history, err := h.svc.History(context.Background(), employeeActor(), submitted.RequestID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, leave.StatusPending, history[1].FromStatus)
	assert.Equal(t, leave.StatusApproved, history[1].ToStatus)
	assert.Equal(t, []string{"leave.submitted", "leave.approved"}, h.events)

	require.Len(t, h.audit.entries, 1)
	entry := h.audit.entries[0]
	assert.Equal(t, bootstrap.ActionLeaveApproved, entry.Action)
	assert.Equal(t, companyID, entry.CompanyID)
	assert.Equal(t, managerID, entry.ActorID)
	assert.Equal(t, kafka.AggregateLeaveRequest, entry.Entity)
	assert.Equal(t, submitted.RequestID, entry.EntityID)
	assert.Equal(t, "LV-2025-000001", entry.Meta["request_number"])
	assert.Equal(t, "5", entry.Meta["days"])
	assert.Equal(t, "enjoy", entry.Meta["notes"])
	assert.NoError(t, h.sql.ExpectationsWereMet())
}

func TestApprove_AttendanceFailureDoesNotFailApproval(t *testing.T) {
	h := newHarness(t)
	submitted := h.submit(t, weekRequest())
	h.attendance.err = errors.New("attendance down")

	h.sql.ExpectBegin()
	h.sql.ExpectCommit()
	resp, err := h.svc.Approve(context.Background(), managerActor(), submitted.RequestID, leave.DecisionRequest{})

	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	assert.Len(t, h.attendance.calls, 5)
}

func TestApprove_Guards(t *testing.T) {
	t.Run("employee role", func(t *testing.T) {
		h := newHarness(t)
		submitted := h.submit(t, weekRequest())

		_, err := h.svc.Approve(context.Background(), domain.Actor{CompanyID: companyID, EmployeeID: strangerID, Role: domain.RoleEmployee}, submitted.RequestID, leave.DecisionRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrApproverRoleRequired)
		assert.NoError(t, h.sql.ExpectationsWereMet())
	})

	t.Run("self approval", func(t *testing.T) {
		h := newHarness(t)
		h.approvers.resolveFn = func(ctx context.Context, companyID, employeeID string) (orghierarchy.Approver, error) {
			return orghierarchy.Approver{ApproverID: employeeID, ApproverName: "Self"}, nil
		}
		submitted := h.submit(t, weekRequest())

		h.sql.ExpectBegin()
		h.sql.ExpectRollback()
		_, err := h.svc.Approve(context.Background(), domain.Actor{CompanyID: companyID, EmployeeID: employeeID, Role: domain.RoleManager}, submitted.RequestID, leave.DecisionRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrSelfApproval)
		assert.Equal(t, leave.StatusPending, h.repo.rows[submitted.RequestID].Status)
		assert.NoError(t, h.sql.ExpectationsWereMet())
	})

	t.Run("not the assigned approver", func(t *testing.T) {
		h := newHarness(t)
		submitted := h.submit(t, weekRequest())

		h.sql.ExpectBegin()
		h.sql.ExpectRollback()
		_, err := h.svc.Approve(context.Background(), domain.Actor{CompanyID: companyID, EmployeeID: strangerID, Role: domain.RoleManager}, submitted.RequestID, leave.DecisionRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrNotAssignedApprover)
		assert.NoError(t, h.sql.ExpectationsWereMet())
	})

	t.Run("unknown request", func(t *testing.T) {
		h := newHarness(t)

		h.sql.ExpectBegin()
		h.sql.ExpectRollback()
		_, err := h.svc.Approve(context.Background(), managerActor(), uuid.NewString(), leave.DecisionRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("already decided", func(t *testing.T) {
		h := newHarness(t)
		submitted := h.submit(t, weekRequest())
		h.sql.ExpectBegin()
		h.sql.ExpectCommit()
		_, err := h.svc.Approve(context.Background(), managerActor(), submitted.RequestID, leave.DecisionRequest{})
		require.NoError(t, err)

		h.sql.ExpectBegin()
		h.sql.ExpectRollback()
		_, err = h.svc.Reject(context.Background(), managerActor(), submitted.RequestID, leave.DecisionRequest{Notes: "changed my mind"})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidState)
		assert.Equal(t, "5", h.ledger.only(t).TakenDays.String())
		assert.Equal(t, []string{bootstrap.ActionLeaveApproved}, h.audit.actions())
		assert.NoError(t, h.sql.ExpectationsWereMet())
	})
}

func TestReject(t *testing.T) {
	t.Run("success with notes", func(t *testing.T) {
		h := newHarness(t)
		submitted := h.submit(t, weekRequest())

		h.sql.ExpectBegin()
		h.sql.ExpectCommit()
		resp, err := h.svc.Reject(context.Background(), managerActor(), submitted.RequestID, leave.DecisionRequest{Notes: "peak season"})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		require.NotNil(t, resp.RejectionReason)
		assert.Equal(t, "peak season", *resp.RejectionReason)

		b := h.ledger.only(t)
		assert.True(t, b.PendingDays.IsZero())
		assert.True(t, b.TakenDays.IsZero())
		assert.Empty(t, h.attendance.calls)
		assert.Equal(t, []string{"leave.submitted", "leave.rejected"}, h.events)
		require.Len(t, h.audit.entries, 1)
		assert.Equal(t, bootstrap.ActionLeaveRejected, h.audit.entries[0].Action)
		assert.Equal(t, "peak season", h.audit.entries[0].Meta["notes"])
	})

	t.Run("success without notes", func(t *testing.T) {
		h := newHarness(t)
		submitted := h.submit(t, weekRequest())

		h.sql.ExpectBegin()
		h.sql.ExpectCommit()
		resp, err := h.svc.Reject(context.Background(), managerActor(), submitted.RequestID, leave.DecisionRequest{})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.True(t, h.ledger.only(t).PendingDays.IsZero())
		require.Len(t, h.audit.entries, 1)
		assert.NotContains(t, h.audit.entries[0].Meta, "notes")
		assert.NoError(t, h.sql.ExpectationsWereMet())
	})
}

func TestCancel(t *testing.T) {
	h := newHarness(t)
	submitted := h.submit(t, weekRequest())

	h.sql.ExpectBegin()
	h.sql.ExpectRollback()
	_, err := h.svc.Cancel(context.Background(), managerActor(), submitted.RequestID)
	assert.ErrorIs(t, err, leaveerrors.ErrNotRequester)

	h.sql.ExpectBegin()
	h.sql.ExpectCommit()
	resp, err := h.svc.Cancel(context.Background(), employeeActor(), submitted.RequestID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusWithdrawn, resp.Status)
	assert.NotNil(t, resp.CancelledAt)
	assert.True(t, h.ledger.only(t).PendingDays.IsZero())
	assert.Equal(t, []string{bootstrap.ActionLeaveCancelled}, h.audit.actions())

	h.sql.ExpectBegin()
	h.sql.ExpectRollback()
	_, err = h.svc.Cancel(context.Background(), employeeActor(), submitted.RequestID)
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidState)
	assert.NoError(t, h.sql.ExpectationsWereMet())
}

func TestOverride(t *testing.T) {
	t.Run("requires HR or ADMIN", func(t *testing.T) {
		h := newHarness(t)
		submitted := h.submit(t, weekRequest())

		_, err := h.svc.Override(context.Background(), managerActor(), submitted.RequestID, leave.OverrideRequest{Decision: leave.DecisionApprove, Justification: "urgent"})

		assert.ErrorIs(t, err, leaveerrors.ErrOverrideRoleRequired)
	})

	t.Run("requires justification", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.svc.Override(context.Background(), hrActor(), uuid.NewString(), leave.OverrideRequest{Decision: leave.DecisionApprove, Justification: " "})

		assert.ErrorIs(t, err, leaveerrors.ErrJustificationRequired)
	})

	t.Run("hr approves without being the approver", func(t *testing.T) {
		h := newHarness(t)
		submitted := h.submit(t, weekRequest())

		h.sql.ExpectBegin()
		h.sql.ExpectCommit()
		resp, err := h.svc.Override(context.Background(), hrActor(), submitted.RequestID, leave.OverrideRequest{Decision: leave.DecisionApprove, Justification: "manager on sabbatical"})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		last := h.repo.history[len(h.repo.history)-1]
		assert.Equal(t, leave.ActionOverridden, last.Action)
		assert.Equal(t, "[OVERRIDE] manager on sabbatical", last.Notes)
		assert.Equal(t, "5", h.ledger.only(t).TakenDays.String())
		assert.Equal(t, []string{"leave.submitted", "leave.overridden"}, h.events)
		require.Len(t, h.audit.entries, 1)
		assert.Equal(t, bootstrap.ActionLeaveOverridden, h.audit.entries[0].Action)
		assert.Equal(t, hrID, h.audit.entries[0].ActorID)
		assert.Equal(t, "[OVERRIDE] manager on sabbatical", h.audit.entries[0].Meta["notes"])
	})

	t.Run("hr rejects", func(t *testing.T) {
		h := newHarness(t)
		submitted := h.submit(t, weekRequest())

		h.sql.ExpectBegin()
		h.sql.ExpectCommit()
		resp, err := h.svc.Override(context.Background(), hrActor(), submitted.RequestID, leave.OverrideRequest{Decision: leave.DecisionReject, Justification: "policy breach"})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.True(t, h.ledger.only(t).PendingDays.IsZero())
		assert.Equal(t, []string{bootstrap.ActionLeaveOverridden}, h.audit.actions())
	})
}

func TestVisibility(t *testing.T) {
	h := newHarness(t)
	submitted := h.submit(t, weekRequest())
	ctx := context.Background()

	_, err := h.svc.GetByID(ctx, employeeActor(), submitted.RequestID)
	assert.NoError(t, err)
	_, err = h.svc.GetByID(ctx, managerActor(), submitted.RequestID)
	assert.NoError(t, err)
	_, err = h.svc.GetByID(ctx, hrActor(), submitted.RequestID)
	assert.NoError(t, err)

	_, err = h.svc.GetByID(ctx, domain.Actor{CompanyID: companyID, EmployeeID: strangerID, Role: domain.RoleManager}, submitted.RequestID)
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveForbidden)
	_, err = h.svc.History(ctx, domain.Actor{CompanyID: companyID, EmployeeID: strangerID, Role: domain.RoleEmployee}, submitted.RequestID)
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveForbidden)
	_, err = h.svc.GetByID(ctx, hrActor(), uuid.NewString())
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}

func TestListPending(t *testing.T) {
	h := newHarness(t)
	submitted := h.submit(t, weekRequest())
	ctx := context.Background()

	mine, err := h.svc.ListPending(ctx, managerActor())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, submitted.RequestID, mine[0].ID)

	other, err := h.svc.ListPending(ctx, domain.Actor{CompanyID: companyID, EmployeeID: strangerID, Role: domain.RoleManager})
	require.NoError(t, err)
	assert.Empty(t, other)

	all, err := h.svc.ListPending(ctx, hrActor())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	own, err := h.svc.ListMine(ctx, employeeActor())
	require.NoError(t, err)
	assert.Len(t, own, 1)
}
