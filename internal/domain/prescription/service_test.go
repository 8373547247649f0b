package prescription

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/erx/erx/internal/domain/pharmacy"
)

type fakeSchedules map[string]string

func (f fakeSchedules) ScheduleFor(_ context.Context, name string) string {
	return f[strings.ToLower(name)]
}

func newTestService() (*Service, *MemoryStore) {
	store := NewMemoryStore()
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	schedules := fakeSchedules{"adderall": "Schedule II", "zolpidem": "Schedule IV"}
	return NewService(store.Prescriptions(), store.Refills(), store, schedules), store
}

func validCreate(medication string, refills int) CreateRequest {
	return CreateRequest{
		PatientID:   "P001",
		PatientName: "Omkar Katale",
		Medication:  medication,
		Strength:    "10mg",
		Quantity:    30,
		Refills:     refills,
		Sig:         "Take 1 tablet by mouth once daily",
		Pharmacy:    "CVS Pharmacy",
	}
}

func mustCreate(t *testing.T, svc *Service, medication string, refills int) *Prescription {
	t.Helper()
	p, err := svc.Create(context.Background(), validCreate(medication, refills), "Dr. Test")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return p
}

func TestCreate_Pending(t *testing.T) {
	svc, _ := newTestService()
	p := mustCreate(t, svc, "Lisinopril 10mg", 3)
	if p.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
	if p.Status != StatusPending {
		t.Errorf("status = %s, want pending", p.Status)
	}
	if p.IsControlled || p.ScheduleClass != "" {
		t.Errorf("lisinopril should not be controlled: %+v", p)
	}
	if p.PrescribedBy != "Dr. Test" {
		t.Errorf("prescribed_by = %q", p.PrescribedBy)
	}
	if p.PrescribedAt.IsZero() {
		t.Error("expected prescribed_at")
	}
}

func TestCreate_ControlledFromCatalog(t *testing.T) {
	svc, _ := newTestService()
	p := mustCreate(t, svc, "Adderall 10mg", 0)
	if !p.IsControlled || p.ScheduleClass != "Schedule II" {
		t.Errorf("expected Schedule II controlled, got %+v", p)
	}
}

func TestCreate_NoScheduleLookup(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store.Prescriptions(), store.Refills(), store, nil)
	p, err := svc.Create(context.Background(), validCreate("Adderall 10mg", 0), "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.IsControlled {
		t.Error("expected uncontrolled without a lookup")
	}
}

func TestCreate_InvalidInput(t *testing.T) {
	svc, _ := newTestService()
	cases := map[string]CreateRequest{
		"blank medication": validCreate("  ", 0),
		"zero quantity": func() CreateRequest {
			r := validCreate("Lisinopril", 0)
			r.Quantity = 0
			return r
		}(),
		"negative refills": validCreate("Lisinopril", -1),
		"blank patient name": func() CreateRequest {
			r := validCreate("Lisinopril", 0)
			r.PatientName = "  "
			return r
		}(),
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), req, ""); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

type fakePatients map[string]string

func (f fakePatients) PatientName(_ context.Context, id string) (string, error) {
	name, ok := f[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPatient, id)
	}
	return name, nil
}

func TestCreate_PatientDirectory(t *testing.T) {
	svc, _ := newTestService()
	svc.SetPatients(fakePatients{"P001": "Omkar Katale"})
	ctx := context.Background()

	req := validCreate("Lisinopril 10mg", 0)
	req.PatientName = ""
	p, err := svc.Create(ctx, req, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.PatientName != "Omkar Katale" {
		t.Errorf("patient name = %q, want name on record", p.PatientName)
	}

	req.PatientID = "P999"
	_, err = svc.Create(ctx, req, "")
	if !errors.Is(err, ErrUnknownPatient) || !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrUnknownPatient, got %v", err)
	}
}

func TestCreate_PharmacyDirectory(t *testing.T) {
	svc, _ := newTestService()
	svc.SetPharmacies(pharmacy.NewDirectory())
	ctx := context.Background()

	for ref, want := range map[string]string{
		"CVS Pharmacy":       "CVS Pharmacy #1234",
		"ph003":              "Rite Aid #9101",
		"Community Pharmacy": "Community Pharmacy",
	} {
		req := validCreate("Lisinopril 10mg", 0)
		req.Pharmacy = ref
		p, err := svc.Create(ctx, req, "")
		if err != nil {
			t.Fatalf("%s: %v", ref, err)
		}
		if p.Pharmacy != want {
			t.Errorf("%s: pharmacy = %q, want %q", ref, p.Pharmacy, want)
		}
	}

	req := validCreate("Lisinopril 10mg", 0)
	req.Pharmacy = "Corner Drugstore"
	if _, err := svc.Create(ctx, req, ""); !errors.Is(err, ErrUnknownPharmacy) {
		t.Errorf("expected ErrUnknownPharmacy, got %v", err)
	}
}

func TestRequestRefill_PharmacyDirectory(t *testing.T) {
	svc, _ := newTestService()
	p := approvedPrescription(t, svc, 2)
	svc.SetPharmacies(pharmacy.NewDirectory())
	ctx := context.Background()

	rr, err := svc.RequestRefill(ctx, RefillCreateRequest{PrescriptionID: p.ID.String(), Pharmacy: "Walgreens"})
	if err != nil {
		t.Fatalf("refill: %v", err)
	}
	if rr.Pharmacy != "Walgreens #5678" {
		t.Errorf("pharmacy = %q", rr.Pharmacy)
	}
	_, err = svc.RequestRefill(ctx, RefillCreateRequest{PrescriptionID: p.ID.String(), Pharmacy: "Nowhere"})
	if !errors.Is(err, ErrUnknownPharmacy) {
		t.Errorf("expected ErrUnknownPharmacy, got %v", err)
	}
}

func TestTransitions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	p := mustCreate(t, svc, "Lisinopril 10mg", 1)

	if _, err := svc.Dispense(ctx, p.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("dispense pending: expected ErrInvalidTransition, got %v", err)
	}
	approved, err := svc.Approve(ctx, p.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Errorf("status = %s", approved.Status)
	}
	if _, err := svc.Reject(ctx, p.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("reject approved: expected ErrInvalidTransition, got %v", err)
	}
	dispensed, err := svc.Dispense(ctx, p.ID)
	if err != nil {
		t.Fatalf("dispense: %v", err)
	}
	if dispensed.Status != StatusDispensed {
		t.Errorf("status = %s", dispensed.Status)
	}
	if !dispensed.UpdatedAt.After(p.UpdatedAt) {
		t.Error("expected updated_at to advance")
	}
	if _, err := svc.Approve(ctx, p.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("approve dispensed: expected ErrInvalidTransition, got %v", err)
	}
}

func TestReject(t *testing.T) {
	svc, _ := newTestService()
	p := mustCreate(t, svc, "Lisinopril 10mg", 1)
	got, err := svc.Reject(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got.Status != StatusRejected {
		t.Errorf("status = %s", got.Status)
	}
}

func TestTransition_NotFound(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Approve(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusApproved, StatusDispensed, true},
		{StatusPending, StatusDispensed, false},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusApproved, false},
		{StatusDispensed, StatusPending, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func approvedPrescription(t *testing.T, svc *Service, refills int) *Prescription {
	t.Helper()
	p := mustCreate(t, svc, "Sertraline 50mg", refills)
	p, err := svc.Approve(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	return p
}

func TestRequestRefill(t *testing.T) {
	svc, _ := newTestService()
	p := approvedPrescription(t, svc, 2)

	rr, err := svc.RequestRefill(context.Background(), RefillCreateRequest{PrescriptionID: p.ID.String()})
	if err != nil {
		t.Fatalf("request refill: %v", err)
	}
	if rr.Status != RefillPending {
		t.Errorf("status = %s", rr.Status)
	}
	if rr.RemainingRefills != 2 {
		t.Errorf("remaining = %d, want 2", rr.RemainingRefills)
	}
	if rr.Medication != "Sertraline 50mg" || rr.PatientName != "Omkar Katale" || rr.Pharmacy != "CVS Pharmacy" {
		t.Errorf("unexpected copied fields: %+v", rr)
	}
	if rr.LastFillDate != nil {
		t.Error("approved prescription has no fill date")
	}
}

func TestRequestRefill_DispensedUsesFillDate(t *testing.T) {
	svc, _ := newTestService()
	p := approvedPrescription(t, svc, 1)
	p, err := svc.Dispense(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("dispense: %v", err)
	}
	rr, err := svc.RequestRefill(context.Background(), RefillCreateRequest{PrescriptionID: p.ID.String(), Pharmacy: "Walgreens"})
	if err != nil {
		t.Fatalf("request refill: %v", err)
	}
	if rr.LastFillDate == nil || !rr.LastFillDate.Equal(p.UpdatedAt) {
		t.Errorf("last fill = %v, want %v", rr.LastFillDate, p.UpdatedAt)
	}
	if rr.Pharmacy != "Walgreens" {
		t.Errorf("pharmacy = %q", rr.Pharmacy)
	}
}

func TestRequestRefill_Rejected(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	pending := mustCreate(t, svc, "Sertraline 50mg", 2)
	if _, err := svc.RequestRefill(ctx, RefillCreateRequest{PrescriptionID: pending.ID.String()}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("pending prescription: expected ErrInvalidTransition, got %v", err)
	}

	none := approvedPrescription(t, svc, 0)
	if _, err := svc.RequestRefill(ctx, RefillCreateRequest{PrescriptionID: none.ID.String()}); !errors.Is(err, ErrNoRefills) {
		t.Errorf("no refills: expected ErrNoRefills, got %v", err)
	}

	if _, err := svc.RequestRefill(ctx, RefillCreateRequest{PrescriptionID: uuid.NewString()}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown prescription: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.RequestRefill(ctx, RefillCreateRequest{PrescriptionID: "nope"}); err == nil {
		t.Error("expected error for malformed id")
	}
}

func TestApproveRefill_Decrements(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	p := approvedPrescription(t, svc, 2)
	rr, err := svc.RequestRefill(ctx, RefillCreateRequest{PrescriptionID: p.ID.String()})
	if err != nil {
		t.Fatalf("request refill: %v", err)
	}

	got, err := svc.ApproveRefill(ctx, rr.ID)
	if err != nil {
		t.Fatalf("approve refill: %v", err)
	}
	if got.Status != RefillApproved || got.RemainingRefills != 1 {
		t.Errorf("got %s with %d remaining, want approved with 1", got.Status, got.RemainingRefills)
	}
	after, _ := svc.Get(ctx, p.ID)
	if after.Refills != 1 {
		t.Errorf("prescription refills = %d, want 1", after.Refills)
	}

	if _, err := svc.ApproveRefill(ctx, rr.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second approval: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := svc.DenyRefill(ctx, rr.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("deny decided: expected ErrInvalidTransition, got %v", err)
	}
}

func TestApproveRefill_Exhausted(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	p := approvedPrescription(t, svc, 1)
	first, _ := svc.RequestRefill(ctx, RefillCreateRequest{PrescriptionID: p.ID.String()})
	second, _ := svc.RequestRefill(ctx, RefillCreateRequest{PrescriptionID: p.ID.String()})

	if _, err := svc.ApproveRefill(ctx, first.ID); err != nil {
		t.Fatalf("approve first: %v", err)
	}
	if _, err := svc.ApproveRefill(ctx, second.ID); !errors.Is(err, ErrNoRefills) {
		t.Fatalf("approve second: expected ErrNoRefills, got %v", err)
	}
	still, _ := svc.GetRefill(ctx, second.ID)
	if still.Status != RefillPending {
		t.Errorf("second request status = %s, want pending", still.Status)
	}
}

// hookedRefills runs beforeDecide ahead of every Decide call.
type hookedRefills struct {
	RefillRepository
	beforeDecide func(ctx context.Context, id uuid.UUID) error
}

func (h *hookedRefills) Decide(ctx context.Context, id uuid.UUID, to RefillStatus, remaining int) (*RefillRequest, error) {
	if h.beforeDecide != nil {
		if err := h.beforeDecide(ctx, id); err != nil {
			return nil, err
		}
	}
	return h.RefillRepository.Decide(ctx, id, to, remaining)
}

func newHookedService(t *testing.T, refills int) (*Service, *hookedRefills, *Prescription, *RefillRequest) {
	t.Helper()
	base, store := newTestService()
	p := approvedPrescription(t, base, refills)
	rr, err := base.RequestRefill(context.Background(), RefillCreateRequest{PrescriptionID: p.ID.String()})
	if err != nil {
		t.Fatalf("request refill: %v", err)
	}
	hooked := &hookedRefills{RefillRepository: store.Refills()}
	return NewService(store.Prescriptions(), hooked, store, nil), hooked, p, rr
}

func TestApproveRefill_RollsBackDecrement(t *testing.T) {
	svc, hooked, p, rr := newHookedService(t, 2)
	ctx := context.Background()
	hooked.beforeDecide = func(context.Context, uuid.UUID) error {
		return errors.New("store unavailable")
	}

	if _, err := svc.ApproveRefill(ctx, rr.ID); err == nil {
		t.Fatal("expected approve to fail")
	}
	after, _ := svc.Get(ctx, p.ID)
	if after.Refills != 2 {
		t.Errorf("prescription refills = %d, want 2", after.Refills)
	}
	still, _ := svc.GetRefill(ctx, rr.ID)
	if still.Status != RefillPending || still.RemainingRefills != 2 {
		t.Errorf("refill = %s with %d remaining, want pending with 2", still.Status, still.RemainingRefills)
	}
}

func TestApproveRefill_DenyWaitsForApproval(t *testing.T) {
	svc, hooked, p, rr := newHookedService(t, 2)
	ctx := context.Background()

	denied := make(chan error, 1)
	hooked.beforeDecide = func(_ context.Context, id uuid.UUID) error {
		hooked.beforeDecide = nil
		go func() {
			_, err := svc.DenyRefill(context.Background(), id)
			denied <- err
		}()
		// Give the deny a chance to run between the decrement and the decision.
		time.Sleep(20 * time.Millisecond)
		return nil
	}

	got, err := svc.ApproveRefill(ctx, rr.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if got.Status != RefillApproved || got.RemainingRefills != 1 {
		t.Errorf("got %s with %d remaining, want approved with 1", got.Status, got.RemainingRefills)
	}

	select {
	case err := <-denied:
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("deny: expected ErrInvalidTransition, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("deny never returned")
	}

	after, _ := svc.Get(ctx, p.ID)
	if after.Refills != 1 {
		t.Errorf("prescription refills = %d, want 1", after.Refills)
	}
	final, _ := svc.GetRefill(ctx, rr.ID)
	if final.Status != RefillApproved {
		t.Errorf("refill status = %s, want approved", final.Status)
	}
}

func TestMemoryStore_InTxRollsBackCreates(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	var id uuid.UUID

	err := store.InTx(ctx, func(ctx context.Context) error {
		p := &Prescription{Medication: "Metformin 500mg", Status: StatusPending}
		if err := store.Prescriptions().Create(ctx, p); err != nil {
			return err
		}
		id = p.ID
		return store.InTx(ctx, func(context.Context) error {
			return errors.New("abort")
		})
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if _, err := store.Prescriptions().GetByID(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected rolled back create, got %v", err)
	}
}

func TestDenyRefill_LeavesPrescription(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	p := approvedPrescription(t, svc, 3)
	rr, _ := svc.RequestRefill(ctx, RefillCreateRequest{PrescriptionID: p.ID.String()})

	got, err := svc.DenyRefill(ctx, rr.ID)
	if err != nil {
		t.Fatalf("deny: %v", err)
	}
	if got.Status != RefillDenied || got.RemainingRefills != 3 {
		t.Errorf("got %s with %d remaining", got.Status, got.RemainingRefills)
	}
	after, _ := svc.Get(ctx, p.ID)
	if after.Refills != 3 {
		t.Errorf("prescription refills = %d, want 3", after.Refills)
	}
}

func TestRefill_NotFound(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.ApproveRefill(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("approve: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.DenyRefill(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("deny: expected ErrNotFound, got %v", err)
	}
}

func TestSeedAndSummary(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sum, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Total != 10 {
		t.Errorf("total = %d, want 10", sum.Total)
	}
	want := map[Status]int{StatusPending: 2, StatusApproved: 3, StatusRejected: 0, StatusDispensed: 5}
	for st, n := range want {
		if sum.ByStatus[st] != n {
			t.Errorf("by_status[%s] = %d, want %d", st, sum.ByStatus[st], n)
		}
	}
	if sum.Controlled != 2 {
		t.Errorf("controlled = %d, want 2", sum.Controlled)
	}
	if sum.PendingRefills != 5 {
		t.Errorf("pending refills = %d, want 5", sum.PendingRefills)
	}
}

func TestSeed_RefillsLinkToPrescriptions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	refills, _, err := svc.ListRefills(ctx, RefillPending, 0, 0)
	if err != nil {
		t.Fatalf("list refills: %v", err)
	}
	for _, rr := range refills {
		p, err := svc.Get(ctx, rr.PrescriptionID)
		if err != nil {
			t.Errorf("refill %s: prescription missing: %v", rr.Medication, err)
			continue
		}
		if p.Medication != rr.Medication || p.PatientName != rr.PatientName {
			t.Errorf("refill %s linked to %s", rr.Medication, p.Medication)
		}
	}
	// Oldest request first.
	if refills[0].Medication != "Levothyroxine 75mcg" {
		t.Errorf("first refill = %s", refills[0].Medication)
	}

	approved, err := svc.ApproveRefill(ctx, refills[0].ID)
	if err != nil {
		t.Fatalf("approve seeded refill: %v", err)
	}
	if approved.RemainingRefills != 10 {
		t.Errorf("remaining = %d, want 10", approved.RemainingRefills)
	}
}

func TestList_Filters(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	all, total, err := svc.List(ctx, ListFilter{}, 3, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 10 || len(all) != 3 {
		t.Fatalf("got %d of %d, want 3 of 10", len(all), total)
	}
	if all[0].Medication != "Adderall 10mg" {
		t.Errorf("newest = %s, want Adderall 10mg", all[0].Medication)
	}

	yes := true
	controlled, total, _ := svc.List(ctx, ListFilter{Controlled: &yes}, 20, 0)
	if total != 2 || len(controlled) != 2 {
		t.Errorf("controlled = %d, want 2", total)
	}

	_, total, _ = svc.List(ctx, ListFilter{Status: StatusDispensed}, 20, 0)
	if total != 5 {
		t.Errorf("dispensed = %d, want 5", total)
	}

	byPatient, total, _ := svc.List(ctx, ListFilter{PatientID: "P005"}, 20, 0)
	if total != 1 || byPatient[0].Medication != "Warfarin 5mg" {
		t.Errorf("patient P005: %d results", total)
	}

	tail, total, _ := svc.List(ctx, ListFilter{}, 20, 8)
	if total != 10 || len(tail) != 2 {
		t.Errorf("offset 8: got %d of %d", len(tail), total)
	}
	if tail[1].Medication != "Meloxicam 15mg" {
		t.Errorf("oldest = %s, want Meloxicam 15mg", tail[1].Medication)
	}
}
