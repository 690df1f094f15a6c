package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"clinic-booking-service/internal/domain/apperror"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
)

// fakeTransactor serializes transactions, which stands in for the row locks
// the real store takes.
type fakeTransactor struct {
	mu sync.Mutex
}

type fakeTxKey struct{}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(fakeTxKey{}) != nil {
		return fn(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(context.WithValue(ctx, fakeTxKey{}, true))
}

// fakeTable is an in-memory BaseRepository. unique reports whether two rows
// collide on a unique constraint; field reads a column for FindByUniqueField.
type fakeTable[T any] struct {
	name   string
	mu     *sync.Mutex
	rows   map[uuid.UUID]*T
	order  []uuid.UUID
	id     func(*T) *uuid.UUID
	unique func(a, b *T) bool
	field  func(row *T, name string) any
	patch  func(row *T, patch map[string]any)
	err    error
}

func newFakeTable[T any](name string, mu *sync.Mutex, id func(*T) *uuid.UUID) *fakeTable[T] {
	return &fakeTable[T]{name: name, mu: mu, rows: map[uuid.UUID]*T{}, id: id}
}

func (f *fakeTable[T]) Save(ctx context.Context, items ...*T) ([]*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, item := range items {
		for _, row := range f.rows {
			if f.unique != nil && f.unique(row, item) {
				return nil, apperror.Conflict(f.name + " already exists")
			}
		}
	}
	for _, item := range items {
		if *f.id(item) == uuid.Nil {
			*f.id(item) = uuid.New()
		}
		stored := *item
		f.rows[*f.id(item)] = &stored
		f.order = append(f.order, *f.id(item))
	}
	return items, nil
}

func (f *fakeTable[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(id), f.err
}

func (f *fakeTable[T]) get(id uuid.UUID) *T {
	row, ok := f.rows[id]
	if !ok {
		return nil
	}
	out := *row
	return &out
}

func (f *fakeTable[T]) FindByUniqueField(ctx context.Context, name string, value any) (*T, error) {
	found := f.where(func(row *T) bool { return f.field(row, name) == value })
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return &found[0], nil
	default:
		return nil, apperror.Persistence(f.name+" is not unique on "+name, nil)
	}
}

func (f *fakeTable[T]) first(match func(*T) bool) *T {
	found := f.where(match)
	if len(found) == 0 {
		return nil
	}
	return &found[0]
}

func (f *fakeTable[T]) where(match func(*T) bool) []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []T
	for _, id := range f.order {
		if row, ok := f.rows[id]; ok && match(row) {
			out = append(out, *row)
		}
	}
	return out
}

func (f *fakeTable[T]) Update(ctx context.Context, id uuid.UUID, patch map[string]any) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	f.patch(row, patch)
	out := *row
	return &out, nil
}

func (f *fakeTable[T]) List(ctx context.Context) ([]T, error) {
	return f.where(func(*T) bool { return true }), nil
}

func (f *fakeTable[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

func (f *fakeTable[T]) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// fakeStore wires every fake repository to one lock, like one database.
type fakeStore struct {
	mu sync.Mutex

	users         *fakeUserRepo
	patients      *fakePatientRepo
	practitioners *fakePractitionerRepo
	services      *fakeServiceRepo
	availability  *fakeAvailabilityRepo
	appointments  *fakeAppointmentRepo
	kycs          *fakeKycRepo
	audit         *fakeAuditRepo
	sessions      *fakeSessionRepo
	tx            *fakeTransactor
}

func newFakeStore() *fakeStore {
	s := &fakeStore{tx: &fakeTransactor{}}

	users := newFakeTable[entity.User]("user", &s.mu, func(u *entity.User) *uuid.UUID { return &u.ID })
	users.unique = func(a, b *entity.User) bool { return strings.EqualFold(a.Email, b.Email) }
	users.field = func(u *entity.User, name string) any {
		if name == "email" {
			return u.Email
		}
		return nil
	}
	s.users = &fakeUserRepo{fakeTable: users}

	patients := newFakeTable[entity.Patient]("patient", &s.mu, func(p *entity.Patient) *uuid.UUID { return &p.ID })
	patients.unique = func(a, b *entity.Patient) bool { return a.UserID == b.UserID }
	patients.patch = func(p *entity.Patient, patch map[string]any) {
		applyPersonPatch(&p.FirstName, &p.LastName, &p.Age, patch)
	}
	s.patients = &fakePatientRepo{fakeTable: patients}

	practitioners := newFakeTable[entity.Practitioner]("practitioner", &s.mu, func(p *entity.Practitioner) *uuid.UUID { return &p.ID })
	practitioners.unique = func(a, b *entity.Practitioner) bool { return a.UserID == b.UserID }
	practitioners.patch = func(p *entity.Practitioner, patch map[string]any) {
		applyPersonPatch(&p.FirstName, &p.LastName, &p.Age, patch)
	}
	s.practitioners = &fakePractitionerRepo{fakeTable: practitioners, store: s, offers: map[[2]uuid.UUID]bool{}}

	services := newFakeTable[entity.Service]("service", &s.mu, func(v *entity.Service) *uuid.UUID { return &v.ID })
	services.unique = func(a, b *entity.Service) bool { return a.Name == b.Name }
	services.field = func(v *entity.Service, name string) any {
		if name == "name" {
			return v.Name
		}
		return nil
	}
	s.services = &fakeServiceRepo{fakeTable: services}

	availability := newFakeTable[entity.Availability]("availability", &s.mu, func(a *entity.Availability) *uuid.UUID { return &a.ID })
	availability.unique = func(a, b *entity.Availability) bool {
		return a.PractitionerID == b.PractitionerID && a.DayOfWeek == b.DayOfWeek && a.WeekNumber == b.WeekNumber
	}
	s.availability = &fakeAvailabilityRepo{fakeTable: availability, store: s}

	appointments := newFakeTable[entity.Appointment]("appointment", &s.mu, func(a *entity.Appointment) *uuid.UUID { return &a.ID })
	appointments.unique = func(a, b *entity.Appointment) bool {
		return a.Active && b.Active && a.PractitionerID == b.PractitionerID &&
			a.AvailabilityID == b.AvailabilityID && a.SlotDate.Equal(b.SlotDate)
	}
	s.appointments = &fakeAppointmentRepo{fakeTable: appointments, store: s}

	kycs := newFakeTable[entity.Kyc]("kyc", &s.mu, func(k *entity.Kyc) *uuid.UUID { return &k.ID })
	kycs.unique = func(a, b *entity.Kyc) bool { return a.PractitionerID == b.PractitionerID }
	s.kycs = &fakeKycRepo{fakeTable: kycs}

	s.audit = &fakeAuditRepo{}
	s.sessions = &fakeSessionRepo{sessions: map[string]time.Duration{}}
	return s
}

func applyPersonPatch(firstName, lastName *string, age **int, patch map[string]any) {
	if v, ok := patch["first_name"].(string); ok {
		*firstName = v
	}
	if v, ok := patch["last_name"].(string); ok {
		*lastName = v
	}
	if v, ok := patch["age"].(int); ok {
		*age = &v
	}
}

type fakeUserRepo struct {
	*fakeTable[entity.User]
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.first(func(u *entity.User) bool { return u.Email == email }), nil
}

type fakePatientRepo struct {
	*fakeTable[entity.Patient]
}

var _ repository.PatientRepository = (*fakePatientRepo)(nil)

func (r *fakePatientRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Patient, error) {
	return r.first(func(p *entity.Patient) bool { return p.UserID == userID }), nil
}

func (r *fakePatientRepo) UpsertLocation(ctx context.Context, location *entity.PatientLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[location.PatientID]
	if !ok {
		return apperror.NotFound("patient not found")
	}
	stored := *location
	row.Location = &stored
	return nil
}

func (r *fakePatientRepo) UpsertPicture(ctx context.Context, picture *entity.PatientProfilePicture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[picture.PatientID]
	if !ok {
		return apperror.NotFound("patient not found")
	}
	stored := *picture
	row.ProfilePicture = &stored
	return nil
}

type fakePractitionerRepo struct {
	*fakeTable[entity.Practitioner]
	store  *fakeStore
	offers map[[2]uuid.UUID]bool
}

var _ repository.PractitionerRepository = (*fakePractitionerRepo)(nil)

func (r *fakePractitionerRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Practitioner, error) {
	p := r.first(func(p *entity.Practitioner) bool { return p.UserID == userID })
	if p == nil {
		return nil, nil
	}
	p.Services = r.servicesOf(p.ID)
	return p, nil
}

func (r *fakePractitionerRepo) FindDetailed(ctx context.Context, id uuid.UUID) (*entity.Practitioner, error) {
	p, _ := r.FindByID(ctx, id)
	if p == nil {
		return nil, nil
	}
	p.Services = r.servicesOf(p.ID)
	p.Availabilities, _ = r.store.availability.FindByPractitionerID(ctx, id)
	return p, nil
}

func (r *fakePractitionerRepo) servicesOf(practitionerID uuid.UUID) []entity.Service {
	return r.store.services.where(func(s *entity.Service) bool {
		return r.offers[[2]uuid.UUID{practitionerID, s.ID}]
	})
}

func (r *fakePractitionerRepo) UpsertLocation(ctx context.Context, location *entity.PractitionerLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *location
	r.rows[location.PractitionerID].Location = &stored
	return nil
}

func (r *fakePractitionerRepo) UpsertPicture(ctx context.Context, picture *entity.PractitionerProfilePicture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *picture
	r.rows[picture.PractitionerID].ProfilePicture = &stored
	return nil
}

func (r *fakePractitionerRepo) OffersService(ctx context.Context, practitionerID, serviceID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.offers[[2]uuid.UUID{practitionerID, serviceID}], nil
}

func (r *fakePractitionerRepo) AttachService(ctx context.Context, practitionerID, serviceID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offers[[2]uuid.UUID{practitionerID, serviceID}] = true
	return nil
}

func (r *fakePractitionerRepo) DetachService(ctx context.Context, practitionerID, serviceID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]uuid.UUID{practitionerID, serviceID}
	if !r.offers[key] {
		return false, nil
	}
	delete(r.offers, key)
	return true, nil
}

type fakeServiceRepo struct {
	*fakeTable[entity.Service]
}

func (r *fakeServiceRepo) FindByPractitionerID(ctx context.Context, practitionerID uuid.UUID) ([]entity.Service, error) {
	return nil, nil
}

type fakeAvailabilityRepo struct {
	*fakeTable[entity.Availability]
	store *fakeStore
}

var _ repository.AvailabilityRepository = (*fakeAvailabilityRepo)(nil)

func (r *fakeAvailabilityRepo) FindByPractitionerID(ctx context.Context, practitionerID uuid.UUID) ([]entity.Availability, error) {
	return r.where(func(a *entity.Availability) bool { return a.PractitionerID == practitionerID }), nil
}

func (r *fakeAvailabilityRepo) FindBySlot(ctx context.Context, practitionerID uuid.UUID, day entity.DayOfWeek, week entity.WeekNumber) (*entity.Availability, error) {
	return r.first(func(a *entity.Availability) bool {
		return a.PractitionerID == practitionerID && a.DayOfWeek == day && a.WeekNumber == week
	}), nil
}

func (r *fakeAvailabilityRepo) FindForUpdate(ctx context.Context, id uuid.UUID) (*entity.Availability, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeAvailabilityRepo) HasAppointments(ctx context.Context, id uuid.UUID) (bool, error) {
	found := r.store.appointments.first(func(a *entity.Appointment) bool { return a.AvailabilityID == id })
	return found != nil, nil
}

type fakeAppointmentRepo struct {
	*fakeTable[entity.Appointment]
	store *fakeStore
}

var _ repository.AppointmentRepository = (*fakeAppointmentRepo)(nil)

func (r *fakeAppointmentRepo) FindWithState(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := r.FindByID(ctx, id)
	if appointment == nil || err != nil {
		return appointment, err
	}
	appointment.Service, err = r.store.services.FindByID(ctx, appointment.ServiceID)
	return appointment, err
}

func (r *fakeAppointmentRepo) FindActiveBySlot(ctx context.Context, practitionerID, availabilityID uuid.UUID, slotDate time.Time) (*entity.Appointment, error) {
	return r.first(func(a *entity.Appointment) bool {
		return a.Active && a.PractitionerID == practitionerID && a.AvailabilityID == availabilityID && a.SlotDate.Equal(slotDate)
	}), nil
}

func (r *fakeAppointmentRepo) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	return r.where(func(a *entity.Appointment) bool { return a.PatientID == patientID }), nil
}

func (r *fakeAppointmentRepo) FindByPractitionerID(ctx context.Context, practitionerID uuid.UUID) ([]entity.Appointment, error) {
	return r.where(func(a *entity.Appointment) bool { return a.PractitionerID == practitionerID }), nil
}

func (r *fakeAppointmentRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || row.State.Status != from {
		return 0, nil
	}
	now := time.Now().UTC()
	row.State.Status = to
	row.State.UpdatedAt = now
	row.Active = to.HoldsSlot()
	row.UpdatedAt = now
	return 1, nil
}

type fakeKycRepo struct {
	*fakeTable[entity.Kyc]
}

var _ repository.KycRepository = (*fakeKycRepo)(nil)

func (r *fakeKycRepo) FindByPractitionerID(ctx context.Context, practitionerID uuid.UUID) (*entity.Kyc, error) {
	return r.first(func(k *entity.Kyc) bool { return k.PractitionerID == practitionerID }), nil
}

func (r *fakeKycRepo) FindByStatus(ctx context.Context, status entity.KycStatus) ([]entity.Kyc, error) {
	return r.where(func(k *entity.Kyc) bool { return k.Status == status }), nil
}

func (r *fakeKycRepo) TransitionStatus(ctx context.Context, practitionerID uuid.UUID, from, to entity.KycStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.PractitionerID == practitionerID && row.Status == from {
			row.Status = to
			row.UpdatedAt = time.Now().UTC()
			return 1, nil
		}
	}
	return 0, nil
}

type fakeAuditRepo struct {
	mu   sync.Mutex
	logs []entity.AuditLog
}

func (r *fakeAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = int64(len(r.logs) + 1)
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeAuditRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.AuditLog
	for _, l := range r.logs {
		if l.UserID != nil && *l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAuditRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.logs))
	for _, l := range r.logs {
		out = append(out, l.Action)
	}
	return out
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]time.Duration
}

func sessionKey(userID uuid.UUID, tokenID string) string {
	return userID.String() + ":" + tokenID
}

func (r *fakeSessionRepo) Store(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionKey(userID, tokenID)] = ttl
	return nil
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sessionKey(userID, tokenID)
	if _, ok := r.sessions[key]; !ok {
		return false, nil
	}
	delete(r.sessions, key)
	return true, nil
}

func (r *fakeSessionRepo) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.sessions {
		if strings.HasPrefix(key, userID.String()+":") {
			delete(r.sessions, key)
		}
	}
	return nil
}

func (r *fakeSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}
