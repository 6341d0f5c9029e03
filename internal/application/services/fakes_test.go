package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"internship-service/internal/apperr"
	"internship-service/internal/application/session"
	"internship-service/internal/domain/entities"
	"internship-service/internal/domain/repositories"
)

type idSource struct {
	mu   sync.Mutex
	next int
}

func (s *idSource) newID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%s-%d", prefix, s.next)
}

// tick keeps CreatedAt strictly increasing so newest-first ordering is deterministic.
var clock = struct {
	mu  sync.Mutex
	now time.Time
}{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

func tick() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = clock.now.Add(time.Second)
	return clock.now
}

type fakeUserRepo struct {
	mu    sync.Mutex
	ids   *idSource
	users map[string]*entities.User
	err   error
}

func newFakeUserRepo(ids *idSource) *fakeUserRepo {
	return &fakeUserRepo{ids: ids, users: map[string]*entities.User{}}
}

func cloneUser(u *entities.User) *entities.User {
	c := *u
	c.Bookmarks = append([]string(nil), u.Bookmarks...)
	return &c
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, apperr.NewError(apperr.CodeConflict, "duplicate email", nil)
		}
	}
	created := cloneUser(user.GetUser())
	created.Id = r.ids.newID("user")
	r.users[created.Id] = created
	return cloneUser(created), nil
}

func (r *fakeUserRepo) FindById(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByIds(_ context.Context, ids []string) ([]*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entities.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.Id]
	if !ok {
		return nil, nil
	}
	stored.Name = user.Name
	stored.Email = user.Email
	stored.UpdatedAt = user.UpdatedAt
	return cloneUser(stored), nil
}

func (r *fakeUserRepo) ToggleBookmark(_ context.Context, userID, internshipID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return false, apperr.NewError(apperr.CodeNotFound, "user not found", nil)
	}
	kept := u.Bookmarks[:0]
	removed := false
	for _, id := range u.Bookmarks {
		if id == internshipID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if removed {
		u.Bookmarks = kept
		return false, nil
	}
	u.Bookmarks = append(kept, internshipID)
	return true, nil
}

type fakeInternshipRepo struct {
	mu          sync.Mutex
	ids         *idSource
	internships map[string]*entities.Internship
	deleteErr   error
}

func newFakeInternshipRepo(ids *idSource) *fakeInternshipRepo {
	return &fakeInternshipRepo{ids: ids, internships: map[string]*entities.Internship{}}
}

func cloneInternship(i *entities.Internship) *entities.Internship {
	c := *i
	c.Skills = append([]string(nil), i.Skills...)
	return &c
}

func (r *fakeInternshipRepo) Create(_ context.Context, internship *entities.ValidatedInternship) (*entities.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := cloneInternship(internship.GetInternship())
	created.Id = r.ids.newID("internship")
	created.CreatedAt = tick()
	created.UpdatedAt = created.CreatedAt
	r.internships[created.Id] = created
	return cloneInternship(created), nil
}

func (r *fakeInternshipRepo) FindById(_ context.Context, id string) (*entities.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.internships[id]; ok {
		return cloneInternship(i), nil
	}
	return nil, nil
}

func (r *fakeInternshipRepo) FindByIds(_ context.Context, ids []string) ([]*entities.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entities.Internship{}
	for _, id := range ids {
		if i, ok := r.internships[id]; ok {
			out = append(out, cloneInternship(i))
		}
	}
	return out, nil
}

func (r *fakeInternshipRepo) Update(_ context.Context, internship *entities.ValidatedInternship) (*entities.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.internships[internship.Id]; !ok {
		return nil, nil
	}
	r.internships[internship.Id] = cloneInternship(internship.GetInternship())
	return cloneInternship(internship.GetInternship()), nil
}

func (r *fakeInternshipRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.internships, id)
	return nil
}

func (r *fakeInternshipRepo) List(_ context.Context, filter entities.InternshipFilter) ([]*entities.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entities.Internship{}
	for _, i := range r.internships {
		if filter.Matches(i) {
			out = append(out, cloneInternship(i))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return filter.Page(out), nil
}

func (r *fakeInternshipRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.internships)), nil
}

type fakeApplicationRepo struct {
	mu           sync.Mutex
	ids          *idSource
	applications map[string]*entities.Application
}

func newFakeApplicationRepo(ids *idSource) *fakeApplicationRepo {
	return &fakeApplicationRepo{ids: ids, applications: map[string]*entities.Application{}}
}

func cloneApplication(a *entities.Application) *entities.Application {
	c := *a
	return &c
}

func (r *fakeApplicationRepo) Create(_ context.Context, application *entities.Application) (*entities.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applications {
		if existing.InternshipID == application.InternshipID && existing.UserID == application.UserID {
			return nil, apperr.NewError(apperr.CodeConflict, "duplicate application", nil)
		}
	}
	created := cloneApplication(application)
	created.Id = r.ids.newID("application")
	created.CreatedAt = tick()
	created.UpdatedAt = created.CreatedAt
	r.applications[created.Id] = created
	return cloneApplication(created), nil
}

func (r *fakeApplicationRepo) FindById(_ context.Context, id string) (*entities.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.applications[id]; ok {
		return cloneApplication(a), nil
	}
	return nil, nil
}

func (r *fakeApplicationRepo) FindByInternshipAndUser(_ context.Context, internshipID, userID string) (*entities.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applications {
		if a.InternshipID == internshipID && a.UserID == userID {
			return cloneApplication(a), nil
		}
	}
	return nil, nil
}

func (r *fakeApplicationRepo) sorted(keep func(*entities.Application) bool) []*entities.Application {
	out := []*entities.Application{}
	for _, a := range r.applications {
		if keep(a) {
			out = append(out, cloneApplication(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeApplicationRepo) ListByUser(_ context.Context, userID string) ([]*entities.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(a *entities.Application) bool { return a.UserID == userID }), nil
}

func (r *fakeApplicationRepo) ListAll(context.Context) ([]*entities.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(*entities.Application) bool { return true }), nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id string, status entities.ApplicationStatus) (*entities.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applications[id]
	if !ok {
		return nil, nil
	}
	a.Status = status
	a.UpdatedAt = tick()
	return cloneApplication(a), nil
}

func (r *fakeApplicationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.applications, id)
	return nil
}

func (r *fakeApplicationRepo) DeleteByInternship(_ context.Context, internshipID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, a := range r.applications {
		if a.InternshipID == internshipID {
			delete(r.applications, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeApplicationRepo) CountByStatus(context.Context) (repositories.ApplicationCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := repositories.ApplicationCounts{Total: int64(len(r.applications))}
	for _, a := range r.applications {
		switch a.Status {
		case entities.ApplicationStatusPending:
			counts.Pending++
		case entities.ApplicationStatusAccepted:
			counts.Accepted++
		case entities.ApplicationStatusRejected:
			counts.Rejected++
		}
	}
	return counts, nil
}

type passthroughTransactor struct {
	calls int
}

func (t *passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fakeTokens struct {
	mu      sync.Mutex
	issued  map[string]*session.Session
	revoked []string
}

func (f *fakeTokens) IssueToken(_ context.Context, s *session.Session) (string, time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.issued == nil {
		f.issued = map[string]*session.Session{}
	}
	token := fmt.Sprintf("token-%d", len(f.issued)+1)
	f.issued[token] = s
	return token, time.Now().Add(time.Hour), nil
}

func (f *fakeTokens) RevokeToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked = append(f.revoked, token)
	return nil
}

type publishedEvent struct {
	subject string
	event   any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{subject: subject, event: event})
	return p.err
}

func (p *recordingPublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.subject)
	}
	return out
}

type denyLimiter struct{}

func (denyLimiter) Allow(string) bool { return false }

// fixture wires every service against shared in-memory repositories.
type fixture struct {
	users        *fakeUserRepo
	internships  *fakeInternshipRepo
	applications *fakeApplicationRepo
	transactor   *passthroughTransactor
	tokens       *fakeTokens
	publisher    *recordingPublisher

	userService        *UserService
	internshipService  *InternshipService
	applicationService *ApplicationService
}

func newFixture() *fixture {
	ids := &idSource{}
	f := &fixture{
		users:        newFakeUserRepo(ids),
		internships:  newFakeInternshipRepo(ids),
		applications: newFakeApplicationRepo(ids),
		transactor:   &passthroughTransactor{},
		tokens:       &fakeTokens{},
		publisher:    &recordingPublisher{},
	}
	guard := session.NewGuard(nil)
	f.userService = NewUserService(f.users, f.internships, guard, f.tokens, nil).(*UserService)
	f.internshipService = NewInternshipService(f.internships, f.applications, f.users, f.transactor, guard, f.publisher).(*InternshipService)
	f.applicationService = NewApplicationService(f.applications, f.internships, f.users, guard, f.publisher).(*ApplicationService)
	return f
}

// seedUser stores a user directly and returns a context carrying its session.
func (f *fixture) seedUser(name, email string, role entities.Role) (*entities.User, context.Context) {
	validated, err := entities.NewValidatedUser(entities.NewUser(name, email, "not-hashed", role))
	if err != nil {
		panic(err)
	}
	created, err := f.users.Create(context.Background(), validated)
	if err != nil {
		panic(err)
	}
	return created, asUser(created)
}

func asUser(u *entities.User) context.Context {
	return session.WithSession(context.Background(), &session.Session{
		UserID: u.Id,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
	})
}
