package impl

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jobhub/config"
	"jobhub/internal/domain/entity"
	"jobhub/internal/domain/repository"
	"jobhub/internal/domain/service"
	"jobhub/internal/errors"
	"jobhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryStore is the shared state behind the fake repositories. Each repository call
// holds the lock for its whole duration, mirroring single-statement atomicity.
type memoryStore struct {
	mu           sync.Mutex
	users        map[uuid.UUID]*entity.User
	companies    map[uuid.UUID]*entity.Company
	jobs         map[uuid.UUID]*entity.Job
	applications map[uuid.UUID]*entity.JobApplication
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:        make(map[uuid.UUID]*entity.User),
		companies:    make(map[uuid.UUID]*entity.Company),
		jobs:         make(map[uuid.UUID]*entity.Job),
		applications: make(map[uuid.UUID]*entity.JobApplication),
	}
}

// --- Users ---

type fakeUserRepo struct {
	store *memoryStore
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if user.Email == email {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return false, nil
	}

	return err == nil, err
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users := make([]*entity.User, 0, len(r.store.users))
	for _, user := range r.store.users {
		copied := *user
		users = append(users, &copied)
	}
	slices.SortFunc(users, func(a, b *entity.User) int { return a.CreatedAt.Compare(b.CreatedAt) })

	return users, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	copied := *user
	r.store.users[user.ID] = &copied

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for id, existing := range r.store.users {
		if id != user.ID && existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	copied := *user
	r.store.users[user.ID] = &copied

	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.store.users, id)

	for companyID, company := range r.store.companies {
		if company.OwnerID == id {
			delete(r.store.companies, companyID)
		}
	}
	for jobID, job := range r.store.jobs {
		if _, ok := r.store.companies[job.CompanyID]; !ok {
			delete(r.store.jobs, jobID)
		}
	}
	for applicationID, application := range r.store.applications {
		_, jobAlive := r.store.jobs[application.JobID]
		if application.UserID == id || !jobAlive {
			delete(r.store.applications, applicationID)
		}
	}

	return nil
}

// --- Companies ---

type fakeCompanyRepo struct {
	store *memoryStore
}

func (r *fakeCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	company, ok := r.store.companies[id]
	if !ok {
		return nil, repository.ErrCompanyNotFound
	}
	copied := *company

	return &copied, nil
}

func (r *fakeCompanyRepo) List(_ context.Context) ([]*entity.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	companies := make([]*entity.Company, 0, len(r.store.companies))
	for _, company := range r.store.companies {
		copied := *company
		companies = append(companies, &copied)
	}

	return companies, nil
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *entity.Company) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[company.OwnerID]; !ok {
		return repository.ErrUserNotFound
	}
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	company.CreatedAt = time.Now().UTC()
	copied := *company
	copied.Owner = nil
	r.store.companies[company.ID] = &copied

	return nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, company *entity.Company) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.companies[company.ID]; !ok {
		return repository.ErrCompanyNotFound
	}
	copied := *company
	r.store.companies[company.ID] = &copied

	return nil
}

// --- Jobs ---

type fakeJobRepo struct {
	store *memoryStore
}

func (r *fakeJobRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Job, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	job, ok := r.store.jobs[id]
	if !ok {
		return nil, repository.ErrJobNotFound
	}
	copied := *job

	return &copied, nil
}

func (r *fakeJobRepo) Search(_ context.Context, criteria entity.JobSearchCriteria) (*entity.JobPage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	keyword := strings.ToLower(criteria.Keyword)
	var matched []*entity.Job
	for _, job := range r.store.jobs {
		text := strings.ToLower(job.Title + "\n" + job.Description + "\n" + job.Location)
		if keyword == "" || strings.Contains(text, keyword) {
			copied := *job
			matched = append(matched, &copied)
		}
	}
	slices.SortFunc(matched, func(a, b *entity.Job) int { return b.PostedAt.Compare(a.PostedAt) })

	start := min(criteria.Offset(), len(matched))
	end := min(start+criteria.Size, len(matched))

	return &entity.JobPage{
		Jobs:       matched[start:end],
		Page:       criteria.Page,
		Size:       criteria.Size,
		TotalItems: int64(len(matched)),
	}, nil
}

func (r *fakeJobRepo) Create(_ context.Context, job *entity.Job) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.companies[job.CompanyID]; !ok {
		return repository.ErrCompanyNotFound
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.PostedAt.IsZero() {
		job.PostedAt = time.Now().UTC()
	}
	copied := *job
	r.store.jobs[job.ID] = &copied

	return nil
}

func (r *fakeJobRepo) Update(_ context.Context, job *entity.Job) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.jobs[job.ID]; !ok {
		return repository.ErrJobNotFound
	}
	copied := *job
	r.store.jobs[job.ID] = &copied

	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.jobs[id]; !ok {
		return repository.ErrJobNotFound
	}
	delete(r.store.jobs, id)
	for applicationID, application := range r.store.applications {
		if application.JobID == id {
			delete(r.store.applications, applicationID)
		}
	}

	return nil
}

// --- Applications ---

type fakeApplicationRepo struct {
	store *memoryStore
}

func (r *fakeApplicationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.JobApplication, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	application, ok := r.store.applications[id]
	if !ok {
		return nil, repository.ErrApplicationNotFound
	}
	copied := *application

	return &copied, nil
}

func (r *fakeApplicationRepo) ExistsByJobAndUser(_ context.Context, jobID, userID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, application := range r.store.applications {
		if application.JobID == jobID && application.UserID == userID {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeApplicationRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]*entity.JobApplication, error) {
	return r.list(func(a *entity.JobApplication) bool { return a.JobID == jobID }), nil
}

func (r *fakeApplicationRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.JobApplication, error) {
	return r.list(func(a *entity.JobApplication) bool { return a.UserID == userID }), nil
}

func (r *fakeApplicationRepo) list(match func(*entity.JobApplication) bool) []*entity.JobApplication {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var applications []*entity.JobApplication
	for _, application := range r.store.applications {
		if match(application) {
			copied := *application
			applications = append(applications, &copied)
		}
	}

	return applications
}

func (r *fakeApplicationRepo) Create(_ context.Context, application *entity.JobApplication) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.jobs[application.JobID]; !ok {
		return repository.ErrJobNotFound
	}
	for _, existing := range r.store.applications {
		if existing.JobID == application.JobID && existing.UserID == application.UserID {
			return repository.ErrDuplicateApplication
		}
	}
	if application.ID == uuid.Nil {
		application.ID = uuid.New()
	}
	application.AppliedAt = time.Now().UTC()
	copied := *application
	r.store.applications[application.ID] = &copied

	return nil
}

// --- Transactions ---

type fakeRepoFactory struct {
	userRepo        repository.UserRepository
	companyRepo     repository.CompanyRepository
	jobRepo         repository.JobRepository
	applicationRepo repository.ApplicationRepository
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository { return f.userRepo }

func (f *fakeRepoFactory) CompanyRepo() repository.CompanyRepository { return f.companyRepo }

func (f *fakeRepoFactory) JobRepo() repository.JobRepository { return f.jobRepo }

func (f *fakeRepoFactory) ApplicationRepo() repository.ApplicationRepository {
	return f.applicationRepo
}

type fakeTxManager struct {
	factory repository.RepositoryFactory
	calls   atomic.Int64
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	tm.calls.Add(1)

	return fn(tm.factory)
}

// --- Refresh sessions ---

type fakeSessionRepo struct {
	mu     sync.Mutex
	byUser map[uuid.UUID]*entity.RefreshSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byUser: make(map[uuid.UUID]*entity.RefreshSession)}
}

func (r *fakeSessionRepo) Replace(_ context.Context, session *entity.RefreshSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *session
	r.byUser[session.UserID] = &copied

	return nil
}

func (r *fakeSessionRepo) Rotate(_ context.Context, oldTokenHash string, next *entity.RefreshSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byUser[next.UserID]
	if !ok || current.TokenHash != oldTokenHash {
		return repository.ErrRefreshSessionNotFound
	}
	copied := *next
	r.byUser[next.UserID] = &copied

	return nil
}

func (r *fakeSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*entity.RefreshSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, session := range r.byUser {
		if session.TokenHash == tokenHash {
			copied := *session

			return &copied, nil
		}
	}

	return nil, repository.ErrRefreshSessionNotFound
}

func (r *fakeSessionRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for userID, session := range r.byUser {
		if session.TokenHash == tokenHash {
			delete(r.byUser, userID)
		}
	}

	return nil
}

func (r *fakeSessionRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUser, userID)

	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for userID, session := range r.byUser {
		if session.IsExpired(now) {
			delete(r.byUser, userID)
			deleted++
		}
	}

	return deleted, nil
}

func (r *fakeSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.byUser)
}

func (r *fakeSessionRepo) sessionOf(userID uuid.UUID) *entity.RefreshSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.byUser[userID]
	if !ok {
		return nil
	}
	copied := *session

	return &copied
}

// --- Domain services ---

type fakeHasher struct {
	checks  atomic.Int64
	hashErr error

	mu          sync.Mutex
	checkedHash []string
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}

	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	h.checks.Add(1)
	h.mu.Lock()
	h.checkedHash = append(h.checkedHash, hash)
	h.mu.Unlock()

	return hash == "hashed:"+password
}

func (h *fakeHasher) checkedHashes() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string(nil), h.checkedHash...)
}

type fakeTokenService struct {
	seq atomic.Int64
	ttl time.Duration
}

func (s *fakeTokenService) GenerateAccessToken(email string) (string, error) {
	return fmt.Sprintf("access:%s:%d", email, s.seq.Add(1)), nil
}

func (s *fakeTokenService) GenerateRefreshToken(email string) (string, error) {
	return fmt.Sprintf("refresh:%s:%d", email, s.seq.Add(1)), nil
}

func (s *fakeTokenService) ValidateAccessToken(_ string) (*service.Claims, error) {
	return nil, errors.New("not supported by fake")
}

func (s *fakeTokenService) HashToken(token string) string {
	return "hash:" + token
}

func (s *fakeTokenService) RefreshTokenTTL() time.Duration {
	return s.ttl
}

type fakeFileStorage struct{}

func (fakeFileStorage) PresignUpload(_ context.Context, key, _ string) (*service.PresignedUpload, error) {
	return &service.PresignedUpload{
		UploadURL: "https://uploads.example.com/" + key + "?signature=x",
		FileURL:   "https://files.example.com/" + key,
		Key:       key,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}, nil
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishApplicationEvent(ctx context.Context, event *service.ApplicationEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockEventPublisher) Close() error {
	return m.Called().Error(0)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// --- Fixtures ---

type serviceFixtures struct {
	store           *memoryStore
	userRepo        *fakeUserRepo
	companyRepo     *fakeCompanyRepo
	jobRepo         *fakeJobRepo
	applicationRepo *fakeApplicationRepo
	sessionRepo     *fakeSessionRepo
	txManager       *fakeTxManager
	hasher          *fakeHasher
	tokens          *fakeTokenService
	publisher       *mockEventPublisher
	clock           *testClock

	sessions     usecase.SessionUsecase
	auth         usecase.AuthUsecase
	users        usecase.UserUsecase
	companies    usecase.CompanyUsecase
	jobs         usecase.JobUsecase
	applications usecase.ApplicationUsecase
	admin        usecase.AdminUsecase
	maintenance  usecase.MaintenanceUsecase
}

func newServiceFixtures(t *testing.T, cfg *config.Config) *serviceFixtures {
	t.Helper()

	store := newMemoryStore()
	fixtures := &serviceFixtures{
		store:           store,
		userRepo:        &fakeUserRepo{store: store},
		companyRepo:     &fakeCompanyRepo{store: store},
		jobRepo:         &fakeJobRepo{store: store},
		applicationRepo: &fakeApplicationRepo{store: store},
		sessionRepo:     newFakeSessionRepo(),
		hasher:          &fakeHasher{},
		tokens:          &fakeTokenService{ttl: cfg.Auth.RefreshTokenTTL},
		publisher:       &mockEventPublisher{},
		clock:           &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	fixtures.txManager = &fakeTxManager{factory: &fakeRepoFactory{
		userRepo:        fixtures.userRepo,
		companyRepo:     fixtures.companyRepo,
		jobRepo:         fixtures.jobRepo,
		applicationRepo: fixtures.applicationRepo,
	}}

	logger := newDiscardLogger()

	sessions := NewSessionService(SessionServiceParams{
		SessionRepo:  fixtures.sessionRepo,
		TokenService: fixtures.tokens,
		Logger:       logger,
	})
	sessionImpl, ok := sessions.(*sessionService)
	require.True(t, ok)
	sessionImpl.now = fixtures.clock.Now
	fixtures.sessions = sessions

	auth, err := NewAuthService(AuthServiceParams{
		UserRepo:     fixtures.userRepo,
		Sessions:     sessions,
		Hasher:       fixtures.hasher,
		TokenService: fixtures.tokens,
		Config:       cfg,
		Logger:       logger,
	})
	require.NoError(t, err)
	fixtures.auth = auth
	fixtures.users = NewUserService(UserServiceParams{
		TxManager:   fixtures.txManager,
		UserRepo:    fixtures.userRepo,
		Sessions:    sessions,
		FileStorage: fakeFileStorage{},
		Logger:      logger,
	})
	fixtures.companies = NewCompanyService(CompanyServiceParams{
		TxManager:   fixtures.txManager,
		CompanyRepo: fixtures.companyRepo,
		Logger:      logger,
	})
	fixtures.jobs = NewJobService(JobServiceParams{
		TxManager: fixtures.txManager,
		JobRepo:   fixtures.jobRepo,
		Config:    cfg,
		Logger:    logger,
	})
	fixtures.applications = NewApplicationService(ApplicationServiceParams{
		CompanyRepo:     fixtures.companyRepo,
		JobRepo:         fixtures.jobRepo,
		ApplicationRepo: fixtures.applicationRepo,
		Publisher:       fixtures.publisher,
		Logger:          logger,
	})
	fixtures.admin = NewAdminService(AdminServiceParams{
		UserRepo: fixtures.userRepo,
		JobRepo:  fixtures.jobRepo,
		Sessions: sessions,
		Logger:   logger,
	})
	fixtures.maintenance = NewMaintenanceService(MaintenanceServiceParams{
		Sessions:        sessions,
		UserRepo:        fixtures.userRepo,
		CompanyRepo:     fixtures.companyRepo,
		JobRepo:         fixtures.jobRepo,
		ApplicationRepo: fixtures.applicationRepo,
		Logger:          logger,
	})

	return fixtures
}

func (f *serviceFixtures) seedUser(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()

	user := &entity.User{
		Email:        entity.NormalizeEmail(email),
		PasswordHash: "hashed:secret-password",
		Name:         email,
		Role:         role,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))

	return user
}

func (f *serviceFixtures) seedCompany(t *testing.T, owner *entity.User) *entity.Company {
	t.Helper()

	company := &entity.Company{Name: "Acme", OwnerID: owner.ID}
	require.NoError(t, f.companyRepo.Create(context.Background(), company))

	return company
}

func (f *serviceFixtures) seedJob(t *testing.T, company *entity.Company, title string, postedAt time.Time) *entity.Job {
	t.Helper()

	job := &entity.Job{Title: title, Location: "Taipei", CompanyID: company.ID, PostedAt: postedAt}
	require.NoError(t, f.jobRepo.Create(context.Background(), job))

	return job
}
