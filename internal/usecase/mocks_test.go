package usecase

import (
	"context"
	"sync"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/savedjob"
	"jobboard/internal/domain/user"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type mockUsers struct {
	byID        map[uuid.UUID]user.User
	byEmail     map[string]user.User
	emailExists bool
	err         error

	created        []user.User
	statusUpdates  []string
	deleted        []uuid.UUID
	replacedSkills [][]uuid.UUID
}

func (m *mockUsers) Create(_ context.Context, u user.User) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, u)
	return nil
}

func (m *mockUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUsers) ExistsByEmail(context.Context, string) (bool, error) {
	return m.emailExists, m.err
}

func (m *mockUsers) List(context.Context, repository.Pagination) ([]user.User, int, error) {
	return nil, 0, m.err
}

func (m *mockUsers) Update(context.Context, uuid.UUID, repository.UserUpdate) error {
	return m.err
}

func (m *mockUsers) UpdatePassword(context.Context, uuid.UUID, string) error {
	return m.err
}

func (m *mockUsers) UpdateRole(context.Context, uuid.UUID, string) error {
	return m.err
}

func (m *mockUsers) UpdateStatus(_ context.Context, _ uuid.UUID, status string) error {
	if m.err != nil {
		return m.err
	}
	m.statusUpdates = append(m.statusUpdates, status)
	return nil
}

func (m *mockUsers) Delete(_ context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockUsers) ProfileIDs(context.Context, uuid.UUID) (repository.ProfileIDs, error) {
	return repository.ProfileIDs{}, m.err
}

func (m *mockUsers) ReplaceSkills(_ context.Context, _ uuid.UUID, skillIDs []uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.replacedSkills = append(m.replacedSkills, skillIDs)
	return nil
}

type memberKey struct {
	companyID uuid.UUID
	userID    uuid.UUID
}

type mockCompanies struct {
	byID       map[uuid.UUID]company.Company
	members    map[memberKey]company.Member
	nameExists bool
	err        error

	created         []company.Company
	insertedMembers []company.Member
	memberErr       error
}

func (m *mockCompanies) CreateWithOwner(_ context.Context, c company.Company) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, c)
	return nil
}

func (m *mockCompanies) GetByID(_ context.Context, id uuid.UUID) (company.Company, error) {
	if m.err != nil {
		return company.Company{}, m.err
	}
	c, ok := m.byID[id]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	return c, nil
}

func (m *mockCompanies) ExistsByName(context.Context, string) (bool, error) {
	return m.nameExists, m.err
}

func (m *mockCompanies) List(context.Context, repository.CompanyFilter) ([]company.Company, int, error) {
	return nil, 0, m.err
}

func (m *mockCompanies) Update(context.Context, uuid.UUID, repository.CompanyUpdate) error {
	return m.err
}

func (m *mockCompanies) UpdateStatus(context.Context, uuid.UUID, string) error {
	return m.err
}

func (m *mockCompanies) DeleteCascade(context.Context, uuid.UUID) error {
	return m.err
}

func (m *mockCompanies) InsertMember(_ context.Context, mem company.Member) error {
	if m.memberErr != nil {
		return m.memberErr
	}
	m.insertedMembers = append(m.insertedMembers, mem)
	return nil
}

func (m *mockCompanies) GetMember(_ context.Context, companyID, memberID uuid.UUID) (company.Member, error) {
	for _, mem := range m.members {
		if mem.CompanyID == companyID && mem.ID == memberID {
			return mem, nil
		}
	}
	return company.Member{}, company.ErrMemberNotFound
}

func (m *mockCompanies) GetMemberByUser(_ context.Context, companyID, userID uuid.UUID) (company.Member, error) {
	mem, ok := m.members[memberKey{companyID: companyID, userID: userID}]
	if !ok {
		return company.Member{}, company.ErrMemberNotFound
	}
	return mem, nil
}

func (m *mockCompanies) ListMembers(_ context.Context, companyID uuid.UUID) ([]company.Member, error) {
	out := []company.Member{}
	for _, mem := range m.members {
		if mem.CompanyID == companyID {
			out = append(out, mem)
		}
	}
	return out, nil
}

func (m *mockCompanies) UpdateMemberRole(context.Context, uuid.UUID, uuid.UUID, string) error {
	return m.err
}

func (m *mockCompanies) DeleteMember(context.Context, uuid.UUID, uuid.UUID) error {
	return m.err
}

func (m *mockCompanies) InsertImage(context.Context, company.Image) error {
	return m.err
}

func (m *mockCompanies) ListImages(context.Context, uuid.UUID) ([]company.Image, error) {
	return nil, m.err
}

type mockJobs struct {
	byID map[uuid.UUID]repository.JobRow
	err  error

	created       []job.Job
	createdSkills [][]uuid.UUID
	deleted       []uuid.UUID
	statusUpdates []string
}

func (m *mockJobs) Create(_ context.Context, j job.Job, skillIDs []uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, j)
	m.createdSkills = append(m.createdSkills, skillIDs)
	return nil
}

func (m *mockJobs) GetByID(_ context.Context, id uuid.UUID) (repository.JobRow, error) {
	if m.err != nil {
		return repository.JobRow{}, m.err
	}
	r, ok := m.byID[id]
	if !ok {
		return repository.JobRow{}, job.ErrNotFound
	}
	return r, nil
}

func (m *mockJobs) Update(context.Context, uuid.UUID, repository.JobUpdate) error {
	return m.err
}

func (m *mockJobs) UpdateStatus(_ context.Context, _ uuid.UUID, status string) error {
	if m.err != nil {
		return m.err
	}
	m.statusUpdates = append(m.statusUpdates, status)
	return nil
}

func (m *mockJobs) DeleteCascade(_ context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockJobs) List(context.Context, repository.JobListFilter) ([]repository.JobRow, int, error) {
	return nil, 0, m.err
}

func (m *mockJobs) ListByCompany(context.Context, uuid.UUID, bool, repository.Pagination) ([]repository.JobRow, int, error) {
	return nil, 0, m.err
}

func (m *mockJobs) Latest(context.Context, int) ([]repository.JobRow, error) {
	return nil, m.err
}

func (m *mockJobs) Featured(context.Context, int) ([]repository.JobRow, error) {
	return nil, m.err
}

func (m *mockJobs) SkillIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return nil, m.err
}

type mockApplications struct {
	byID   map[uuid.UUID]repository.ApplicationRow
	exists bool
	err    error

	created       []application.Application
	statusUpdates []string
}

func (m *mockApplications) Create(_ context.Context, a application.Application) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, a)
	return nil
}

func (m *mockApplications) GetByID(_ context.Context, id uuid.UUID) (repository.ApplicationRow, error) {
	if m.err != nil {
		return repository.ApplicationRow{}, m.err
	}
	r, ok := m.byID[id]
	if !ok {
		return repository.ApplicationRow{}, application.ErrNotFound
	}
	return r, nil
}

func (m *mockApplications) Exists(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return m.exists, m.err
}

func (m *mockApplications) UpdateStatus(_ context.Context, _ uuid.UUID, status string) error {
	if m.err != nil {
		return m.err
	}
	m.statusUpdates = append(m.statusUpdates, status)
	return nil
}

func (m *mockApplications) ListByUser(context.Context, uuid.UUID, repository.Pagination) ([]repository.ApplicationRow, int, error) {
	return nil, 0, m.err
}

func (m *mockApplications) ListByCompany(context.Context, uuid.UUID, repository.ApplicationFilter) ([]repository.ApplicationRow, int, error) {
	return nil, 0, m.err
}

func (m *mockApplications) WeeklyStats(context.Context, uuid.UUID) ([]repository.DailyStatusCount, error) {
	return nil, m.err
}

type mockSavedJobs struct {
	exists bool
	err    error

	created []savedjob.SavedJob
	deleted []uuid.UUID
}

func (m *mockSavedJobs) Create(_ context.Context, s savedjob.SavedJob) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, s)
	return nil
}

func (m *mockSavedJobs) Delete(_ context.Context, _, jobID uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, jobID)
	return nil
}

func (m *mockSavedJobs) Exists(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return m.exists, m.err
}

func (m *mockSavedJobs) ListByUser(context.Context, uuid.UUID, repository.Pagination) ([]repository.SavedJobRow, int, error) {
	return nil, 0, m.err
}

type mockStore struct {
	url string
	err error

	transferred []string
}

func (m *mockStore) Transfer(_ context.Context, localPath string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.transferred = append(m.transferred, localPath)
	return m.url, nil
}

type mockNotifier struct {
	mu    sync.Mutex
	codes []string
	err   error
}

func (m *mockNotifier) SendVerificationCode(_ context.Context, _, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.codes = append(m.codes, code)
	return nil
}

func (m *mockNotifier) SendApplicationStatus(context.Context, string, string, string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}
