package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"planejaplus/logger"
	"planejaplus/models"
	"planejaplus/storage"
)

// StoreService owns the project/task/team/user collections of one user.
// Every mutation rewrites the whole dataset blob under the user's data key;
// when the blob cannot be read the service falls back to the seed dataset,
// and when it cannot be written the in-memory state stays authoritative for
// the rest of the session.
type StoreService struct {
	mu        sync.RWMutex
	store     *storage.Store
	namespace string
	userID    uuid.UUID
	data      models.Dataset
}

func NewStoreService(store *storage.Store, namespace string, owner models.User) *StoreService {
	s := &StoreService{
		store:     store,
		namespace: namespace,
		userID:    owner.ID,
	}
	s.load(owner)
	return s
}

func (s *StoreService) dataKey() string {
	return storage.DataKey(s.namespace, s.userID.String())
}

func (s *StoreService) load(owner models.User) {
	raw, ok, err := s.store.Get(s.dataKey())
	if err != nil {
		logger.Warn("failed to read dataset for %s, seeding: %v", s.userID, err)
		s.data = models.SeedDataset(owner)
		return
	}
	if !ok {
		s.data = models.SeedDataset(owner)
		s.persist()
		return
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		logger.Warn("corrupt dataset for %s, seeding: %v", s.userID, err)
		s.data = models.SeedDataset(owner)
	}
}

// persist serializes the full collection set. Failures are logged and
// otherwise ignored; there is no retry.
func (s *StoreService) persist() {
	raw, err := json.Marshal(s.data)
	if err != nil {
		logger.Error("failed to serialize dataset for %s: %v", s.userID, err)
		return
	}
	if err := s.store.Put(s.dataKey(), raw); err != nil {
		logger.Error("failed to save dataset for %s: %v", s.userID, err)
	}
}

// applyProjectStats repairs one project's derived fields from the current
// task set. A nil project reference means the task is independent and no
// project is touched.
func (s *StoreService) applyProjectStats(projectID *uuid.UUID) {
	if projectID == nil {
		return
	}
	stats := ComputeProjectStats(s.data.Tasks, *projectID)
	for i := range s.data.Projects {
		if s.data.Projects[i].ID == *projectID {
			s.data.Projects[i].TasksCount = stats.TasksCount
			s.data.Projects[i].CompletedTasks = stats.CompletedTasks
			s.data.Projects[i].Progress = stats.Progress
			return
		}
	}
}

// --- projects ---

type ProjectInput struct {
	Name        string
	Description string
	Status      models.ProjectStatus
	Deadline    *time.Time
	TeamIDs     []uuid.UUID
}

func (s *StoreService) AddProject(in ProjectInput) models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := in.Status
	if status == "" {
		status = models.ProjectStatusActive
	}

	project := models.Project{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Status:      status,
		Deadline:    in.Deadline,
		CreatedBy:   s.userID,
		TeamIDs:     in.TeamIDs,
		CreatedAt:   time.Now(),
	}

	s.data.Projects = append(s.data.Projects, project)
	s.persist()
	return project
}

type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
	Deadline    *time.Time
	TeamIDs     *[]uuid.UUID
}

// UpdateProject merges the patch into the matching project. A missing id is
// a silent no-op.
func (s *StoreService) UpdateProject(id uuid.UUID, patch ProjectPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Projects {
		if s.data.Projects[i].ID != id {
			continue
		}
		p := &s.data.Projects[i]
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.Deadline != nil {
			p.Deadline = patch.Deadline
		}
		if patch.TeamIDs != nil {
			p.TeamIDs = *patch.TeamIDs
		}
		s.persist()
		return
	}
}

// DeleteProject removes the project and every task referencing it.
func (s *StoreService) DeleteProject(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := s.data.Projects[:0]
	removed := false
	for _, p := range s.data.Projects {
		if p.ID == id {
			removed = true
			continue
		}
		projects = append(projects, p)
	}
	if !removed {
		return
	}
	s.data.Projects = projects

	tasks := s.data.Tasks[:0]
	for _, t := range s.data.Tasks {
		if t.ProjectID != nil && *t.ProjectID == id {
			continue
		}
		tasks = append(tasks, t)
	}
	s.data.Tasks = tasks

	s.persist()
}

// --- tasks ---

type TaskInput struct {
	Title       string
	Description string
	ProjectID   *uuid.UUID
	AssignedTo  []uuid.UUID
	Priority    models.Priority
	Status      models.TaskStatus
	Deadline    *time.Time
}

func (s *StoreService) AddTask(in TaskInput) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	status := in.Status
	if status == "" {
		status = models.TaskStatusPending
	}

	task := models.Task{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		ProjectID:   in.ProjectID,
		AssignedTo:  in.AssignedTo,
		Priority:    priority,
		Status:      status,
		Deadline:    in.Deadline,
		CreatedAt:   time.Now(),
		CreatedBy:   s.userID,
	}

	s.data.Tasks = append(s.data.Tasks, task)
	s.applyProjectStats(task.ProjectID)
	s.persist()
	return task
}

type TaskPatch struct {
	Title       *string
	Description *string
	// SetProject marks ProjectID as present in the patch; a nil ProjectID
	// with SetProject makes the task independent.
	SetProject bool
	ProjectID  *uuid.UUID
	AssignedTo *[]uuid.UUID
	Priority   *models.Priority
	Status     *models.TaskStatus
	Deadline   *time.Time
}

// UpdateTask merges the patch and repairs derived stats. When the task moves
// between projects both the old and the new project are recomputed, so
// neither side is left with stale counts.
func (s *StoreService) UpdateTask(id uuid.UUID, patch TaskPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Tasks {
		if s.data.Tasks[i].ID != id {
			continue
		}
		t := &s.data.Tasks[i]
		oldProject := t.ProjectID

		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.SetProject {
			t.ProjectID = patch.ProjectID
		}
		if patch.AssignedTo != nil {
			t.AssignedTo = *patch.AssignedTo
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Deadline != nil {
			t.Deadline = patch.Deadline
		}

		s.applyProjectStats(t.ProjectID)
		if oldProject != nil && (t.ProjectID == nil || *t.ProjectID != *oldProject) {
			s.applyProjectStats(oldProject)
		}
		s.persist()
		return
	}
}

func (s *StoreService) DeleteTask(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var owner *uuid.UUID
	tasks := s.data.Tasks[:0]
	removed := false
	for _, t := range s.data.Tasks {
		if t.ID == id {
			removed = true
			owner = t.ProjectID
			continue
		}
		tasks = append(tasks, t)
	}
	if !removed {
		return
	}
	s.data.Tasks = tasks

	s.applyProjectStats(owner)
	s.persist()
}

// --- teams ---

type TeamInput struct {
	Name        string
	Description string
	Objective   string
	Color       string
	Status      models.TeamStatus
	LeaderID    uuid.UUID
	MemberIDs   []uuid.UUID
	ProjectIDs  []uuid.UUID
}

func (s *StoreService) AddTeam(in TeamInput) models.Team {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := in.Status
	if status == "" {
		status = models.TeamStatusActive
	}
	now := time.Now()

	team := models.Team{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Objective:   in.Objective,
		Status:      status,
		Color:       in.Color,
		LeaderID:    in.LeaderID,
		Members:     buildMembers(in.LeaderID, in.MemberIDs, nil, now),
		ProjectIDs:  in.ProjectIDs,
		CreatedAt:   now,
		CreatedBy:   s.userID,
		RecentActivity: []models.ActivityEntry{{
			ID:        uuid.New(),
			UserID:    s.userID,
			Message:   "created the team",
			CreatedAt: now,
		}},
	}

	s.data.Teams = append(s.data.Teams, team)
	s.persist()
	return team
}

type TeamPatch struct {
	Name        *string
	Description *string
	Objective   *string
	Color       *string
	Status      *models.TeamStatus
	LeaderID    *uuid.UUID
	MemberIDs   *[]uuid.UUID
	ProjectIDs  *[]uuid.UUID
}

func (s *StoreService) UpdateTeam(id uuid.UUID, patch TeamPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Teams {
		if s.data.Teams[i].ID != id {
			continue
		}
		t := &s.data.Teams[i]
		now := time.Now()

		if patch.Name != nil {
			t.Name = *patch.Name
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Objective != nil {
			t.Objective = *patch.Objective
		}
		if patch.Color != nil {
			t.Color = *patch.Color
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.LeaderID != nil {
			t.LeaderID = *patch.LeaderID
		}
		if patch.MemberIDs != nil {
			t.Members = buildMembers(t.LeaderID, *patch.MemberIDs, t.Members, now)
		} else if patch.LeaderID != nil && !t.HasMember(t.LeaderID) {
			// The leader must always appear in the member list.
			t.Members = append([]models.TeamMember{{
				ID:       uuid.New(),
				UserID:   t.LeaderID,
				Role:     models.TeamRoleLeader,
				JoinedAt: now,
			}}, t.Members...)
		}
		if patch.ProjectIDs != nil {
			t.ProjectIDs = *patch.ProjectIDs
		}

		t.RecentActivity = append(t.RecentActivity, models.ActivityEntry{
			ID:        uuid.New(),
			UserID:    s.userID,
			Message:   "updated the team",
			CreatedAt: now,
		})

		s.persist()
		return
	}
}

func (s *StoreService) DeleteTeam(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams := s.data.Teams[:0]
	removed := false
	for _, t := range s.data.Teams {
		if t.ID == id {
			removed = true
			continue
		}
		teams = append(teams, t)
	}
	if !removed {
		return
	}
	s.data.Teams = teams
	s.persist()
}

// buildMembers normalizes a member id list into TeamMember records. The
// leader is always first with the leader role; join dates of existing
// members are preserved across rebuilds.
func buildMembers(leaderID uuid.UUID, memberIDs []uuid.UUID, previous []models.TeamMember, now time.Time) []models.TeamMember {
	joined := make(map[uuid.UUID]models.TeamMember, len(previous))
	for _, m := range previous {
		joined[m.UserID] = m
	}

	member := func(userID uuid.UUID, role models.TeamRole) models.TeamMember {
		if prev, ok := joined[userID]; ok {
			prev.Role = role
			return prev
		}
		return models.TeamMember{ID: uuid.New(), UserID: userID, Role: role, JoinedAt: now}
	}

	members := []models.TeamMember{member(leaderID, models.TeamRoleLeader)}
	for _, id := range memberIDs {
		if id == leaderID {
			continue
		}
		members = append(members, member(id, models.TeamRoleMember))
	}
	return members
}

// --- accessors ---

func (s *StoreService) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Project(nil), s.data.Projects...)
}

func (s *StoreService) Project(id uuid.UUID) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.data.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

func (s *StoreService) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Task(nil), s.data.Tasks...)
}

func (s *StoreService) Task(id uuid.UUID) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.data.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func (s *StoreService) Teams() []models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Team(nil), s.data.Teams...)
}

func (s *StoreService) Team(id uuid.UUID) (models.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.data.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return models.Team{}, false
}

func (s *StoreService) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.data.Users...)
}
