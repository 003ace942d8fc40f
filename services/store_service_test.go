package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planejaplus/models"
	"planejaplus/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestStoreService(t *testing.T) *StoreService {
	t.Helper()
	return NewStoreService(newTestStore(t), "test", models.DemoUser)
}

func projectByID(t *testing.T, s *StoreService, id uuid.UUID) models.Project {
	t.Helper()
	project, found := s.Project(id)
	require.True(t, found)
	return project
}

func TestProjectProgressLifecycle(t *testing.T) {
	s := newTestStoreService(t)

	project := s.AddProject(ProjectInput{Name: "Website"})
	assert.Equal(t, 0, project.TasksCount)
	assert.Equal(t, 0, project.Progress)

	taskA := s.AddTask(TaskInput{Title: "A", ProjectID: &project.ID, Status: models.TaskStatusPending})
	p := projectByID(t, s, project.ID)
	assert.Equal(t, 1, p.TasksCount)
	assert.Equal(t, 0, p.CompletedTasks)
	assert.Equal(t, 0, p.Progress)

	completed := models.TaskStatusCompleted
	s.UpdateTask(taskA.ID, TaskPatch{Status: &completed})
	p = projectByID(t, s, project.ID)
	assert.Equal(t, 1, p.CompletedTasks)
	assert.Equal(t, 100, p.Progress)

	taskB := s.AddTask(TaskInput{Title: "B", ProjectID: &project.ID, Status: models.TaskStatusPending})
	p = projectByID(t, s, project.ID)
	assert.Equal(t, 2, p.TasksCount)
	assert.Equal(t, 1, p.CompletedTasks)
	assert.Equal(t, 50, p.Progress)

	s.DeleteTask(taskB.ID)
	p = projectByID(t, s, project.ID)
	assert.Equal(t, 1, p.TasksCount)
	assert.Equal(t, 1, p.CompletedTasks)
	assert.Equal(t, 100, p.Progress)
}

func TestDeleteProjectCascades(t *testing.T) {
	s := newTestStoreService(t)

	project := s.AddProject(ProjectInput{Name: "Doomed"})
	kept := s.AddTask(TaskInput{Title: "independent"})
	s.AddTask(TaskInput{Title: "t1", ProjectID: &project.ID})
	s.AddTask(TaskInput{Title: "t2", ProjectID: &project.ID})

	s.DeleteProject(project.ID)

	_, found := s.Project(project.ID)
	assert.False(t, found)

	for _, task := range s.Tasks() {
		if task.ProjectID != nil {
			assert.NotEqual(t, project.ID, *task.ProjectID, "orphaned task %s", task.Title)
		}
	}
	_, found = s.Task(kept.ID)
	assert.True(t, found, "independent task must survive the cascade")
}

func TestMoveTaskRecomputesBothProjects(t *testing.T) {
	s := newTestStoreService(t)

	source := s.AddProject(ProjectInput{Name: "Source"})
	target := s.AddProject(ProjectInput{Name: "Target"})
	task := s.AddTask(TaskInput{Title: "mover", ProjectID: &source.ID, Status: models.TaskStatusCompleted})

	assert.Equal(t, 1, projectByID(t, s, source.ID).TasksCount)

	s.UpdateTask(task.ID, TaskPatch{SetProject: true, ProjectID: &target.ID})

	src := projectByID(t, s, source.ID)
	assert.Equal(t, 0, src.TasksCount)
	assert.Equal(t, 0, src.CompletedTasks)
	assert.Equal(t, 0, src.Progress)

	tgt := projectByID(t, s, target.ID)
	assert.Equal(t, 1, tgt.TasksCount)
	assert.Equal(t, 1, tgt.CompletedTasks)
	assert.Equal(t, 100, tgt.Progress)
}

func TestMakeTaskIndependentRecomputesOldProject(t *testing.T) {
	s := newTestStoreService(t)

	project := s.AddProject(ProjectInput{Name: "P"})
	task := s.AddTask(TaskInput{Title: "t", ProjectID: &project.ID})

	s.UpdateTask(task.ID, TaskPatch{SetProject: true, ProjectID: nil})

	p := projectByID(t, s, project.ID)
	assert.Equal(t, 0, p.TasksCount)

	got, found := s.Task(task.ID)
	require.True(t, found)
	assert.Nil(t, got.ProjectID)
}

func TestUpdateMissingEntitiesAreSilentNoops(t *testing.T) {
	s := newTestStoreService(t)

	name := "ghost"
	s.UpdateProject(uuid.New(), ProjectPatch{Name: &name})
	s.UpdateTask(uuid.New(), TaskPatch{Title: &name})
	s.UpdateTeam(uuid.New(), TeamPatch{Name: &name})
	s.DeleteProject(uuid.New())
	s.DeleteTask(uuid.New())
	s.DeleteTeam(uuid.New())
}

func TestDatasetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	s := NewStoreService(store, "test", models.DemoUser)
	project := s.AddProject(ProjectInput{Name: "Persisted", Description: "survives reload"})
	task := s.AddTask(TaskInput{Title: "saved", ProjectID: &project.ID, Status: models.TaskStatusCompleted})

	// A fresh service over the same store must see the same dataset, not
	// the seed.
	reloaded := NewStoreService(store, "test", models.DemoUser)

	assert.Equal(t, len(s.Projects()), len(reloaded.Projects()))
	assert.Equal(t, len(s.Tasks()), len(reloaded.Tasks()))

	p, found := reloaded.Project(project.ID)
	require.True(t, found)
	assert.Equal(t, "Persisted", p.Name)
	assert.Equal(t, 1, p.TasksCount)
	assert.Equal(t, 100, p.Progress)
	assert.True(t, p.CreatedAt.Equal(project.CreatedAt))

	got, found := reloaded.Task(task.ID)
	require.True(t, found)
	assert.Equal(t, models.TaskStatusCompleted, got.Status)
	require.NotNil(t, got.ProjectID)
	assert.Equal(t, project.ID, *got.ProjectID)
}

func TestSeedDatasetOnFirstLoad(t *testing.T) {
	s := newTestStoreService(t)

	assert.NotEmpty(t, s.Projects())
	assert.NotEmpty(t, s.Tasks())
	assert.NotEmpty(t, s.Teams())
	assert.NotEmpty(t, s.Users())

	// Seeded derived fields must satisfy the invariant.
	for _, p := range s.Projects() {
		stats := ComputeProjectStats(s.Tasks(), p.ID)
		assert.Equal(t, stats.TasksCount, p.TasksCount)
		assert.Equal(t, stats.CompletedTasks, p.CompletedTasks)
		assert.Equal(t, stats.Progress, p.Progress)
	}
}

func TestTeamLeaderAlwaysInMembers(t *testing.T) {
	s := newTestStoreService(t)

	leader := models.TestUsers[0]
	other := models.TestUsers[1]

	team := s.AddTeam(TeamInput{
		Name:      "Squad",
		LeaderID:  leader.ID,
		MemberIDs: []uuid.UUID{other.ID},
	})

	require.True(t, team.HasMember(leader.ID))
	assert.Equal(t, models.TeamRoleLeader, team.Members[0].Role)
	assert.Equal(t, leader.ID, team.Members[0].UserID)
	assert.True(t, team.HasMember(other.ID))

	// Changing the leader keeps the invariant.
	newLeader := models.TestUsers[2]
	s.UpdateTeam(team.ID, TeamPatch{LeaderID: &newLeader.ID})

	updated, found := s.Team(team.ID)
	require.True(t, found)
	assert.True(t, updated.HasMember(newLeader.ID))
}

func TestTeamMembershipRebuildPreservesJoinDates(t *testing.T) {
	s := newTestStoreService(t)

	leader := models.TestUsers[0]
	member := models.TestUsers[1]

	team := s.AddTeam(TeamInput{
		Name:      "Stable",
		LeaderID:  leader.ID,
		MemberIDs: []uuid.UUID{member.ID},
	})
	originalJoin := team.Members[1].JoinedAt

	extra := models.TestUsers[2]
	ids := []uuid.UUID{member.ID, extra.ID}
	s.UpdateTeam(team.ID, TeamPatch{MemberIDs: &ids})

	updated, found := s.Team(team.ID)
	require.True(t, found)
	require.Len(t, updated.Members, 3)
	for _, m := range updated.Members {
		if m.UserID == member.ID {
			assert.True(t, m.JoinedAt.Equal(originalJoin))
		}
	}
}
