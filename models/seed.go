package models

import (
	"time"

	"github.com/google/uuid"
)

// Fixed demo identities. IDs are stable so that persisted datasets survive
// process restarts and identity switches.
var (
	DemoUser = User{
		ID:    uuid.MustParse("11111111-0000-0000-0000-000000000001"),
		Name:  "Usuário Demo",
		Email: "demo@planejaplus.com",
		Role:  "admin",
	}

	TestUsers = []User{
		{
			ID:    uuid.MustParse("22222222-0000-0000-0000-000000000001"),
			Name:  "Ana Souza",
			Email: "ana@planejaplus.com",
			Role:  "manager",
		},
		{
			ID:    uuid.MustParse("22222222-0000-0000-0000-000000000002"),
			Name:  "Bruno Lima",
			Email: "bruno@planejaplus.com",
			Role:  "member",
		},
		{
			ID:    uuid.MustParse("22222222-0000-0000-0000-000000000003"),
			Name:  "Carla Mendes",
			Email: "carla@planejaplus.com",
			Role:  "member",
		},
		{
			ID:    uuid.MustParse("22222222-0000-0000-0000-000000000004"),
			Name:  "Diego Santos",
			Email: "diego@planejaplus.com",
			Role:  "member",
		},
	}
)

// SeedDataset builds the initial mock dataset for a user whose storage key
// is empty or unreadable.
func SeedDataset(owner User) Dataset {
	now := time.Now()
	deadline := now.AddDate(0, 1, 0)

	project := Project{
		ID:          uuid.New(),
		Name:        "Website Institucional",
		Description: "Redesign do site da empresa",
		Status:      ProjectStatusActive,
		Deadline:    &deadline,
		CreatedBy:   owner.ID,
		CreatedAt:   now,
		// Matches the two seed tasks below, one of them completed.
		Progress:       50,
		TasksCount:     2,
		CompletedTasks: 1,
	}

	tasks := []Task{
		{
			ID:          uuid.New(),
			Title:       "Definir identidade visual",
			Description: "Paleta de cores e tipografia",
			ProjectID:   &project.ID,
			AssignedTo:  []uuid.UUID{owner.ID},
			Priority:    PriorityHigh,
			Status:      TaskStatusCompleted,
			CreatedAt:   now,
			CreatedBy:   owner.ID,
		},
		{
			ID:          uuid.New(),
			Title:       "Desenvolver página inicial",
			ProjectID:   &project.ID,
			AssignedTo:  []uuid.UUID{TestUsers[1].ID},
			Priority:    PriorityMedium,
			Status:      TaskStatusInProgress,
			CreatedAt:   now,
			CreatedBy:   owner.ID,
		},
		{
			ID:        uuid.New(),
			Title:     "Organizar documentos da equipe",
			Priority:  PriorityLow,
			Status:    TaskStatusPending,
			CreatedAt: now,
			CreatedBy: owner.ID,
		},
	}

	team := Team{
		ID:          uuid.New(),
		Name:        "Time de Produto",
		Description: "Equipe responsável pelo site",
		Objective:   "Lançar o novo site até o fim do trimestre",
		Status:      TeamStatusActive,
		Color:       "#6366f1",
		LeaderID:    owner.ID,
		Members: []TeamMember{
			{ID: uuid.New(), UserID: owner.ID, Role: TeamRoleLeader, JoinedAt: now},
			{ID: uuid.New(), UserID: TestUsers[0].ID, Role: TeamRoleMember, JoinedAt: now},
			{ID: uuid.New(), UserID: TestUsers[1].ID, Role: TeamRoleMember, JoinedAt: now},
		},
		ProjectIDs: []uuid.UUID{project.ID},
		CreatedAt:  now,
		CreatedBy:  owner.ID,
	}

	users := []User{owner}
	for _, u := range TestUsers {
		if u.ID != owner.ID {
			users = append(users, u)
		}
	}

	return Dataset{
		Projects: []Project{project},
		Tasks:    tasks,
		Teams:    []Team{team},
		Users:    users,
	}
}
