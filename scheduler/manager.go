// Package scheduler runs the recurring background jobs of the application.
// Jobs resolve the active session on every tick, so an identity switch never
// leaves a timer bound to a stale user.
package scheduler

import (
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"

	"planejaplus/config"
	"planejaplus/logger"
	"planejaplus/services"
	"planejaplus/utils"
)

// Manager owns the job scheduler and the notification dispatch pool.
type Manager struct {
	scheduler gocron.Scheduler
	pool      *ants.Pool
	auth      *services.AuthService
	registry  *services.Registry
	hub       *utils.Hub
	config    *config.Config
}

func NewManager(auth *services.AuthService, registry *services.Registry, hub *utils.Hub, cfg *config.Config) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	pool, err := ants.NewPool(8)
	if err != nil {
		return nil, err
	}

	return &Manager{
		scheduler: s,
		pool:      pool,
		auth:      auth,
		registry:  registry,
		hub:       hub,
		config:    cfg,
	}, nil
}

// Start registers all jobs and starts the scheduler.
func Start(auth *services.AuthService, registry *services.Registry, hub *utils.Hub, cfg *config.Config) (*Manager, error) {
	manager, err := NewManager(auth, registry, hub, cfg)
	if err != nil {
		return nil, err
	}

	manager.RegisterJobs()
	manager.scheduler.Start()

	logger.Info("job manager started")
	return manager, nil
}

// RegisterJobs registers all recurring jobs.
func (m *Manager) RegisterJobs() {
	m.registerJob(NewReminderJob(m.auth, m.registry, m.hub, m.pool, m.config))
}

type job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

func (m *Manager) registerJob(j job) {
	_, err := m.scheduler.NewJob(
		j.GetSchedule(),
		gocron.NewTask(j.Execute),
		gocron.WithName(j.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("failed to register job %s: %v", j.GetName(), err)
	}
}

// Stop shuts down the scheduler and the dispatch pool.
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("failed to shutdown scheduler: %v", err)
	}
	m.pool.Release()
	logger.Info("job manager stopped")
}
