package cron

import (
	"Lumina/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	popularWarmJob *job.PopularWarmJob
	popularSpec    string
}

func NewCronManager(popularWarmJob *job.PopularWarmJob, popularSpec string) *Manager {
	return &Manager{
		engine:         cron.New(),
		popularWarmJob: popularWarmJob,
		popularSpec:    popularSpec,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.popularSpec, s.popularWarmJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "entries", len(s.engine.Entries()))
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
