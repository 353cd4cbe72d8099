package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/workviyo/taskboard-api/internal/constants"
	"github.com/workviyo/taskboard-api/internal/dto"
	"github.com/workviyo/taskboard-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

// ReportService builds the read-only task reports
type ReportService struct {
	reportRepo  repository.ReportRepository
	userRepo    repository.UserRepository
	teamRepo    repository.TeamRepository
	projectRepo repository.ProjectRepository
	now         func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(repos *repository.Repositories) *ReportService {
	return &ReportService{
		reportRepo:  repos.Reports,
		userRepo:    repos.Users,
		teamRepo:    repos.Teams,
		projectRepo: repos.Projects,
		now:         time.Now,
	}
}

// LastWeek counts the tasks completed in the trailing seven days per UTC
// day, oldest day first. Days without completions are omitted.
func (s *ReportService) LastWeek(ctx context.Context) ([]dto.DayCountDTO, error) {
	until := s.now().UTC()
	since := until.Add(-constants.ReportWindowHours * time.Hour)

	days, err := s.reportRepo.CompletedByDay(ctx, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	rows := make([]dto.DayCountDTO, len(days))
	for i, day := range days {
		rows[i] = dto.DayCountDTO{
			Date:  day.Day.Format(constants.ReportDateLayout),
			Count: day.Count,
		}
	}
	return rows, nil
}

// Pending lists name and time to complete of every task that is not
// completed.
func (s *ReportService) Pending(ctx context.Context) ([]dto.PendingTaskDTO, error) {
	items, err := s.reportRepo.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending tasks: %w", err)
	}

	rows := make([]dto.PendingTaskDTO, len(items))
	for i, item := range items {
		rows[i] = dto.PendingTaskDTO{Name: item.Name, TimeToComplete: item.TimeToComplete}
	}
	return rows, nil
}

// ClosedTasks counts completed tasks per owner, team and project. A task
// with several owners counts once for each of them.
func (s *ReportService) ClosedTasks(ctx context.Context) (*dto.ClosedTasksDTO, error) {
	var report dto.ClosedTasksDTO
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.breakdown(ctx, repository.GroupByOwner, s.ownerNames)
		report.ByOwners = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.breakdown(ctx, repository.GroupByTeam, s.teamNames)
		report.ByTeam = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.breakdown(ctx, repository.GroupByProject, s.projectNames)
		report.ByProject = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &report, nil
}

type nameResolver func(ctx context.Context, ids []string) (map[string]string, error)

func (s *ReportService) breakdown(ctx context.Context, field repository.GroupField, names nameResolver) ([]dto.GroupCountDTO, error) {
	counts, err := s.reportRepo.CompletedCountBy(ctx, field)
	if err != nil {
		return nil, fmt.Errorf("failed to count closed tasks by %s: %w", field, err)
	}

	ids := make([]string, len(counts))
	for i, c := range counts {
		ids[i] = c.Key
	}
	resolved, err := names(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s names: %w", field, err)
	}

	rows := make([]dto.GroupCountDTO, len(counts))
	for i, c := range counts {
		name, ok := resolved[c.Key]
		if !ok {
			name = c.Key
		}
		rows[i] = dto.GroupCountDTO{Name: name, Count: c.Count}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

func (s *ReportService) ownerNames(ctx context.Context, ids []string) (map[string]string, error) {
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

func (s *ReportService) teamNames(ctx context.Context, ids []string) (map[string]string, error) {
	teams, err := s.teamRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	return names, nil
}

func (s *ReportService) projectNames(ctx context.Context, ids []string) (map[string]string, error) {
	projects, err := s.projectRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}
