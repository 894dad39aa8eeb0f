package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"universo/internal/model"
	"universo/internal/repository"
)

const (
	dueSoonWindow  = 48 * time.Hour
	meetingsWindow = 7 * 24 * time.Hour
)

// SectorCount is the task load of one sector.
type SectorCount struct {
	SectorID uint   `json:"sectorId"`
	Name     string `json:"name"`
	Total    int    `json:"total"`
	Done     int    `json:"done"`
}

// Summary is the dashboard digest.
type Summary struct {
	GeneratedAt      time.Time              `json:"generatedAt"`
	Total            int                    `json:"total"`
	ByStatus         map[model.Status]int   `json:"byStatus"`
	ByPriority       map[model.Priority]int `json:"byPriority"`
	BySector         []SectorCount          `json:"bySector"`
	Overdue          []model.Task           `json:"overdue"`
	DueSoon          []model.Task           `json:"dueSoon"`
	UpcomingMeetings []model.Meeting        `json:"upcomingMeetings"`
}

// ReportService builds the task and meeting digest shown on the dashboard
// and sent on schedule.
type ReportService struct {
	taskRepo    *repository.TaskRepository
	sectorRepo  *repository.SectorRepository
	meetingRepo *repository.MeetingRepository
}

func NewReportService(taskRepo *repository.TaskRepository, sectorRepo *repository.SectorRepository, meetingRepo *repository.MeetingRepository) *ReportService {
	return &ReportService{taskRepo: taskRepo, sectorRepo: sectorRepo, meetingRepo: meetingRepo}
}

func (s *ReportService) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	now = now.UTC()

	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sectors, err := s.sectorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	meetings, err := s.meetingRepo.ListBetween(ctx, now, now.Add(meetingsWindow))
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		GeneratedAt:      now,
		Total:            len(tasks),
		ByStatus:         make(map[model.Status]int, len(model.Statuses)),
		ByPriority:       make(map[model.Priority]int, len(model.Priorities)),
		BySector:         make([]SectorCount, 0, len(sectors)),
		Overdue:          []model.Task{},
		DueSoon:          []model.Task{},
		UpcomingMeetings: meetings,
	}
	for _, st := range model.Statuses {
		sum.ByStatus[st] = 0
	}
	for _, p := range model.Priorities {
		sum.ByPriority[p] = 0
	}

	perSector := make(map[uint]*SectorCount, len(sectors))
	for _, sec := range sectors {
		sc := SectorCount{SectorID: sec.ID, Name: sec.Name}
		sum.BySector = append(sum.BySector, sc)
	}
	for i := range sum.BySector {
		perSector[sum.BySector[i].SectorID] = &sum.BySector[i]
	}

	for _, task := range tasks {
		sum.ByStatus[task.Status]++
		sum.ByPriority[task.Priority]++
		if sc, ok := perSector[task.SectorID]; ok {
			sc.Total++
			if task.Status == model.StatusDone {
				sc.Done++
			}
		}
		switch {
		case task.Status == model.StatusDone:
		case task.Overdue(now):
			sum.Overdue = append(sum.Overdue, task)
		case !task.DueDate.After(now.Add(dueSoonWindow)):
			sum.DueSoon = append(sum.DueSoon, task)
		}
	}

	byDue := func(list []model.Task) {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].DueDate.Before(list[j].DueDate)
		})
	}
	byDue(sum.Overdue)
	byDue(sum.DueSoon)

	return sum, nil
}

// Render formats a summary as Telegram-flavoured HTML.
func (s *ReportService) Render(sum *Summary) string {
	var builder strings.Builder
	builder.WriteString("📋 <b>Resumen de tareas</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", sum.GeneratedAt.Format("02/01/2006")))

	builder.WriteString(fmt.Sprintf("<b>Total:</b> %d\n", sum.Total))
	for _, st := range model.Statuses {
		builder.WriteString(fmt.Sprintf("• %s: %d\n", st, sum.ByStatus[st]))
	}

	builder.WriteString("\n⚠️ <b>Vencidas</b>\n")
	if len(sum.Overdue) == 0 {
		builder.WriteString("- ninguna\n")
	}
	for _, task := range sum.Overdue {
		builder.WriteString(formatTask(task, sum.GeneratedAt))
	}

	builder.WriteString("\n⏳ <b>Vencen en 48 h</b>\n")
	if len(sum.DueSoon) == 0 {
		builder.WriteString("- ninguna\n")
	}
	for _, task := range sum.DueSoon {
		builder.WriteString(formatTask(task, sum.GeneratedAt))
	}

	builder.WriteString("\n📅 <b>Próximas reuniones</b>\n")
	if len(sum.UpcomingMeetings) == 0 {
		builder.WriteString("- sin reuniones esta semana\n")
	}
	for _, m := range sum.UpcomingMeetings {
		builder.WriteString(formatMeeting(m))
	}

	return strings.TrimSpace(builder.String())
}

func formatTask(task model.Task, now time.Time) string {
	var sb strings.Builder

	icon := "🟢"
	switch task.Priority {
	case model.PriorityHigh:
		icon = "🔴"
	case model.PriorityMedium:
		icon = "🟡"
	}
	sb.WriteString(fmt.Sprintf("%s %s", icon, html.EscapeString(strings.TrimSpace(task.Title))))

	if task.User != nil {
		if name := strings.TrimSpace(task.User.Name); name != "" {
			sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(name)))
		}
	}

	due := task.DueDate.Format("2006-01-02")
	if task.Overdue(now) {
		days := int(now.Sub(task.DueDate).Hours() / 24)
		sb.WriteString(fmt.Sprintf("\n   ⏰ %s, <b>%d días de retraso</b>", due, days))
	} else {
		sb.WriteString(fmt.Sprintf("\n   ⏰ %s", due))
	}

	sb.WriteByte('\n')
	return sb.String()
}

func formatMeeting(m model.Meeting) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("• %s %s", m.Date.Format("02/01 15:04"), html.EscapeString(strings.TrimSpace(m.Title))))
	if n := len(m.Attendees); n > 0 {
		sb.WriteString(fmt.Sprintf(" · %d asistentes", n))
	}
	sb.WriteByte('\n')
	return sb.String()
}
