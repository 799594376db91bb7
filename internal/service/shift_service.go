package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/zordhalo/managment-site/internal/apperr"
	"github.com/zordhalo/managment-site/internal/model"
	"go.uber.org/zap"
)

type ShiftService struct {
	userRepo     UserRepository
	roomRepo     RoomRepository
	shiftRepo    ShiftRepository
	taskRepo     TaskRepository
	templateRepo TemplateRepository
	notifier     *NotificationService
	logger       *zap.Logger

	now func() time.Time
}

func NewShiftService(
	userRepo UserRepository,
	roomRepo RoomRepository,
	shiftRepo ShiftRepository,
	taskRepo TaskRepository,
	templateRepo TemplateRepository,
	notifier *NotificationService,
	logger *zap.Logger,
) *ShiftService {
	return &ShiftService{
		userRepo:     userRepo,
		roomRepo:     roomRepo,
		shiftRepo:    shiftRepo,
		taskRepo:     taskRepo,
		templateRepo: templateRepo,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateShift schedules an employee in a room and expands the default task
// templates into the shift's checklist. The shift is the primary write: a
// task that cannot be written even after retries is logged and skipped, the
// shift itself is never rolled back.
func (s *ShiftService) CreateShift(ctx context.Context, employeeID, roomID int64, date, startTime, endTime time.Time) (*model.Shift, error) {
	if !endTime.After(startTime) {
		return nil, apperr.Validation("end time must be after start time")
	}

	employee, err := s.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}

	if employee == nil {
		return nil, apperr.NotFound("user", employeeID)
	}

	if !employee.IsEmployee() {
		return nil, apperr.Validation("user %d is not an employee", employeeID)
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	if room == nil {
		return nil, apperr.NotFound("room", roomID)
	}

	if !room.IsActive {
		return nil, apperr.Validation("room %d is not active", roomID)
	}

	shift := &model.Shift{
		EmployeeID: employeeID,
		RoomID:     roomID,
		Date:       truncateToDay(date.UTC()),
		StartTime:  startTime,
		EndTime:    endTime,
		IsActive:   true,
	}

	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		return nil, fmt.Errorf("create shift: %w", err)
	}

	shift.Tasks = s.expandShift(ctx, shift)

	s.logger.Info("Shift created",
		zap.Int64("shift_id", shift.ID),
		zap.Int64("employee_id", employeeID),
		zap.Int64("room_id", roomID),
		zap.Time("date", shift.Date),
		zap.Int("tasks", len(shift.Tasks)),
	)

	s.notifier.ShiftCreated(ctx, shift)

	return shift, nil
}

// expandShift instantiates one task per default template, snapshotting the
// template's name and category at creation time. Each task write is retried
// independently.
func (s *ShiftService) expandShift(ctx context.Context, shift *model.Shift) []*model.Task {
	templates, err := s.templateRepo.GetDefaults(ctx)
	if err != nil {
		s.logger.Error("Failed to load default task templates",
			zap.Int64("shift_id", shift.ID),
			zap.Error(err))
		return nil
	}

	var tasks []*model.Task
	for _, tpl := range templates {
		task := &model.Task{
			ShiftID:  shift.ID,
			Name:     tpl.Name,
			Category: tpl.Category,
		}

		backoff := retry.WithMaxRetries(3, retry.NewExponential(100*time.Millisecond))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			if err := s.taskRepo.Create(ctx, task); err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})
		if err != nil {
			s.logger.Error("Failed to create task for shift",
				zap.Int64("shift_id", shift.ID),
				zap.String("template", tpl.Name),
				zap.Error(err))
			continue
		}

		tasks = append(tasks, task)
	}

	return tasks
}

// UpdateShift rewrites a shift's assignment and interval. Reassignment
// notifies the new employee only.
func (s *ShiftService) UpdateShift(ctx context.Context, shiftID, employeeID, roomID int64, date, startTime, endTime time.Time) (*model.Shift, error) {
	if !endTime.After(startTime) {
		return nil, apperr.Validation("end time must be after start time")
	}

	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("get shift: %w", err)
	}

	if shift == nil {
		return nil, apperr.NotFound("shift", shiftID)
	}

	employee, err := s.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}

	if employee == nil {
		return nil, apperr.NotFound("user", employeeID)
	}

	if !employee.IsEmployee() {
		return nil, apperr.Validation("user %d is not an employee", employeeID)
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	if room == nil {
		return nil, apperr.NotFound("room", roomID)
	}

	reassigned := shift.EmployeeID != employeeID

	shift.EmployeeID = employeeID
	shift.RoomID = roomID
	shift.Date = truncateToDay(date.UTC())
	shift.StartTime = startTime
	shift.EndTime = endTime

	if err := s.shiftRepo.Update(ctx, shift); err != nil {
		return nil, fmt.Errorf("update shift: %w", err)
	}

	s.logger.Info("Shift updated",
		zap.Int64("shift_id", shiftID),
		zap.Int64("employee_id", employeeID),
		zap.Bool("reassigned", reassigned),
	)

	if reassigned {
		s.notifier.ShiftReassigned(ctx, shift)
	}

	return shift, nil
}

// DeactivateShift flags a shift inactive.
func (s *ShiftService) DeactivateShift(ctx context.Context, shiftID int64) error {
	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return fmt.Errorf("get shift: %w", err)
	}

	if shift == nil {
		return apperr.NotFound("shift", shiftID)
	}

	if err := s.shiftRepo.Deactivate(ctx, shiftID); err != nil {
		return fmt.Errorf("deactivate shift: %w", err)
	}

	s.logger.Info("Shift deactivated", zap.Int64("shift_id", shiftID))

	return nil
}

// ListForEmployee returns an employee's active shifts.
func (s *ShiftService) ListForEmployee(ctx context.Context, employeeID int64) ([]*model.Shift, error) {
	return s.shiftRepo.GetByEmployeeID(ctx, employeeID)
}

// ListAll returns all active shifts, optionally limited to one day.
func (s *ShiftService) ListAll(ctx context.Context, date *time.Time) ([]*model.Shift, error) {
	if date != nil {
		day := truncateToDay(date.UTC())
		date = &day
	}
	return s.shiftRepo.GetAll(ctx, date)
}

// TasksForShift returns a shift's checklist, readable by its employee or any
// supervisor.
func (s *ShiftService) TasksForShift(ctx context.Context, shiftID int64, actor *model.User) ([]*model.Task, error) {
	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("get shift: %w", err)
	}

	if shift == nil {
		return nil, apperr.NotFound("shift", shiftID)
	}

	if shift.EmployeeID != actor.ID && !actor.IsSupervisor() {
		return nil, apperr.PermissionDenied("shift %d is not assigned to you", shiftID)
	}

	return s.taskRepo.GetByShiftID(ctx, shiftID)
}

// ToggleTask sets a task's completion state. Only the shift's employee may
// do it. Completing a task stamps completed_at and notifies supervisors;
// un-completing clears the stamp. Re-asserting the current state is a no-op.
func (s *ShiftService) ToggleTask(ctx context.Context, taskID int64, actor *model.User, isCompleted bool) (*model.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	if task == nil {
		return nil, apperr.NotFound("task", taskID)
	}

	shift, err := s.shiftRepo.GetByID(ctx, task.ShiftID)
	if err != nil {
		return nil, fmt.Errorf("get shift: %w", err)
	}

	if shift == nil {
		return nil, apperr.NotFound("shift", task.ShiftID)
	}

	if shift.EmployeeID != actor.ID {
		return nil, apperr.PermissionDenied("only the shift's employee can update its tasks")
	}

	if task.IsCompleted == isCompleted {
		return task, nil
	}

	var completedAt *time.Time
	if isCompleted {
		now := s.now()
		completedAt = &now
	}

	if err := s.taskRepo.SetCompletion(ctx, taskID, isCompleted, completedAt); err != nil {
		return nil, fmt.Errorf("set task completion: %w", err)
	}

	task.IsCompleted = isCompleted
	task.CompletedAt = completedAt

	s.logger.Info("Task completion toggled",
		zap.Int64("task_id", taskID),
		zap.Int64("shift_id", shift.ID),
		zap.Bool("is_completed", isCompleted),
	)

	if isCompleted {
		s.notifier.TaskCompleted(ctx, task, shift)
	}

	return task, nil
}

// CreateTemplate adds a task template to the catalog.
func (s *ShiftService) CreateTemplate(ctx context.Context, name string, category model.TaskCategory, isDefault bool) (*model.TaskTemplate, error) {
	if name == "" {
		return nil, apperr.Validation("template name is required")
	}

	if !category.Valid() {
		return nil, apperr.Validation("unknown task category %q", category)
	}

	tpl := &model.TaskTemplate{
		Name:      name,
		Category:  category,
		IsDefault: isDefault,
	}

	if err := s.templateRepo.Create(ctx, tpl); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}

	s.logger.Info("Task template created",
		zap.Int64("template_id", tpl.ID),
		zap.String("name", name),
		zap.Bool("is_default", isDefault),
	)

	return tpl, nil
}

// ListTemplates returns the whole template catalog.
func (s *ShiftService) ListTemplates(ctx context.Context) ([]*model.TaskTemplate, error) {
	return s.templateRepo.GetAll(ctx)
}

// UpdateTemplate rewrites a template. Tasks already expanded from it are
// not touched.
func (s *ShiftService) UpdateTemplate(ctx context.Context, id int64, name string, category model.TaskCategory, isDefault bool) (*model.TaskTemplate, error) {
	if name == "" {
		return nil, apperr.Validation("template name is required")
	}

	if !category.Valid() {
		return nil, apperr.Validation("unknown task category %q", category)
	}

	tpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}

	if tpl == nil {
		return nil, apperr.NotFound("task template", id)
	}

	tpl.Name = name
	tpl.Category = category
	tpl.IsDefault = isDefault

	if err := s.templateRepo.Update(ctx, tpl); err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}

	return tpl, nil
}

// RemoveTemplateDefault takes a template out of the default set. The row
// stays so past shift expansions remain attributable.
func (s *ShiftService) RemoveTemplateDefault(ctx context.Context, id int64) error {
	tpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get template: %w", err)
	}

	if tpl == nil {
		return apperr.NotFound("task template", id)
	}

	if err := s.templateRepo.ClearDefault(ctx, id); err != nil {
		return fmt.Errorf("clear template default: %w", err)
	}

	s.logger.Info("Task template removed from defaults", zap.Int64("template_id", id))

	return nil
}
