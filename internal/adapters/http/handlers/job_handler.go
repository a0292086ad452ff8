package handlers

import (
	"campus-inventory/internal/core/services"
	"campus-inventory/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// JobHandler triggers background jobs on demand
type JobHandler struct {
	reminderService *services.ReminderService
	archiveService  *services.ArchiveService
}

// NewJobHandler creates a new job handler
func NewJobHandler(reminderService *services.ReminderService, archiveService *services.ArchiveService) *JobHandler {
	return &JobHandler{
		reminderService: reminderService,
		archiveService:  archiveService,
	}
}

// RunReminders runs one reminder pass now
// @Summary Run reminders
// @Description Mark overdue loans and send pending reminders
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /admin/reminders/run [post]
func (h *JobHandler) RunReminders(c *fiber.Ctx) error {
	report, err := h.reminderService.Run(c.Context())
	if err != nil {
		return serviceError(c, err, "Reminder run failed")
	}

	return response.Success(c, "Reminder run completed", fiber.Map{
		"run_id":        report.RunID,
		"candidates":    report.Candidates,
		"newly_overdue": report.NewlyOverdue,
		"sent":          report.Sent,
		"failed":        report.Failed,
	})
}

// RunArchive purges returned loans past retention now
// @Summary Run archive
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /admin/archive/run [post]
func (h *JobHandler) RunArchive(c *fiber.Ctx) error {
	purged, err := h.archiveService.PurgeReturned(c.Context())
	if err != nil {
		return serviceError(c, err, "Archive run failed")
	}

	return response.Success(c, "Archive run completed", fiber.Map{
		"purged": purged,
	})
}
