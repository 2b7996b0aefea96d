package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aloc23/priority-transfers-admin-sub001/internal/mailer"
	"github.com/aloc23/priority-transfers-admin-sub001/internal/models"
	"github.com/aloc23/priority-transfers-admin-sub001/internal/workflow"
)

// NotifyDriver sends a single email to a driver immediately.
func NotifyDriver(m mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			DriverEmail string `json:"driverEmail"`
			Subject     string `json:"subject"`
			Message     string `json:"message"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if input.DriverEmail == "" || input.Subject == "" || input.Message == "" {
			c.JSON(400, gin.H{"error": "driverEmail, subject and message are required"})
			return
		}

		if err := m.Send(c.Request.Context(), input.DriverEmail, input.Subject, input.Message); err != nil {
			c.JSON(500, gin.H{"success": false, "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{"success": true})
	}
}

// ConfirmBooking runs the confirmation workflow: send the confirmation email
// and schedule the pickup reminder when it is still in the future.
func ConfirmBooking(wf *workflow.Workflow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ConfirmationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		result, err := wf.Confirm(c.Request.Context(), req)
		if err != nil {
			var verr *models.ValidationError
			if errors.As(err, &verr) {
				c.JSON(400, gin.H{"error": verr.Error(), "missingFields": verr.Fields})
				return
			}
			c.JSON(500, gin.H{"success": false, "error": err.Error()})
			return
		}

		message := fmt.Sprintf("Confirmation sent to %s", req.DriverEmail)
		if result.ReminderScheduled {
			message += "; pickup reminder scheduled"
		}

		c.JSON(200, gin.H{
			"success":           true,
			"message":           message,
			"confirmationSent":  result.ConfirmationSent,
			"reminderScheduled": result.ReminderScheduled,
			"reminderTime":      result.ReminderTime,
		})
	}
}

// CancelReminder removes a booking's active reminder.
func CancelReminder(wf *workflow.Workflow) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID := c.Param("bookingId")

		if err := wf.Cancel(c.Request.Context(), bookingID); err != nil {
			if errors.Is(err, models.ErrReminderNotFound) {
				c.JSON(404, gin.H{"error": "No active reminder for booking " + bookingID})
				return
			}
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"message": "Reminder cancelled for booking " + bookingID,
		})
	}
}

// ListReminders returns a snapshot of all active reminders.
func ListReminders(wf *workflow.Workflow) gin.HandlerFunc {
	return func(c *gin.Context) {
		reminders := wf.List()

		out := make([]gin.H, 0, len(reminders))
		for _, r := range reminders {
			out = append(out, gin.H{
				"bookingId":    r.BookingID,
				"reminderTime": r.ReminderTime,
				"driverEmail":  r.DriverEmail,
				"driverName":   r.DriverName,
			})
		}

		c.JSON(200, gin.H{"reminders": out})
	}
}

// TestEmail sends a delivery-check message to the given address.
func TestEmail(wf *workflow.Workflow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			TestEmail string `json:"testEmail"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if input.TestEmail == "" {
			c.JSON(400, gin.H{"error": "testEmail is required"})
			return
		}

		if err := wf.SendTest(c.Request.Context(), input.TestEmail); err != nil {
			c.JSON(500, gin.H{"success": false, "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "Test email sent to " + input.TestEmail})
	}
}

// Health reports service liveness.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "OK",
			"message":   "Notification service is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
