package mailer

import (
	"fmt"
	"time"

	"github.com/aloc23/priority-transfers-admin-sub001/internal/models"
)

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #1a73e8; margin: 0;">Priority Transfers</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>© 2026 Priority Transfers. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`

const timeLayout = "Mon, 02 Jan 2006 15:04"

// ConfirmationEmail builds the subject and body for the booking confirmation
// sent to the driver right after a booking is confirmed.
func ConfirmationEmail(req models.ConfirmationRequest) (subject, body string) {
	subject = fmt.Sprintf("Booking Confirmed - %s", req.BookingID)
	body = fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking Confirmed</h1>
					<p>Hello %s,</p>
					<p>A %s booking has been confirmed and assigned to you.</p>
					<table style="width: 100%%; margin: 20px 0;">
						<tr><td style="padding: 5px 10px;"><strong>Booking</strong></td><td>%s</td></tr>
						<tr><td style="padding: 5px 10px;"><strong>Customer</strong></td><td>%s</td></tr>
						<tr><td style="padding: 5px 10px;"><strong>Pickup</strong></td><td>%s</td></tr>
						<tr><td style="padding: 5px 10px;"><strong>Destination</strong></td><td>%s</td></tr>
						<tr><td style="padding: 5px 10px;"><strong>Pickup time</strong></td><td>%s</td></tr>
					</table>
					<p>Best regards,<br>The Priority Transfers Team</p>
				</div>`+emailFooter,
		req.DriverName, req.BookingType, req.BookingID, req.Customer,
		req.Pickup, req.Destination, req.PickupDateTime.Format(timeLayout))
	return subject, body
}

// ReminderEmail builds the subject and body for the pickup reminder sent to
// the driver shortly before the pickup time.
func ReminderEmail(info models.ReminderInfo, pickupAt time.Time) (subject, body string) {
	subject = fmt.Sprintf("Pickup Reminder - %s", info.BookingID)
	body = fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Upcoming Pickup</h1>
					<p>Hello %s,</p>
					<p>This is a reminder for your upcoming %s pickup at <strong>%s</strong>.</p>
					<table style="width: 100%%; margin: 20px 0;">
						<tr><td style="padding: 5px 10px;"><strong>Booking</strong></td><td>%s</td></tr>
						<tr><td style="padding: 5px 10px;"><strong>Customer</strong></td><td>%s</td></tr>
						<tr><td style="padding: 5px 10px;"><strong>Pickup</strong></td><td>%s</td></tr>
						<tr><td style="padding: 5px 10px;"><strong>Destination</strong></td><td>%s</td></tr>
					</table>
					<p>Best regards,<br>The Priority Transfers Team</p>
				</div>`+emailFooter,
		info.DriverName, info.BookingType, pickupAt.Format(timeLayout),
		info.BookingID, info.Customer, info.Pickup, info.Destination)
	return subject, body
}

// TestEmail builds the subject and body for a delivery check message.
func TestEmail() (subject, body string) {
	subject = "Test Email - Priority Transfers"
	body = fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Test Email</h1>
					<p>Hello,</p>
					<p>This is a test message from the Priority Transfers notification service.</p>
					<p>If you received it, outbound email is configured correctly.</p>
					<p>Sent at %s.</p>
				</div>`+emailFooter,
		time.Now().Format(timeLayout))
	return subject, body
}
