package email

const (
	subjectBookingRequestFmt  = "New catering request: %s"
	subjectBookingApproved    = "Your catering booking is confirmed"
	subjectBookingRejected    = "About your catering request"
	subjectBookingReminderFmt = "Reminder: your event on %s"
	subjectContactMessageFmt  = "New contact message from %s"
)
