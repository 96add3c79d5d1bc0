package requests

import "time"

type Talk struct {
	Title       string    `form:"title"        sanitize:"trim,single,xss" validate:"required;max:200"`
	Speaker     string    `form:"speaker"      sanitize:"trim,name"       validate:"required;max:100"`
	Description string    `form:"description"  sanitize:"trim,xss"        validate:"max:5000"`
	ScheduledAt time.Time `form:"scheduled_at"                            validate:"required"`
	Location    string    `form:"location"     sanitize:"trim,single,xss" validate:"max:200"`
}
