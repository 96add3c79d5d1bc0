package requests

type Course struct {
	Title       string `form:"title"        sanitize:"trim,single,xss" validate:"required;max:200"`
	Description string `form:"description"  sanitize:"trim,xss"        validate:"required;max:5000"`
	MaxStudents int    `form:"max_students"                            validate:"min:0"`
	Cost        int    `form:"cost"                                    validate:"min:0"`
	// RemoveImage drops the current cover image on update.
	RemoveImage bool `form:"remove_image"`
}
