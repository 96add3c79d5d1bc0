package requests

import (
	"github.com/bbyeodagung/web/pkg/password"
	"github.com/bbyeodagung/web/pkg/validator"
)

// Login is the payload of POST /users/login.
type Login struct {
	Email    string `form:"email"    sanitize:"trim,lower"`
	Password string `form:"password"`
}

// User is the payload of the user create and update forms.
type User struct {
	FirstName string `form:"first_name" sanitize:"trim,name"        validate:"required;max:100"`
	LastName  string `form:"last_name"  sanitize:"trim,name"        validate:"required;max:100"`
	Email     string `form:"email"      sanitize:"trim,lower,email" validate:"required;email;max:254"`
	ZipCode   string `form:"zip_code"   sanitize:"trim"             validate:"required;len:5;digits"`
	// bcrypt ignores bytes past 72.
	Password string `form:"password" validate:"max:72"`

	// Update leaves the password unchanged when it is empty.
	Update bool `form:"-"`
}

func (u User) Validate() error {
	if u.Password == "" && u.Update {
		return nil
	}
	return validator.Apply(
		validator.RequiredString("password", u.Password),
		validator.MinLenString("password", u.Password, password.MinLength),
	)
}
