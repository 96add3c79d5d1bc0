package requests_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbyeodagung/web/pkg/sanitizer"
	"github.com/bbyeodagung/web/pkg/validator"
	"github.com/bbyeodagung/web/requests"
)

// check runs the same pipeline as Context.Bind after binding.
func check(t *testing.T, v interface{ Validate() error }) validator.ValidationErrors {
	t.Helper()
	require.NoError(t, sanitizer.SanitizeStruct(v))

	var ve validator.ValidationErrors
	for _, err := range []error{validator.ValidateStruct(v), v.Validate()} {
		if err == nil {
			continue
		}
		require.True(t, validator.IsValidationError(err), err)
		ve = append(ve, validator.ExtractValidationErrors(err)...)
	}
	return ve
}

func TestUser(t *testing.T) {
	t.Parallel()

	valid := func() *requests.User {
		return &requests.User{
			FirstName: " jon ",
			LastName:  "wexler",
			Email:     "  Jon@Example.COM ",
			ZipCode:   "12345",
			Password:  "secret123",
		}
	}

	t.Run("valid create", func(t *testing.T) {
		t.Parallel()
		u := valid()
		assert.Empty(t, check(t, u))
		assert.Equal(t, "jon@example.com", u.Email)
		assert.Equal(t, "Jon", u.FirstName)
	})

	tests := []struct {
		name   string
		mutate func(u *requests.User)
		field  string
	}{
		{"bad email", func(u *requests.User) { u.Email = "not-an-email" }, "email"},
		{"short zip", func(u *requests.User) { u.ZipCode = "1234" }, "zip_code"},
		{"letters in zip", func(u *requests.User) { u.ZipCode = "12a45" }, "zip_code"},
		{"missing password", func(u *requests.User) { u.Password = "" }, "password"},
		{"short password", func(u *requests.User) { u.Password = "short" }, "password"},
		{"missing first name", func(u *requests.User) { u.FirstName = "  " }, "first_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u := valid()
			tt.mutate(u)
			assert.True(t, check(t, u).Has(tt.field))
		})
	}

	t.Run("update keeps empty password", func(t *testing.T) {
		t.Parallel()
		u := valid()
		u.Password = ""
		u.Update = true
		assert.Empty(t, check(t, u))

		u.Password = "short"
		assert.True(t, check(t, u).Has("password"))
	})
}

func TestSubscriber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		zip  string
		want bool
	}{
		{"10000", true},
		{"99999", true},
		{"09999", false},
		{"123456", false},
	}
	for _, tt := range tests {
		t.Run(tt.zip, func(t *testing.T) {
			t.Parallel()
			s := &requests.Subscriber{Name: "Jane", Email: "jane@example.com", ZipCode: tt.zip}
			assert.Equal(t, tt.want, check(t, s).IsEmpty())
		})
	}
}

func TestTrain(t *testing.T) {
	t.Parallel()

	tr := &requests.Train{
		LineName: "KTX", TrainNumber: "ktx101", Origin: "Seoul", Destination: "Busan",
		DepartsAt: "06:00", ArrivesAt: "08:40", Fare: 59800,
	}
	assert.Empty(t, check(t, tr))
	assert.Equal(t, "KTX101", tr.TrainNumber)

	tr.DepartsAt = "25:00"
	tr.Destination = "Seoul"
	tr.Fare = -1
	ve := check(t, tr)
	assert.True(t, ve.Has("departs_at"))
	assert.True(t, ve.Has("destination"))
	assert.True(t, ve.Has("fare"))
}
