package pii

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "credkit/pkg/domain-errors"
)

var today = time.Date(2026, time.October, 18, 15, 30, 0, 0, time.UTC)

func TestIsAdult(t *testing.T) {
	tests := []struct {
		name string
		dob  string
		now  time.Time
		want bool
	}{
		{name: "exactly eighteen today", dob: "2008-10-18", now: today, want: true},
		{name: "one day short", dob: "2008-10-19", now: today, want: false},
		{name: "long ago", dob: "1970-01-01", now: today, want: true},
		{name: "rfc3339 accepted", dob: "2008-10-18T23:00:00Z", now: today, want: true},
		{name: "invalid date fails closed", dob: "not-a-date", now: today, want: false},
		{name: "impossible date fails closed", dob: "2008-02-30", now: today, want: false},
		{name: "empty fails closed", dob: "", now: today, want: false},
		{
			name: "leap day today rolls cutoff to march first",
			dob:  "2006-03-01",
			now:  time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "leap day birth reaches majority on march first",
			dob:  "2004-02-29",
			now:  time.Date(2022, time.February, 28, 0, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAdult(tt.dob, tt.now))
		})
	}
}

func TestValidateContact(t *testing.T) {
	valid := func() ContactInput {
		return ContactInput{
			FirstName: "Jordan",
			LastName:  "Lee",
			Email:     "jordan@example.com",
			Phone:     "5551234567",
			DOB:       "1990-05-01",
			Last4SSN:  "1234",
		}
	}

	t.Run("valid input passes", func(t *testing.T) {
		require.NoError(t, ValidateContact(valid(), today))
	})

	t.Run("missing name wins over every other failure", func(t *testing.T) {
		in := ContactInput{LastName: "Lee", Email: "bad", DOB: "2020-01-01", Last4SSN: "1"}
		err := ValidateContact(in, today)
		require.Error(t, err)
		assert.Equal(t, MsgNameRequired, err.Error())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("missing contact", func(t *testing.T) {
		in := valid()
		in.Email, in.Phone = "", ""
		in.DOB = "2020-01-01"
		err := ValidateContact(in, today)
		require.Error(t, err)
		assert.Equal(t, MsgContactRequired, err.Error())
	})

	t.Run("phone alone is enough", func(t *testing.T) {
		in := valid()
		in.Email = ""
		require.NoError(t, ValidateContact(in, today))
	})

	t.Run("malformed email", func(t *testing.T) {
		for _, email := range []string{"jordan", "jordan@example", "jor dan@example.com", "@example.com"} {
			in := valid()
			in.Email = email
			err := ValidateContact(in, today)
			require.Error(t, err, email)
			assert.Equal(t, MsgInvalidEmail, err.Error())
			assert.Equal(t, "email", dErrors.FieldOf(err))
		}
	})

	t.Run("underage", func(t *testing.T) {
		in := valid()
		in.DOB = "2010-01-01"
		err := ValidateContact(in, today)
		require.Error(t, err)
		assert.Equal(t, MsgUnderage, err.Error())
	})

	t.Run("last4 wrong length", func(t *testing.T) {
		for _, last4 := range []string{"1", "123", "12345"} {
			in := valid()
			in.Last4SSN = last4
			err := ValidateContact(in, today)
			require.Error(t, err, last4)
			assert.Equal(t, MsgInvalidLast4, err.Error())
		}
	})
}
