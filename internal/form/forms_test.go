package form

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validRegister() RegisterForm {
	return RegisterForm{
		Username:        "alice",
		FirstName:       "Alice",
		LastName:        "Liddell",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
	}
}

func TestRegisterForm(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		f := validRegister()
		require.Nil(t, Validate(&f))
	})

	tests := []struct {
		name   string
		mutate func(*RegisterForm)
		field  string
	}{
		{"missing digit", func(f *RegisterForm) { f.Password, f.ConfirmPassword = "Abcdefg!", "Abcdefg!" }, "password"},
		{"missing uppercase", func(f *RegisterForm) { f.Password, f.ConfirmPassword = "abcdef1!", "abcdef1!" }, "password"},
		{"missing lowercase", func(f *RegisterForm) { f.Password, f.ConfirmPassword = "ABCDEF1!", "ABCDEF1!" }, "password"},
		{"missing special", func(f *RegisterForm) { f.Password, f.ConfirmPassword = "Abcdefg1", "Abcdefg1" }, "password"},
		{"too short", func(f *RegisterForm) { f.Password, f.ConfirmPassword = "Ab1!", "Ab1!" }, "password"},
		{"too long", func(f *RegisterForm) {
			pw := "Aa1!" + strings.Repeat("x", 253)
			f.Password, f.ConfirmPassword = pw, pw
		}, "password"},
		{"confirmation mismatch", func(f *RegisterForm) { f.ConfirmPassword = "Abcdef1?" }, "confirm_password"},
		{"missing username", func(f *RegisterForm) { f.Username = "" }, "username"},
		{"username with slash", func(f *RegisterForm) { f.Username = "../alice" }, "username"},
		{"missing first name", func(f *RegisterForm) { f.FirstName = "" }, "first_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validRegister()
			tt.mutate(&f)

			errs := Validate(&f)
			require.NotNil(t, errs)
			require.True(t, errs.Has(tt.field), "expected error on %s, got %v", tt.field, errs)
		})
	}
}

func TestPasswordPolicyBoundaries(t *testing.T) {
	require.NoError(t, PasswordPolicyError("Abcdef1!"))
	require.NoError(t, PasswordPolicyError("Aa1!"+strings.Repeat("x", 252)))
	require.Error(t, PasswordPolicyError("Abcde1!"))
	require.Error(t, PasswordPolicyError("Aa1!"+strings.Repeat("x", 253)))

	for _, special := range PasswordSpecials {
		require.NoError(t, PasswordPolicyError("Abcdef1"+string(special)))
	}
	require.Error(t, PasswordPolicyError("Abcdef1?"))

	// Letter and digit classes are ASCII only.
	for _, pw := range []string{"abcdefgÄ1!", "ÀBCDEFGé1!", "Abcdefg١!"} {
		require.Error(t, PasswordPolicyError(pw), pw)
	}
	require.NoError(t, PasswordPolicyError("Äbcdefg1!A"))
}

func TestRegisterNormalize(t *testing.T) {
	f := RegisterForm{Username: "  bob ", FirstName: " Bob", LastName: "Smith ", Password: " Pw1!xxxX "}
	f.Normalize()
	require.Equal(t, "bob", f.Username)
	require.Equal(t, "Bob", f.FirstName)
	require.Equal(t, "Smith", f.LastName)
	require.Equal(t, " Pw1!xxxX ", f.Password)
}

func TestErrorsMessage(t *testing.T) {
	f := validRegister()
	f.Password, f.ConfirmPassword = "Abcdefg!", "Abcdefg!"

	errs := Validate(&f)
	require.Len(t, errs, 1)
	require.Equal(t, "password", errs[0].Rule)
	require.Equal(t, "needs a digit", errs[0].Message)
	require.Contains(t, errs.Error(), "password: needs a digit")
}

func TestProfileForm(t *testing.T) {
	t.Run("valid birthday", func(t *testing.T) {
		f := ProfileForm{Education: " BSc ", Birthday: "1990-04-02"}
		require.Nil(t, Validate(&f))

		p := f.Profile()
		require.Equal(t, "BSc", p.Education)
		require.NotNil(t, p.Birthday)
		require.True(t, p.Birthday.Equal(time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("empty birthday", func(t *testing.T) {
		f := ProfileForm{}
		require.Nil(t, Validate(&f))
		require.Nil(t, f.Profile().Birthday)
	})

	t.Run("bad birthday", func(t *testing.T) {
		f := ProfileForm{Birthday: "02/04/1990"}
		errs := Validate(&f)
		require.True(t, errs.Has("birthday"))
	})

	t.Run("field too long", func(t *testing.T) {
		f := ProfileForm{Movie: strings.Repeat("m", 201)}
		require.True(t, Validate(&f).Has("movie"))
	})

	t.Run("padded fields", func(t *testing.T) {
		f := ProfileForm{Birthday: " 1990-04-02\t", Music: "  " + strings.Repeat("m", 200) + "  "}
		f.Normalize()
		require.Nil(t, Validate(&f))
		require.Equal(t, "1990-04-02", f.Birthday)
		require.Len(t, f.Music, 200)
		require.NotNil(t, f.Profile().Birthday)
	})
}

func TestCommentAndFriendForms(t *testing.T) {
	require.True(t, Validate(&CommentForm{}).Has("comment"))
	require.Nil(t, Validate(&CommentForm{Comment: "hi"}))
	require.True(t, Validate(&FriendForm{}).Has("username"))
	require.Nil(t, Validate(&LoginForm{Username: "a", Password: "b"}))
}

func TestLoginRemember(t *testing.T) {
	for _, v := range []string{"on", "true", "1", "YES"} {
		require.True(t, LoginForm{RememberMe: v}.Remember(), v)
	}
	for _, v := range []string{"", "off", "false", "0"} {
		require.False(t, LoginForm{RememberMe: v}.Remember(), v)
	}
}
