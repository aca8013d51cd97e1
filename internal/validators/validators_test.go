package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required,notblank"`
	Date  string `validate:"required,isodate"`
	Phone string `validate:"omitempty,min=6,max=30"`
	Email string `validate:"omitempty,email"`
}

type patch struct {
	Name  *string `validate:"omitnil,notblank,max=100"`
	Phone *string `validate:"omitnil,eq=|min=6,max=30"`
	Email *string `validate:"omitnil,eq=|email,max=100"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New(validator.WithRequiredStructEnabled())
	require.NoError(t, Register(v))
	return v
}

func ptr(s string) *string { return &s }

func TestIsoDate(t *testing.T) {
	v := newValidator(t)

	require.NoError(t, v.Struct(sample{Name: "Ana", Date: "2024-02-29"}))
	require.Error(t, v.Struct(sample{Name: "Ana", Date: "2023-02-29"}))
	require.Error(t, v.Struct(sample{Name: "Ana", Date: "01/05/2024"}))
}

func TestNotBlank(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(sample{Name: "   ", Date: "2024-01-01"})
	require.Equal(t, map[string]string{"name": "name must not be blank"}, Fields(err))

	require.NoError(t, v.Struct(patch{}))
	require.Equal(t,
		map[string]string{"name": "name must not be blank"},
		Fields(v.Struct(patch{Name: ptr("\t ")})),
	)
}

func TestEmptyClearsOptionalPointer(t *testing.T) {
	v := newValidator(t)

	require.NoError(t, v.Struct(patch{Phone: ptr(""), Email: ptr("")}))
	require.NoError(t, v.Struct(patch{Phone: ptr("555-1234"), Email: ptr("ana@example.com")}))

	fields := Fields(v.Struct(patch{Phone: ptr("123"), Email: ptr("nope")}))
	require.Equal(t, "phone must be empty or at least 6 characters", fields["phone"])
	require.Equal(t, "email must be empty or a valid email", fields["email"])
}

func TestMessage(t *testing.T) {
	err := newValidator(t).Struct(sample{Date: "x", Phone: "123", Email: "nope"})
	require.Error(t, err)

	msg := Message(err)
	require.Contains(t, msg, "name is required")
	require.Contains(t, msg, "date must be a date in YYYY-MM-DD format")
	require.Contains(t, msg, "phone must be at least 6 characters")
	require.Contains(t, msg, "email must be a valid email")
}

func TestFields(t *testing.T) {
	fields := Fields(newValidator(t).Struct(sample{Name: "Ana", Date: "2024-01-01", Email: "x"}))
	require.Equal(t, map[string]string{"email": "email must be a valid email"}, fields)
	require.Nil(t, Fields(nil))
}
