package validator_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/valkit/pkg/validator"
)

func newValidator(t *testing.T, fields map[string]string, opts ...validator.Option) *validator.Validator {
	t.Helper()
	opts = append([]validator.Option{validator.WithRegistry(validator.NewRegistry())}, opts...)
	return validator.New(fields, opts...)
}

func TestValidator_New(t *testing.T) {
	t.Parallel()

	v := newValidator(t, map[string]string{"name": "required|alpha", "email": "email"})
	assert.Equal(t, []string{"email", "name"}, v.Fields())
	assert.Equal(t, []validator.RuleSpec{{Name: "required"}, {Name: "alpha"}}, v.Chain("name"))
	assert.Equal(t, "en", v.Locale())
	assert.Zero(t, v.Errors().Len())

	empty := newValidator(t, nil)
	assert.Empty(t, empty.Fields())
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("passing chain", func(t *testing.T) {
		t.Parallel()
		v := newValidator(t, nil)
		v.Attach("name", "required|alpha|between:2,10")

		res, err := v.Validate(ctx, "name", "Alice")
		require.NoError(t, err)
		assert.False(t, res.IsDeferred())
		assert.True(t, res.Valid())
		assert.False(t, v.Errors().Has("name"))
	})

	t.Run("one failing rule records one message", func(t *testing.T) {
		t.Parallel()
		v := newValidator(t, map[string]string{"name": "required|alpha"})

		_, err := v.Validate(ctx, "name", "R2D2")
		require.NoError(t, err)
		assert.Equal(t, []string{"The name may only contain letters."}, v.Errors().Get("name"))

		entries := v.Errors().Entries("name")
		require.Len(t, entries, 1)
		assert.Equal(t, "alpha", entries[0].Rule)
	})

	t.Run("every failing rule is recorded in order", func(t *testing.T) {
		t.Parallel()
		v := newValidator(t, map[string]string{"code": "alpha|min:5"})

		_, err := v.Validate(ctx, "code", "ab1")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"The code may only contain letters.",
			"The code must be at least 5.",
		}, v.Errors().Get("code"))
	})

	t.Run("result is the last rule, not the conjunction", func(t *testing.T) {
		t.Parallel()
		v := newValidator(t, map[string]string{"name": "alpha|required"})

		res, err := v.Validate(ctx, "name", "R2D2")
		require.NoError(t, err)
		assert.True(t, res.Valid())
		assert.True(t, v.Errors().Has("name"))
	})

	t.Run("revalidation replaces previous errors", func(t *testing.T) {
		t.Parallel()
		v := newValidator(t, map[string]string{"name": "required"})

		_, err := v.Validate(ctx, "name", "")
		require.NoError(t, err)
		_, err = v.Validate(ctx, "name", "")
		require.NoError(t, err)
		assert.Len(t, v.Errors().Get("name"), 1)

		res, err := v.Validate(ctx, "name", "Bob")
		require.NoError(t, err)
		assert.True(t, res.Valid())
		assert.False(t, v.Errors().Has("name"))
	})

	t.Run("field without chain", func(t *testing.T) {
		t.Parallel()
		v := newValidator(t, nil)
		v.Errors().Add("ghost", "stale")

		res, err := v.Validate(ctx, "ghost", nil)
		require.NoError(t, err)
		assert.True(t, res.Valid())
		assert.False(t, v.Errors().Has("ghost"))
	})

	t.Run("params reach the predicate", func(t *testing.T) {
		t.Parallel()
		v := newValidator(t, map[string]string{"role": "in:admin,editor"})

		res, err := v.Validate(ctx, "role", "viewer")
		require.NoError(t, err)
		assert.False(t, res.Valid())
		assert.Equal(t, []string{"The selected role is invalid."}, v.Errors().Get("role"))
	})
}

func TestValidator_ConfigurationDefects(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unknown rule", func(t *testing.T) {
		t.Parallel()
		v := newValidator(t, map[string]string{"name": "required|nope"})

		_, err := v.Validate(ctx, "name", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrUnknownRule)
		assert.False(t, validator.IsValidationError(err))
		// rules before the defect already ran
		assert.True(t, v.Errors().Has("name"))
	})

	t.Run("no formatter", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		require.NoError(t, r.Extend("quiet", validator.Bundle{
			Validate: func(context.Context, any, []string) validator.Outcome { return validator.Fail() },
			Messages: map[string]validator.Formatter{"de": validator.TemplateFormatter("leise")},
		}))
		v := validator.New(map[string]string{"x": "quiet"}, validator.WithRegistry(r))

		_, err := v.Validate(ctx, "x", 1)
		assert.ErrorIs(t, err, validator.ErrNoFormatter)
		assert.False(t, v.Errors().Has("x"))

		v.SetLocale("de")
		_, err = v.Validate(ctx, "x", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"leise"}, v.Errors().Get("x"))
	})

	t.Run("validate all stops at the defect", func(t *testing.T) {
		t.Parallel()
		v := newValidator(t, map[string]string{"a": "missing_rule"})

		_, err := v.ValidateAll(ctx, map[string]any{"a": 1})
		assert.ErrorIs(t, err, validator.ErrUnknownRule)
	})
}

func TestValidator_Locale(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r := validator.NewRegistry()
	r.UpdateDictionary(map[string]map[string]validator.Formatter{
		"de": {"required": validator.TemplateFormatter("%{field} ist erforderlich.")},
	})

	v := validator.New(map[string]string{"name": "required", "mail": "email"}, validator.WithRegistry(r), validator.WithLocale("de"))
	assert.Equal(t, "de", v.Locale())

	_, err := v.ValidateAll(ctx, map[string]any{"name": "", "mail": "nope"})
	require.NoError(t, err)
	assert.Equal(t, []string{"name ist erforderlich."}, v.Errors().Get("name"))
	assert.Equal(t, []string{"The mail must be a valid email address."}, v.Errors().Get("mail"), "falls back to en")

	v.SetLocale("xx")
	_, err = v.Validate(ctx, "name", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"The name field is required."}, v.Errors().Get("name"))
}

func TestValidator_AttachDetach(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("attach replaces chain and drops errors", func(t *testing.T) {
		t.Parallel()
		v := newValidator(t, map[string]string{"name": "required"})
		_, err := v.Validate(ctx, "name", "")
		require.NoError(t, err)
		require.True(t, v.Errors().Has("name"))

		v.Attach("name", "string|max:3")
		assert.Equal(t, []validator.RuleSpec{{Name: "string"}, {Name: "max", Params: []string{"3"}}}, v.Chain("name"))
		assert.False(t, v.Errors().Has("name"))
	})

	t.Run("detach keeps recorded errors", func(t *testing.T) {
		t.Parallel()
		v := newValidator(t, map[string]string{"name": "required"})
		_, err := v.Validate(ctx, "name", "")
		require.NoError(t, err)

		v.Detach("name")
		assert.Empty(t, v.Chain("name"))
		assert.NotContains(t, v.Fields(), "name")
		assert.Equal(t, []string{"The name field is required."}, v.Errors().Get("name"))

		// the next validation of the field clears them
		res, err := v.Validate(ctx, "name", "")
		require.NoError(t, err)
		assert.True(t, res.Valid())
		assert.False(t, v.Errors().Has("name"))
	})
}

func TestValidator_ValidateAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("last field wins", func(t *testing.T) {
		t.Parallel()
		v := newValidator(t, map[string]string{"a": "required", "b": "required"})

		res, err := v.ValidateAll(ctx, map[string]any{"a": "", "b": "2"})
		require.NoError(t, err)
		assert.True(t, res.Valid(), "b is validated last")
		assert.True(t, v.Errors().Has("a"))
		assert.False(t, v.Errors().Has("b"))
	})

	t.Run("clears errors of fields not in values", func(t *testing.T) {
		t.Parallel()
		v := newValidator(t, map[string]string{"a": "required", "b": "required"})
		_, err := v.Validate(ctx, "b", "")
		require.NoError(t, err)

		_, err = v.ValidateAll(ctx, map[string]any{"a": "x"})
		require.NoError(t, err)
		assert.Zero(t, v.Errors().Len())
	})

	t.Run("empty values", func(t *testing.T) {
		t.Parallel()
		v := newValidator(t, map[string]string{"a": "required"})
		res, err := v.ValidateAll(ctx, nil)
		require.NoError(t, err)
		assert.True(t, res.Valid())
	})

	t.Run("errors as error value", func(t *testing.T) {
		t.Parallel()
		v := newValidator(t, map[string]string{"email": "required|email", "age": "integer|min:18"})

		_, err := v.ValidateAll(ctx, map[string]any{"email": "x", "age": 12})
		require.NoError(t, err)

		verrs := validator.ExtractValidationErrors(v.Errors().Err())
		require.NotNil(t, verrs)
		assert.Equal(t, []string{"age", "email"}, verrs.Fields())
		assert.Equal(t, "validation failed: age: The age must be at least 18.; email: The email must be a valid email address.", verrs.Error())
	})
}

func TestValidator_Extend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	v := newValidator(t, nil)

	var gotValue any
	var gotParams []string
	require.NoError(t, v.Extend("newrule", validator.Predicate(func(_ context.Context, value any, params []string) validator.Outcome {
		gotValue, gotParams = value, params
		return validator.Bool(value == "ok")
	})))

	v.Attach("code", "newrule:x,y")
	res, err := v.Validate(ctx, "code", "bad")
	require.NoError(t, err)
	assert.False(t, res.Valid())
	assert.Equal(t, "bad", gotValue)
	assert.Equal(t, []string{"x", "y"}, gotParams)
	assert.Equal(t, []string{"The code value is not valid."}, v.Errors().Get("code"))

	err = v.Extend("newrule", validator.Predicate(alwaysPass))
	assert.True(t, validator.IsExtensionError(err))

	// another validator sharing the registry sees the rule
	other := validator.New(map[string]string{"c": "newrule"}, validator.WithRegistry(v.Registry()))
	res, err = other.Validate(ctx, "c", "ok")
	require.NoError(t, err)
	assert.True(t, res.Valid())

	v.UpdateDictionary(map[string]map[string]validator.Formatter{
		"en": {"newrule": validator.TemplateFormatter("The %{field} is not ok (%{params}).")},
	})
	_, err = other.Validate(ctx, "c", "bad")
	require.NoError(t, err)
	assert.Equal(t, []string{"The c is not ok ()."}, other.Errors().Get("c"))
}

func TestValidator_Observer(t *testing.T) {
	t.Parallel()

	var evs []validator.Evaluation
	v := newValidator(t, map[string]string{"name": "required|alpha"},
		validator.WithObserver(validator.ObserverFunc(func(_ context.Context, ev validator.Evaluation) {
			evs = append(evs, ev)
		})))

	_, err := v.Validate(context.Background(), "name", "x1")
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, "required", evs[0].Rule)
	assert.True(t, evs[0].Valid)
	assert.Equal(t, "alpha", evs[1].Rule)
	assert.False(t, evs[1].Valid)
	assert.False(t, evs[1].Deferred)
	assert.Equal(t, "name", evs[1].Field)
	assert.Equal(t, "en", evs[1].Locale)
}

func TestValidator_NilStringerValue(t *testing.T) {
	t.Parallel()

	v := newValidator(t, map[string]string{"host": "ip", "addr": "required|regex:^10"})

	var (
		res validator.Result
		err error
	)
	require.NotPanics(t, func() {
		res, err = v.Validate(context.Background(), "host", (*net.IP)(nil))
	})
	require.NoError(t, err)
	assert.False(t, res.Valid())
	assert.True(t, v.Errors().Has("host"))

	require.NotPanics(t, func() {
		res, err = v.Validate(context.Background(), "addr", (*net.IP)(nil))
	})
	require.NoError(t, err)
	assert.False(t, res.Valid())
}
