package redis

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/valkit/pkg/async"
	"github.com/dmitrymomot/valkit/pkg/validator"
)

// Rule names registered by Register.
const (
	RuleExists = "exists"
	RuleUnique = "unique"
)

// Membership resolves set membership rules against Redis.
// Every element of the value becomes one sub-check, so "exists:tags" on
// []string{"a", "b"} passes only when both are members of the set.
type Membership struct {
	client redis.UniversalClient
	prefix string
}

// NewMembership creates membership rules reading sets under prefix.
func NewMembership(client redis.UniversalClient, prefix string) *Membership {
	return &Membership{client: client, prefix: prefix}
}

// MemberOf is a deferred predicate passing when every element is in the set named by params[0].
func (m *Membership) MemberOf(ctx context.Context, value any, params []string) validator.Outcome {
	return m.lookup(ctx, value, params, true)
}

// NotMemberOf is a deferred predicate passing when no element is in the set named by params[0].
func (m *Membership) NotMemberOf(ctx context.Context, value any, params []string) validator.Outcome {
	return m.lookup(ctx, value, params, false)
}

func (m *Membership) lookup(ctx context.Context, value any, params []string, want bool) validator.Outcome {
	if len(params) == 0 || params[0] == "" {
		return validator.Defer(async.Rejected[[]validator.Check](ErrMissingSetName))
	}
	key := m.prefix + params[0]
	members := elements(value)
	if len(members) == 0 {
		return validator.Defer(async.Resolved([]validator.Check{}))
	}

	return validator.DeferFunc(ctx, func(ctx context.Context) ([]validator.Check, error) {
		found, err := m.client.SMIsMember(ctx, key, members...).Result()
		if err != nil {
			return nil, errors.Join(ErrMembershipLookup, err)
		}
		checks := make([]validator.Check, len(found))
		for i, ok := range found {
			checks[i] = validator.Check{Valid: ok == want}
		}
		return checks, nil
	})
}

// Register installs RuleExists and RuleUnique with English messages.
func (m *Membership) Register(r *validator.Registry) error {
	return errors.Join(
		r.Extend(RuleExists, validator.Bundle{
			Validate: m.MemberOf,
			Message:  validator.TemplateFormatter("The selected %{field} is invalid."),
		}),
		r.Extend(RuleUnique, validator.Bundle{
			Validate: m.NotMemberOf,
			Message:  validator.TemplateFormatter("The %{field} has already been taken."),
		}),
	)
}

// elements flattens slices and arrays; any other non-nil value is a single element.
func elements(value any) []any {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if _, isBytes := value.([]byte); isBytes {
			return []any{string(value.([]byte))}
		}
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = fmt.Sprint(rv.Index(i).Interface())
		}
		return out
	}
	return []any{fmt.Sprint(value)}
}
