package validator

import (
	"context"
	"strconv"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// ruleUUID validates the canonical 36-character form; "uuid:N" also pins the version.
var ruleUUID = stringRule(func(value string, params []string) bool {
	// Fast rejection: check length and hyphen positions before parsing
	if len(value) != 36 || value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
		return false
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return false
	}
	if len(params) == 0 || params[0] == "" {
		return true
	}
	version, err := strconv.Atoi(params[0])
	return err == nil && id.Version() == uuid.Version(version)
})

// rulePhone validates a phone number. "phone:DE" parses national numbers for that region;
// without a region the number must be in international form.
var rulePhone = stringRule(func(value string, params []string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	region := ""
	if len(params) > 0 {
		region = strings.ToUpper(strings.TrimSpace(params[0]))
	}
	number, err := phonenumbers.Parse(trimmed, region)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(number)
})

var tagValidator = sync.OnceValue(func() *playground.Validate {
	return playground.New(playground.WithRequiredStructEnabled())
})

// ruleTag delegates to go-playground validator tags, e.g. "tag:required,hostname".
// Params are joined back with ',' since that is the tag separator.
func ruleTag(_ context.Context, value any, params []string) Outcome {
	tags := strings.Join(params, ",")
	if tags == "" {
		return Fail()
	}
	return Bool(safeVar(value, tags))
}

// safeVar reports a malformed tag as a failed check instead of a panic.
func safeVar(value any, tags string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return tagValidator().Var(value, tags) == nil
}
