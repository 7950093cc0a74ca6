package validator

import (
	"context"
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	alphaRegex        = regexp.MustCompile(`^[\pL\pM]+$`)
	alphaNumRegex     = regexp.MustCompile(`^[\pL\pM\pN]+$`)
	alphaDashRegex    = regexp.MustCompile(`^[\pL\pM\pN_-]+$`)
	digitsRegex       = regexp.MustCompile(`^[0-9]+$`)
	slugRegex         = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	hexStringRegex    = regexp.MustCompile(`^[0-9A-Fa-f]+$`)
	base64Regex       = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)
	cardNumberCleaner = strings.NewReplacer(" ", "", "-", "")
)

var ruleEmail = stringRule(func(value string, _ []string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}

	// Display names are not accepted
	if addr.Address != value {
		return false
	}

	localPart, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || localPart == "" {
		return false
	}

	// Domain must contain at least one dot and cannot start/end with dot
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
})

// ruleURL requires a scheme and a host. Optional params restrict the scheme.
var ruleURL = stringRule(func(value string, params []string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	u, err := url.ParseRequestURI(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	if len(params) == 0 {
		return true
	}
	for _, scheme := range params {
		if strings.EqualFold(u.Scheme, scheme) {
			return true
		}
	}
	return false
})

var ruleIP = stringRule(func(value string, _ []string) bool {
	return net.ParseIP(value) != nil
})

var ruleIPv4 = stringRule(func(value string, _ []string) bool {
	ip := net.ParseIP(value)
	return ip != nil && ip.To4() != nil && !strings.Contains(value, ":")
})

var ruleIPv6 = stringRule(func(value string, _ []string) bool {
	ip := net.ParseIP(value)
	return ip != nil && strings.Contains(value, ":")
})

var ruleMAC = stringRule(func(value string, _ []string) bool {
	_, err := net.ParseMAC(value)
	return err == nil
})

var ruleAlpha = stringRule(func(value string, _ []string) bool {
	return alphaRegex.MatchString(value)
})

var ruleAlphaNum = stringRule(func(value string, _ []string) bool {
	return alphaNumRegex.MatchString(value)
})

var ruleAlphaDash = stringRule(func(value string, _ []string) bool {
	return alphaDashRegex.MatchString(value)
})

// ruleDigits accepts ASCII digits only; "digits:N" also requires exactly N of them.
func ruleDigits(_ context.Context, value any, params []string) Outcome {
	s, ok := stringValue(value)
	if !ok {
		if n, isNum := numberValue(value); isNum && n >= 0 {
			s = strconv.FormatFloat(n, 'f', -1, 64)
		} else {
			return Fail()
		}
	}
	if !digitsRegex.MatchString(s) {
		return Fail()
	}
	if len(params) > 0 {
		n, err := strconv.Atoi(params[0])
		return Bool(err == nil && len(s) == n)
	}
	return Pass()
}

var ruleSlug = stringRule(func(value string, _ []string) bool {
	return slugRegex.MatchString(value)
})

var ruleHex = stringRule(func(value string, _ []string) bool {
	return hexStringRegex.MatchString(value)
})

var ruleBase64 = stringRule(func(value string, _ []string) bool {
	if strings.TrimSpace(value) == "" || len(value)%4 != 0 {
		return false
	}
	return base64Regex.MatchString(value)
})

// ruleCreditCard checks 13 to 19 digits with a valid Luhn checksum. Spaces and dashes are ignored.
var ruleCreditCard = stringRule(func(value string, _ []string) bool {
	cleaned := cardNumberCleaner.Replace(value)
	if !digitsRegex.MatchString(cleaned) || len(cleaned) < 13 || len(cleaned) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		digit := int(cleaned[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
})
