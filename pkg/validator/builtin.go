package validator

// builtinRules returns a fresh map of the rules every registry starts with.
// Their English messages live in locales/en.yaml.
func builtinRules() map[string]Predicate {
	return map[string]Predicate{
		"required":    ruleRequired,
		"string":      ruleString,
		"numeric":     ruleNumeric,
		"integer":     ruleInteger,
		"boolean":     ruleBoolean,
		"min":         ruleMin,
		"max":         ruleMax,
		"size":        ruleSize,
		"between":     ruleBetween,
		"in":          ruleIn,
		"not_in":      ruleNotIn,
		"email":       ruleEmail,
		"url":         ruleURL,
		"ip":          ruleIP,
		"ipv4":        ruleIPv4,
		"ipv6":        ruleIPv6,
		"mac":         ruleMAC,
		"alpha":       ruleAlpha,
		"alpha_num":   ruleAlphaNum,
		"alpha_dash":  ruleAlphaDash,
		"digits":      ruleDigits,
		"regex":       ruleRegex,
		"not_regex":   ruleNotRegex,
		"uuid":        ruleUUID,
		"date":        ruleDate,
		"before":      ruleBefore,
		"after":       ruleAfter,
		"slug":        ruleSlug,
		"hex":         ruleHex,
		"base64":      ruleBase64,
		"credit_card": ruleCreditCard,
		"phone":       rulePhone,
		"tag":         ruleTag,
	}
}
