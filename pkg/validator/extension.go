package validator

// Extension is what Extend accepts: a bare Predicate, a Bundle or a *Bundle.
type Extension interface {
	isExtension()
}

func (Predicate) isExtension() {}

// Bundle is a predicate together with its messages.
// Message becomes the English formatter; Messages entries are installed per locale
// afterwards and overwrite it. At least one of the two must be set.
type Bundle struct {
	Validate Predicate
	Message  Formatter
	Messages map[string]Formatter
}

func (Bundle) isExtension() {}

// defaultMessage is installed for rules registered as a bare predicate.
const defaultMessage = "The %{field} value is not valid."

// inspect validates ext and returns the predicate and the messages to merge.
func inspect(name string, ext Extension) (Predicate, map[string]map[string]Formatter, error) {
	if name == "" {
		return nil, nil, ErrInvalidExtension
	}

	var bundle Bundle
	switch e := ext.(type) {
	case Predicate:
		if e == nil {
			return nil, nil, ErrMissingPredicate
		}
		return e, map[string]map[string]Formatter{
			"en": {name: TemplateFormatter(defaultMessage)},
		}, nil
	case Bundle:
		bundle = e
	case *Bundle:
		if e == nil {
			return nil, nil, ErrInvalidExtension
		}
		bundle = *e
	default:
		return nil, nil, ErrInvalidExtension
	}

	if bundle.Validate == nil {
		return nil, nil, ErrMissingPredicate
	}
	if bundle.Message == nil && bundle.Messages == nil {
		return nil, nil, ErrMissingMessage
	}

	messages := make(map[string]map[string]Formatter, len(bundle.Messages)+1)
	if bundle.Message != nil {
		messages["en"] = map[string]Formatter{name: bundle.Message}
	}
	for locale, f := range bundle.Messages {
		messages[locale] = map[string]Formatter{name: f}
	}
	return bundle.Validate, messages, nil
}
