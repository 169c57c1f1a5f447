package person

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
)

const (
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldEnabled    = "enabled"
	FieldAuthorised = "authorised"
)

var (
	ErrFormDataIncorrect = errors.New("form data incorrect")
	ErrBooleanRequired   = errors.New("boolean required")
)

// FormFields lists the keys every create or update payload must carry.
var FormFields = []string{FieldFirstName, FieldLastName, FieldEnabled, FieldAuthorised}

// Form is a decoded create/update payload. Values are whatever the client sent:
// form bodies only ever produce strings, JSON bodies may produce any JSON type.
type Form map[string]any

// DecodeForm decodes a JSON object body. Bodies written with single quotes
// are retried once with double quotes.
func DecodeForm(body []byte) (Form, error) {
	var form Form
	err := binding.JSON.BindBody(body, &form)
	if err == nil {
		return form, nil
	}
	quoted := strings.ReplaceAll(string(body), "'", `"`)
	if quoted == string(body) {
		return nil, err
	}
	form = nil
	if retryErr := binding.JSON.BindBody([]byte(quoted), &form); retryErr != nil {
		return nil, err
	}
	return form, nil
}

// CheckForm validates a payload and converts it into a Person without an ID.
func CheckForm(form Form) (*Person, error) {
	for _, key := range FormFields {
		if _, ok := form[key]; !ok {
			return nil, ErrFormDataIncorrect
		}
	}

	firstName, ok := form[FieldFirstName].(string)
	if !ok {
		return nil, ErrFormDataIncorrect
	}
	lastName, ok := form[FieldLastName].(string)
	if !ok {
		return nil, ErrFormDataIncorrect
	}

	enabled, err := checkBoolean(FieldEnabled, form[FieldEnabled])
	if err != nil {
		return nil, err
	}
	authorised, err := checkBoolean(FieldAuthorised, form[FieldAuthorised])
	if err != nil {
		return nil, err
	}

	return NewPerson(firstName, lastName, enabled, authorised), nil
}

func checkBoolean(field string, value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(v) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, fmt.Errorf("%w for %q", ErrBooleanRequired, field)
}
