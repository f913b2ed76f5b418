// Package cmd holds the sub-commands of the binary.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/locale"
)

func makeUrl(serverUrl string, path string) string {
	return strings.TrimRight(serverUrl, "/") + path
}

// readJsonError extracts the message of a {"msg": ...} error body.
func readJsonError(body []byte) error {
	restErr := &struct {
		Msg string `json:"msg"`
	}{}
	if err := json.Unmarshal(body, restErr); err != nil {
		return fmt.Errorf("cannot read error msg: %w", err)
	}
	return errors.New(restErr.Msg)
}

// lookup resolves the calendar and one of the builtin locales by code.
func lookup(cals *calendar.Registry, calCode, localeCode string) (calendar.Calendar, locale.Locale, error) {
	t, ok := calendar.ParseType(calCode)
	if !ok {
		return nil, locale.Locale{}, fmt.Errorf("unknown calendar %s", calCode)
	}
	cal, ok := cals.Lookup(t)
	if !ok {
		return nil, locale.Locale{}, fmt.Errorf("calendar %s is not registered", calCode)
	}

	locales, err := locale.Builtin()
	if err != nil {
		return nil, locale.Locale{}, err
	}
	if !locales.Has(localeCode) {
		return nil, locale.Locale{}, fmt.Errorf("unknown locale %s", localeCode)
	}
	l, _ := locales.Get(localeCode)
	return cal, l, nil
}
