package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/nvkalinin/datepicker/locale"
	"github.com/nvkalinin/datepicker/output"
	"github.com/nvkalinin/datepicker/parse"
)

type Convert struct {
	From   string `long:"from" short:"f" env:"FROM" choice:"jalali" choice:"gregorian" choice:"hijri" choice:"chinese" default:"gregorian" description:"Calendar of the input date."`
	To     string `long:"to" short:"t" env:"TO" choice:"jalali" choice:"gregorian" choice:"hijri" choice:"chinese" default:"jalali" description:"Calendar of the result."`
	Layout string `long:"layout" env:"LAYOUT" default:"YYYY/MM/DD" description:"Output layout: YYYY YY MMMM MM M DD D HH H mm m dddd."`
	Locale string `long:"locale" short:"l" env:"LOCALE" default:"en" description:"Locale of names and digits."`

	Args struct {
		Date string `positional-arg-name:"date" required:"yes" description:"Date in the source calendar, e.g. 2024-03-20."`
	} `positional-args:"yes"`

	cals *calendar.Registry
	out  io.Writer
}

func (c *Convert) Execute(args []string) error {
	cals := c.cals
	if cals == nil {
		cals = calendar.DefaultRegistry()
	}
	from, _, err := lookup(cals, c.From, c.Locale)
	if err != nil {
		return err
	}
	to, l, err := lookup(cals, c.To, c.Locale)
	if err != nil {
		return err
	}

	d, err := parse.Parser{Cal: from, Strict: true}.Parse(c.Args.Date)
	if err != nil {
		return err
	}
	if d == nil {
		return errors.New("date is required")
	}

	res, err := calendar.Convert(from, to, *d)
	if err != nil {
		return err
	}
	s, err := output.FormatDate(to, res, c.Layout, &l)
	if err != nil {
		return err
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintln(out, locale.ToLocalDigits(s, l.NumberSystem))
	return err
}
