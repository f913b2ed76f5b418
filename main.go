package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/nvkalinin/datepicker/cmd"
	"github.com/nvkalinin/datepicker/log"
)

type CLI struct {
	Debug bool `short:"d" long:"debug" env:"DEBUG" description:"Write debug messages to the log."`

	Server  cmd.Server  `command:"server" description:"Run the REST API with a session store."`
	Month   cmd.Month   `command:"month" description:"Print a month grid."`
	Convert cmd.Convert `command:"convert" description:"Convert a date between calendar systems."`
	Backup  cmd.Backup  `command:"backup" description:"Download a backup of the bolt session store."`
}

func main() {
	cli := &CLI{}
	parser := flags.NewParser(cli, flags.Default)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		log.Setup(cli.Debug, nil)

		if cmd != nil {
			return cmd.Execute(args)
		}
		return nil
	}

	if _, err := parser.Parse(); err != nil {
		flagsErr, isFlagsErr := err.(flags.ErrorType)
		if isFlagsErr && flagsErr == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
