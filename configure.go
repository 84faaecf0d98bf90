package main

import (
	"github.com/urfave/cli"
)

func configure(app *cli.App) {
	serveCMD := makeServeCMD()
	lookupCMD := makeLookupCMD()
	app.Commands = []cli.Command{serveCMD, lookupCMD}
}
