// Command counterbot runs the counter bot.
//
// Configuration comes from the YAML file named by CONFIG_PATH (default
// config.yaml, optional) overlaid by environment variables such as BOT_TOKEN.
package main

import (
	"log"

	"github.com/m3rciful/counterbot/core/bootstrap"
	corecmd "github.com/m3rciful/counterbot/core/cmd"
	coreconfig "github.com/m3rciful/counterbot/core/config"
	"github.com/m3rciful/counterbot/internal/counterbot"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		NewApp: func(cfg *coreconfig.Config, infra *bootstrap.Result) (corecmd.App, error) {
			app, err := counterbot.New(cfg, infra)
			if err != nil {
				return nil, err
			}
			return app, nil
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
