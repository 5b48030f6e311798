// Package autoload initializes the global logger from the environment as a
// side effect of import.
package autoload

import (
	configx "github.com/helpline-ai/helpline/pkg/config"
	logx "github.com/helpline-ai/helpline/pkg/logger"
)

func init() {
	conf := configx.MustLoad[logx.Config]("LOG")
	logx.Init(*conf)
}
