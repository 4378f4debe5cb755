package app

import (
	"github.com/regenrek/kitproj/internal/cli/initcfg"
	"github.com/regenrek/kitproj/internal/cli/kittens"
	"github.com/regenrek/kitproj/internal/cli/panes"
	"github.com/regenrek/kitproj/internal/cli/root"
	"github.com/regenrek/kitproj/internal/cli/version"
)

func registerAll(reg *root.Registry) {
	if reg == nil {
		return
	}
	kittens.Register(reg)
	panes.Register(reg)
	initcfg.Register(reg)
	version.Register(reg)
}
