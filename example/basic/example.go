package example

import (
	"embed"

	"github.com/vippsas/sqlscript"
)

//go:embed *.sql
//go:embed procs/*.pgsql
var scriptfs embed.FS

var Scripts = sqlscript.MustInclude(sqlscript.Options{Config: sqlscript.DefaultConfig()}, scriptfs)
