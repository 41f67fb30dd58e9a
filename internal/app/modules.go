package app

import (
	"github.com/vk/streambridgego/internal/registry"
	"github.com/vk/streambridgego/modules/print"
	"github.com/vk/streambridgego/modules/socketio"
)

// coreModules is the default set of modules compiled into the binary. Tests
// pass their own module lists to NewApp to substitute fakes.
var coreModules = []registry.Module{
	&socketio.Module{},
	&print.Module{},
}
