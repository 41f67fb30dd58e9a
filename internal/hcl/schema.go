package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// gridFile is the HCL-specific schema of one grid file. Top-level `on`
// blocks populate the class-wide fallback registry.
type gridFile struct {
	Globals []*bindingBlock `hcl:"on,block"`
	Bridges []*bridgeBlock  `hcl:"bridge,block"`
}

// bridgeBlock is the HCL-specific shape of a `bridge` block.
type bridgeBlock struct {
	Name     string          `hcl:"name,label"`
	Feeds    []*feedBlock    `hcl:"feed,block"`
	Bindings []*bindingBlock `hcl:"on,block"`
}

// feedBlock carries its body undecoded; the feed module registered under
// Kind decodes its own arguments from it.
type feedBlock struct {
	Kind string   `hcl:"kind,label"`
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// bindingBlock is the HCL-specific shape of an `on` block.
type bindingBlock struct {
	Event   string `hcl:"event,label"`
	Handler string `hcl:"handler"`
	Done    bool   `hcl:"done,optional"`
}
