// Command jsbld runs the build tasks of the JavaScript project in the working
// directory.
//
//	go run github.com/fredrikaverpil/jsbld/cmd/jsbld@latest -h
//	go run github.com/fredrikaverpil/jsbld/cmd/jsbld@latest -import=eslint,npm eslint
package main

import (
	"github.com/fredrikaverpil/jsbld"
	"github.com/fredrikaverpil/jsbld/cli"
)

func main() {
	cli.Main(jsbld.Config{})
}
