// Command seedling is the client for a shared seedling server. It keeps a
// local mirror of the tree so watering still works while offline.
package main

import (
	"os"
)

func main() {
	c := newCLI(defaultDeps())
	if err := c.execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
