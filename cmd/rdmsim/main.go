// Command rdmsim simulates a fleet of RDM responders declared in a YAML
// configuration file, for exercising RDM controllers without physical
// DMX512 hardware.
package main

import "github.com/openlighting/rdmresponder/cmd/rdmsim/commands"

func main() {
	commands.Execute()
}
