// Command archpilot is a natural-language annotation copilot for building
// design documents.
package main

import "github.com/Cyclone1070/archpilot/internal/cli"

func main() {
	cli.Execute()
}
