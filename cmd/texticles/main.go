// Command texticles opens a window in which a particle swarm spells out the
// given text. The snapshot subcommand renders frames headlessly to PNG.
package main

import (
	"log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
