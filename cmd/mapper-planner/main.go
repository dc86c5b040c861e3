// Package main provides the CLI entrypoint for mapper-planner.
//
// mapper-planner reads a YAML declaration of a mapper (its methods, the types
// they map between and the mappers it may call) and plans how every method is
// implemented:
//   - Binds target properties to sources, constants or expressions
//   - Resolves each property through a method, a built-in conversion or identity
//   - Adopts configuration from reverse methods
//   - Reports unmapped and ambiguous properties with suggestions
package main

import "mapper-planner/cmd/mapper-planner/commands"

func main() {
	commands.Execute()
}
