// objtool inspects and rewrites OBJ meshes and samples camera paths without
// opening a window.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "normalize", "norm":
		err = cmdNormalize(args)
	case "path":
		err = cmdPath(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - OBJ mesh and camera path utility

Usage:
  objtool <command> [options]

Commands:
  info <file.obj>                      Show geometry, normal and material information
  normalize [options] <in.obj> <out.obj>
                                       Fit into the unit cube and fill in normals
  path [options]                       Sample the flythrough camera path
  config [options]                     Write a default meshview.yaml

Examples:
  objtool info assets/model.obj
  objtool normalize -normals generate bunny.obj bunny_unit.obj
  objtool path -config meshview.yaml -n 100 -format yaml
  objtool config -scene textured -model assets/room.obj -o meshview.yaml`)
}
