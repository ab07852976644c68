package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/mwegrzyn/sceneforge/internal/sceneforge"
)

const (
	appName     = "sceneforge"
	historyFile = ".sceneforge_history"
	prompt      = "==> "
)

func main() {
	sceneforge.Debug = os.Getenv("DEBUG") != ""

	depth := flag.Int("depth", sceneforge.DefaultPatchMaxDepth, "max patch subdivision depth")
	flatness := flag.Float64("flatness", sceneforge.DefaultPatchFlatness, "patch flatness threshold (bound diagonal)")
	dump := flag.Bool("dump", false, "dump the loaded document and compiled tables")
	rawOut := flag.String("raw", "", "write compiled tables to this file in flat binary form")
	interactive := flag.Bool("i", false, "start an interactive inspection shell after loading")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	scene, err := sceneforge.LoadSceneFile(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	tables := scene.Compile(*depth, *flatness)

	fmt.Printf("%s: %d materials, %d primitives, %d nodes, %d roots, %d groups, %d sub-patches, %d instances\n",
		path, scene.Materials.Count(), scene.CSG.PrimitiveCount(), scene.CSG.NodeCount(),
		len(scene.CSG.Roots), scene.GroupCount(), len(tables.SubPatches), scene.InstanceCount())

	if *dump {
		sceneforge.DumpScene(os.Stdout, scene)
		sceneforge.DumpTables(os.Stdout, tables)
	}
	if *rawOut != "" {
		if err := tables.SaveRaw(*rawOut); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s (%d bytes)\n", *rawOut, tables.RawSize())
	}
	if *interactive {
		os.Exit(repl(path, scene, tables, *depth, *flatness))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] <file.scene>

Loads a scene description, compiles the flattened tables and both
acceleration trees, and prints a summary.

Flags:
`, appName)
	flag.PrintDefaults()
}

// repl is a small inspection shell over the loaded document. `reload`
// re-reads the file from disk, so it doubles as a scene-editing loop.
func repl(path string, scene *sceneforge.Scene, tables *sceneforge.Tables, depth int, flatness float64) int {
	fmt.Println("Ctrl+D exits. Type help for commands.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return 1
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		fields := strings.Fields(line)
		switch fields[0] {
		case "help":
			fmt.Print(`commands:
  counts          summary line for the loaded document
  scene           dump the document tables
  tables          dump the compiled tables and both trees
  bvh csg|patch   dump one tree
  reload          re-read the file and recompile
  quit            exit
`)
		case "counts":
			fmt.Printf("%d materials, %d primitives, %d nodes, %d roots, %d groups, %d sub-patches, %d instances\n",
				scene.Materials.Count(), scene.CSG.PrimitiveCount(), scene.CSG.NodeCount(),
				len(scene.CSG.Roots), scene.GroupCount(), len(tables.SubPatches), scene.InstanceCount())
		case "scene":
			sceneforge.DumpScene(os.Stdout, scene)
		case "tables":
			sceneforge.DumpTables(os.Stdout, tables)
		case "bvh":
			if len(fields) != 2 {
				fmt.Println("usage: bvh csg|patch")
				continue
			}
			switch fields[1] {
			case "csg":
				sceneforge.DumpBVH(os.Stdout, "csg", tables.CSGBVH)
			case "patch":
				sceneforge.DumpBVH(os.Stdout, "patch", tables.PatchBVH)
			default:
				fmt.Println("usage: bvh csg|patch")
			}
		case "reload":
			s, err := sceneforge.LoadSceneFile(path)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			scene = s
			tables = scene.Compile(depth, flatness)
			fmt.Println("reloaded")
		case "quit", "exit":
			return 0
		default:
			fmt.Printf("unknown command %q, type help\n", fields[0])
		}
	}
}
