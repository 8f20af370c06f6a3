// weighttool is a CLI utility for normalizing armature skin weights in
// glTF/GLB/VRM files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/assumptionsoup/Normalize-Armature-Weights/internal/config"
	"github.com/assumptionsoup/Normalize-Armature-Weights/internal/logger"
	"github.com/assumptionsoup/Normalize-Armature-Weights/internal/op"
	"github.com/assumptionsoup/Normalize-Armature-Weights/internal/scene"
	"github.com/assumptionsoup/Normalize-Armature-Weights/pkg/formats"
	"github.com/assumptionsoup/Normalize-Armature-Weights/pkg/weights"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "check":
		cmdCheck(args)
	case "normalize", "norm":
		cmdNormalize(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`weighttool - armature skin weight utility for glTF/GLB/VRM files

Usage:
  weighttool <command> [options]

Commands:
  info <file>                 Show skinned mesh and armature information
  check <file>                Report vertices whose bone weights do not sum to 1
  normalize <file> [options]  Normalize bone weights, holding the active group

Normalize options:
  -active <name>   Group to hold during normalization (default: first group)
  -out <file>      Output path (default: input stem + suffix)
  -overwrite       Allow writing over an existing output file
  -tolerance <t>   Sum tolerance used in reporting
  -config <file>   Config file path
  -debug           Debug logging
  -log-file <file> Also log to a rotated file

Examples:
  weighttool info character.glb
  weighttool check character.glb
  weighttool normalize character.glb -active upper_arm.L -out fixed.glb`)
}

// buildObject wraps a loaded model in a scene object the operator can
// run against: a mesh in weight paint mode with one armature modifier
// per bound skin.
func buildObject(model *formats.SkinnedModel, name string) *scene.Object {
	obj := &scene.Object{
		Name: name,
		Type: scene.MeshObject,
		Mode: scene.WeightPaintMode,
		Mesh: model.Mesh,
	}
	for _, sk := range model.Skins {
		obj.Modifiers = append(obj.Modifiers, scene.Modifier{
			Name:          "Armature",
			Kind:          scene.ModifierArmature,
			DeformsGroups: true,
			Skeleton:      &scene.Skeleton{Name: sk.Name, Bones: sk.Bones},
		})
	}
	return obj
}

// boneGroupIndices returns the mesh group indices matching the object's
// armature bones, in group table order.
func boneGroupIndices(obj *scene.Object) []int {
	bones, _ := obj.ArmatureBones()
	set := make(map[string]bool, len(bones))
	for _, b := range bones {
		set[b] = true
	}
	var groups []int
	for i, name := range obj.Mesh.Groups.Names() {
		if set[name] {
			groups = append(groups, i)
		}
	}
	return groups
}

func load(path string) *formats.SkinnedModel {
	model, err := formats.LoadSkinned(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return model
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: weighttool info <file>")
		os.Exit(1)
	}

	model := load(args[0])
	obj := buildObject(model, filepath.Base(args[0]))
	groups := boneGroupIndices(obj)

	fmt.Printf("File:     %s\n", args[0])
	fmt.Printf("Vertices: %d\n", len(model.Mesh.Vertices))
	fmt.Printf("Groups:   %d (%d on armature)\n", model.Mesh.Groups.Len(), len(groups))
	fmt.Printf("Skins:    %d\n", len(model.Skins))
	for _, sk := range model.Skins {
		name := sk.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("  %-20s %d bones\n", name, len(sk.Bones))
	}

	bad := weights.Audit(model.Mesh, groups, weights.DefaultTolerance)
	fmt.Printf("Vertices off 1.0 sum: %d\n", len(bad))
}

func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	tolerance := fs.Float64("tolerance", weights.DefaultTolerance, "Sum tolerance")
	limit := fs.Int("n", 10, "Show at most N offending vertices (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: weighttool check <file>")
		os.Exit(1)
	}

	model := load(fs.Arg(0))
	obj := buildObject(model, filepath.Base(fs.Arg(0)))
	groups := boneGroupIndices(obj)

	bad := weights.Audit(model.Mesh, groups, *tolerance)
	if len(bad) == 0 {
		fmt.Println("All bone weights sum to 1.0 within tolerance.")
		return
	}

	fmt.Printf("%d of %d vertices off 1.0 sum:\n", len(bad), len(model.Mesh.Vertices))
	for i, vi := range bad {
		if *limit > 0 && i >= *limit {
			fmt.Printf("  ... and %d more\n", len(bad)-i)
			break
		}
		var sum float64
		for _, g := range groups {
			if w, ok := model.Mesh.Vertices[vi].Weight(g); ok {
				sum += float64(w)
			}
		}
		fmt.Printf("  vertex %-8d sum %.6f\n", vi, sum)
	}
	os.Exit(1)
}

func cmdNormalize(args []string) {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	active := fs.String("active", "", "Group to hold during normalization")
	out := fs.String("out", "", "Output path")
	overwrite := fs.Bool("overwrite", false, "Allow overwriting the output file")
	tolerance := fs.Float64("tolerance", 0, "Sum tolerance used in reporting")
	configPath := fs.String("config", "", "Config file path")
	debug := fs.Bool("debug", false, "Enable debug logging")
	logFile := fs.String("log-file", "", "Also log to a rotated file")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: weighttool normalize <file> [options]")
		os.Exit(1)
	}
	inPath := fs.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Apply(config.Overrides{
		Debug:       *debug,
		LogFile:     *logFile,
		Tolerance:   *tolerance,
		ActiveGroup: *active,
		Overwrite:   *overwrite,
	})

	logger.Init(logger.Options{
		Level:    cfg.Logging.Level,
		Console:  true,
		FilePath: cfg.Logging.LogFile,
	})
	defer logger.Sync()

	model := load(inPath)
	obj := buildObject(model, filepath.Base(inPath))

	if cfg.Normalize.ActiveGroup != "" {
		idx, ok := obj.Mesh.Groups.Index(cfg.Normalize.ActiveGroup)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: no vertex group named %q\n", cfg.Normalize.ActiveGroup)
			os.Exit(1)
		}
		obj.Mesh.Groups.Active = idx
	}

	if !op.Poll(obj) {
		fmt.Fprintln(os.Stderr, "Error: object is not a weight-paintable mesh with vertex groups")
		os.Exit(1)
	}

	result, err := op.NormalizeArmatureWeights(obj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if result.MultipleArmatures {
		fmt.Fprintln(os.Stderr, "Warning: multiple armatures found on object; used the first one")
	}

	outPath := *out
	if outPath == "" {
		ext := filepath.Ext(inPath)
		outPath = strings.TrimSuffix(inPath, ext) + cfg.Output.Suffix + ext
	}
	if !cfg.Output.Overwrite && outPath != inPath {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(os.Stderr, "Error: %s exists (use -overwrite)\n", outPath)
			os.Exit(1)
		}
	}

	if err := model.Save(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rep := result.Report
	fmt.Printf("Normalized %s -> %s\n", inPath, outPath)
	fmt.Printf("  vertices: %d  rewritten: %d  already balanced: %d\n",
		rep.Vertices, rep.Rewritten, rep.Balanced)
	if rep.Unnormalized > 0 {
		fmt.Printf("  left unnormalized: %d (no redistribution rule applied)\n", rep.Unnormalized)
	}
	if bad := weights.Audit(obj.Mesh, boneGroupIndices(obj), cfg.Normalize.Tolerance); len(bad) > 0 {
		fmt.Printf("  vertices still off 1.0 sum: %d\n", len(bad))
	}
}
