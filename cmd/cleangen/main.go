// Command cleangen generates Reset methods backed by autoclean for structs
// marked with a // generate:autoclean comment.
//
// Usage:
//
//	//go:generate go run github.com/idudko/go-autoclean/cmd/cleangen
//
//	// generate:autoclean hierarchy=declared visibility=all options=donotdispose
//	type Fixture struct { ... }
package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/idudko/go-autoclean/internal/observability"
)

func main() {
	dir := flag.String("dir", ".", "root directory to scan")
	output := flag.String("o", "autoclean.gen.go", "name of the generated file in every package")
	recursive := flag.Bool("r", false, "scan subdirectories")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	observability.InitLogger("cleangen", *level)

	root, err := filepath.Abs(*dir)
	if err != nil {
		log.Error().Err(err).Msg("error resolving directory")
		os.Exit(1)
	}

	if err := run(root, *output, *recursive); err != nil {
		log.Error().Err(err).Msg("generation failed")
		os.Exit(1)
	}
}

// run обходит каталоги и генерирует код для каждого пакета
func run(root, output string, recursive bool) error {
	if !recursive {
		return generate(root, output)
	}

	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		// Пропускаем скрытые каталоги, vendor и testdata
		base := d.Name()
		if path != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_")) {
			return filepath.SkipDir
		}
		if base == "vendor" || base == "testdata" || base == "node_modules" {
			return filepath.SkipDir
		}

		return generate(path, output)
	})
}

func generate(dir, output string) error {
	n, err := generateForPackage(dir, output)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info().Str("package", dir).Int("types", n).Msg("generated reset methods")
	}
	return nil
}
