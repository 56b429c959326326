package satsql

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Default file locations, relative to the working directory.
const (
	DefaultInputPath  = "../../../resources/satellite_data.json"
	DefaultOutputPath = "init_satellites.sql"
)

// Config holds all configuration for a generator run.
type Config struct {
	InputPath    string // JSON array of satellite records
	OutputPath   string // SQL script, replaced if it exists
	Schema       string // schema name, DetailedSchema when empty
	SchemasFile  string // optional YAML file replacing the built-in schemas
	GoOutputPath string // optional Go model file
	GoPackage    string // package name for the Go model file
	Logger       *zerolog.Logger
}

// Run executes the full generation pipeline.
func Run(cfg Config) error {
	log := cfg.Logger
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	// 1. Resolve the schema.
	var (
		set *SchemaSet
		err error
	)
	if cfg.SchemasFile != "" {
		set, err = LoadSchemas(cfg.SchemasFile)
	} else {
		set, err = DefaultSchemas()
	}
	if err != nil {
		return fmt.Errorf("loading schemas: %w", err)
	}

	name := cfg.Schema
	if name == "" {
		name = DetailedSchema
	}
	schema, err := set.Lookup(name)
	if err != nil {
		return err
	}

	inputPath := cfg.InputPath
	if inputPath == "" {
		inputPath = DefaultInputPath
	}
	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = DefaultOutputPath
	}

	// 2. Generate the SQL script.
	n, err := generate(log, inputPath, outputPath, schema)
	if err != nil {
		return err
	}
	log.Info().
		Str("schema", schema.Name).
		Str("output", outputPath).
		Int("records", n).
		Msg("Wrote SQL script")

	// 3. Emit the Go model.
	if cfg.GoOutputPath != "" {
		pkgName := cfg.GoPackage
		if pkgName == "" {
			pkgName = "satdb"
		}
		if err := EmitModelFile(cfg.GoOutputPath, pkgName, schema); err != nil {
			return fmt.Errorf("writing Go model: %w", err)
		}
		log.Info().Str("output", cfg.GoOutputPath).Str("package", pkgName).Msg("Wrote Go model")
	}

	return nil
}

// Generate reads the records at inputPath, renders them with schema and
// writes the script to outputPath. It returns the number of INSERT
// statements written.
func Generate(inputPath, outputPath string, schema *Schema) (int, error) {
	nop := zerolog.Nop()
	return generate(&nop, inputPath, outputPath, schema)
}

func generate(log *zerolog.Logger, inputPath, outputPath string, schema *Schema) (int, error) {
	records, err := LoadRecords(inputPath)
	if err != nil {
		return 0, err
	}
	log.Debug().Str("input", inputPath).Int("records", len(records)).Msg("Loaded records")

	script, err := schema.RenderScript(records)
	if err != nil {
		return 0, err
	}
	log.Debug().Int("bytes", len(script)).Msg("Rendered script")

	if err := writeFile(outputPath, []byte(script)); err != nil {
		return 0, err
	}
	return len(records), nil
}

// writeFile replaces path with data. The content is staged in a temporary
// file next to path and renamed into place, so path never holds a partial
// write.
func writeFile(path string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Chmod(0o644); err != nil {
		return &IOError{Op: "chmod", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
