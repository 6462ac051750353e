// Command schema regenerates the JSON schema for the calmfeed config file.
// The result is embedded by pkg/config and checked against loaded configs;
// run through go:generate in pkg/config after changing the Config struct.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/calmfeed/calmfeed/pkg/config"
)

func main() {
	schema := jsonschema.Reflect(&config.Config{})

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal calmfeed config schema: %v", err)
	}

	// default matches the embed path in pkg/config
	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		log.Fatalf("failed to write schema to %s: %v", outputPath, err)
	}

	fmt.Printf("calmfeed config schema written to %s\n", outputPath)
}
