package config

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const settingsSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "seed": {"type": ["string", "number"]},
    "seaLevel": {"type": "integer", "minimum": 3, "maximum": 63},
    "noise": {"enum": ["simplex", "perlin"]},
    "treeHash": {"enum": ["sine", "xxhash"]},
    "generator": {"enum": ["terrain", "flat"]}
  }
}`

var settingsSchema = jsonschema.MustCompileString("settings.schema.json", settingsSchemaJSON)
