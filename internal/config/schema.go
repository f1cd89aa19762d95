package config

// schemaJSON is the JSON Schema every on-disk Configuration document is
// validated against before anything downstream trusts it. Deliberately
// permissive on cache.dir/redos_ignored_patterns (free-form strings) and
// strict on the numeric limits and enums that collaborators size arrays or
// dispatch on target-version tables with.
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://regexcore/config.schema.json",
  "type": "object",
  "properties": {
    "max_pattern_length": {"type": "integer", "minimum": 1},
    "max_lookbehind_length": {"type": "integer", "minimum": 0},
    "max_recursion_depth": {"type": "integer", "minimum": 1},
    "target_version": {
      "type": "string",
      "enum": ["pcre1", "pcre2", "ecma", "dotnet", "java", "posix-bre", "posix-ere"]
    },
    "cache": {
      "type": "object",
      "properties": {
        "kind": {"type": "string", "enum": ["none", "memory", "fs"]},
        "dir": {"type": "string"},
        "capacity": {"type": "integer", "minimum": 0}
      }
    },
    "runtime_pcre_validation": {"type": "boolean"},
    "redos_ignored_patterns": {
      "type": "array",
      "items": {"type": "string"}
    },
    "alphabet_limit": {"type": "integer", "minimum": 1},
    "dfa_state_limit": {"type": "integer", "minimum": 1}
  },
  "additionalProperties": false
}`
