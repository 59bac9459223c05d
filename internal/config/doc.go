// Package config centralizes application configuration. Values come
// from an optional YAML file and VOCADRILL_-prefixed environment
// variables, with the environment taking precedence, and are validated
// before use.
package config
