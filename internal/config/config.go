/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package config loads the settings of the link board service. Settings start from Default, are
// overlaid by a YAML file and finally by command line flags; the result is validated before use.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/botobag/linkboard/graphql"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the root of the settings.
type Config struct {
	// Seed is the path of a JSON seed file. Empty selects the embedded seed.
	Seed string `yaml:"seed"`

	Server Server `yaml:"server"`
	Log    Log    `yaml:"log"`
}

// Server configures the HTTP service.
type Server struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`

	// MaxBodySize caps the bytes read from a request body.
	MaxBodySize uint `yaml:"max_body_size" validate:"min=1"`

	// DocumentCacheSize is the number of parsed queries kept in memory; 0 disables the cache.
	DocumentCacheSize int `yaml:"document_cache_size" validate:"min=0"`

	// CORSOrigins lists origins allowed to call the service from browsers. Empty disables CORS.
	CORSOrigins []string `yaml:"cors_origins" validate:"dive,required"`

	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"min=0"`
}

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Server: Server{
			Addr:              ":4000",
			MaxBodySize:       1 << 20,
			DocumentCacheSize: 512,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			ShutdownTimeout:   5 * time.Second,
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the YAML file at path over Default and validates the result. An empty path loads
// only the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if len(path) > 0 {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, graphql.NewError("cannot open config file", graphql.Op("config.Load"), err)
		}
		defer f.Close()

		if err := Decode(f, &cfg); err != nil {
			return Config{}, graphql.WrapErrorf(err, "cannot load config file %s", path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode overlays the YAML document read from r on cfg. Unknown keys are rejected.
func Decode(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return graphql.NewError("invalid YAML", graphql.Op("config.Decode"), graphql.ErrKindValidation, err)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report keys as they are spelled in the YAML file.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the settings.
func (cfg *Config) Validate() error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return graphql.NewError("cannot validate config", graphql.Op("config.Validate"), graphql.ErrKindInternal, err)
	}

	messages := make([]string, len(validationErrs))
	for i, fieldErr := range validationErrs {
		// Drop the root struct name from the namespace (e.g., "Config.server.addr").
		key := fieldErr.Namespace()
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		messages[i] = fmt.Sprintf("%s: %s", key, describe(fieldErr))
	}
	return graphql.NewError("invalid config: "+strings.Join(messages, "; "),
		graphql.Op("config.Validate"), graphql.ErrKindValidation)
}

func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "hostname_port":
		return fmt.Sprintf("%q is not a host:port address", fieldErr.Value())
	case "oneof":
		return fmt.Sprintf("%q is not one of %s", fieldErr.Value(), strings.ReplaceAll(fieldErr.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	}
	return fmt.Sprintf("failed on %s", fieldErr.Tag())
}
