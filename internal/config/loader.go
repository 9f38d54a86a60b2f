// internal/config/loader.go
//
// Settings file loader.
//
/*
Context
--------
`LoadSettings()` builds one resolved `Settings` bundle from up to two layers
(highest precedence last):

  1. The settings file, YAML, sections `core`, `stats`, `http.server`, and
     `http.client`.
  2. Optional environment variables (see WithEnvOverlay), where `__` maps
     to "." (e.g., `PEER_HTTP__SERVER__PORT → http.server.port`).

Every key is optional.  The raw tree is seeded with defaults before koanf
unmarshals into it, so absent keys keep their default.  The loader fails
only for file-level problems (missing, empty, unreadable), grammar or type
errors, and out-of-range numbers.

Derivation
----------
  • threads absent or 0 → ParallelismProbe, and never below 1.
  • thread_queue_size = queue_size / threads, only when queue_size is set.

Instrumentation
---------------
  • DEBUG spans — file read, env overlay.
  • ERROR spans — read, parse, unmarshal, validation failures.
  • INFO  spans — "load config file" and the full settings dump.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
)

const keyQueueSize = "core.queue_size"

/*─────────────────────────────── loader ───────────────────────────────────*/

// LoadSettings reads, resolves, and dumps the settings file at path.
func LoadSettings(path string, opts ...Option) (Settings, error) {
	o := newOptions(opts)
	log := o.log

	fi, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Settings{}, fmt.Errorf("%w: config file %s does not exist", ErrIO, path)
	case err != nil:
		return Settings{}, fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	case fi.IsDir():
		return Settings{}, fmt.Errorf("%w: config file %s is a directory", ErrIO, path)
	case fi.Size() == 0:
		return Settings{}, fmt.Errorf("%w: empty config file %s", ErrIO, path)
	}

	log.Infow("load config file", "file", path)

	raw, err := file.Provider(path).ReadBytes()
	if err != nil {
		log.Errorw("config read failed", "file", path, "err", err)
		return Settings{}, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}
	log.Debugw("config file read", "file", path, "bytes", len(raw))

	k := koanf.New(".")
	if err := k.Load(bytesProvider(raw), yaml.Parser()); err != nil {
		log.Errorw("config parse failed", "file", path, "err", err)
		return Settings{}, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}

	if o.envPrefix != "" {
		prefix := o.envPrefix
		if err := k.Load(env.Provider(prefix, ".", func(s string) string {
			return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, prefix), "__", "."))
		}), nil); err != nil {
			log.Errorw("config env overlay failed", "prefix", prefix, "err", err)
			return Settings{}, fmt.Errorf("%w: env overlay %s: %w", ErrParse, prefix, err)
		}
		log.Debugw("config env overlay loaded", "prefix", prefix)
	}

	fs := defaultFileSettings()
	if err := k.Unmarshal("", &fs); err != nil {
		log.Errorw("config unmarshal failed", "file", path, "err", err)
		return Settings{}, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	if err := validateFile(&fs); err != nil {
		log.Errorw("config validation failed", "file", path, "err", err)
		return Settings{}, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}

	threads := o.threads(uint(fs.Core.Threads))
	s := fs.resolve(threads, k.Exists(keyQueueSize))

	dumpSettings(log, o.build, s)
	return s, nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// bytesProvider hands already-read file bytes to koanf, so read and parse
// failures can be told apart.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]any, error) {
	return nil, errors.New("bytes provider does not support Read")
}
