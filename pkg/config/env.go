package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
)

// EnvPrefix starts every environment variable the config reads.
const EnvPrefix = "STITCHKIT_"

// applyEnv overlays STITCHKIT_* variables. Unset or empty variables keep the
// current value; malformed ones are an INVALID_CONFIG error.
func (c *Config) applyEnv() error {
	e := envReader{}
	e.setFloat("RENDER_LINE_WIDTH", &c.Render.LineWidth)
	e.setFloat("RENDER_STITCH_DIAMETER", &c.Render.StitchDiameter)
	e.setFloat("RENDER_MARGIN", &c.Render.Margin)
	e.setBool("RENDER_METADATA", &c.Render.Metadata)
	e.setBool("RENDER_MARKERS", &c.Render.Markers)
	e.setFloat("RENDER_PNG_SCALE", &c.Render.PNGScale)
	e.setInt("VERIFY_ITERATIONS", &c.Verify.Iterations)
	e.setString("VERIFY_CODEC", &c.Verify.Codec)
	e.setString("CACHE_BACKEND", &c.Cache.Backend)
	e.setString("CACHE_DIR", &c.Cache.Dir)
	e.setString("CACHE_REDIS_ADDR", &c.Cache.RedisAddr)
	e.setDuration("CACHE_TTL", &c.Cache.TTL)
	e.setString("SERVER_ADDR", &c.Server.Addr)
	e.setInt64("SERVER_MAX_UPLOAD_BYTES", &c.Server.MaxUploadBytes)
	e.setString("SERVER_LOG_FILE", &c.Server.LogFile)
	return e.err
}

// envReader records the first parse failure and skips the rest.
type envReader struct {
	err error
}

func (e *envReader) lookup(name string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	v := strings.TrimSpace(os.Getenv(EnvPrefix + name))
	return v, v != ""
}

func (e *envReader) fail(name, v string, err error) {
	e.err = stitcherrors.Wrap(stitcherrors.ErrCodeInvalidConfig, err, "%s%s=%q", EnvPrefix, name, v)
}

func (e *envReader) setString(name string, dst *string) {
	if v, ok := e.lookup(name); ok {
		*dst = v
	}
}

func (e *envReader) setFloat(name string, dst *float64) {
	v, ok := e.lookup(name)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(name, v, err)
		return
	}
	*dst = f
}

func (e *envReader) setInt(name string, dst *int) {
	v, ok := e.lookup(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(name, v, err)
		return
	}
	*dst = n
}

func (e *envReader) setInt64(name string, dst *int64) {
	v, ok := e.lookup(name)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		e.fail(name, v, err)
		return
	}
	*dst = n
}

// setBool accepts true/1/yes/on and false/0/no/off, case-insensitive.
func (e *envReader) setBool(name string, dst *bool) {
	v, ok := e.lookup(name)
	if !ok {
		return
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		*dst = true
	case "false", "0", "no", "off":
		*dst = false
	default:
		e.fail(name, v, strconv.ErrSyntax)
	}
}

func (e *envReader) setDuration(name string, dst *time.Duration) {
	v, ok := e.lookup(name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(name, v, err)
		return
	}
	*dst = d
}
