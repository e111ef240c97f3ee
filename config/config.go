// Package config registers favigo settings with viper and checks their values.
//
// Settings come, from lowest to highest precedence, from the registered
// defaults, the favigo.toml file under where.Config and FAVIGO_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/favigo/favigo/constant"
	"github.com/favigo/favigo/filesystem"
	"github.com/favigo/favigo/icon"
	"github.com/favigo/favigo/key"
	"github.com/favigo/favigo/where"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup binds defaults, environment and the config file. Values are not
// checked here so that config subcommands can still repair a broken file;
// commands that depend on them call Validate.
func Setup() error {
	viper.SetConfigName(constant.Favigo)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	bindEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	return nil
}

func bindEnv() {
	viper.SetEnvPrefix(constant.Favigo)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}
}

func setDefaults() {
	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}
}

// ValueError reports a setting holding an unusable value.
type ValueError struct {
	Key   string
	Value any
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value %v for %s: %v", e.Value, e.Key, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

type rule func(v any) error

var rules = map[string]rule{
	key.FetchTemplate:      nonBlank,
	key.FetchIconMimeTypes: nonEmptyList,
	key.FetchHTMLMimeTypes: nonEmptyList,
	key.FetchMaxHTMLBytes:  positive,
	key.NetworkTimeout:     positive,
	key.LogsLevel:          logLevel,
	key.IconsVariant:       oneOf(icon.AvailableVariants()...),
}

func nonBlank(v any) error {
	if strings.TrimSpace(v.(string)) == "" {
		return errors.New("must not be blank")
	}
	return nil
}

func nonEmptyList(v any) error {
	list := v.([]string)
	if len(list) == 0 {
		return errors.New("must list at least one entry")
	}
	if lo.Contains(lo.Map(list, func(s string, _ int) string { return strings.TrimSpace(s) }), "") {
		return errors.New("must not contain blank entries")
	}
	return nil
}

func positive(v any) error {
	if v.(int) <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

func logLevel(v any) error {
	_, err := logrus.ParseLevel(v.(string))
	return err
}

func oneOf(options ...string) rule {
	return func(v any) error {
		if !lo.Contains(options, v.(string)) {
			return fmt.Errorf("must be one of %s", strings.Join(options, ", "))
		}
		return nil
	}
}

// current reads key from viper with the type of its registered default.
func current(k string) any {
	switch Default[k].Value.(type) {
	case string:
		return viper.GetString(k)
	case int:
		return viper.GetInt(k)
	case bool:
		return viper.GetBool(k)
	case []string:
		return viper.GetStringSlice(k)
	default:
		return viper.Get(k)
	}
}

// Validate checks every constrained setting and joins the failures.
func Validate() error {
	keys := lo.Keys(rules)
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		if err := check(k, current(k)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func check(k string, v any) error {
	r, ok := rules[k]
	if !ok {
		return nil
	}
	if err := r(v); err != nil {
		return &ValueError{Key: k, Value: v, Err: err}
	}
	return nil
}

// Parse converts raw command line values into the type registered for key
// and validates the result. Scalar settings take the first value.
func Parse(k string, raw []string) (any, error) {
	field, ok := Default[k]
	if !ok {
		return nil, fmt.Errorf("unknown key %s", k)
	}
	if len(raw) == 0 {
		return nil, &ValueError{Key: k, Err: errors.New("missing value")}
	}

	var (
		v   any
		err error
	)

	switch field.Value.(type) {
	case string:
		v = raw[0]
	case int:
		v, err = strconv.Atoi(raw[0])
	case bool:
		v, err = strconv.ParseBool(raw[0])
	case []string:
		v = raw
	default:
		return nil, fmt.Errorf("unsupported type %T for %s", field.Value, k)
	}

	if err != nil {
		return nil, &ValueError{Key: k, Value: raw[0], Err: err}
	}

	return v, check(k, v)
}
