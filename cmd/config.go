package cmd

import (
	"strconv"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// applyConfigDefaults folds config-file values into any flag the user did
// not set on the command line, so everything downstream reads flags only.
func applyConfigDefaults(flags *pflag.FlagSet) {
	applyIntDefault(flags, "timeout", viper.GetInt("probe_timeout"))
	applyIntDefault(flags, "concurrency", viper.GetInt("concurrency"))
	applyStringDefault(flags, "user-agent", viper.GetString("user_agent"))
	applyStringDefault(flags, "log-dir", viper.GetString("log_dir"))
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int) {
	if value <= 0 {
		return
	}
	flag := flags.Lookup(name)
	if flag == nil || flag.Changed {
		return
	}
	_ = flag.Value.Set(strconv.Itoa(value))
}

func applyStringDefault(flags *pflag.FlagSet, name, value string) {
	if value == "" {
		return
	}
	flag := flags.Lookup(name)
	if flag == nil || flag.Changed {
		return
	}
	_ = flag.Value.Set(value)
}
