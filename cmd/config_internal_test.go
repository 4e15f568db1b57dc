package cmd

import (
	"testing"

	"github.com/spf13/pflag"
)

func newTestFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("timeout", 0, "")
	flags.String("user-agent", "", "")
	return flags
}

func TestApplyIntDefault(t *testing.T) {
	t.Run("fills unset flag", func(t *testing.T) {
		flags := newTestFlagSet()
		applyIntDefault(flags, "timeout", 30)
		if got, _ := flags.GetInt("timeout"); got != 30 {
			t.Errorf("timeout = %d, want 30", got)
		}
	})

	t.Run("explicit flag wins over config", func(t *testing.T) {
		flags := newTestFlagSet()
		if err := flags.Parse([]string{"--timeout", "7"}); err != nil {
			t.Fatalf("Parse: %v", err)
		}
		applyIntDefault(flags, "timeout", 30)
		if got, _ := flags.GetInt("timeout"); got != 7 {
			t.Errorf("timeout = %d, want the explicit 7", got)
		}
	})

	t.Run("nonpositive value ignored", func(t *testing.T) {
		flags := newTestFlagSet()
		applyIntDefault(flags, "timeout", 0)
		if got, _ := flags.GetInt("timeout"); got != 0 {
			t.Errorf("timeout = %d, want untouched 0", got)
		}
	})

	t.Run("unknown flag is a no-op", func(t *testing.T) {
		flags := newTestFlagSet()
		applyIntDefault(flags, "nope", 5)
	})
}

func TestApplyStringDefault(t *testing.T) {
	t.Run("fills unset flag", func(t *testing.T) {
		flags := newTestFlagSet()
		applyStringDefault(flags, "user-agent", "custom/1.0")
		if got, _ := flags.GetString("user-agent"); got != "custom/1.0" {
			t.Errorf("user-agent = %q", got)
		}
	})

	t.Run("explicit flag wins", func(t *testing.T) {
		flags := newTestFlagSet()
		if err := flags.Parse([]string{"--user-agent", "cli/2.0"}); err != nil {
			t.Fatalf("Parse: %v", err)
		}
		applyStringDefault(flags, "user-agent", "config/1.0")
		if got, _ := flags.GetString("user-agent"); got != "cli/2.0" {
			t.Errorf("user-agent = %q, want the explicit value", got)
		}
	})

	t.Run("empty value ignored", func(t *testing.T) {
		flags := newTestFlagSet()
		applyStringDefault(flags, "user-agent", "")
		if got, _ := flags.GetString("user-agent"); got != "" {
			t.Errorf("user-agent = %q, want untouched empty", got)
		}
	})
}
