package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Policy holds the product-policy constants the domain service enforces.
// These are business inputs, not derived values, and are open to revision
// without a code change.
type Policy struct {
	// MaxOrganizationsPerUser caps how many organizations one user may
	// belong to.
	MaxOrganizationsPerUser int `mapstructure:"maxOrganizationsPerUser"`
	// MinMaxMembers / MaxMaxMembers bound the configurable maxMembers
	// setting of an organization.
	MinMaxMembers int `mapstructure:"minMaxMembers"`
	MaxMaxMembers int `mapstructure:"maxMaxMembers"`
}

func DefaultPolicy() Policy {
	return Policy{
		MaxOrganizationsPerUser: 10,
		MinMaxMembers:           1,
		MaxMaxMembers:           1000,
	}
}

// PolicyHolder exposes the current policy and hot-reloads it when the
// policy file changes.
type PolicyHolder struct {
	current atomic.Value // holds Policy
}

func NewPolicyHolder() (*PolicyHolder, error) {
	v := viper.New()

	v.SetConfigName("policy")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/orgservice")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ORGSERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPolicy()
	v.SetDefault("policy.maxOrganizationsPerUser", defaults.MaxOrganizationsPerUser)
	v.SetDefault("policy.minMaxMembers", defaults.MinMaxMembers)
	v.SetDefault("policy.maxMaxMembers", defaults.MaxMaxMembers)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var p Policy
	if err := v.UnmarshalKey("policy", &p); err != nil {
		return nil, err
	}
	if err := validatePolicy(p); err != nil {
		return nil, err
	}

	holder := &PolicyHolder{}
	holder.current.Store(p)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated Policy
		if err := v.UnmarshalKey("policy", &updated); err != nil {
			log.Printf("[policy] reload failed: %v", err)
			return
		}
		if err := validatePolicy(updated); err != nil {
			log.Printf("[policy] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
	})

	return holder, nil
}

// NewStaticPolicyHolder wraps a fixed policy, for tests and embedding.
func NewStaticPolicyHolder(p Policy) *PolicyHolder {
	holder := &PolicyHolder{}
	holder.current.Store(p)
	return holder
}

func (h *PolicyHolder) Current() Policy {
	return h.current.Load().(Policy)
}

func validatePolicy(p Policy) error {
	if p.MaxOrganizationsPerUser < 1 {
		return errors.New("maxOrganizationsPerUser must be at least 1")
	}
	if p.MinMaxMembers < 1 {
		return errors.New("minMaxMembers must be at least 1")
	}
	if p.MaxMaxMembers < p.MinMaxMembers {
		return errors.New("maxMaxMembers must not be below minMaxMembers")
	}
	return nil
}
