package config

import (
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// FeatureConfig is the seed state of a single toggle.
type FeatureConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DefaultFeatures returns the toggles known at build time.
func DefaultFeatures() map[string]FeatureConfig {
	return map[string]FeatureConfig{
		"cosmo-cats":     {Enabled: true},
		"kitty-products": {Enabled: false},
	}
}

type FeatureConfigHolder struct {
	current atomic.Value // holds map[string]FeatureConfig

	mu          sync.Mutex
	subscribers []func(map[string]FeatureConfig)
}

// NewFeatureConfigHolder reads features.yml from the standard locations and
// watches it for changes.
func NewFeatureConfigHolder() (*FeatureConfigHolder, error) {
	return NewFeatureConfigHolderFromPaths("/etc/cosmocats", ".")
}

func NewFeatureConfigHolderFromPaths(paths ...string) (*FeatureConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("features")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// COSMOCATS_FEATURES_COSMO_CATS_ENABLED=false
	v.SetEnvPrefix("COSMOCATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for name, feature := range DefaultFeatures() {
		v.SetDefault("features."+name+".enabled", feature.Enabled)
	}

	watch := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		watch = false
	}

	cfg, err := decodeFeatures(v)
	if err != nil {
		return nil, err
	}

	holder := &FeatureConfigHolder{}
	holder.current.Store(cfg)

	if watch {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			updated, err := decodeFeatures(v)
			if err != nil {
				log.Printf("[feature-config] invalid config ignored: %v", err)
				return
			}
			holder.current.Store(updated)
			log.Printf("[feature-config] reloaded from %s", e.Name)
			holder.notify(updated)
		})
	}

	return holder, nil
}

func (h *FeatureConfigHolder) Get() map[string]FeatureConfig {
	return h.current.Load().(map[string]FeatureConfig)
}

// Names returns the configured toggle names in sorted order.
func (h *FeatureConfigHolder) Names() []string {
	cfg := h.Get()
	names := make([]string, 0, len(cfg))
	for name := range cfg {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OnChange registers fn to be called after every successful reload.
func (h *FeatureConfigHolder) OnChange(fn func(map[string]FeatureConfig)) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	h.subscribers = append(h.subscribers, fn)
	h.mu.Unlock()
}

func (h *FeatureConfigHolder) notify(cfg map[string]FeatureConfig) {
	h.mu.Lock()
	subscribers := append([]func(map[string]FeatureConfig){}, h.subscribers...)
	h.mu.Unlock()
	for _, fn := range subscribers {
		fn(cfg)
	}
}

func decodeFeatures(v *viper.Viper) (map[string]FeatureConfig, error) {
	raw := map[string]FeatureConfig{}
	if err := v.UnmarshalKey("features", &raw); err != nil {
		return nil, err
	}
	out := make(map[string]FeatureConfig, len(raw))
	for name := range raw {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, errors.New("features: empty feature name")
		}
		// nested keys only see env overrides through Get
		out[name] = FeatureConfig{Enabled: v.GetBool("features." + name + ".enabled")}
	}
	return out, nil
}
