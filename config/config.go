/*
Package config loads report settings from bankloan.yml, environment and defaults
*/
package config

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go-ml.dev/pkg/bankloan/bank"
	"go-ml.dev/pkg/zorros/zorros"
)

type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Clean     CleanConfig     `mapstructure:"clean"`
	Transform TransformConfig `mapstructure:"transform"`
	Split     SplitConfig     `mapstructure:"split"`
	Resample  ResampleConfig  `mapstructure:"resample"`
	Logit     LogitConfig     `mapstructure:"logit"`
	Tree      TreeConfig      `mapstructure:"tree"`
	Tune      TuneConfig      `mapstructure:"tune"`
	Output    OutputConfig    `mapstructure:"output"`
	Workers   int             `mapstructure:"workers"`
	Verbose   bool            `mapstructure:"verbose"`
}

type DataConfig struct {
	Path string `mapstructure:"path"`
	Bins int    `mapstructure:"bins"`
}

type CleanConfig struct {
	Drop       []string           `mapstructure:"drop"`
	ZipFixes   map[string]float64 `mapstructure:"zipFixes"`
	Indicators []string           `mapstructure:"indicators"`
}

type TransformConfig struct {
	Log  []string `mapstructure:"log"`
	Drop []string `mapstructure:"drop"`
}

type SplitConfig struct {
	Train float64 `mapstructure:"train"`
	Seed  int64   `mapstructure:"seed"`
}

type SmoteConfig struct {
	K     int `mapstructure:"k"`
	Over  int `mapstructure:"over"`
	Under int `mapstructure:"under"`
}

type RoseConfig struct {
	Shrink float64 `mapstructure:"shrink"`
	P      float64 `mapstructure:"p"`
}

type ResampleConfig struct {
	Methods []string    `mapstructure:"methods"`
	Smote   SmoteConfig `mapstructure:"smote"`
	Rose    RoseConfig  `mapstructure:"rose"`
}

type LogitConfig struct {
	Iterations int     `mapstructure:"iterations"`
	Tolerance  float64 `mapstructure:"tolerance"`
	Threshold  float64 `mapstructure:"threshold"`
	L2         float64 `mapstructure:"l2"`
}

type TreeConfig struct {
	MaxDepth  int     `mapstructure:"maxDepth"`
	MinSplit  int     `mapstructure:"minSplit"`
	MinBucket int     `mapstructure:"minBucket"`
	Cp        float64 `mapstructure:"cp"`
}

type TuneConfig struct {
	Enabled    bool       `mapstructure:"enabled"`
	Kfold      int        `mapstructure:"kfold"`
	Iterations int        `mapstructure:"iterations"`
	Cp         [2]float64 `mapstructure:"cp"`
	MaxDepth   [2]int     `mapstructure:"maxDepth"`
}

type OutputConfig struct {
	Markdown string `mapstructure:"markdown"`
	Xlsx     string `mapstructure:"xlsx"`
	DB       string `mapstructure:"db"`
	Store    bool   `mapstructure:"store"`
}

/*
New returns viper instance with defaults for every key, environment
variables BANKLOAN_<KEY> with dots replaced by underscores override them
*/
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("bankloan")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	clean := bank.DefaultCleanOptions()
	transform := bank.DefaultTransformOptions()
	v.SetDefault("data.path", "Bank_Personal_Loan_Modelling.csv")
	v.SetDefault("data.bins", 10)
	v.SetDefault("clean.drop", clean.Drop)
	v.SetDefault("clean.zipFixes", map[string]float64{"9307": 93007})
	v.SetDefault("clean.indicators", clean.Indicators)
	v.SetDefault("transform.log", transform.Log)
	v.SetDefault("transform.drop", transform.Drop)
	v.SetDefault("split.train", 0.7)
	v.SetDefault("split.seed", 1)
	v.SetDefault("resample.methods", []string{"original", "down", "up", "smote", "rose"})
	v.SetDefault("resample.smote.k", 5)
	v.SetDefault("resample.smote.over", 200)
	v.SetDefault("resample.smote.under", 200)
	v.SetDefault("resample.rose.shrink", 1.0)
	v.SetDefault("resample.rose.p", 0.5)
	v.SetDefault("logit.iterations", 25)
	v.SetDefault("logit.tolerance", 1e-8)
	v.SetDefault("logit.threshold", 0.5)
	v.SetDefault("logit.l2", 0.0)
	v.SetDefault("tree.maxDepth", 30)
	v.SetDefault("tree.minSplit", 20)
	v.SetDefault("tree.minBucket", 7)
	v.SetDefault("tree.cp", 0.01)
	v.SetDefault("tune.enabled", false)
	v.SetDefault("tune.kfold", 5)
	v.SetDefault("tune.iterations", 20)
	v.SetDefault("tune.cp", []float64{0.001, 0.1})
	v.SetDefault("tune.maxDepth", []int{2, 10})
	v.SetDefault("output.markdown", "")
	v.SetDefault("output.xlsx", "")
	v.SetDefault("output.db", "results.db")
	v.SetDefault("output.store", true)
	v.SetDefault("workers", 4)
	v.SetDefault("verbose", false)
	return v
}

/*
Load reads bankloan.yml from the directory if it exists and decodes configuration
*/
func Load(v *viper.Viper, dir string) (*Config, error) {
	if dir != "" {
		v.AddConfigPath(dir)
		v.SetConfigName("bankloan")
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, zorros.Wrapf(err, "failed to read config: %v", err.Error())
			}
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, zorros.Wrapf(err, "failed to decode config: %v", err.Error())
	}
	return cfg, cfg.Validate()
}

/*
Validate checks values having no sensible fallback
*/
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return zorros.Errorf("data.path is required")
	}
	if c.Split.Train <= 0 || c.Split.Train >= 1 {
		return zorros.Errorf("split.train must be in (0,1), got %v", c.Split.Train)
	}
	if len(c.Resample.Methods) == 0 {
		return zorros.Errorf("resample.methods must list at least one method")
	}
	if _, err := c.ZipFixes(); err != nil {
		return err
	}
	if c.Tune.Enabled {
		if c.Tune.Cp[0] <= 0 || c.Tune.Cp[0] >= c.Tune.Cp[1] {
			return zorros.Errorf("tune.cp must be a positive range [min,max] with min < max, got %v", c.Tune.Cp)
		}
		if c.Tune.MaxDepth[0] < 1 || c.Tune.MaxDepth[0] > c.Tune.MaxDepth[1] {
			return zorros.Errorf("tune.maxDepth must be a range [min,max] with 1 <= min <= max, got %v", c.Tune.MaxDepth)
		}
		if c.Tune.Kfold < 2 {
			return zorros.Errorf("tune.kfold must be at least 2, got %d", c.Tune.Kfold)
		}
	}
	return nil
}

/*
ZipFixes converts configured zip code corrections to numbers
*/
func (c *Config) ZipFixes() (map[float64]float64, error) {
	r := map[float64]float64{}
	for k, v := range c.Clean.ZipFixes {
		z, err := strconv.ParseFloat(k, 64)
		if err != nil {
			return nil, zorros.Errorf("clean.zipFixes key `%v` is not a zip code", k)
		}
		r[z] = v
	}
	return r, nil
}

/*
CleanOptions returns cleaning options for the dataset
*/
func (c *Config) CleanOptions() bank.CleanOptions {
	z, _ := c.ZipFixes()
	return bank.CleanOptions{Drop: c.Clean.Drop, ZipFixes: z, Indicators: c.Clean.Indicators}
}

/*
TransformOptions returns transformation options for the dataset
*/
func (c *Config) TransformOptions() bank.TransformOptions {
	return bank.TransformOptions{Log: c.Transform.Log, Drop: c.Transform.Drop}
}
