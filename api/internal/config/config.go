package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/gorm"
)

type Config struct {
	DB *gorm.DB `toml:"-"`

	Prod_env bool

	Postgres struct {
		Host     string
		User     string
		Password string `envconfig:"PASSWORD"`
		Db_name  string
		Port     uint16
		Ssl_mode string
	}

	Api struct {
		Ipv4     string
		Proto    string
		AdminKey string `toml:"-" envconfig:"ADMIN_KEY"` // guards /merchant/create
	} `toml:"payme_web"`

	// active gateway binding: payfast | fake. exactly one per deployment.
	Provider string `toml:"provider"`

	Checkout struct {
		SuccessUrl string `toml:"success_url"`
		CancelUrl  string `toml:"cancel_url"`
	} `toml:"checkout"`

	PayFast PayFast `toml:"payfast"`
}

type PayFast struct {
	MerchantId  string   `toml:"merchant_id"`
	MerchantKey string   `toml:"merchant_key" envconfig:"MERCHANT_KEY"`
	Passphrase  string   `toml:"-" envconfig:"PASSPHRASE"` // secret, env only
	Sandbox     bool     `toml:"sandbox"`
	NotifyUrl   string   `toml:"notify_url"`
	AllowedIps  []string `toml:"allowed_ips"`
}

// ProcessUrl returns the PayFast process endpoint for the configured mode.
func (p PayFast) ProcessUrl() string {
	if p.Sandbox {
		return "https://sandbox.payfast.co.za/eng/process"
	}
	return "https://www.payfast.co.za/eng/process"
}

func ReadConfig() *Config {
	byte_config, err := os.ReadFile(os.Getenv("CONFIG"))
	if err != nil {
		panic(err)
	}

	var config Config
	_, err = toml.Decode(string(byte_config), &config)
	if err != nil {
		panic(err)
	}

	// secrets come from the environment, never from the toml file
	if err := envconfig.Process("payfast", &config.PayFast); err != nil {
		panic(err)
	}
	if err := envconfig.Process("postgres", &config.Postgres); err != nil {
		panic(err)
	}
	if err := envconfig.Process("api", &config.Api); err != nil {
		panic(err)
	}

	if config.Provider == "" {
		panic("config: provider is not set")
	}

	return &config
}
