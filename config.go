package emitter

import (
	"bytes"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// default destination is the local location receiver.
const (
	defaultNetwork       = "udp"
	defaultLocalAddress  = "0.0.0.0:0"
	defaultRemoteAddress = "127.0.0.1:52077"
	defaultSendTimeout   = time.Second
	defaultInterval      = 500 * time.Millisecond
)

// Config contains emitter configurations.
type Config struct {
	LogPath string `toml:"log_path"`

	Transport struct {
		Network       string   `toml:"network"`
		LocalAddress  string   `toml:"local_address"`
		RemoteAddress string   `toml:"remote_address"`
		SendTimeout   Duration `toml:"send_timeout"`
	} `toml:"transport"`

	Schedule struct {
		Interval Duration `toml:"interval"`
		FailFast bool     `toml:"fail_fast"`
	} `toml:"schedule"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := Config{}
	cfg.Transport.Network = defaultNetwork
	cfg.Transport.LocalAddress = defaultLocalAddress
	cfg.Transport.RemoteAddress = defaultRemoteAddress
	cfg.Transport.SendTimeout = Duration(defaultSendTimeout)
	cfg.Schedule.Interval = Duration(defaultInterval)
	cfg.Schedule.FailFast = true
	return &cfg
}

// LoadConfig decodes TOML data over the default configuration,
// keys that are not present keep their default value.
func LoadConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	err := decoder.Decode(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode configuration")
	}
	err = cfg.Check()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Check is used to check the configuration is valid.
func (cfg *Config) Check() error {
	tr := cfg.Transport
	err := CheckNetworkAndAddress(tr.Network, tr.RemoteAddress)
	if err != nil {
		return errors.WithMessage(err, "invalid remote address")
	}
	err = CheckNetworkAndAddress(tr.Network, tr.LocalAddress)
	if err != nil {
		return errors.WithMessage(err, "invalid local address")
	}
	if tr.SendTimeout <= 0 {
		return errors.Errorf("invalid send timeout: \"%s\"", tr.SendTimeout)
	}
	if cfg.Schedule.Interval <= 0 {
		return errors.Errorf("invalid interval: \"%s\"", cfg.Schedule.Interval)
	}
	return nil
}

// CheckNetworkAndAddress is used to check network is supported and address is valid.
func CheckNetworkAndAddress(network, address string) error {
	switch network {
	case "udp", "udp4", "udp6":
	default:
		return errors.Errorf("unsupported network: \"%s\"", network)
	}
	if !strings.Contains(address, ":") {
		return errors.New("missing port in address")
	}
	return nil
}

// Duration is a time.Duration that is written as "500ms" in TOML.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.WithStack(err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
