package options

import (
	"fmt"
	"net"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/ruacred/pkg/cmdhelper"
)

const (
	// ServerFlagCategory is the category of the server flags.
	ServerFlagCategory = "[Server]"

	// DefaultServerPort is the default port for the server to listen on.
	DefaultServerPort int64 = 8080

	// DefaultServerHost is the default host for the server to listen on.
	DefaultServerHost = "127.0.0.1"
)

// NewServerOptions returns a new *ServerOptions with default values.
func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		Port: DefaultServerPort,
		Host: DefaultServerHost,
	}
}

// ServerOptions defines the options for the server.
type ServerOptions struct {
	Port int64  `json:"port" yaml:"port"`
	Host string `json:"host" yaml:"host"`
}

// Flags returns the []cli.Flag related to current options.
func (o *ServerOptions) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "port",
			Aliases:     []string{"p"},
			Usage:       "port to listen on",
			Sources:     cli.EnvVars("RUACRED_SERVER_PORT"),
			Value:       o.Port,
			Destination: &o.Port,
			Validator: func(port int64) error {
				if port < 0 || port > 65535 {
					return fmt.Errorf("invalid port %d", port)
				}
				return nil
			},
		},
		&cli.StringFlag{
			Name:        "host",
			Usage:       "host to listen on",
			Sources:     cli.EnvVars("RUACRED_SERVER_HOST"),
			Value:       o.Host,
			Destination: &o.Host,
		},
	}
	cmdhelper.SetFlagsCategory(ServerFlagCategory, flags...)
	return flags
}

// Address returns the server address format as host:port.
func (o *ServerOptions) Address() string {
	return net.JoinHostPort(o.Host, fmt.Sprint(o.Port))
}
