package options

import (
	"crypto/tls"
	"errors"
	"net/http"
	"net/url"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/ruacred/pkg/cmdhelper"
)

const (
	// HTTPFlagCategory is the category name for outgoing HTTP flags.
	HTTPFlagCategory = "[HTTP]"
)

// NewHTTPOptions returns a *HTTPOptions with default values.
func NewHTTPOptions() *HTTPOptions {
	return &HTTPOptions{}
}

// HTTPOptions configures the outgoing HTTP client.
type HTTPOptions struct {
	Insecure bool     `json:"insecure,omitempty" yaml:"insecure,omitempty"`
	CAFiles  []string `json:"ca_files,omitempty" yaml:"ca_files,omitempty"`
	Proxy    string   `json:"proxy,omitempty" yaml:"proxy,omitempty"`
}

// Flags returns the []cli.Flag related to current options.
func (o *HTTPOptions) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "insecure",
			Usage:       "skip verifying the server certificate",
			Sources:     cli.EnvVars("RUACRED_INSECURE"),
			Destination: &o.Insecure,
			Value:       o.Insecure,
		},
		&cli.StringSliceFlag{
			Name:        "ca-files",
			Usage:       "CA files to verify the server certificate",
			Destination: &o.CAFiles,
			Value:       o.CAFiles,
			Validator: func(paths []string) error {
				var errs []error
				for _, path := range paths {
					if _, err := os.Stat(path); err != nil {
						errs = append(errs, err)
					}
				}
				return errors.Join(errs...)
			},
		},
		&cli.StringFlag{
			Name:        "proxy",
			Usage:       "proxy URL, default to the HTTP_PROXY/HTTPS_PROXY environment",
			Sources:     cli.EnvVars("RUACRED_PROXY"),
			Destination: &o.Proxy,
			Validator: func(s string) error {
				_, err := url.Parse(s)
				return err
			},
		},
	}
	cmdhelper.SetFlagsCategory(HTTPFlagCategory, flags...)
	return flags
}

// ProxyHostname returns the host name of the configured proxy, or "".
func (o *HTTPOptions) ProxyHostname() string {
	if o.Proxy == "" {
		return ""
	}
	u, err := url.Parse(o.Proxy)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// NewTransport returns a transport with the TLS and proxy settings applied.
func (o *HTTPOptions) NewTransport() (*http.Transport, error) {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tlsConfig := &tls.Config{
		InsecureSkipVerify: o.Insecure, //nolint:gosec // explicit skip verify
	}
	if len(o.CAFiles) > 0 {
		pool, err := cmdhelper.LoadTLSCertFiles(o.CAFiles...)
		if err != nil {
			return nil, err
		}
		tlsConfig.RootCAs = pool
	}
	tr.TLSClientConfig = tlsConfig

	if o.Proxy != "" {
		proxyURL, err := url.Parse(o.Proxy)
		if err != nil {
			return nil, err
		}
		tr.Proxy = http.ProxyURL(proxyURL)
	}
	return tr, nil
}
