// Package appinfo holds the build information of ruacred.
package appinfo

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Name is the application name.
const Name = "ruacred"

// Set at build time:
//
//	go build -ldflags '-X github.com/wuxler/ruacred/pkg/appinfo.version=v1.0.0'
var (
	version   = "dev"
	buildDate = "1970-01-01T00:00:00Z"
	gitCommit = ""
	gitTag    = ""
	// either "clean" or "dirty"
	gitTreeState = ""
)

// Version is the build information reported by the version command.
type Version struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit,omitempty" yaml:"git_commit,omitempty"`
	GitTag    string `json:"git_tag,omitempty" yaml:"git_tag,omitempty"`
	TreeState string `json:"tree_state,omitempty" yaml:"tree_state,omitempty"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// GetVersion returns the Version of the application.
func GetVersion() Version {
	return Version{
		Version:   version,
		GitCommit: gitCommit,
		GitTag:    gitTag,
		TreeState: gitTreeState,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// ShortVersion returns the version with the abbreviated commit, if known.
func ShortVersion() string {
	if len(gitCommit) > 7 {
		return version + "-" + gitCommit[:8]
	}
	return version
}

// UserAgent is the User-Agent header sent by outgoing requests.
func UserAgent() string {
	return Name + "/" + ShortVersion()
}

// Write writes v in format, one of "text", "json" or "yaml". Short text
// output is a single line.
func (v Version) Write(w io.Writer, format string, short bool) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.NewEncoder(w).Encode(v)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "", "text":
	default:
		return fmt.Errorf("unsupported format %q, oneof [\"text\", \"json\", \"yaml\"]", format)
	}
	if short {
		_, err := fmt.Fprintln(w, v.Line())
		return err
	}
	_, err := fmt.Fprintf(w, `Version    : %s
GitCommit  : %s
GitTag     : %s
TreeState  : %s
BuildDate  : %s
GoVersion  : %s
Platform   : %s
`, v.Version, v.GitCommit, v.GitTag, v.TreeState, v.BuildDate, v.GoVersion, v.Platform)
	return err
}

// Line returns the one-line form "<version> (<commit>)".
func (v Version) Line() string {
	if v.GitCommit == "" {
		return v.Version
	}
	return v.Version + " (" + v.GitCommit + ")"
}
