package xlog

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// DefaultRedactedKeys are attribute keys whose values never reach the output.
var DefaultRedactedKeys = []string{"password", "authorization", "proxy-authorization", "header"}

// AttrReplacer is called to rewrite each non-group attribute before it is logged.
type AttrReplacer = func(groups []string, attr slog.Attr) slog.Attr

// ChainReplacer calls replacers in order.
func ChainReplacer(replacers ...AttrReplacer) AttrReplacer {
	return func(groups []string, attr slog.Attr) slog.Attr {
		for _, repl := range replacers {
			attr = repl(groups, attr)
		}
		return attr
	}
}

// NormalizeSourceAttrReplacer replaces source file path as basename.
func NormalizeSourceAttrReplacer() AttrReplacer {
	return func(_ []string, attr slog.Attr) slog.Attr {
		if attr.Key == slog.SourceKey {
			if source, ok := attr.Value.Any().(*slog.Source); ok {
				source.File = filepath.Base(source.File)
			}
		}
		return attr
	}
}

// RedactAttrReplacer replaces the value of attributes named by keys, compared
// case-insensitively, with "<redacted>".
func RedactAttrReplacer(keys ...string) AttrReplacer {
	return func(_ []string, attr slog.Attr) slog.Attr {
		if lo.ContainsBy(keys, func(key string) bool { return strings.EqualFold(key, attr.Key) }) {
			return slog.String(attr.Key, "<redacted>")
		}
		return attr
	}
}

// SuppressTimeAttrReplacer removes the top-level time attribute, to make
// output deterministic in tests.
func SuppressTimeAttrReplacer() AttrReplacer {
	return func(groups []string, attr slog.Attr) slog.Attr {
		if attr.Key == slog.TimeKey && len(groups) == 0 {
			return slog.Attr{}
		}
		return attr
	}
}
