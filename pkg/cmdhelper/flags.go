package cmdhelper

import (
	"reflect"

	"github.com/urfave/cli/v3"
)

// SetFlagsCategory sets the Category field of every flag that has one.
func SetFlagsCategory(category string, flags ...cli.Flag) {
	for _, flag := range flags {
		v := reflect.ValueOf(flag)
		if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
			continue
		}
		field := v.Elem().FieldByName("Category")
		if field.IsValid() && field.CanSet() && field.Kind() == reflect.String {
			field.SetString(category)
		}
	}
}
