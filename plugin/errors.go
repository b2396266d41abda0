package plugin

import (
	"errors"

	"github.com/andrieee44/analogsdk"
)

var (
	errInvalidNativePlugin  = errors.New("plugin: _plugin_create returned a null vtable")
	errInvalidForeignPlugin = errors.New("plugin: required foreign symbol missing")
	errNoFactorySymbol      = errors.New("plugin: neither _plugin_create nor the foreign symbol set was found")
)

// decodeErr turns a negative rc crossing the plugin ABI into the
// ErrorKind it names, falling back to Failure for unrecognized values.
func decodeErr(rc int32) analogsdk.ErrorKind {
	kind, ok := analogsdk.KnownErrorKind(rc)
	if !ok {
		return analogsdk.Failure
	}

	return kind
}
